// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// One file configures both binaries: the client reads the "client:"
// section, the sandbox API reads storage_path and "http_server:".
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path to the sandbox SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`

	HTTPServer `yaml:"http_server"`

	Client Client `yaml:"client"`
}

// HTTPServer holds settings for the sandbox API server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Client holds settings for the student client.
type Client struct {
	// APIBaseURL is the backend base; the client appends /Student.
	APIBaseURL string `yaml:"api_base_url" env:"API_BASE_URL" env-default:"http://localhost:8082/api"`

	// Timeout bounds every HTTP round trip.
	Timeout time.Duration `yaml:"timeout" env:"CLIENT_TIMEOUT" env-default:"10s"`

	// RedirectDelay is how long a success notice stays up before the
	// form views navigate back to the list.
	RedirectDelay time.Duration `yaml:"redirect_delay" env:"CLIENT_REDIRECT_DELAY" env-default:"1500ms"`

	// Output is the default format of one-shot commands: table, json or yaml.
	Output string `yaml:"output" env:"CLIENT_OUTPUT" env-default:"table"`
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and returns the result.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is not set")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return &cfg, nil
}

// LoadEnv builds a Config purely from environment variables and defaults.
// The client uses it when no config file is given.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}
	return &cfg, nil
}

// MustLoad reads, validates, and returns the sandbox server config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to fatal on failure. If this returns, the config is
// valid for running the server.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	// The client can live without storage, the server cannot.
	if cfg.StoragePath == "" {
		log.Fatal("storage_path is required to run the API server")
	}

	return cfg
}
