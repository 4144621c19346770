// Package command defines the students-cli commands.
//
// It uses urfave/cli/v2 and supports both one-shot commands (list, get,
// create, update, delete) and the interactive shell.
package command

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/aanand-mishra/students-client/internal/api"
	"github.com/aanand-mishra/students-client/internal/config"
	"github.com/aanand-mishra/students-client/internal/logger"
	"github.com/aanand-mishra/students-client/internal/output"
	"github.com/aanand-mishra/students-client/internal/service"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const runtimeKey = "runtime"

// runtime is everything a command needs, built once in Before.
type runtime struct {
	cfg       *config.Config
	log       *slog.Logger
	svc       *service.Students
	formatter output.Formatter
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:     "students-cli",
		Usage:    "Manage student records through the Student REST API",
		Version:  fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			ListCommand(),
			GetCommand(),
			CreateCommand(),
			UpdateCommand(),
			DeleteCommand(),
			ShellCommand(),
		},
		Before: setup,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration YAML file",
			EnvVars: []string{"CONFIG_PATH"},
		},
		&cli.StringFlag{
			Name:    "api",
			Aliases: []string{"a"},
			Usage:   "API base URL, e.g. http://localhost:8082/api",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "HTTP round-trip timeout",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log requests to stderr",
		},
	}
}

// setup loads the config, applies flag overrides and builds the service.
func setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("api") {
		cfg.Client.APIBaseURL = c.String("api")
	}
	if c.IsSet("output") {
		cfg.Client.Output = c.String("output")
	}
	if c.IsSet("timeout") {
		cfg.Client.Timeout = c.Duration("timeout")
	}

	format, err := output.ParseFormat(cfg.Client.Output)
	if err != nil {
		return err
	}

	log := logger.Discard()
	if c.Bool("verbose") {
		log = logger.Setup(cfg.Env, c.App.ErrWriter)
	}

	client, err := api.New(cfg.Client.APIBaseURL,
		api.WithTimeout(cfg.Client.Timeout),
		api.WithLogger(log),
	)
	if err != nil {
		return err
	}

	c.App.Metadata[runtimeKey] = &runtime{
		cfg:       cfg,
		log:       log,
		svc:       service.New(client, log),
		formatter: output.NewFormatter(format),
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadEnv()
	}
	return config.Load(path)
}

func runtimeFrom(c *cli.Context) (*runtime, error) {
	rt, ok := c.App.Metadata[runtimeKey].(*runtime)
	if !ok {
		return nil, errors.New("command used before setup")
	}
	return rt, nil
}
