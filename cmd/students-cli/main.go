// Command students-cli is the client for the Student REST API: one-shot
// commands for scripting and an interactive shell.
//
//	students-cli --api http://localhost:8082/api list
//	students-cli --config config/local.yaml shell
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/students-client/internal/command"
	"github.com/aanand-mishra/students-client/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command.App().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", service.Message(err))
		stop()
		os.Exit(1)
	}
}
