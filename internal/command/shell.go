package command

import (
	"github.com/urfave/cli/v2"

	"github.com/aanand-mishra/students-client/internal/shell"
	"github.com/aanand-mishra/students-client/internal/ui"
)

// ShellCommand starts the interactive shell.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Browse and edit students interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "start",
				Usage: "Route to open first, e.g. /detail/3",
				Value: ui.PathList,
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}

			router := ui.NewRouter(c.Context, rt.log)
			sh := shell.New(router, c.App.Reader, c.App.Writer, rt.log)
			ui.Register(router, rt.svc, sh, rt.cfg.Client.RedirectDelay)
			defer router.Close()

			return sh.Run(c.Context, c.String("start"))
		},
	}
}
