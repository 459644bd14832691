package cli

import (
	"io"

	"github.com/urfave/cli/v3"

	"github.com/paneweave/paneweave/internal/identity"
)

func buildRoot(version string, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    identity.CLIName,
		Usage:   "terminal pane layout manager",
		Version: version,
		Commands: []*cli.Command{
			layoutsCommand(version, out),
			workspacesCommand(version, out),
			demoCommand(),
		},
	}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "emit machine-readable JSON",
	}
}
