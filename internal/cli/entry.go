// Package cli wires the paneweave command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/paneweave/paneweave/internal/identity"
	"github.com/paneweave/paneweave/internal/logging"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	mode := logging.ModeFromArgs(args)
	closeLogger, err := logging.Init(logging.Config{}, logging.InitOptions{
		App:     identity.AppSlug,
		Version: version,
		Mode:    mode,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	root := buildRoot(version, os.Stdout)
	if err := root.Run(context.Background(), args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", identity.CLIName, err)
		return 1
	}
	return 0
}
