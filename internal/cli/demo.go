package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/paneweave/paneweave/internal/appdirs"
	"github.com/paneweave/paneweave/internal/layout"
	"github.com/paneweave/paneweave/internal/layoutstore"
	"github.com/paneweave/paneweave/internal/sessions"
	"github.com/paneweave/paneweave/internal/tui"
)

const demoAutosaveDebounce = 500 * time.Millisecond

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "interactive pane playground",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "layout",
				Usage: "layout id to open (created on first use)",
				Value: "demo",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDemo(ctx, cmd.String("layout"))
		},
	}
}

func runDemo(ctx context.Context, layoutID string) error {
	stateDir, err := appdirs.StateDir()
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	store, err := layoutstore.NewStore(stateDir)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	saver := layoutstore.NewAutosaver(store, demoAutosaveDebounce)

	registry := sessions.NewRegistry()
	session := registry.Open("shell", "")

	l, err := store.LoadOrCreate(ctx, layoutID, session.ID)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	// Panes restored from disk reference sessions from a previous run;
	// reattach each surviving leaf to a fresh one.
	sessions.Reconcile(l, registry)
	for _, leaf := range layout.Leaves(l.Root) {
		if leaf.SessionID == "" {
			leaf.SessionID = registry.Open("shell", "").ID
		}
	}

	manager := layout.NewManager()
	manager.OnChange(saver.Notify)
	manager.Adopt(l)

	program := tea.NewProgram(
		tui.New(tui.Options{
			LayoutID: l.ID,
			Manager:  manager,
			Saver:    saver,
			Registry: registry,
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return saver.Close(ctx)
}
