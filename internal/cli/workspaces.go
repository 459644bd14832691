package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/paneweave/paneweave/internal/appdirs"
	"github.com/paneweave/paneweave/internal/identity"
	"github.com/paneweave/paneweave/internal/layout"
	"github.com/paneweave/paneweave/internal/workspacedb"
)

func workspacesCommand(version string, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "workspaces",
		Usage: "inspect stored workspaces",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list workspaces",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.BoolFlag{Name: "templates", Usage: "only templates"},
					&cli.StringFlag{Name: "search", Usage: "match name or description"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runWorkspacesList(ctx, cmd, version, out)
				},
			},
			{
				Name:      "show",
				Usage:     "show one workspace with its pane tree and sessions",
				ArgsUsage: "<workspace-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runWorkspacesShow(ctx, cmd, version, out)
				},
			},
		},
	}
}

func openWorkspaceDB() (*workspacedb.DB, error) {
	stateDir, err := appdirs.StateDir()
	if err != nil {
		return nil, err
	}
	return workspacedb.Open(filepath.Join(stateDir, identity.WorkspaceDBFile))
}

type workspaceSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Panes      int       `json:"panes"`
	IsTemplate bool      `json:"is_template,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func runWorkspacesList(ctx context.Context, cmd *cli.Command, version string, out io.Writer) error {
	db, err := openWorkspaceDB()
	if err != nil {
		return err
	}
	defer db.Close()

	filter := workspacedb.Filter{Search: cmd.String("search")}
	if cmd.Bool("templates") {
		isTemplate := true
		filter.IsTemplate = &isTemplate
	}
	workspaces, err := db.ListWorkspaces(ctx, filter)
	if err != nil {
		return err
	}

	summaries := make([]workspaceSummary, 0, len(workspaces))
	for _, w := range workspaces {
		summaries = append(summaries, workspaceSummary{
			ID:         w.ID,
			Name:       w.Name,
			Panes:      countSnapshotLeaves(w.Layout),
			IsTemplate: w.IsTemplate,
			Tags:       w.Tags,
			UpdatedAt:  w.UpdatedAt,
		})
	}

	if cmd.Bool("json") {
		return writeJSON(out, newMeta("workspaces.list", version), summaries)
	}
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, "No workspaces found.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPANES\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Panes, s.UpdatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func runWorkspacesShow(ctx context.Context, cmd *cli.Command, version string, out io.Writer) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("cli: workspace id is required")
	}
	db, err := openWorkspaceDB()
	if err != nil {
		return err
	}
	defer db.Close()

	workspace, err := db.GetWorkspace(ctx, id)
	if err != nil {
		return err
	}
	sessions, err := db.Sessions(ctx, id)
	if err != nil {
		return err
	}
	snapshots, err := db.ListSnapshots(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(out, newMeta("workspaces.show", version), map[string]any{
			"workspace": workspaceSummary{
				ID:         workspace.ID,
				Name:       workspace.Name,
				Panes:      countSnapshotLeaves(workspace.Layout),
				IsTemplate: workspace.IsTemplate,
				Tags:       workspace.Tags,
				UpdatedAt:  workspace.UpdatedAt,
			},
			"layout":    workspace.Layout,
			"sessions":  sessions,
			"snapshots": len(snapshots),
		})
	}

	fmt.Fprintf(out, "%s  %s\n", workspace.ID, workspace.Name)
	if workspace.Description != "" {
		fmt.Fprintln(out, workspace.Description)
	}
	fmt.Fprintln(out)
	restored, err := layout.FromSnapshot(workspace.Layout)
	if err != nil {
		fmt.Fprintf(out, "layout unreadable: %v\n", err)
	} else if err := writeTree(out, restored); err != nil {
		return err
	}
	if len(sessions) > 0 {
		fmt.Fprintln(out)
		for _, s := range sessions {
			fmt.Fprintf(out, "session %s -> %s\n", s.SessionID, s.PaneID)
		}
	}
	if len(snapshots) > 0 {
		fmt.Fprintf(out, "\n%d named snapshot(s)\n", len(snapshots))
	}
	return nil
}

func countSnapshotLeaves(snap *layout.Snapshot) int {
	if snap == nil || len(snap.Panes) == 0 {
		return 0
	}
	var count func(layout.NodeSnapshot) int
	count = func(n layout.NodeSnapshot) int {
		if len(n.Children) == 0 {
			return 1
		}
		total := 0
		for _, child := range n.Children {
			total += count(child)
		}
		return total
	}
	return count(snap.Panes[0])
}
