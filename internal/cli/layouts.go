package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/paneweave/paneweave/internal/appdirs"
	"github.com/paneweave/paneweave/internal/layout"
	"github.com/paneweave/paneweave/internal/layoutstore"
)

func layoutsCommand(version string, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "layouts",
		Usage: "inspect layout presets and saved layouts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list available presets",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runLayoutsList(cmd, version, out)
				},
			},
			{
				Name:      "show",
				Usage:     "show the pane tree a preset produces",
				ArgsUsage: "<preset>",
				Flags:     []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runLayoutsShow(cmd, version, out)
				},
			},
			{
				Name:  "validate",
				Usage: "check saved layouts, quarantining corrupt snapshots",
				Flags: []cli.Flag{jsonFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runLayoutsValidate(ctx, cmd, version, out)
				},
			},
		},
	}
}

func newPresetLoader() (*layout.Loader, error) {
	presetsDir, err := appdirs.PresetsDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cli: resolve working dir: %w", err)
	}
	loader := layout.NewLoader(presetsDir, cwd)
	if err := loader.LoadAll(); err != nil {
		return nil, err
	}
	return loader, nil
}

type presetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Path        string `json:"path,omitempty"`
}

func runLayoutsList(cmd *cli.Command, version string, out io.Writer) error {
	loader, err := newPresetLoader()
	if err != nil {
		return err
	}
	infos := loader.List()

	if cmd.Bool("json") {
		items := make([]presetSummary, 0, len(infos))
		for _, info := range infos {
			items = append(items, presetSummary{
				Name:        info.Name,
				Description: info.Description,
				Source:      info.Source,
				Path:        info.Path,
			})
		}
		return writeJSON(out, newMeta("layouts.list", version), items)
	}

	if len(infos) == 0 {
		_, err := fmt.Fprintln(out, "No presets found.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Source, info.Description)
	}
	return w.Flush()
}

func runLayoutsShow(cmd *cli.Command, version string, out io.Writer) error {
	name := cmd.Args().First()
	loader, err := newPresetLoader()
	if err != nil {
		return err
	}
	preset, source, err := loader.Get(name)
	if err != nil {
		return err
	}
	built, err := layout.BuildLayout(preset, "preview")
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(out, newMeta("layouts.show", version), map[string]any{
			"preset":   preset.Name,
			"source":   source,
			"snapshot": layout.TakeSnapshot(built),
		})
	}
	fmt.Fprintf(out, "%s (%s)\n", preset.Name, source)
	if preset.Description != "" {
		fmt.Fprintln(out, preset.Description)
	}
	fmt.Fprintln(out)
	return writeTree(out, built)
}

type validateResult struct {
	LayoutID string `json:"layout_id"`
	Status   string `json:"status"` // "ok" or "corrupt"
	Detail   string `json:"detail,omitempty"`
}

func runLayoutsValidate(ctx context.Context, cmd *cli.Command, version string, out io.Writer) error {
	stateDir, err := appdirs.StateDir()
	if err != nil {
		return err
	}
	store, err := layoutstore.NewStore(stateDir)
	if err != nil {
		return err
	}
	ids, err := store.List(ctx)
	if err != nil {
		return err
	}

	results := make([]validateResult, 0, len(ids))
	corrupt := 0
	for _, id := range ids {
		_, err := store.Load(ctx, id)
		switch {
		case err == nil:
			results = append(results, validateResult{LayoutID: id, Status: "ok"})
		case errors.Is(err, layout.ErrCorruptLayout):
			corrupt++
			results = append(results, validateResult{LayoutID: id, Status: "corrupt", Detail: err.Error()})
		default:
			return err
		}
	}

	if cmd.Bool("json") {
		if err := writeJSON(out, newMeta("layouts.validate", version), results); err != nil {
			return err
		}
	} else {
		if len(results) == 0 {
			fmt.Fprintln(out, "No saved layouts.")
		}
		for _, r := range results {
			if r.Detail != "" {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.LayoutID, r.Status, r.Detail)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", r.LayoutID, r.Status)
		}
	}
	if corrupt > 0 {
		return cli.Exit(fmt.Sprintf("%d corrupt layout(s) quarantined", corrupt), 1)
	}
	return nil
}
