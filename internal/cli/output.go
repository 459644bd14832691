package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/paneweave/paneweave/internal/layout"
)

// Meta identifies a JSON response for scripting consumers.
type Meta struct {
	Command     string    `json:"command"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}

type envelope struct {
	OK   bool `json:"ok"`
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

func newMeta(command, version string) Meta {
	return Meta{Command: command, Version: version, GeneratedAt: time.Now().UTC()}
}

func writeJSON(w io.Writer, meta Meta, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope{OK: true, Meta: meta, Data: data})
}

// writeTree prints a pane tree with sizes, sessions, and the active marker.
func writeTree(w io.Writer, l *layout.Layout) error {
	if l == nil || l.Root == nil {
		_, err := fmt.Fprintln(w, "(empty layout)")
		return err
	}
	return writeTreeNode(w, l, l.Root, 0)
}

func writeTreeNode(w io.Writer, l *layout.Layout, node *layout.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %.1f%%", indent, node.ID, node.Size)
	if !node.IsLeaf() {
		line += " (" + node.Direction.String() + ")"
	}
	if node.SessionID != "" {
		line += " [" + node.SessionID + "]"
	}
	if node.ID == l.ActivePaneID {
		line += " *"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := writeTreeNode(w, l, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
