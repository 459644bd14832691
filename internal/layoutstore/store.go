// Package layoutstore persists layout snapshots as one JSON document per
// layout id. Writes go through atomic temp-and-rename; unreadable documents
// are quarantined instead of deleted so nothing is lost to a bad write.
package layoutstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/paneweave/paneweave/internal/atomicfile"
	"github.com/paneweave/paneweave/internal/layout"
	"github.com/paneweave/paneweave/internal/userpath"
)

const (
	layoutDirName     = "layouts"
	quarantineDirName = "quarantine"
	snapshotExt       = ".json"
)

var ErrLayoutNotFound = errors.New("layoutstore: layout not found")

// Store persists layout snapshots under a state directory.
type Store struct {
	baseDir   string
	layoutDir string
}

// NewStore creates a store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	base := strings.TrimSpace(baseDir)
	if base == "" {
		return nil, errors.New("layoutstore: base dir is required")
	}
	base = filepath.Clean(userpath.ExpandUser(base))
	layoutDir := filepath.Join(base, layoutDirName)
	if err := os.MkdirAll(layoutDir, 0o700); err != nil {
		return nil, fmt.Errorf("layoutstore: create layout dir: %w", err)
	}
	return &Store{baseDir: base, layoutDir: layoutDir}, nil
}

// Save persists the layout under its id, replacing any previous snapshot.
func (s *Store) Save(ctx context.Context, l *layout.Layout) error {
	if s == nil || l == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := sanitizeID(l.ID)
	if err != nil {
		return err
	}
	snap := layout.TakeSnapshot(l)
	if snap == nil {
		return fmt.Errorf("%w: empty layout %q", layout.ErrCorruptLayout, id)
	}
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	return atomicfile.Save(s.path(id), data, 0o600)
}

// Load reads, validates, and repairs the snapshot for a layout id. Corrupt
// documents are quarantined and reported as layout.ErrCorruptLayout.
func (s *Store) Load(ctx context.Context, layoutID string) (*layout.Layout, error) {
	if s == nil {
		return nil, ErrLayoutNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := sanitizeID(layoutID)
	if err != nil {
		return nil, err
	}
	path := s.path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, id)
		}
		return nil, fmt.Errorf("layoutstore: read snapshot: %w", err)
	}

	snap, err := layout.DecodeSnapshot(data)
	if err != nil {
		s.quarantine(path)
		return nil, err
	}
	restored, err := layout.FromSnapshot(snap)
	if err != nil {
		s.quarantine(path)
		return nil, err
	}
	if restored.ID == "" {
		restored.ID = id
	}
	return restored, nil
}

// LoadOrCreate loads a layout, falling back to a fresh single-pane layout
// when the snapshot is missing or beyond repair. The fallback is persisted
// immediately so the id resolves on the next load.
func (s *Store) LoadOrCreate(ctx context.Context, layoutID, sessionID string) (*layout.Layout, error) {
	restored, err := s.Load(ctx, layoutID)
	if err == nil {
		return restored, nil
	}
	if !errors.Is(err, ErrLayoutNotFound) && !errors.Is(err, layout.ErrCorruptLayout) {
		return nil, err
	}
	if errors.Is(err, layout.ErrCorruptLayout) {
		slog.Warn("layout snapshot quarantined, starting fresh", "layout", layoutID, "error", err)
	}
	fresh := layout.New(layoutID, sessionID)
	if err := s.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// List returns the stored layout ids, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.layoutDir)
	if err != nil {
		return nil, fmt.Errorf("layoutstore: read layout dir: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, snapshotExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a layout snapshot. Deleting an unknown id is not an error.
func (s *Store) Delete(layoutID string) error {
	if s == nil {
		return nil
	}
	id, err := sanitizeID(layoutID)
	if err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("layoutstore: delete snapshot: %w", err)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.layoutDir, id+snapshotExt)
}

func (s *Store) quarantine(path string) {
	dir := filepath.Join(s.baseDir, quarantineDirName)
	_ = os.MkdirAll(dir, 0o700)
	base := filepath.Base(path)
	now := time.Now().UTC().Format("20060102-150405")
	target := filepath.Join(dir, base+"-"+now)
	if err := os.Rename(path, target); err != nil {
		slog.Warn("quarantine failed", "path", path, "error", err)
	}
}

func sanitizeID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("layoutstore: layout id is required")
	}
	for _, r := range value {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '-' || r == '_' || r == '.' {
			continue
		}
		return "", fmt.Errorf("layoutstore: invalid layout id %q", value)
	}
	return value, nil
}
