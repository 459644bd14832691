package workspacedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paneweave/paneweave/internal/layout"
)

// Workspace is one stored workspace with its last-known layout snapshot.
type Workspace struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Layout      *layout.Snapshot
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsTemplate  bool
	Tags        []string
}

// Filter narrows ListWorkspaces. Zero value lists everything.
type Filter struct {
	IsTemplate *bool
	Search     string // matches name or description, case-insensitive LIKE
}

// Update carries partial workspace changes; nil fields stay untouched.
type Update struct {
	Name        *string
	Description *string
	Icon        *string
	Layout      *layout.Snapshot
	IsTemplate  *bool
	Tags        []string
}

const workspaceColumns = "id, name, description, icon, layout, created_at, updated_at, is_template, tags"

// CreateWorkspace inserts a workspace. A missing id gets a generated one;
// a missing layout gets a fresh single-pane snapshot.
func (d *DB) CreateWorkspace(ctx context.Context, w Workspace) (Workspace, error) {
	if strings.TrimSpace(w.Name) == "" {
		return Workspace{}, errors.New("workspacedb: workspace name is required")
	}
	if w.ID == "" {
		w.ID = "ws-" + uuid.NewString()
	}
	if w.Layout == nil {
		w.Layout = layout.TakeSnapshot(layout.New(w.ID, ""))
	}
	now := time.Now().UTC().Truncate(time.Second)
	w.CreatedAt = now
	w.UpdatedAt = now

	layoutJSON, err := json.Marshal(w.Layout)
	if err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: encode layout: %w", err)
	}
	tagsJSON, err := json.Marshal(emptyToSlice(w.Tags))
	if err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: encode tags: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO workspaces (`+workspaceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Description, w.Icon, string(layoutJSON),
		w.CreatedAt.Unix(), w.UpdatedAt.Unix(), boolToInt(w.IsTemplate), string(tagsJSON),
	)
	if err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: insert workspace: %w", err)
	}
	return w, nil
}

// GetWorkspace fetches a workspace by id.
func (d *DB) GetWorkspace(ctx context.Context, id string) (Workspace, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+workspaceColumns+" FROM workspaces WHERE id = ?", id)
	w, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workspace{}, fmt.Errorf("%w: %q", ErrWorkspaceNotFound, id)
	}
	return w, err
}

// ListWorkspaces returns workspaces matching the filter, most recently
// updated first.
func (d *DB) ListWorkspaces(ctx context.Context, filter Filter) ([]Workspace, error) {
	query := "SELECT " + workspaceColumns + " FROM workspaces WHERE 1=1"
	var args []any
	if filter.IsTemplate != nil {
		query += " AND is_template = ?"
		args = append(args, boolToInt(*filter.IsTemplate))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query += " AND (name LIKE ? OR description LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY updated_at DESC, id"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("workspacedb: list workspaces: %w", err)
	}
	defer rows.Close()

	var out []Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// UpdateWorkspace applies a partial update and bumps updated_at.
func (d *DB) UpdateWorkspace(ctx context.Context, id string, update Update) (Workspace, error) {
	w, err := d.GetWorkspace(ctx, id)
	if err != nil {
		return Workspace{}, err
	}
	if update.Name != nil {
		w.Name = *update.Name
	}
	if update.Description != nil {
		w.Description = *update.Description
	}
	if update.Icon != nil {
		w.Icon = *update.Icon
	}
	if update.Layout != nil {
		w.Layout = update.Layout
	}
	if update.IsTemplate != nil {
		w.IsTemplate = *update.IsTemplate
	}
	if update.Tags != nil {
		w.Tags = update.Tags
	}
	w.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	layoutJSON, err := json.Marshal(w.Layout)
	if err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: encode layout: %w", err)
	}
	tagsJSON, err := json.Marshal(emptyToSlice(w.Tags))
	if err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: encode tags: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		UPDATE workspaces
		SET name = ?, description = ?, icon = ?, layout = ?, updated_at = ?, is_template = ?, tags = ?
		WHERE id = ?`,
		w.Name, w.Description, w.Icon, string(layoutJSON),
		w.UpdatedAt.Unix(), boolToInt(w.IsTemplate), string(tagsJSON), id,
	)
	if err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: update workspace: %w", err)
	}
	return w, nil
}

// DeleteWorkspace removes a workspace and, via cascade, its snapshots and
// session mappings.
func (d *DB) DeleteWorkspace(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM workspaces WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("workspacedb: delete workspace: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("workspacedb: delete workspace: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrWorkspaceNotFound, id)
	}
	return nil
}

// CountWorkspaces counts workspaces, optionally by template flag.
func (d *DB) CountWorkspaces(ctx context.Context, isTemplate *bool) (int64, error) {
	query := "SELECT COUNT(*) FROM workspaces"
	var args []any
	if isTemplate != nil {
		query += " WHERE is_template = ?"
		args = append(args, boolToInt(*isTemplate))
	}
	var count int64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("workspacedb: count workspaces: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(row rowScanner) (Workspace, error) {
	var (
		w          Workspace
		layoutJSON string
		tagsJSON   string
		createdAt  int64
		updatedAt  int64
		isTemplate int
	)
	err := row.Scan(&w.ID, &w.Name, &w.Description, &w.Icon, &layoutJSON,
		&createdAt, &updatedAt, &isTemplate, &tagsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workspace{}, err
		}
		return Workspace{}, fmt.Errorf("workspacedb: scan workspace: %w", err)
	}
	if err := json.Unmarshal([]byte(layoutJSON), &w.Layout); err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: decode layout for %q: %w", w.ID, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &w.Tags); err != nil {
		return Workspace{}, fmt.Errorf("workspacedb: decode tags for %q: %w", w.ID, err)
	}
	w.CreatedAt = time.Unix(createdAt, 0).UTC()
	w.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	w.IsTemplate = isTemplate != 0
	return w, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func emptyToSlice(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
