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

// SnapshotRecord is a named point-in-time copy of a workspace's layout.
type SnapshotRecord struct {
	ID          string
	WorkspaceID string
	Name        string
	Layout      *layout.Snapshot
	CreatedAt   time.Time
}

// SaveSnapshot stores the workspace's current layout under a name.
func (d *DB) SaveSnapshot(ctx context.Context, workspaceID, name string) (SnapshotRecord, error) {
	if strings.TrimSpace(name) == "" {
		return SnapshotRecord{}, errors.New("workspacedb: snapshot name is required")
	}
	w, err := d.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return SnapshotRecord{}, err
	}

	record := SnapshotRecord{
		ID:          "snap-" + uuid.NewString(),
		WorkspaceID: w.ID,
		Name:        name,
		Layout:      w.Layout,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	layoutJSON, err := json.Marshal(record.Layout)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("workspacedb: encode snapshot layout: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO workspace_snapshots (id, workspace_id, name, layout, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.WorkspaceID, record.Name, string(layoutJSON), record.CreatedAt.Unix(),
	)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("workspacedb: insert snapshot: %w", err)
	}
	return record, nil
}

// ListSnapshots returns a workspace's snapshots, newest first.
func (d *DB) ListSnapshots(ctx context.Context, workspaceID string) ([]SnapshotRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, layout, created_at
		FROM workspace_snapshots
		WHERE workspace_id = ?
		ORDER BY created_at DESC, id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspacedb: list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		record, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// RestoreSnapshot copies a snapshot's layout back onto its workspace and
// returns the updated workspace.
func (d *DB) RestoreSnapshot(ctx context.Context, snapshotID string) (Workspace, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, name, layout, created_at
		FROM workspace_snapshots WHERE id = ?`, snapshotID)
	record, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workspace{}, fmt.Errorf("%w: %q", ErrSnapshotNotFound, snapshotID)
	}
	if err != nil {
		return Workspace{}, err
	}
	return d.UpdateWorkspace(ctx, record.WorkspaceID, Update{Layout: record.Layout})
}

// DeleteSnapshot removes a named snapshot.
func (d *DB) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	result, err := d.db.ExecContext(ctx,
		"DELETE FROM workspace_snapshots WHERE id = ?", snapshotID)
	if err != nil {
		return fmt.Errorf("workspacedb: delete snapshot: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("workspacedb: delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSnapshotNotFound, snapshotID)
	}
	return nil
}

func scanSnapshot(row rowScanner) (SnapshotRecord, error) {
	var (
		record     SnapshotRecord
		layoutJSON string
		createdAt  int64
	)
	err := row.Scan(&record.ID, &record.WorkspaceID, &record.Name, &layoutJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SnapshotRecord{}, err
		}
		return SnapshotRecord{}, fmt.Errorf("workspacedb: scan snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(layoutJSON), &record.Layout); err != nil {
		return SnapshotRecord{}, fmt.Errorf("workspacedb: decode snapshot layout: %w", err)
	}
	record.CreatedAt = time.Unix(createdAt, 0).UTC()
	return record, nil
}
