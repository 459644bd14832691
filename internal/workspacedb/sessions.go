package workspacedb

import (
	"context"
	"fmt"
)

// SessionMapping ties a session to the pane hosting it within a workspace.
type SessionMapping struct {
	WorkspaceID string
	SessionID   string
	PaneID      string
	Position    int
}

// AddSession records (or re-points) a session-to-pane mapping.
func (d *DB) AddSession(ctx context.Context, m SessionMapping) error {
	if m.WorkspaceID == "" || m.SessionID == "" || m.PaneID == "" {
		return fmt.Errorf("workspacedb: session mapping needs workspace, session, and pane ids")
	}
	if _, err := d.GetWorkspace(ctx, m.WorkspaceID); err != nil {
		return err
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO workspace_sessions (workspace_id, session_id, pane_id, position)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (workspace_id, session_id)
		DO UPDATE SET pane_id = excluded.pane_id, position = excluded.position`,
		m.WorkspaceID, m.SessionID, m.PaneID, m.Position,
	)
	if err != nil {
		return fmt.Errorf("workspacedb: add session: %w", err)
	}
	return nil
}

// Sessions returns a workspace's session mappings ordered by position.
func (d *DB) Sessions(ctx context.Context, workspaceID string) ([]SessionMapping, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT workspace_id, session_id, pane_id, position
		FROM workspace_sessions
		WHERE workspace_id = ?
		ORDER BY position, session_id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspacedb: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionMapping
	for rows.Next() {
		var m SessionMapping
		if err := rows.Scan(&m.WorkspaceID, &m.SessionID, &m.PaneID, &m.Position); err != nil {
			return nil, fmt.Errorf("workspacedb: scan session: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RemoveSession deletes a mapping. Removing an unknown mapping reports
// false without an error.
func (d *DB) RemoveSession(ctx context.Context, workspaceID, sessionID string) (bool, error) {
	result, err := d.db.ExecContext(ctx, `
		DELETE FROM workspace_sessions
		WHERE workspace_id = ? AND session_id = ?`, workspaceID, sessionID)
	if err != nil {
		return false, fmt.Errorf("workspacedb: remove session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("workspacedb: remove session: %w", err)
	}
	return n > 0, nil
}
