package workspacedb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/paneweave/paneweave/internal/layout"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "workspaces.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func splitSnapshot(t *testing.T, layoutID string) *layout.Snapshot {
	t.Helper()
	l := layout.New(layoutID, "sess-1")
	if _, err := layout.NewEngine(l).Apply(layout.SplitOp{PaneID: l.Root.ID, Direction: layout.DirectionHorizontal}); err != nil {
		t.Fatalf("split: %v", err)
	}
	return layout.TakeSnapshot(l)
}

func TestCreateAndGetWorkspace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateWorkspace(ctx, Workspace{
		Name:        "dev",
		Description: "main dev workspace",
		Tags:        []string{"work", "go"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Layout == nil {
		t.Fatalf("expected generated id and default layout, got %+v", created)
	}

	got, err := db.GetWorkspace(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "dev" || got.Description != "main dev workspace" {
		t.Fatalf("unexpected workspace %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "work" {
		t.Fatalf("unexpected tags %v", got.Tags)
	}
	if len(got.Layout.Panes) != 1 {
		t.Fatalf("expected a stored layout snapshot")
	}

	if _, err := db.GetWorkspace(ctx, "ws-missing"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestCreateWorkspaceRequiresName(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.CreateWorkspace(context.Background(), Workspace{}); err == nil {
		t.Fatalf("expected an error for a nameless workspace")
	}
}

func TestUpdateWorkspace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateWorkspace(ctx, Workspace{Name: "dev"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "renamed"
	snap := splitSnapshot(t, created.ID)
	updated, err := db.UpdateWorkspace(ctx, created.ID, Update{Name: &name, Layout: snap})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("expected the rename applied, got %q", updated.Name)
	}
	if len(updated.Layout.Panes[0].Children) != 2 {
		t.Fatalf("expected the split layout stored")
	}
	// Untouched fields survive partial updates.
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at must not move on update")
	}

	if _, err := db.UpdateWorkspace(ctx, "ws-missing", Update{Name: &name}); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestListWorkspacesFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.CreateWorkspace(ctx, Workspace{Name: "alpha", Description: "go services"}); err != nil {
		t.Fatalf("create alpha: %v", err)
	}
	if _, err := db.CreateWorkspace(ctx, Workspace{Name: "beta", IsTemplate: true}); err != nil {
		t.Fatalf("create beta: %v", err)
	}

	all, err := db.ListWorkspaces(ctx, Filter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 workspaces, got %d (%v)", len(all), err)
	}

	isTemplate := true
	templates, err := db.ListWorkspaces(ctx, Filter{IsTemplate: &isTemplate})
	if err != nil || len(templates) != 1 || templates[0].Name != "beta" {
		t.Fatalf("template filter failed: %v (%v)", templates, err)
	}

	matched, err := db.ListWorkspaces(ctx, Filter{Search: "services"})
	if err != nil || len(matched) != 1 || matched[0].Name != "alpha" {
		t.Fatalf("search filter failed: %v (%v)", matched, err)
	}

	count, err := db.CountWorkspaces(ctx, nil)
	if err != nil || count != 2 {
		t.Fatalf("expected count 2, got %d (%v)", count, err)
	}
	count, err = db.CountWorkspaces(ctx, &isTemplate)
	if err != nil || count != 1 {
		t.Fatalf("expected template count 1, got %d (%v)", count, err)
	}
}

func TestDeleteWorkspaceCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateWorkspace(ctx, Workspace{Name: "doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.SaveSnapshot(ctx, created.ID, "before"); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if err := db.AddSession(ctx, SessionMapping{
		WorkspaceID: created.ID, SessionID: "sess-1", PaneID: "pane-1",
	}); err != nil {
		t.Fatalf("add session: %v", err)
	}

	if err := db.DeleteWorkspace(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.DeleteWorkspace(ctx, created.ID); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}

	snaps, err := db.ListSnapshots(ctx, created.ID)
	if err != nil || len(snaps) != 0 {
		t.Fatalf("expected snapshots gone, got %v (%v)", snaps, err)
	}
	sessions, err := db.Sessions(ctx, created.ID)
	if err != nil || len(sessions) != 0 {
		t.Fatalf("expected sessions gone, got %v (%v)", sessions, err)
	}
}

func TestSnapshotSaveAndRestore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateWorkspace(ctx, Workspace{Name: "dev"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Keep the single-pane layout as a named snapshot, then diverge.
	record, err := db.SaveSnapshot(ctx, created.ID, "single-pane")
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if _, err := db.UpdateWorkspace(ctx, created.ID, Update{Layout: splitSnapshot(t, created.ID)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	restored, err := db.RestoreSnapshot(ctx, record.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(restored.Layout.Panes[0].Children) != 0 {
		t.Fatalf("expected the single-pane layout back, got %d children", len(restored.Layout.Panes[0].Children))
	}

	records, err := db.ListSnapshots(ctx, created.ID)
	if err != nil || len(records) != 1 || records[0].Name != "single-pane" {
		t.Fatalf("list snapshots: %v (%v)", records, err)
	}

	if _, err := db.RestoreSnapshot(ctx, "snap-missing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
	if err := db.DeleteSnapshot(ctx, record.ID); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}
	if err := db.DeleteSnapshot(ctx, record.ID); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSessionMappings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateWorkspace(ctx, Workspace{Name: "dev"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i, sess := range []string{"sess-b", "sess-a"} {
		if err := db.AddSession(ctx, SessionMapping{
			WorkspaceID: created.ID, SessionID: sess, PaneID: "pane-" + sess, Position: i,
		}); err != nil {
			t.Fatalf("add %s: %v", sess, err)
		}
	}

	sessions, err := db.Sessions(ctx, created.ID)
	if err != nil || len(sessions) != 2 {
		t.Fatalf("expected 2 mappings, got %v (%v)", sessions, err)
	}
	if sessions[0].SessionID != "sess-b" {
		t.Fatalf("expected position order, got %v", sessions)
	}

	// Re-adding re-points the pane rather than duplicating.
	if err := db.AddSession(ctx, SessionMapping{
		WorkspaceID: created.ID, SessionID: "sess-b", PaneID: "pane-moved", Position: 5,
	}); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	sessions, _ = db.Sessions(ctx, created.ID)
	if len(sessions) != 2 || sessions[len(sessions)-1].PaneID != "pane-moved" {
		t.Fatalf("expected the mapping re-pointed, got %v", sessions)
	}

	removed, err := db.RemoveSession(ctx, created.ID, "sess-a")
	if err != nil || !removed {
		t.Fatalf("remove: %v removed=%v", err, removed)
	}
	removed, err = db.RemoveSession(ctx, created.ID, "sess-a")
	if err != nil || removed {
		t.Fatalf("second remove must report false, got %v (%v)", removed, err)
	}

	if err := db.AddSession(ctx, SessionMapping{WorkspaceID: "ws-missing", SessionID: "s", PaneID: "p"}); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}
