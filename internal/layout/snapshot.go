package layout

import (
	"encoding/json"
	"fmt"
	"math"
)

// CurrentSchemaVersion is bumped when the persisted layout shape changes.
const CurrentSchemaVersion = 1

// Snapshot is the JSON-safe form of a layout: no parent pointers, every
// node field round-trips losslessly.
type Snapshot struct {
	SchemaVersion int            `json:"schema_version"`
	ID            string         `json:"id"`
	Panes         []NodeSnapshot `json:"panes"`
	ActivePaneID  string         `json:"active_pane,omitempty"`
}

// NodeSnapshot captures one tree node without parent pointers.
type NodeSnapshot struct {
	ID        string         `json:"id"`
	Size      float64        `json:"size"`
	MinSize   float64        `json:"min_size,omitempty"`
	MaxSize   float64        `json:"max_size,omitempty"`
	Direction Direction      `json:"direction"`
	SessionID string         `json:"session_id,omitempty"`
	Children  []NodeSnapshot `json:"children,omitempty"`
}

// TakeSnapshot converts a layout into its persisted form.
func TakeSnapshot(l *Layout) *Snapshot {
	if l == nil || l.Root == nil {
		return nil
	}
	return &Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		ID:            l.ID,
		Panes:         []NodeSnapshot{snapshotNode(l.Root)},
		ActivePaneID:  l.ActivePaneID,
	}
}

func snapshotNode(node *Node) NodeSnapshot {
	snap := NodeSnapshot{
		ID:        node.ID,
		Size:      node.Size,
		MinSize:   node.MinSize,
		MaxSize:   node.MaxSize,
		Direction: node.Direction,
		SessionID: node.SessionID,
	}
	if len(node.Children) == 0 {
		return snap
	}
	snap.Children = make([]NodeSnapshot, 0, len(node.Children))
	for _, child := range node.Children {
		snap.Children = append(snap.Children, snapshotNode(child))
	}
	return snap
}

// FromSnapshot rebuilds a layout, re-validating the invariants and repairing
// what can be repaired mechanically. Storage corruption and partial writes
// are expected, so nothing in the snapshot is trusted verbatim.
func FromSnapshot(snap *Snapshot) (*Layout, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrCorruptLayout)
	}
	if snap.SchemaVersion != CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: unknown schema version %d", ErrCorruptLayout, snap.SchemaVersion)
	}
	if len(snap.Panes) != 1 {
		return nil, fmt.Errorf("%w: expected one root pane, got %d", ErrCorruptLayout, len(snap.Panes))
	}
	l := &Layout{
		ID:           snap.ID,
		Root:         buildNode(snap.Panes[0], nil),
		ActivePaneID: snap.ActivePaneID,
	}
	if err := Validate(l); err != nil {
		Repair(l)
		if err := Validate(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func buildNode(snap NodeSnapshot, parent *Node) *Node {
	node := &Node{
		ID:        snap.ID,
		Size:      snap.Size,
		MinSize:   snap.MinSize,
		MaxSize:   snap.MaxSize,
		Direction: snap.Direction,
		SessionID: snap.SessionID,
		Parent:    parent,
	}
	for _, child := range snap.Children {
		node.Children = append(node.Children, buildNode(child, node))
	}
	return node
}

// Encode serializes a snapshot for the key-value store.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("layout: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored snapshot without validating it; callers go
// through FromSnapshot for validation and repair.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLayout, err)
	}
	return &snap, nil
}

// Validate checks the tree invariants: no singleton splits, sibling sizes
// summing to FullSize, globally unique ids, an active id referencing an
// existing leaf, and a non-empty tree.
func Validate(l *Layout) error {
	if l == nil || l.Root == nil {
		return fmt.Errorf("%w: empty tree", ErrCorruptLayout)
	}
	seen := make(map[string]struct{})
	var verr error
	Walk(l.Root, func(n *Node) {
		if verr != nil {
			return
		}
		if n.ID == "" {
			verr = fmt.Errorf("%w: node without id", ErrCorruptLayout)
			return
		}
		if _, dup := seen[n.ID]; dup {
			verr = fmt.Errorf("%w: duplicate pane id %q", ErrCorruptLayout, n.ID)
			return
		}
		seen[n.ID] = struct{}{}
		if len(n.Children) == 1 {
			verr = fmt.Errorf("%w: split %q has a single child", ErrCorruptLayout, n.ID)
			return
		}
		if len(n.Children) > 1 {
			if n.Direction == DirectionNone {
				verr = fmt.Errorf("%w: split %q has no direction", ErrCorruptLayout, n.ID)
				return
			}
			sum := 0.0
			for _, child := range n.Children {
				sum += child.Size
			}
			if math.Abs(sum-FullSize) > SizeEpsilon {
				verr = fmt.Errorf("%w: children of %q sum to %v", ErrCorruptLayout, n.ID, sum)
				return
			}
		}
		if !n.IsLeaf() && n.SessionID != "" {
			verr = fmt.Errorf("%w: split %q carries a session id", ErrCorruptLayout, n.ID)
			return
		}
	})
	if verr != nil {
		return verr
	}
	active := FindPane(l.Root, l.ActivePaneID)
	if active == nil || !active.IsLeaf() {
		return fmt.Errorf("%w: active pane %q is not an existing leaf", ErrCorruptLayout, l.ActivePaneID)
	}
	return nil
}

// Repair fixes what Validate flags where mechanically possible: singleton
// splits are collapsed, sibling sizes renormalized, stray directions and
// session ids on splits cleared, and a dangling active id reassigned to the
// first leaf. Duplicate or missing ids are not repairable.
func Repair(l *Layout) {
	if l == nil || l.Root == nil {
		return
	}
	l.Root = repairNode(l.Root, nil)
	if l.Root.Size != FullSize {
		l.Root.Size = FullSize
	}
	active := FindPane(l.Root, l.ActivePaneID)
	if active == nil || !active.IsLeaf() {
		l.ActivePaneID = FirstLeaf(l.Root).ID
	}
}

func repairNode(node, parent *Node) *Node {
	// Collapse chains of singleton splits before descending.
	for len(node.Children) == 1 {
		child := node.Children[0]
		child.Size = node.Size
		node = child
	}
	node.Parent = parent
	if node.IsLeaf() {
		node.Direction = DirectionNone
		return node
	}
	node.SessionID = ""
	if node.Direction == DirectionNone {
		node.Direction = DirectionHorizontal
	}
	for i, child := range node.Children {
		node.Children[i] = repairNode(child, node)
	}
	renormalize(node.Children)
	return node
}
