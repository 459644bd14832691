// Package layout implements the pane layout tree for a workspace: a mutable
// recursive structure describing how screen real estate is divided among
// terminal sessions, with live splitting, removal, proportional resizing and
// active-pane tracking.
package layout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sizes are percentages of the parent's extent along the split axis.
const (
	FullSize       = 100.0
	DefaultMinSize = 10.0
	DefaultMaxSize = 90.0

	// SizeEpsilon is the tolerance used when checking that sibling sizes
	// sum to exactly FullSize.
	SizeEpsilon = 1e-6
)

// Direction is the axis along which a split node stacks its children.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionHorizontal
	DirectionVertical
)

func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	default:
		return "none"
	}
}

// ParseDirection parses a direction name. The empty string means none.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return DirectionNone, nil
	case "horizontal", "h":
		return DirectionHorizontal, nil
	case "vertical", "v":
		return DirectionVertical, nil
	default:
		return DirectionNone, fmt.Errorf("layout: invalid direction %q", raw)
	}
}

// MarshalJSON encodes the direction as its name, matching the persisted form.
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" {
		*d = DirectionNone
		return nil
	}
	parsed, err := ParseDirection(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Node is a single node in the pane tree. A leaf hosts at most one terminal
// session; a split node stacks two or more children along Direction.
type Node struct {
	ID        string
	Size      float64
	MinSize   float64 // 0 means DefaultMinSize
	MaxSize   float64 // 0 means DefaultMaxSize
	Direction Direction
	SessionID string // leaves only; "" is an empty pane
	Parent    *Node
	Children  []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n != nil && len(n.Children) == 0
}

func (n *Node) minSize() float64 {
	if n == nil || n.MinSize <= 0 {
		return DefaultMinSize
	}
	return n.MinSize
}

func (n *Node) maxSize() float64 {
	if n == nil || n.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return n.MaxSize
}

// Layout is the persisted unit: one pane tree plus active-pane tracking,
// scoped to a single workspace.
type Layout struct {
	ID           string
	Root         *Node
	ActivePaneID string
}

// NewPaneID returns a fresh globally unique pane id. Ids are never reused
// within a process lifetime.
func NewPaneID() string {
	return "pane-" + uuid.NewString()
}

// New creates a layout with a single root leaf. sessionID may be empty for a
// content-less pane; the session provider attaches one later.
func New(layoutID, sessionID string) *Layout {
	root := &Node{
		ID:        NewPaneID(),
		Size:      FullSize,
		SessionID: sessionID,
	}
	return &Layout{
		ID:           strings.TrimSpace(layoutID),
		Root:         root,
		ActivePaneID: root.ID,
	}
}

// FindPane returns the node with the given id, or nil. Depth-first, O(n).
func FindPane(root *Node, paneID string) *Node {
	if root == nil || paneID == "" {
		return nil
	}
	if root.ID == paneID {
		return root
	}
	for _, child := range root.Children {
		if found := FindPane(child, paneID); found != nil {
			return found
		}
	}
	return nil
}

// FindParent returns the parent of the node with the given id, or nil for
// the root and for unknown ids.
func FindParent(root *Node, paneID string) *Node {
	if root == nil || paneID == "" {
		return nil
	}
	for _, child := range root.Children {
		if child.ID == paneID {
			return root
		}
		if found := FindParent(child, paneID); found != nil {
			return found
		}
	}
	return nil
}

// CountLeaves returns the number of leaves under root.
func CountLeaves(root *Node) int {
	if root == nil {
		return 0
	}
	if root.IsLeaf() {
		return 1
	}
	count := 0
	for _, child := range root.Children {
		count += CountLeaves(child)
	}
	return count
}

// FirstLeaf returns the first leaf in depth-first order.
func FirstLeaf(root *Node) *Node {
	if root == nil {
		return nil
	}
	curr := root
	for len(curr.Children) > 0 {
		curr = curr.Children[0]
	}
	return curr
}

// Walk visits every node under root in depth-first order.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	fn(root)
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// Leaves returns all leaves under root in depth-first order.
func Leaves(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) {
		if n.IsLeaf() {
			out = append(out, n)
		}
	})
	return out
}

// FindPane returns the node with the given id within the layout.
func (l *Layout) FindPane(paneID string) *Node {
	if l == nil {
		return nil
	}
	return FindPane(l.Root, paneID)
}

// ActivePane returns the active leaf, or nil if tracking is unset.
func (l *Layout) ActivePane() *Node {
	if l == nil || l.ActivePaneID == "" {
		return nil
	}
	return FindPane(l.Root, l.ActivePaneID)
}

// Clone returns a deep copy with parent pointers rebuilt.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	return &Layout{
		ID:           l.ID,
		Root:         cloneNode(l.Root, nil),
		ActivePaneID: l.ActivePaneID,
	}
}

func cloneNode(node, parent *Node) *Node {
	if node == nil {
		return nil
	}
	out := &Node{
		ID:        node.ID,
		Size:      node.Size,
		MinSize:   node.MinSize,
		MaxSize:   node.MaxSize,
		Direction: node.Direction,
		SessionID: node.SessionID,
		Parent:    parent,
	}
	if len(node.Children) > 0 {
		out.Children = make([]*Node, 0, len(node.Children))
		for _, child := range node.Children {
			out.Children = append(out.Children, cloneNode(child, out))
		}
	}
	return out
}

func childIndex(parent, child *Node) int {
	if parent == nil {
		return -1
	}
	for i, candidate := range parent.Children {
		if candidate == child {
			return i
		}
	}
	return -1
}
