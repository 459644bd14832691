package layout

import (
	"fmt"
	"math"
)

type OpKind string

const (
	OpSplit      OpKind = "split"
	OpClose      OpKind = "close"
	OpResize     OpKind = "resize"
	OpActivate   OpKind = "activate"
	OpResetSizes OpKind = "reset_sizes"
)

// Op is a single structural mutation applied to a layout.
type Op interface {
	Kind() OpKind
}

// SplitOp converts a leaf into a split node with two new leaf children. The
// first child keeps the original session and becomes active; the second
// starts empty so the caller can attach a fresh session to it.
type SplitOp struct {
	PaneID    string
	Direction Direction
	Ratio     float64 // first child's share in (0,1); invalid values mean 0.5
}

func (SplitOp) Kind() OpKind { return OpSplit }

// CloseOp removes a pane (or a whole split subtree) from the layout.
type CloseOp struct {
	PaneID string
}

func (CloseOp) Kind() OpKind { return OpClose }

// ResizeOp grows the target by Delta percent of its parent's extent; the
// adjacent sibling absorbs the inverse. Both are clamped, then the sibling
// vector is renormalized to sum exactly to FullSize.
type ResizeOp struct {
	PaneID string
	Delta  float64
}

func (ResizeOp) Kind() OpKind { return OpResize }

// ActivateOp moves focus to an existing leaf. No structural change.
type ActivateOp struct {
	PaneID string
}

func (ActivateOp) Kind() OpKind { return OpActivate }

// ResetSizesOp equalizes sibling sizes throughout the tree.
type ResetSizesOp struct{}

func (ResetSizesOp) Kind() OpKind { return OpResetSizes }

// Result describes a successfully applied op.
type Result struct {
	Changed      bool
	ActivePaneID string
	// NewPaneIDs holds the two children created by a split, in order.
	NewPaneIDs []string
	// Affected lists leaf ids whose geometry changed.
	Affected []string
}

// Engine applies ops to a single layout, enforcing the tree invariants.
// Operations either fully apply or leave the layout untouched. The engine
// does no I/O; persistence hangs off the change hook.
type Engine struct {
	Layout  *Layout
	History History

	onChange []func(*Layout)
}

func NewEngine(layout *Layout) *Engine {
	return &Engine{
		Layout:  layout,
		History: History{Limit: 100},
	}
}

// OnChange registers a hook invoked after every op that changed the layout.
// Hooks run synchronously on the applying goroutine.
func (e *Engine) OnChange(fn func(*Layout)) {
	if e == nil || fn == nil {
		return
	}
	e.onChange = append(e.onChange, fn)
}

// Apply validates and applies a single op. On error the layout is unchanged.
func (e *Engine) Apply(op Op) (Result, error) {
	if e == nil || e.Layout == nil || e.Layout.Root == nil {
		return Result{}, ErrCorruptLayout
	}
	before := e.Layout.Clone()

	var result Result
	var err error
	switch v := op.(type) {
	case SplitOp:
		result, err = e.applySplit(v)
	case CloseOp:
		result, err = e.applyClose(v)
	case ResizeOp:
		result, err = e.applyResize(v)
	case ActivateOp:
		result, err = e.applyActivate(v)
	case ResetSizesOp:
		result, err = e.applyResetSizes()
	default:
		return Result{}, fmt.Errorf("layout: unknown op %T", op)
	}
	if err != nil {
		return Result{}, err
	}
	result.ActivePaneID = e.Layout.ActivePaneID
	if result.Changed {
		if op.Kind() != OpActivate {
			e.History.Record(before)
		}
		for _, fn := range e.onChange {
			fn(e.Layout)
		}
	}
	if op.Kind() == OpResetSizes {
		e.History.Clear()
	}
	return result, nil
}

func (e *Engine) applySplit(op SplitOp) (Result, error) {
	leaf := e.Layout.FindPane(op.PaneID)
	if leaf == nil {
		return Result{}, ErrPaneNotFound
	}
	if !leaf.IsLeaf() {
		return Result{}, ErrInvalidTarget
	}
	dir := op.Direction
	if dir == DirectionNone {
		dir = DirectionHorizontal
	}
	ratio := op.Ratio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}

	first := &Node{
		ID:        NewPaneID(),
		Size:      ratio * FullSize,
		SessionID: leaf.SessionID,
		Parent:    leaf,
	}
	second := &Node{
		ID:     NewPaneID(),
		Size:   FullSize - first.Size,
		Parent: leaf,
	}
	leaf.SessionID = ""
	leaf.Direction = dir
	leaf.Children = []*Node{first, second}
	e.Layout.ActivePaneID = first.ID

	return Result{
		Changed:    true,
		NewPaneIDs: []string{first.ID, second.ID},
		Affected:   []string{first.ID, second.ID},
	}, nil
}

func (e *Engine) applyClose(op CloseOp) (Result, error) {
	node := e.Layout.FindPane(op.PaneID)
	if node == nil {
		return Result{}, ErrPaneNotFound
	}
	parent := node.Parent
	if parent == nil {
		return Result{}, ErrLastPane
	}
	idx := childIndex(parent, node)
	if idx < 0 {
		return Result{}, ErrCorruptLayout
	}

	removedActive := FindPane(node, e.Layout.ActivePaneID) != nil

	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	node.Parent = nil

	var survivor *Node
	if len(parent.Children) == 1 {
		// A split with one child is meaningless: promote the survivor into
		// the parent's slot, keeping the parent's share of its container.
		survivor = parent.Children[0]
		survivor.Size = parent.Size
		grand := parent.Parent
		survivor.Parent = grand
		if grand == nil {
			e.Layout.Root = survivor
		} else {
			grand.Children[childIndex(grand, parent)] = survivor
		}
	} else {
		renormalize(parent.Children)
		// Nearest surviving sibling: previous index, else the child that
		// slid into the removed slot.
		nearest := idx - 1
		if nearest < 0 {
			nearest = 0
		}
		survivor = parent.Children[nearest]
	}

	if removedActive {
		e.Layout.ActivePaneID = FirstLeaf(survivor).ID
	}

	scope := survivor
	if survivor.Parent != nil {
		scope = survivor.Parent
	}
	return Result{Changed: true, Affected: leafIDs(scope)}, nil
}

func (e *Engine) applyResize(op ResizeOp) (Result, error) {
	node := e.Layout.FindPane(op.PaneID)
	if node == nil {
		return Result{}, ErrPaneNotFound
	}
	parent := node.Parent
	if parent == nil {
		return Result{}, ErrInvalidTarget
	}
	if op.Delta == 0 {
		return Result{}, nil
	}
	idx := childIndex(parent, node)
	siblingIdx := idx + 1
	if siblingIdx >= len(parent.Children) {
		siblingIdx = idx - 1
	}
	if siblingIdx < 0 {
		return Result{}, ErrCorruptLayout
	}
	sibling := parent.Children[siblingIdx]

	node.Size = clamp(node.Size+op.Delta, node.minSize(), node.maxSize())
	sibling.Size = clamp(sibling.Size-op.Delta, sibling.minSize(), sibling.maxSize())
	renormalize(parent.Children)

	return Result{Changed: true, Affected: leafIDs(parent)}, nil
}

func (e *Engine) applyActivate(op ActivateOp) (Result, error) {
	node := e.Layout.FindPane(op.PaneID)
	if node == nil {
		return Result{}, ErrPaneNotFound
	}
	if !node.IsLeaf() {
		return Result{}, ErrInvalidTarget
	}
	changed := e.Layout.ActivePaneID != node.ID
	e.Layout.ActivePaneID = node.ID
	return Result{Changed: changed}, nil
}

func (e *Engine) applyResetSizes() (Result, error) {
	var affected []string
	Walk(e.Layout.Root, func(n *Node) {
		count := len(n.Children)
		if count == 0 {
			if n.ID != "" {
				affected = append(affected, n.ID)
			}
			return
		}
		share := FullSize / float64(count)
		for _, child := range n.Children {
			child.Size = share
		}
	})
	return Result{Changed: true, Affected: affected}, nil
}

// renormalize rescales sibling sizes proportionally so they sum to exactly
// FullSize. The last sibling takes the floating-point residue.
func renormalize(children []*Node) {
	if len(children) == 0 {
		return
	}
	sum := 0.0
	for _, child := range children {
		if child.Size < 0 {
			child.Size = 0
		}
		sum += child.Size
	}
	if sum <= 0 {
		share := FullSize / float64(len(children))
		for _, child := range children {
			child.Size = share
		}
		return
	}
	scale := FullSize / sum
	acc := 0.0
	for i, child := range children {
		if i == len(children)-1 {
			child.Size = FullSize - acc
			return
		}
		child.Size *= scale
		acc += child.Size
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func leafIDs(node *Node) []string {
	var out []string
	for _, leaf := range Leaves(node) {
		out = append(out, leaf.ID)
	}
	return out
}
