package layout

import "errors"

// Precondition failures are routine outcomes of UI races (double-close,
// stale drag targets); callers treat them as no-ops. The tree is never
// partially mutated on error.
var (
	// ErrPaneNotFound means the pane id did not resolve to a node.
	ErrPaneNotFound = errors.New("layout: pane not found")
	// ErrInvalidTarget means the operation was attempted on the wrong node
	// kind, e.g. splitting a split node or resizing the root.
	ErrInvalidTarget = errors.New("layout: invalid target pane")
	// ErrLastPane means removing the only remaining pane was refused.
	ErrLastPane = errors.New("layout: cannot remove the last pane")
	// ErrCorruptLayout means a persisted layout failed invariant validation
	// and could not be repaired.
	ErrCorruptLayout = errors.New("layout: corrupt layout")
)
