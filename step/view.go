package step

// Direction distinguishes forward and backward transitions.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Phase describes whether a transition animation is in flight.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStepping
)

// AnimationFrame describes where between two adjacent steps the current
// visual frame sits. It is a pure read-side parameter: frames never move the
// navigator's position.
type AnimationFrame struct {
	Phase     Phase
	Progress  float64
	Direction Direction
}

// IdleFrame returns the frame for a settled view with no transition running.
func IdleFrame() AnimationFrame {
	return AnimationFrame{Phase: PhaseIdle, Progress: 1}
}

// Transitioning reports whether the frame sits strictly between two steps.
// Only then do Pending line and span kinds appear in the view.
func (f AnimationFrame) Transitioning() bool {
	return f.Phase == PhaseStepping && f.Progress > 0 && f.Progress < 1
}

// LineKind classifies a rendered line.
type LineKind int

const (
	// Context is an unchanged line, or a changed line rendered plainly on
	// whichever side the current position selects.
	Context LineKind = iota
	Inserted
	Deleted
	Modified
	PendingInsert
	PendingDelete
	PendingModify
)

// ViewSpanKind classifies a rendered span within a line.
type ViewSpanKind int

const (
	SpanEqual ViewSpanKind = iota
	SpanDeleted
	SpanInserted
	SpanPendingDelete
	SpanPendingInsert
)

// ViewSpan is one styled run of text within a view line.
type ViewSpan struct {
	Text string
	Kind ViewSpanKind
}

// ViewLine is one renderable line of the current view. View lines are
// recomputed per frame and never stored.
type ViewLine struct {
	Kind LineKind
	// OldLine and NewLine are 1-based; 0 means no counterpart on that side.
	OldLine int
	NewLine int
	// IsActive marks every line of the active change (or of the whole
	// current hunk in hunk-preview mode).
	IsActive bool
	// IsPrimaryActive marks the single cursor row.
	IsPrimaryActive bool
	// ShowHunkExtent marks the other rows of the hunk containing the active
	// change, for secondary highlighting.
	ShowHunkExtent bool
	// HasChanges reports that the line belongs to a significant change even
	// when it currently renders as plain context.
	HasChanges bool
	// IsActiveChange reports that the line belongs to the change at the
	// navigator's active position.
	IsActiveChange bool
	ChangeID       int
	// HunkIndex is the id of the hunk this line's change belongs to, or -1.
	HunkIndex int
	Spans     []ViewSpan
}
