package diff

// ChangeKind classifies a span of text within a change.
type ChangeKind int

const (
	// Insert marks content that exists only in the new document.
	Insert ChangeKind = iota
	// Delete marks content that exists only in the old document.
	Delete
	// Replace marks content rewritten in place; the span carries both sides.
	Replace
	// Equal marks content shared by both documents.
	Equal
)

func (k ChangeKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case Equal:
		return "equal"
	default:
		return "unknown"
	}
}

// Span is a contiguous run of text tagged with one change kind.
// Line numbers are 1-based; 0 means the span has no counterpart on that side.
type Span struct {
	Kind ChangeKind
	Text string
	// NewText is the replacement text. Set only when Kind is Replace.
	NewText string
	OldLine int
	NewLine int
}

// EqualSpan returns a context span shared by both documents.
func EqualSpan(text string) Span {
	return Span{Kind: Equal, Text: text}
}

// InsertSpan returns a span for content added in the new document.
func InsertSpan(text string) Span {
	return Span{Kind: Insert, Text: text}
}

// DeleteSpan returns a span for content removed from the old document.
func DeleteSpan(text string) Span {
	return Span{Kind: Delete, Text: text}
}

// ReplaceSpan returns a span carrying both the old and the new text.
func ReplaceSpan(oldText, newText string) Span {
	return Span{Kind: Replace, Text: oldText, NewText: newText}
}

// WithLines returns a copy of the span tagged with line numbers.
func (s Span) WithLines(oldLine, newLine int) Span {
	s.OldLine = oldLine
	s.NewLine = newLine
	return s
}

// IsChange reports whether the span is an actual change rather than context.
func (s Span) IsChange() bool {
	return s.Kind != Equal
}

// Change is one diff unit. It holds multiple spans only when a delete/insert
// pair was refined into a word-level replacement.
type Change struct {
	ID          int
	Spans       []Span
	Description string
}

// NewChange creates a change from an ordered span list.
func NewChange(id int, spans []Span) Change {
	return Change{ID: id, Spans: spans}
}

// SingleSpan creates a change holding exactly one span.
func SingleSpan(id int, span Span) Change {
	return Change{ID: id, Spans: []Span{span}}
}

// HasChanges reports whether any span is something other than context.
func (c Change) HasChanges() bool {
	for _, s := range c.Spans {
		if s.IsChange() {
			return true
		}
	}
	return false
}

// ChangeSpans returns the non-context spans in order.
func (c Change) ChangeSpans() []Span {
	var spans []Span
	for _, s := range c.Spans {
		if s.IsChange() {
			spans = append(spans, s)
		}
	}
	return spans
}

// Hunk is a proximity-grouped cluster of significant changes.
// OldStart and NewStart are sticky: set from the first member change that
// supplies a value on that side, never overwritten.
type Hunk struct {
	ID         int
	ChangeIDs  []int
	OldStart   int
	NewStart   int
	Insertions int
	Deletions  int
}

// Len returns the number of changes in the hunk.
func (h Hunk) Len() int {
	return len(h.ChangeIDs)
}

// IsEmpty reports whether the hunk holds no changes.
func (h Hunk) IsEmpty() bool {
	return len(h.ChangeIDs) == 0
}

// Result is the outcome of one diff computation. Changes holds every change
// in document order, context included; SignificantChanges lists the ids of
// changes that actually modify content; Hunks partitions those ids exactly.
type Result struct {
	Changes            []Change
	SignificantChanges []int
	Hunks              []Hunk
	Insertions         int
	Deletions          int
}

// Change returns the change with the given id, or false when no such change
// exists.
func (r *Result) Change(id int) (Change, bool) {
	for _, c := range r.Changes {
		if c.ID == id {
			return c, true
		}
	}
	return Change{}, false
}

// SignificantChangeList returns the significant changes in order.
func (r *Result) SignificantChangeList() []Change {
	list := make([]Change, 0, len(r.SignificantChanges))
	for _, id := range r.SignificantChanges {
		if c, ok := r.Change(id); ok {
			list = append(list, c)
		}
	}
	return list
}

// GetHunk returns the hunk with the given id, or false when it does not exist.
func (r *Result) GetHunk(id int) (Hunk, bool) {
	for _, h := range r.Hunks {
		if h.ID == id {
			return h, true
		}
	}
	return Hunk{}, false
}

// HunkForChange returns the hunk containing the given change id, or false when
// the id belongs to no hunk.
func (r *Result) HunkForChange(changeID int) (Hunk, bool) {
	for _, h := range r.Hunks {
		for _, id := range h.ChangeIDs {
			if id == changeID {
				return h, true
			}
		}
	}
	return Hunk{}, false
}

// FileDiff wraps a diff result with the paths it was computed from.
type FileDiff struct {
	OldPath string
	NewPath string
	Result  Result
}
