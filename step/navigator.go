package step

import "github.com/morphtui/morph/diff"

// State is the navigator's position: ActiveIndex counts applied significant
// changes, so 0 shows the original document and TotalSteps() shows the final
// one. HunkPreview switches stepping from one change to one hunk at a time.
type State struct {
	ActiveIndex int
	HunkPreview bool
	CurrentHunk int
}

// Navigator walks one diff result from all-old to all-new. It holds the
// result immutably and owns only its position; it is not safe for concurrent
// use without external serialization.
type Navigator struct {
	diff  *diff.Result
	state State
}

// NewNavigator creates a navigator positioned at the original document.
func NewNavigator(result *diff.Result) *Navigator {
	n := &Navigator{diff: result}
	n.syncCurrentHunk()
	return n
}

// Diff returns the result the navigator walks.
func (n *Navigator) Diff() *diff.Result {
	return n.diff
}

// State returns the current position.
func (n *Navigator) State() State {
	return n.state
}

// TotalSteps returns the number of significant changes.
func (n *Navigator) TotalSteps() int {
	return len(n.diff.SignificantChanges)
}

// ActiveIndex returns the number of applied significant changes.
func (n *Navigator) ActiveIndex() int {
	return n.state.ActiveIndex
}

// AtStart reports whether the original document is fully shown.
func (n *Navigator) AtStart() bool {
	return n.state.ActiveIndex == 0
}

// AtEnd reports whether the final document is fully shown.
func (n *Navigator) AtEnd() bool {
	return n.state.ActiveIndex == n.TotalSteps()
}

// HunkPreview reports whether stepping moves one hunk at a time.
func (n *Navigator) HunkPreview() bool {
	return n.state.HunkPreview
}

// SetHunkPreview toggles hunk-at-a-time stepping.
func (n *Navigator) SetHunkPreview(on bool) {
	n.state.HunkPreview = on
	n.syncCurrentHunk()
}

// ActiveChange returns the most recently applied change, or false at the
// starting position.
func (n *Navigator) ActiveChange() (diff.Change, bool) {
	id, ok := n.activeChangeID()
	if !ok {
		return diff.Change{}, false
	}
	return n.diff.Change(id)
}

// CurrentHunk returns the hunk at the navigator's hunk cursor, or false when
// the diff has no hunks.
func (n *Navigator) CurrentHunk() (diff.Hunk, bool) {
	return n.diff.GetHunk(n.state.CurrentHunk)
}

// StepForward applies the next significant change (or the next hunk in
// hunk-preview mode). It reports false, without moving, at the terminal
// position.
func (n *Navigator) StepForward() bool {
	total := n.TotalSteps()
	if n.state.ActiveIndex >= total {
		return false
	}

	if n.state.HunkPreview {
		id := n.diff.SignificantChanges[n.state.ActiveIndex]
		if h, ok := n.diff.HunkForChange(id); ok {
			n.state.ActiveIndex = n.hunkOffset(h) + h.Len()
		} else {
			n.state.ActiveIndex++
		}
	} else {
		n.state.ActiveIndex++
	}
	if n.state.ActiveIndex > total {
		n.state.ActiveIndex = total
	}
	n.syncCurrentHunk()
	return true
}

// StepBackward reverts the most recently applied change (or hunk). It reports
// false, without moving, at the starting position.
func (n *Navigator) StepBackward() bool {
	if n.state.ActiveIndex <= 0 {
		return false
	}

	if n.state.HunkPreview {
		id := n.diff.SignificantChanges[n.state.ActiveIndex-1]
		if h, ok := n.diff.HunkForChange(id); ok {
			n.state.ActiveIndex = n.hunkOffset(h)
		} else {
			n.state.ActiveIndex--
		}
	} else {
		n.state.ActiveIndex--
	}
	if n.state.ActiveIndex < 0 {
		n.state.ActiveIndex = 0
	}
	n.syncCurrentHunk()
	return true
}

// activeChangeID returns the id of the most recently applied significant
// change.
func (n *Navigator) activeChangeID() (int, bool) {
	idx := n.state.ActiveIndex - 1
	if idx < 0 || idx >= n.TotalSteps() {
		return 0, false
	}
	return n.diff.SignificantChanges[idx], true
}

// hunkOffset returns the ordinal of the hunk's first change within the
// significant-change order. Hunks partition that order, so the offset is the
// sum of preceding hunk lengths.
func (n *Navigator) hunkOffset(hunk diff.Hunk) int {
	offset := 0
	for _, h := range n.diff.Hunks {
		if h.ID == hunk.ID {
			break
		}
		offset += h.Len()
	}
	return offset
}

// syncCurrentHunk points the hunk cursor at the hunk containing the active
// change, falling back to the first hunk before anything is applied.
func (n *Navigator) syncCurrentHunk() {
	if id, ok := n.activeChangeID(); ok {
		if h, ok := n.diff.HunkForChange(id); ok {
			n.state.CurrentHunk = h.ID
			return
		}
	}
	n.state.CurrentHunk = 0
}
