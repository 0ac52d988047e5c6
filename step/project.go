package step

import "github.com/morphtui/morph/diff"

// changeNature is how a significant change presents as a line: a line added,
// a line removed, or a line modified in place.
type changeNature int

const (
	natureModification changeNature = iota
	natureInsertion
	natureDeletion
)

func natureOf(c diff.Change) changeNature {
	if len(c.Spans) == 1 {
		switch c.Spans[0].Kind {
		case diff.Delete:
			return natureDeletion
		case diff.Insert:
			return natureInsertion
		}
	}
	return natureModification
}

// CurrentView projects the current position into renderable lines with no
// transition in flight.
func (n *Navigator) CurrentView() []ViewLine {
	return n.CurrentViewWithFrame(IdleFrame())
}

// CurrentViewWithFrame projects the current position into renderable lines.
// Lines of applied changes carry new-side text, lines of pending changes
// carry old-side text, and the active change (or hunk) renders highlighted
// with its nature kind, switching to the Pending variants while the frame's
// progress sits strictly between two steps. The frame never moves the
// position.
func (n *Navigator) CurrentViewWithFrame(frame AnimationFrame) []ViewLine {
	activeID, hasActive := n.activeChangeID()
	activeHunkID := -1
	if hasActive {
		if h, ok := n.diff.HunkForChange(activeID); ok {
			activeHunkID = h.ID
		}
	}

	// The change (or hunk) mid-transition: the one just applied when moving
	// forward, the one just reverted when moving backward.
	transitionOrdinal := -1
	transitionHunkID := -1
	if frame.Transitioning() {
		ordinal := n.state.ActiveIndex - 1
		if frame.Direction == Backward {
			ordinal = n.state.ActiveIndex
		}
		if ordinal >= 0 && ordinal < n.TotalSteps() {
			transitionOrdinal = ordinal
			if h, ok := n.diff.HunkForChange(n.diff.SignificantChanges[ordinal]); ok {
				transitionHunkID = h.ID
			}
		}
	}

	primaryOrdinal := n.state.ActiveIndex - 1
	if n.state.HunkPreview && activeHunkID >= 0 {
		if h, ok := n.diff.GetHunk(activeHunkID); ok {
			// Cursor sits on the first row of the active hunk.
			primaryOrdinal = n.hunkOffset(h)
		}
	}

	lines := make([]ViewLine, 0, len(n.diff.Changes))
	ordinal := 0
	for _, c := range n.diff.Changes {
		if !c.HasChanges() {
			sp := c.Spans[0]
			lines = append(lines, ViewLine{
				Kind:      Context,
				OldLine:   sp.OldLine,
				NewLine:   sp.NewLine,
				ChangeID:  c.ID,
				HunkIndex: -1,
				Spans:     []ViewSpan{{Text: sp.Text, Kind: SpanEqual}},
			})
			continue
		}

		idx := ordinal
		ordinal++

		hunkIdx := -1
		if h, ok := n.diff.HunkForChange(c.ID); ok {
			hunkIdx = h.ID
		}
		inActiveHunk := activeHunkID >= 0 && hunkIdx == activeHunkID
		applied := idx < n.state.ActiveIndex
		isActiveChange := hasActive && c.ID == activeID

		pending := false
		if frame.Transitioning() {
			if n.state.HunkPreview {
				pending = transitionHunkID >= 0 && hunkIdx == transitionHunkID
			} else {
				pending = idx == transitionOrdinal
			}
		}
		highlighted := pending || isActiveChange ||
			(n.state.HunkPreview && inActiveHunk && applied)

		line, visible := projectLine(c, natureOf(c), applied, highlighted, pending)
		if !visible {
			continue
		}

		line.ChangeID = c.ID
		line.HunkIndex = hunkIdx
		line.HasChanges = true
		line.IsActive = highlighted
		line.IsActiveChange = isActiveChange
		line.IsPrimaryActive = idx == primaryOrdinal
		line.ShowHunkExtent = inActiveHunk && idx != primaryOrdinal
		lines = append(lines, line)
	}
	return lines
}

// projectLine renders one significant change for the current position.
// The second return value is false when the line is not part of the shown
// document: an insertion not yet applied, or a deletion already applied and
// no longer highlighted.
func projectLine(c diff.Change, nature changeNature, applied, highlighted, pending bool) (ViewLine, bool) {
	oldLine, newLine := 0, 0
	if len(c.Spans) > 0 {
		oldLine = c.Spans[0].OldLine
		newLine = c.Spans[0].NewLine
	}
	line := ViewLine{OldLine: oldLine, NewLine: newLine}

	if highlighted {
		switch nature {
		case natureInsertion:
			line.Kind = Inserted
			if pending {
				line.Kind = PendingInsert
			}
		case natureDeletion:
			line.Kind = Deleted
			if pending {
				line.Kind = PendingDelete
			}
		default:
			line.Kind = Modified
			if pending {
				line.Kind = PendingModify
			}
		}
		line.Spans = mixedSpans(c, pending)
		return line, true
	}

	line.Kind = Context
	if applied {
		// Already applied: the line shows its new-side text; applied
		// deletions have no line left to show.
		if nature == natureDeletion {
			return ViewLine{}, false
		}
		line.Spans = sideSpans(c, false)
	} else {
		// Not yet applied: the line shows its old-side text; pending
		// insertions do not exist yet.
		if nature == natureInsertion {
			return ViewLine{}, false
		}
		line.Spans = sideSpans(c, true)
	}
	return line, true
}

// sideSpans renders a change's text for one document side as plain context.
func sideSpans(c diff.Change, oldSide bool) []ViewSpan {
	var spans []ViewSpan
	for _, s := range c.Spans {
		switch s.Kind {
		case diff.Equal:
			spans = append(spans, ViewSpan{Text: s.Text, Kind: SpanEqual})
		case diff.Delete:
			if oldSide {
				spans = append(spans, ViewSpan{Text: s.Text, Kind: SpanEqual})
			}
		case diff.Insert:
			if !oldSide {
				spans = append(spans, ViewSpan{Text: s.Text, Kind: SpanEqual})
			}
		case diff.Replace:
			text := s.NewText
			if oldSide {
				text = s.Text
			}
			spans = append(spans, ViewSpan{Text: text, Kind: SpanEqual})
		}
	}
	return spans
}

// mixedSpans renders a change's spans with both sides highlighted, switching
// to the Pending span kinds mid-transition.
func mixedSpans(c diff.Change, pending bool) []ViewSpan {
	deleted, inserted := SpanDeleted, SpanInserted
	if pending {
		deleted, inserted = SpanPendingDelete, SpanPendingInsert
	}

	var spans []ViewSpan
	for _, s := range c.Spans {
		switch s.Kind {
		case diff.Equal:
			spans = append(spans, ViewSpan{Text: s.Text, Kind: SpanEqual})
		case diff.Delete:
			spans = append(spans, ViewSpan{Text: s.Text, Kind: deleted})
		case diff.Insert:
			spans = append(spans, ViewSpan{Text: s.Text, Kind: inserted})
		case diff.Replace:
			spans = append(spans, ViewSpan{Text: s.Text, Kind: deleted})
			spans = append(spans, ViewSpan{Text: s.NewText, Kind: inserted})
		}
	}
	return spans
}
