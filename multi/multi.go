// Package multi composes step navigators over several document pairs and
// tracks which one is active. It holds no diff logic of its own.
package multi

import (
	"github.com/morphtui/morph/diff"
	"github.com/morphtui/morph/step"
)

// FileEntry pairs one file diff with its navigator. Status is free-form
// provenance ("modified", "added", ...) for display.
type FileEntry struct {
	Diff      diff.FileDiff
	Navigator *step.Navigator
	Status    string
}

// MultiDiff owns an ordered collection of file entries and one active index.
type MultiDiff struct {
	entries []FileEntry
	active  int
}

// New creates an empty composer.
func New() *MultiDiff {
	return &MultiDiff{}
}

// Add appends a file diff, creating its navigator.
func (m *MultiDiff) Add(fd diff.FileDiff, status string) {
	entry := FileEntry{
		Diff:      fd,
		Navigator: step.NewNavigator(&fd.Result),
		Status:    status,
	}
	m.entries = append(m.entries, entry)
}

// Len returns the number of documents.
func (m *MultiDiff) Len() int {
	return len(m.entries)
}

// Active returns the active document index.
func (m *MultiDiff) Active() int {
	return m.active
}

// SetActive switches the active document. Out-of-range indices are ignored
// and reported as false.
func (m *MultiDiff) SetActive(i int) bool {
	if i < 0 || i >= len(m.entries) {
		return false
	}
	m.active = i
	return true
}

// Next advances to the following document, reporting false at the end.
func (m *MultiDiff) Next() bool {
	return m.SetActive(m.active + 1)
}

// Prev switches to the preceding document, reporting false at the start.
func (m *MultiDiff) Prev() bool {
	return m.SetActive(m.active - 1)
}

// Entry returns the entry at index i, or false when out of range.
func (m *MultiDiff) Entry(i int) (*FileEntry, bool) {
	if i < 0 || i >= len(m.entries) {
		return nil, false
	}
	return &m.entries[i], true
}

// Current returns the active entry, or false when the composer is empty.
func (m *MultiDiff) Current() (*FileEntry, bool) {
	return m.Entry(m.active)
}

// CurrentNavigator returns the active entry's navigator, or nil when the
// composer is empty.
func (m *MultiDiff) CurrentNavigator() *step.Navigator {
	entry, ok := m.Current()
	if !ok {
		return nil
	}
	return entry.Navigator
}

// Totals sums insertions and deletions across all documents.
func (m *MultiDiff) Totals() (insertions, deletions int) {
	for _, e := range m.entries {
		insertions += e.Diff.Result.Insertions
		deletions += e.Diff.Result.Deletions
	}
	return insertions, deletions
}
