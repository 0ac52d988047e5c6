package diff

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrCompute is reserved for fallible alignment backends. The in-memory
// algorithm used here cannot fail and never returns it.
var ErrCompute = errors.New("diff computation failed")

// proximityThreshold is the maximum line gap between two significant changes
// grouped into the same hunk.
const proximityThreshold = 3

// Config is the immutable configuration for an Engine.
type Config struct {
	// ContextLines is reserved for context trimming; it has no effect on the
	// computed result.
	ContextLines int
	// WordLevel pairs equal-length delete/insert runs into word-level
	// replacement changes.
	WordLevel bool
}

// DefaultConfig returns the engine defaults: three context lines, word-level
// pairing enabled.
func DefaultConfig() Config {
	return Config{ContextLines: 3, WordLevel: true}
}

// Engine computes structured diffs between two text documents.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// DiffStrings computes the line-level diff between old and new, refining
// paired delete/insert runs into word-level replacements when enabled.
func (e *Engine) DiffStrings(old, new string) Result {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(old, new)
	blocks := dmp.DiffCleanupMerge(dmp.DiffMainRunes(oldRunes, newRunes, false))

	acc := newAccumulator()
	for _, block := range blocks {
		lines := decodeLines(block.Text, lineArray)
		switch block.Type {
		case diffmatchpatch.DiffEqual:
			for _, line := range lines {
				acc.flush(e.cfg.WordLevel)
				acc.equal(trimLineEnd(line))
			}
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				acc.delete(trimLineEnd(line))
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				acc.insert(trimLineEnd(line))
			}
		}
	}
	acc.flush(e.cfg.WordLevel)

	return Result{
		Changes:            acc.changes,
		SignificantChanges: acc.significant,
		Hunks:              computeHunks(acc.significant, acc.changes),
		Insertions:         acc.insertions,
		Deletions:          acc.deletions,
	}
}

// DiffFiles reads both files and diffs their contents. A read failure aborts
// the operation; no partial result is produced.
func (e *Engine) DiffFiles(oldPath, newPath string) (FileDiff, error) {
	oldContent, err := os.ReadFile(oldPath)
	if err != nil {
		return FileDiff{}, fmt.Errorf("failed to read file %s: %w", oldPath, err)
	}
	newContent, err := os.ReadFile(newPath)
	if err != nil {
		return FileDiff{}, fmt.Errorf("failed to read file %s: %w", newPath, err)
	}

	return FileDiff{
		OldPath: oldPath,
		NewPath: newPath,
		Result:  e.DiffStrings(string(oldContent), string(newContent)),
	}, nil
}

// decodeLines maps an encoded rune string back to the original lines.
func decodeLines(s string, lineArray []string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		if i := int(r); i >= 0 && i < len(lineArray) {
			out = append(out, lineArray[i])
		}
	}
	return out
}

func trimLineEnd(line string) string {
	return strings.TrimSuffix(line, "\n")
}

// pendingLine is one buffered delete or insert awaiting a flush.
type pendingLine struct {
	text string
	line int
}

// accumulator folds the alignment walk into changes: pending delete/insert
// buffers, line counters, and running insertion/deletion tallies.
type accumulator struct {
	changes     []Change
	significant []int
	insertions  int
	deletions   int

	nextID  int
	oldLine int
	newLine int

	pendingDeletes []pendingLine
	pendingInserts []pendingLine
}

func newAccumulator() *accumulator {
	return &accumulator{oldLine: 1, newLine: 1}
}

func (a *accumulator) equal(text string) {
	span := EqualSpan(text).WithLines(a.oldLine, a.newLine)
	a.changes = append(a.changes, SingleSpan(a.nextID, span))
	a.nextID++
	a.oldLine++
	a.newLine++
}

func (a *accumulator) delete(text string) {
	a.pendingDeletes = append(a.pendingDeletes, pendingLine{text: text, line: a.oldLine})
	a.oldLine++
}

func (a *accumulator) insert(text string) {
	a.pendingInserts = append(a.pendingInserts, pendingLine{text: text, line: a.newLine})
	a.newLine++
}

// flush drains the pending buffers. Equal-length nonzero runs are paired
// index-wise into word-level replacement changes when wordLevel is set;
// otherwise deletes are emitted first, then inserts, in original order.
func (a *accumulator) flush(wordLevel bool) {
	if len(a.pendingDeletes) == 0 && len(a.pendingInserts) == 0 {
		return
	}

	if wordLevel && len(a.pendingDeletes) == len(a.pendingInserts) {
		for i, del := range a.pendingDeletes {
			ins := a.pendingInserts[i]
			spans := wordDiffSpans(del.text, ins.text, del.line, ins.line)
			a.significant = append(a.significant, a.nextID)
			a.changes = append(a.changes, NewChange(a.nextID, spans))
			a.nextID++
			a.insertions++
			a.deletions++
		}
	} else {
		for _, del := range a.pendingDeletes {
			span := DeleteSpan(del.text).WithLines(del.line, 0)
			a.significant = append(a.significant, a.nextID)
			a.changes = append(a.changes, SingleSpan(a.nextID, span))
			a.nextID++
			a.deletions++
		}
		for _, ins := range a.pendingInserts {
			span := InsertSpan(ins.text).WithLines(0, ins.line)
			a.significant = append(a.significant, a.nextID)
			a.changes = append(a.changes, SingleSpan(a.nextID, span))
			a.nextID++
			a.insertions++
		}
	}

	a.pendingDeletes = a.pendingDeletes[:0]
	a.pendingInserts = a.pendingInserts[:0]
}

// wordDiffSpans aligns the tokens of one paired replacement line and returns
// one span per token run element, all tagged with the pair's line numbers.
func wordDiffSpans(oldText, newText string, oldLine, newLine int) []Span {
	oldTokens := Tokenize(oldText)
	newTokens := Tokenize(newText)

	var spans []Span
	matcher := difflib.NewMatcher(oldTokens, newTokens)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, tok := range oldTokens[op.I1:op.I2] {
				spans = append(spans, EqualSpan(tok).WithLines(oldLine, newLine))
			}
		case 'd':
			for _, tok := range oldTokens[op.I1:op.I2] {
				spans = append(spans, DeleteSpan(tok).WithLines(oldLine, newLine))
			}
		case 'i':
			for _, tok := range newTokens[op.J1:op.J2] {
				spans = append(spans, InsertSpan(tok).WithLines(oldLine, newLine))
			}
		case 'r':
			for _, tok := range oldTokens[op.I1:op.I2] {
				spans = append(spans, DeleteSpan(tok).WithLines(oldLine, newLine))
			}
			for _, tok := range newTokens[op.J1:op.J2] {
				spans = append(spans, InsertSpan(tok).WithLines(oldLine, newLine))
			}
		}
	}
	return spans
}

// computeHunks groups significant changes whose line numbers are within
// proximityThreshold of each other into hunks.
func computeHunks(significant []int, changes []Change) []Hunk {
	var hunks []Hunk
	if len(significant) == 0 {
		return hunks
	}

	var (
		current     []int
		oldStart    int
		newStart    int
		lastOldLine int
		lastNewLine int
		insertions  int
		deletions   int
		nextID      int
	)

	find := func(id int) (Change, bool) {
		for _, c := range changes {
			if c.ID == id {
				return c, true
			}
		}
		return Change{}, false
	}

	for _, changeID := range significant {
		change, ok := find(changeID)
		if !ok {
			continue
		}

		oldLine, newLine := 0, 0
		if len(change.Spans) > 0 {
			oldLine = change.Spans[0].OldLine
			newLine = change.Spans[0].NewLine
		}

		// A change is close when its line number is within the threshold of
		// the last defined value on the same side; old side wins when both
		// are comparable. With neither side comparable, only an empty hunk
		// absorbs the change.
		var isClose bool
		switch {
		case lastOldLine > 0 && oldLine > 0:
			isClose = saturatingSub(oldLine, lastOldLine) <= proximityThreshold
		case lastNewLine > 0 && newLine > 0:
			isClose = saturatingSub(newLine, lastNewLine) <= proximityThreshold
		default:
			isClose = len(current) == 0
		}

		if isClose {
			current = append(current, changeID)
			if oldStart == 0 {
				oldStart = oldLine
			}
			if newStart == 0 {
				newStart = newLine
			}
		} else {
			if len(current) > 0 {
				hunks = append(hunks, Hunk{
					ID:         nextID,
					ChangeIDs:  current,
					OldStart:   oldStart,
					NewStart:   newStart,
					Insertions: insertions,
					Deletions:  deletions,
				})
				nextID++
			}

			current = []int{changeID}
			oldStart = oldLine
			newStart = newLine
			insertions = 0
			deletions = 0
		}

		if oldLine > 0 {
			lastOldLine = oldLine
		}
		if newLine > 0 {
			lastNewLine = newLine
		}

		for _, span := range change.Spans {
			switch span.Kind {
			case Insert:
				insertions++
			case Delete:
				deletions++
			case Replace:
				insertions++
				deletions++
			}
		}
	}

	if len(current) > 0 {
		hunks = append(hunks, Hunk{
			ID:         nextID,
			ChangeIDs:  current,
			OldStart:   oldStart,
			NewStart:   newStart,
			Insertions: insertions,
			Deletions:  deletions,
		})
	}

	return hunks
}

func saturatingSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
