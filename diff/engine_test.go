package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// reconstruct rebuilds the old and new documents from a result's spans.
func reconstruct(result Result) (oldDoc, newDoc string) {
	var oldLines, newLines []string
	for _, c := range result.Changes {
		if !c.HasChanges() {
			text := c.Spans[0].Text
			oldLines = append(oldLines, text)
			newLines = append(newLines, text)
			continue
		}
		if len(c.Spans) == 1 && c.Spans[0].Kind == Delete {
			oldLines = append(oldLines, c.Spans[0].Text)
			continue
		}
		if len(c.Spans) == 1 && c.Spans[0].Kind == Insert {
			newLines = append(newLines, c.Spans[0].Text)
			continue
		}

		// Word-level replacement: old from Equal+Delete, new from Equal+Insert.
		var oldLine, newLine strings.Builder
		for _, s := range c.Spans {
			switch s.Kind {
			case Equal:
				oldLine.WriteString(s.Text)
				newLine.WriteString(s.Text)
			case Delete:
				oldLine.WriteString(s.Text)
			case Insert:
				newLine.WriteString(s.Text)
			case Replace:
				oldLine.WriteString(s.Text)
				newLine.WriteString(s.NewText)
			}
		}
		oldLines = append(oldLines, oldLine.String())
		newLines = append(newLines, newLine.String())
	}
	return strings.Join(oldLines, "\n"), strings.Join(newLines, "\n")
}

func TestDiffStringsNoChanges(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	result := engine.DiffStrings("foo\nbar\nbaz", "foo\nbar\nbaz")

	if result.Insertions != 0 || result.Deletions != 0 {
		t.Errorf("expected no insertions/deletions, got %d/%d", result.Insertions, result.Deletions)
	}
	if len(result.SignificantChanges) != 0 {
		t.Errorf("expected no significant changes, got %d", len(result.SignificantChanges))
	}
	if len(result.Hunks) != 0 {
		t.Errorf("expected no hunks, got %d", len(result.Hunks))
	}
	if len(result.Changes) != 3 {
		t.Errorf("expected 3 context changes, got %d", len(result.Changes))
	}
}

func TestDiffStringsSingleLineReplace(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	result := engine.DiffStrings("foo\nbar\nbaz", "foo\nqux\nbaz")

	if len(result.SignificantChanges) != 1 {
		t.Fatalf("expected 1 significant change, got %d", len(result.SignificantChanges))
	}
	if result.Insertions != 1 || result.Deletions != 1 {
		t.Errorf("expected 1 insertion and 1 deletion, got %d/%d", result.Insertions, result.Deletions)
	}
	if len(result.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(result.Hunks))
	}
	hunk := result.Hunks[0]
	if hunk.Len() != 1 || hunk.ChangeIDs[0] != result.SignificantChanges[0] {
		t.Errorf("hunk does not contain the significant change: %v", hunk.ChangeIDs)
	}

	change, ok := result.Change(result.SignificantChanges[0])
	if !ok {
		t.Fatal("significant change not found by id")
	}
	if !change.HasChanges() {
		t.Error("significant change reports no changes")
	}
	if len(change.Spans) < 2 {
		t.Errorf("expected word-level spans, got %d span(s)", len(change.Spans))
	}
	for _, s := range change.Spans {
		if s.OldLine != 2 || s.NewLine != 2 {
			t.Errorf("span %q should carry lines (2, 2), got (%d, %d)", s.Text, s.OldLine, s.NewLine)
		}
	}
}

func TestDiffStringsWordLevelDisabled(t *testing.T) {
	engine := NewEngine(Config{ContextLines: 3, WordLevel: false})
	result := engine.DiffStrings("foo\nbar\nbaz", "foo\nqux\nbaz")

	if len(result.SignificantChanges) != 2 {
		t.Fatalf("expected separate delete and insert changes, got %d", len(result.SignificantChanges))
	}
	del, _ := result.Change(result.SignificantChanges[0])
	ins, _ := result.Change(result.SignificantChanges[1])
	if del.Spans[0].Kind != Delete || del.Spans[0].OldLine != 2 || del.Spans[0].NewLine != 0 {
		t.Errorf("first change should be a delete of old line 2, got %+v", del.Spans[0])
	}
	if ins.Spans[0].Kind != Insert || ins.Spans[0].NewLine != 2 || ins.Spans[0].OldLine != 0 {
		t.Errorf("second change should be an insert of new line 2, got %+v", ins.Spans[0])
	}
}

func TestDiffStringsUnequalRuns(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	old := "keep\none\nkeep2"
	new := "keep\nfirst\nsecond\nkeep2"
	result := engine.DiffStrings(old, new)

	// One delete cannot pair with two inserts: deletes emit first.
	if len(result.SignificantChanges) != 3 {
		t.Fatalf("expected 3 significant changes, got %d", len(result.SignificantChanges))
	}
	if result.Deletions != 1 || result.Insertions != 2 {
		t.Errorf("expected 1 deletion and 2 insertions, got %d/%d", result.Deletions, result.Insertions)
	}
	first, _ := result.Change(result.SignificantChanges[0])
	if first.Spans[0].Kind != Delete {
		t.Errorf("buffered deletes should flush before inserts, got %v first", first.Spans[0].Kind)
	}
}

func TestDiffStringsInsertOnly(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	result := engine.DiffStrings("", "alpha")

	if result.Insertions != 1 || result.Deletions != 0 {
		t.Errorf("expected pure insert, got %d insertions / %d deletions", result.Insertions, result.Deletions)
	}
}

func TestWordDiffSeparation(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	old := "use foo::{KeyModifiers};"
	new := "use foo::{KeyModifiers, MouseEventKind};"
	result := engine.DiffStrings(old, new)

	if len(result.SignificantChanges) != 1 {
		t.Fatalf("expected 1 significant change, got %d", len(result.SignificantChanges))
	}
	change, ok := result.Change(result.SignificantChanges[0])
	if !ok {
		t.Fatal("significant change not found by id")
	}

	var equalContent, insertContent strings.Builder
	for _, s := range change.Spans {
		switch s.Kind {
		case Equal:
			equalContent.WriteString(s.Text)
		case Insert:
			insertContent.WriteString(s.Text)
		}
	}

	if !strings.Contains(equalContent.String(), "KeyModifiers") {
		t.Errorf("KeyModifiers should be unchanged, equal content: %q", equalContent.String())
	}
	if !strings.Contains(insertContent.String(), "MouseEventKind") {
		t.Errorf("MouseEventKind should be inserted, insert content: %q", insertContent.String())
	}
	if strings.Contains(insertContent.String(), "KeyModifiers") {
		t.Errorf("KeyModifiers must not appear in inserted content: %q", insertContent.String())
	}
}

func TestHunkBoundary(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("gap of 3 merges", func(t *testing.T) {
		// Modified lines 2 and 5: old-line gap is exactly 3.
		old := "alpha\nbravo\ncharlie\ndelta\necho\nfoxtrot"
		new := "alpha\nBRAVO\ncharlie\ndelta\nECHO\nfoxtrot"
		result := engine.DiffStrings(old, new)

		if len(result.SignificantChanges) != 2 {
			t.Fatalf("expected 2 significant changes, got %d", len(result.SignificantChanges))
		}
		if len(result.Hunks) != 1 {
			t.Fatalf("expected 1 hunk, got %d", len(result.Hunks))
		}
		if result.Hunks[0].OldStart != 2 || result.Hunks[0].NewStart != 2 {
			t.Errorf("hunk should start at line 2, got (%d, %d)", result.Hunks[0].OldStart, result.Hunks[0].NewStart)
		}
	})

	t.Run("gap of 4 splits", func(t *testing.T) {
		// Modified lines 2 and 6: old-line gap is 4.
		old := "alpha\nbravo\ncharlie\ndelta\necho\nfoxtrot\ngolf"
		new := "alpha\nBRAVO\ncharlie\ndelta\necho\nFOXTROT\ngolf"
		result := engine.DiffStrings(old, new)

		if len(result.SignificantChanges) != 2 {
			t.Fatalf("expected 2 significant changes, got %d", len(result.SignificantChanges))
		}
		if len(result.Hunks) != 2 {
			t.Fatalf("expected 2 hunks, got %d", len(result.Hunks))
		}
		if result.Hunks[1].OldStart != 6 {
			t.Errorf("second hunk should start at old line 6, got %d", result.Hunks[1].OldStart)
		}
	})
}

func TestHunkPartitionLaw(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	old := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl"
	new := "a\nB\nc\nd\ne\nf\nG\nh\nnew\ni\nj\nk"
	result := engine.DiffStrings(old, new)

	var flattened []int
	for _, h := range result.Hunks {
		flattened = append(flattened, h.ChangeIDs...)
	}
	if len(flattened) != len(result.SignificantChanges) {
		t.Fatalf("hunks cover %d changes, significant list has %d", len(flattened), len(result.SignificantChanges))
	}
	for i, id := range flattened {
		if id != result.SignificantChanges[i] {
			t.Errorf("position %d: hunk order has id %d, significant list has %d", i, id, result.SignificantChanges[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
	}{
		{"single replace", "foo\nbar\nbaz", "foo\nqux\nbaz"},
		{"pure insert", "foo\nbaz", "foo\nbar\nbaz"},
		{"pure delete", "foo\nbar\nbaz", "foo\nbaz"},
		{"unequal runs", "a\nx\ny\nb", "a\none\nb"},
		{"leading and trailing changes", "start\nmid\nend", "START\nmid\nEND"},
		{"identical", "same\nsame\nsame", "same\nsame\nsame"},
	}

	engine := NewEngine(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.DiffStrings(tt.old, tt.new)
			gotOld, gotNew := reconstruct(result)
			if gotOld != tt.old {
				t.Errorf("old document not reproduced:\ngot  %q\nwant %q", gotOld, tt.old)
			}
			if gotNew != tt.new {
				t.Errorf("new document not reproduced:\ngot  %q\nwant %q", gotNew, tt.new)
			}
		})
	}
}

func TestChangeIDsStrictlyIncreasing(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	result := engine.DiffStrings("a\nb\nc\nd", "a\nx\nc\ny")

	for i, c := range result.Changes {
		if c.ID != i {
			t.Fatalf("change %d has id %d; ids must increase in emission order", i, c.ID)
		}
	}
}

func TestResultLookupsAbsentOnMiss(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	result := engine.DiffStrings("a\nb", "a\nc")

	if _, ok := result.Change(999); ok {
		t.Error("Change(999) should report absent")
	}
	if _, ok := result.GetHunk(999); ok {
		t.Error("GetHunk(999) should report absent")
	}
	if _, ok := result.HunkForChange(999); ok {
		t.Error("HunkForChange(999) should report absent")
	}
}

func TestDiffFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	if err := os.WriteFile(oldPath, []byte("foo\nbar\n"), 0644); err != nil {
		t.Fatalf("failed to write old file: %v", err)
	}
	if err := os.WriteFile(newPath, []byte("foo\nqux\n"), 0644); err != nil {
		t.Fatalf("failed to write new file: %v", err)
	}

	engine := NewEngine(DefaultConfig())
	fd, err := engine.DiffFiles(oldPath, newPath)
	if err != nil {
		t.Fatalf("DiffFiles failed: %v", err)
	}
	if fd.OldPath != oldPath || fd.NewPath != newPath {
		t.Errorf("paths not recorded: %q, %q", fd.OldPath, fd.NewPath)
	}
	if len(fd.Result.SignificantChanges) != 1 {
		t.Errorf("expected 1 significant change, got %d", len(fd.Result.SignificantChanges))
	}

	t.Run("missing file aborts", func(t *testing.T) {
		if _, err := engine.DiffFiles(filepath.Join(dir, "absent.txt"), newPath); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}
