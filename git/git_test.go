package git

import "testing"

func TestParseNameStatus(t *testing.T) {
	output := "M\tsrc/main.go\nA\tsrc/new.go\nD\tsrc/old.go\n"
	changes := parseNameStatus(output, nil)

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(changes))
	}
	if changes[0].Status != StatusModified || changes[0].Path != "src/main.go" {
		t.Errorf("unexpected first change: %+v", changes[0])
	}
	if changes[1].Status != StatusAdded {
		t.Errorf("expected added, got %v", changes[1].Status)
	}
	if changes[2].Status != StatusDeleted {
		t.Errorf("expected deleted, got %v", changes[2].Status)
	}
}

func TestParseNameStatusRename(t *testing.T) {
	output := "R100\told/name.go\tnew/name.go\n"
	changes := parseNameStatus(output, nil)

	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Status != StatusRenamed {
		t.Errorf("expected renamed, got %v", changes[0].Status)
	}
	if changes[0].Path != "new/name.go" || changes[0].OldPath != "old/name.go" {
		t.Errorf("rename paths wrong: %+v", changes[0])
	}
}

func TestParseNameStatusSkipsUnknown(t *testing.T) {
	output := "X\tweird\nM\tkept.go\n\n"
	changes := parseNameStatus(output, nil)

	if len(changes) != 1 || changes[0].Path != "kept.go" {
		t.Errorf("expected only kept.go, got %+v", changes)
	}
}

func TestParseNameStatusAppends(t *testing.T) {
	changes := parseNameStatus("M\ta.go\n", nil)
	changes = parseNameStatus("A\tb.go\n", changes)

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes after appending, got %d", len(changes))
	}
}
