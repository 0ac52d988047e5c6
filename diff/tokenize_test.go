package diff

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "identifiers and punctuation",
			line: "use foo::{A, B};",
			want: []string{"use", " ", "foo", ":", ":", "{", "A", ",", " ", "B", "}", ";"},
		},
		{
			name: "underscores and digits stay in identifiers",
			line: "foo_bar baz123",
			want: []string{"foo_bar", " ", "baz123"},
		},
		{
			name: "import list",
			line: "KeyModifiers, MouseEventKind}",
			want: []string{"KeyModifiers", ",", " ", "MouseEventKind", "}"},
		},
		{
			name: "whitespace runs group",
			line: "a  \tb",
			want: []string{"a", "  \t", "b"},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "punctuation only",
			line: "{}",
			want: []string{"{", "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
