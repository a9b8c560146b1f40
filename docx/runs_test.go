package docx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no markup",
			in:   []string{"Hello ", "world"},
			want: []string{"Hello ", "world"},
		},
		{
			name: "tag inside one run",
			in:   []string{"Dear ", "{{ name }}", ","},
			want: []string{"Dear ", "{{ name }}", ","},
		},
		{
			name: "tag split over two runs",
			in:   []string{"Dear {{ na", "me }}, hi"},
			want: []string{"Dear {{ name }}", ", hi"},
		},
		{
			name: "tag split over three runs",
			in:   []string{"{", "{ name ", "}}"},
			want: []string{"{{ name }}", "", ""},
		},
		{
			name: "statement tag split",
			in:   []string{"{% if ", "x %}yes{% endif %}"},
			want: []string{"{% if x %}", "yes{% endif %}"},
		},
		{
			name: "unterminated tag left alone",
			in:   []string{"{{ name", " tail"},
			want: []string{"{{ name", " tail"},
		},
		{
			name: "empty runs",
			in:   []string{"", "{{ a }}", ""},
			want: []string{"", "{{ a }}", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSplitTags(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mergeSplitTags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasMarkup(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"plain", false},
		{"{{ x }}", true},
		{"{% if x %}", true},
		{"{# note #}", true},
		{"{ single }", false},
	}
	for _, tt := range tests {
		if got := hasMarkup(tt.input); got != tt.expected {
			t.Errorf("hasMarkup(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
