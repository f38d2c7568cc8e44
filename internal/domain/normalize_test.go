package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitMeaningList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "comma", input: "존경,면", want: []string{"존경", "면"}},
		{name: "all delimiters", input: "a/b, c ;d|e", want: []string{"a", "b", "c", "d", "e"}},
		{name: "drops empties", input: " / ,, a ;; ", want: []string{"a"}},
		{name: "inner spaces kept", input: "to look up / 찾아보다", want: []string{"to look up", "찾아보다"}},
		{name: "empty", input: "", want: []string{}},
		{name: "only delimiters", input: "/,;|", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitMeaningList(tt.input))
		})
	}
}

func TestNormalizeMeaning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "존경", want: "존경"},
		{name: "trailing period", input: "존경.", want: "존경"},
		{name: "whitespace collapse", input: "  마음을   먹다 ", want: "마음을 먹다"},
		{name: "brackets and braces", input: "(존경){}[]", want: "존경"},
		{name: "straight quotes", input: `'존경'"`, want: "존경"},
		{name: "curly quotes", input: "“존경”‘’", want: "존경"},
		{name: "bang and question", input: "존경!?,", want: "존경"},
		{name: "space before stripped punct", input: "존경 .", want: "존경"},
		{name: "case preserved", input: "Respect", want: "Respect"},
		{name: "other punctuation untouched", input: "존경~", want: "존경~"},
		{name: "colon untouched", input: "a:b", want: "a:b"},
		{name: "empty", input: "", want: ""},
		{name: "only punct", input: "...", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeMeaning(tt.input))
		})
	}
}

func TestNormalizeMeaning_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"존경,면", "  a ( b ) c ", "“x” . y", "존경", ""}
	for _, in := range inputs {
		once := NormalizeMeaning(in)
		assert.Equal(t, once, NormalizeMeaning(once), "input %q", in)
	}

	for _, m := range SplitMeaningList("존경,면") {
		assert.Equal(t, m, NormalizeMeaning(m))
	}
}

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "  Respect  ", want: "respect"},
		{input: "Look   UP", want: "look up"},
		{input: "\tdon't\n", want: "don't"},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeWord(tt.input), "input %q", tt.input)
		assert.Equal(t, NormalizeWord(tt.input), NormalizeWord(NormalizeWord(tt.input)))
	}
}

type dayStringer struct{}

func (dayStringer) String() string { return " week-1 " }

func TestFormatDayKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "string trimmed", input: "  3 ", want: "3"},
		{name: "string float kept", input: "3.0", want: "3.0"},
		{name: "float whole", input: 3.0, want: "3"},
		{name: "float fraction", input: 3.5, want: "3.5"},
		{name: "int", input: 12, want: "12"},
		{name: "int64", input: int64(7), want: "7"},
		{name: "stringer", input: dayStringer{}, want: "week-1"},
		{name: "bool fallback", input: true, want: "true"},
		{name: "time fallback", input: time.Duration(0), want: "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDayKey(tt.input))
		})
	}

	assert.NotEqual(t, FormatDayKey("3"), FormatDayKey("3.0"))
}
