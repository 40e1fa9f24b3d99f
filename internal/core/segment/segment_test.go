package segment

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three terminals",
			text: "Returns are accepted within 30 days. Is that clear? Yes!",
			want: []string{"Returns are accepted within 30 days.", "Is that clear?", "Yes!"},
		},
		{
			name: "no terminal punctuation",
			text: "  Fees are 10%  ",
			want: []string{"Fees are 10%"},
		},
		{
			name: "newlines and tabs count as whitespace",
			text: "First rule.\n\n\tSecond rule.",
			want: []string{"First rule.", "Second rule."},
		},
		{
			name: "punctuation without whitespace does not split",
			text: "Version 2.5 applies.Next sentence",
			want: []string{"Version 2.5 applies.Next sentence"},
		},
		{
			name: "abbreviation is split naively",
			text: "See Dr. Smith.",
			want: []string{"See Dr.", "Smith."},
		},
		{
			name: "no-break space after a period",
			text: "Returns are accepted within 30 days.\u00a0Shipping is free.",
			want: []string{"Returns are accepted within 30 days.", "Shipping is free."},
		},
		{
			name: "vertical tab and line separator",
			text: "Rule one.\vRule two!\u2028Rule three?\u0085Rule four.",
			want: []string{"Rule one.", "Rule two!", "Rule three?", "Rule four."},
		},
		{
			name: "blank",
			text: " \n\t ",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.text))
		})
	}
}

func TestSentencesPreserveContent(t *testing.T) {
	inputs := []string{
		"A. B! C? D",
		"  The fee is set at 10% annually.   Late payment adds 2%!\nNo refunds?  ",
		"...!!! ???",
		"No punctuation at all",
		"Fees apply.\u00a0\u00a0Refunds do not.\u2029Done",
	}

	stripSpace := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}

	for _, in := range inputs {
		got := Sentences(in)
		assert.Equal(t, stripSpace(strings.TrimSpace(in)), stripSpace(strings.Join(got, "")), in)
		for _, s := range got {
			assert.Contains(t, in, s)
			assert.NotEmpty(t, s)
		}
	}
}
