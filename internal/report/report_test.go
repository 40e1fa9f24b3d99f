package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(n int) []model.ConflictRecord {
	out := make([]model.ConflictRecord, n)
	for i := range out {
		out[i] = model.ConflictRecord{
			DocA:        "a.txt",
			SpanA:       fmt.Sprintf("Clause %d.", i),
			DocB:        "b.txt",
			SpanB:       "Other clause.",
			Type:        model.VerdictContradiction,
			Explanation: "Mismatch.",
		}
	}
	return out
}

func TestLinesFormat(t *testing.T) {
	lines := Lines([]model.ConflictRecord{{
		DocA:        "policy_a.txt",
		SpanA:       "Returns are accepted within 30 days.",
		DocB:        "policy_b.txt",
		SpanB:       "Returns are accepted within 60 days.",
		Explanation: "30 vs 60 days.",
	}})

	require.Len(t, lines, 3)
	assert.Equal(t, "1. [policy_a.txt] Returns are accepted within 30 days. || [policy_b.txt] Returns are accepted w", lines[0])
	assert.Equal(t, "ithin 60 days.", lines[1])
	assert.Equal(t, "    -> 30 vs 60 days.", lines[2])
}

func TestLinesWrapAtWidth(t *testing.T) {
	long := strings.Repeat("x", 200)
	lines := Lines([]model.ConflictRecord{{DocA: "a", SpanA: long, DocB: "b", SpanB: "y", Explanation: long}})

	joined := strings.Join(lines, "")
	assert.Contains(t, joined, long)
	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), LineWidth)
	}
}

func TestLinesCappedAt300Records(t *testing.T) {
	lines := Lines(sample(400))

	assert.Len(t, lines, 2*MaxRecords)
	assert.True(t, strings.HasPrefix(lines[len(lines)-2], "300. "))
}

func TestWrapRunes(t *testing.T) {
	assert.Equal(t, []string{"ééé", "éé"}, Wrap("ééééé", 3))
	assert.Nil(t, Wrap("", 3))
	assert.Equal(t, []string{"abc"}, Wrap("abc", 95))
}

func TestPaginate(t *testing.T) {
	pages := Paginate(nil)
	require.Len(t, pages, 1)
	assert.Equal(t, Page{Title}, pages[0])

	lines := make([]string, FirstPageLines+PageLines+1)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	pages = Paginate(lines)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0], FirstPageLines+1)
	assert.Len(t, pages[1], PageLines)
	assert.Equal(t, Page{fmt.Sprintf("line %d", FirstPageLines+PageLines)}, pages[2])
}

func TestRenderAndWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteFile(dir, "batch-1", sample(40))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "batch-1.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, Title+"\n"))
	// 80 lines do not fit on page one.
	assert.Equal(t, 1, strings.Count(text, "\f"))
	assert.Contains(t, text, "40. [a.txt] Clause 39. || [b.txt] Other clause.")
}
