// Package report renders detected conflicts as a paginated plain-text report.
// The layout mirrors the printed report: a title, one wrapped line per
// conflict followed by its wrapped explanation.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/doccheck/internal/core/model"
)

const (
	Title = "Smart Doc Checker - Contradictions Report"

	MaxRecords     = 300
	LineWidth      = 95
	FirstPageLines = 53 // the title takes the top of page one
	PageLines      = 55

	pageBreak = "\f\n"
)

// Page is one printed page worth of lines.
type Page []string

// Lines returns the record and explanation lines for up to MaxRecords
// conflicts, each hard-wrapped at LineWidth characters.
func Lines(conflicts []model.ConflictRecord) []string {
	if len(conflicts) > MaxRecords {
		conflicts = conflicts[:MaxRecords]
	}

	var lines []string
	for i, c := range conflicts {
		line := fmt.Sprintf("%d. [%s] %s || [%s] %s", i+1, c.DocA, c.SpanA, c.DocB, c.SpanB)
		lines = append(lines, Wrap(line, LineWidth)...)
		lines = append(lines, Wrap("    -> "+c.Explanation, LineWidth)...)
	}
	return lines
}

// Paginate lays lines out over pages. Page one always exists and starts with
// the title.
func Paginate(lines []string) []Page {
	pages := []Page{{Title}}
	room := FirstPageLines
	for _, l := range lines {
		if room == 0 {
			pages = append(pages, Page{})
			room = PageLines
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], l)
		room--
	}
	return pages
}

// Render produces the full report text. Pages are separated by a form feed.
func Render(conflicts []model.ConflictRecord) string {
	pages := Paginate(Lines(conflicts))

	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteString(pageBreak)
		}
		for _, l := range p {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Path is where WriteFile puts the report for a batch.
func Path(dir, batchID string) string {
	return filepath.Join(dir, batchID+".txt")
}

// WriteFile renders conflicts into dir and returns the file path.
func WriteFile(dir, batchID string, conflicts []model.ConflictRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	path := Path(dir, batchID)
	if err := os.WriteFile(path, []byte(Render(conflicts)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Wrap cuts s into chunks of at most width characters without regard for
// word boundaries. An empty string yields no chunks.
func Wrap(s string, width int) []string {
	runes := []rune(s)
	var out []string
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
