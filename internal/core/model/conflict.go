package model

const (
	VerdictContradiction = "contradiction"
	VerdictOverlap       = "overlap"
	VerdictNeutral       = "neutral"
)

// ConflictRecord describes one detected contradiction between two document spans.
// SpanA and SpanB are verbatim sentences of DocA and DocB.
type ConflictRecord struct {
	DocA        string `json:"doc_a"`
	SpanA       string `json:"span_a"`
	DocB        string `json:"doc_b"`
	SpanB       string `json:"span_b"`
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
}

// Verdict is the parsed model answer for one candidate pair.
type Verdict struct {
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
	Structured  bool   `json:"-"` // parsed from a JSON object rather than by substring
}

func (v Verdict) IsContradiction() bool {
	return v.Type == VerdictContradiction
}
