package model

const (
	CounterDocsAnalyzed     = "docs_analyzed"
	CounterReportsGenerated = "reports_generated"
)

type UsageTotals struct {
	DocsAnalyzed     int `json:"docs_analyzed"`
	ReportsGenerated int `json:"reports_generated"`
}

// Batch is the bookkeeping view of an analysis batch.
type Batch struct {
	ID            string `json:"batch_id"`
	UserID        string `json:"user_id"`
	DocumentCount int    `json:"document_count"`
	ConflictCount int    `json:"conflict_count"`
}
