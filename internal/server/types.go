package server

import "github.com/agenthands/doccheck/internal/core/model"

type InitResponse struct {
	BatchID string            `json:"batch_id"`
	Totals  model.UsageTotals `json:"totals"`
}

type UploadResponse struct {
	OK    bool   `json:"ok"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

type AnalyzeResponse struct {
	BatchID          string                 `json:"batch_id"`
	Conflicts        []model.ConflictRecord `json:"conflicts"`
	DocsAnalyzed     int                    `json:"docs_analyzed"`
	ReportsGenerated int                    `json:"reports_generated"`
}

type ReportResponse struct {
	BatchID          string `json:"batch_id"`
	ReportURL        string `json:"report_url"`
	DocsAnalyzed     int    `json:"docs_analyzed"`
	ReportsGenerated int    `json:"reports_generated"`
}
