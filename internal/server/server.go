package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/doccheck/internal/config"
	"github.com/agenthands/doccheck/internal/core"
	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/report"
	"github.com/agenthands/doccheck/internal/store"
)

type Server struct {
	Store    store.Store
	Detector *core.Detector
	Config   *config.Config
}

func NewServer(cfg *config.Config, st store.Store, detector *core.Detector) *Server {
	return &Server{
		Store:    st,
		Detector: detector,
		Config:   cfg,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors(s.Config.Server.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/init", s.Init)
	r.POST("/upload", s.Upload)
	r.POST("/analyze", s.Analyze)
	r.POST("/report", s.Report)
	r.GET("/download/:batch_id", s.Download)
	r.GET("/batches/:batch_id", s.GetBatch)

	return r
}

// Init registers the user if needed and opens a fresh batch.
func (s *Server) Init(c *gin.Context) {
	userID := c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	ctx := c.Request.Context()

	if err := s.Store.InitUser(ctx, userID); err != nil {
		s.fail(c, "init user", err)
		return
	}
	batchID, err := s.Store.CreateBatch(ctx, userID)
	if err != nil {
		s.fail(c, "create batch", err)
		return
	}
	totals, err := s.Store.Totals(ctx, userID)
	if err != nil {
		s.fail(c, "load totals", err)
		return
	}

	c.JSON(http.StatusOK, InitResponse{BatchID: batchID, Totals: totals})
}

// Upload stores the file on disk and adds its text to the batch. Only a
// successfully read document counts towards docs_analyzed.
func (s *Server) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	batchID := c.PostForm("batch_id")
	userID := c.PostForm("user_id")
	ctx := c.Request.Context()

	if _, err := s.Store.Totals(ctx, userID); err != nil {
		s.fail(c, "load user", err)
		return
	}
	if _, err := s.Store.Batch(ctx, batchID); err != nil {
		s.fail(c, "load batch", err)
		return
	}

	if err := os.MkdirAll(s.Config.Server.UploadDir, 0o755); err != nil {
		s.fail(c, "create upload dir", err)
		return
	}
	name := filepath.Base(file.Filename)
	path := filepath.Join(s.Config.Server.UploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), name))
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.fail(c, "save upload", err)
		return
	}

	text, err := readText(path)
	if err != nil {
		c.JSON(http.StatusOK, UploadResponse{OK: false, Error: fmt.Sprintf("parse_failed: %v", err)})
		return
	}

	if err := s.Store.AddDocument(ctx, batchID, model.Document{Name: name, Text: text}); err != nil {
		s.fail(c, "add document", err)
		return
	}
	if err := s.Store.Increment(ctx, userID, model.CounterDocsAnalyzed, 1); err != nil {
		s.fail(c, "count document", err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{OK: true, Path: path})
}

// Analyze runs conflict detection over every document pair in the batch
// and stores the result for later reports.
func (s *Server) Analyze(c *gin.Context) {
	batchID := c.PostForm("batch_id")
	userID := c.PostForm("user_id")
	ctx := c.Request.Context()

	// Analysis leaves the counters alone, so totals read up front are final.
	totals, err := s.Store.Totals(ctx, userID)
	if err != nil {
		s.fail(c, "load totals", err)
		return
	}
	docs, err := s.Store.Documents(ctx, batchID)
	if err != nil {
		s.fail(c, "load documents", err)
		return
	}
	if len(docs) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload at least 2 documents before analysis"})
		return
	}

	conflicts, err := s.Detector.DetectAll(ctx, docs)
	if err != nil {
		s.fail(c, "analyze batch", err)
		return
	}
	if conflicts == nil {
		conflicts = []model.ConflictRecord{}
	}

	if err := s.Store.RecordConflicts(ctx, batchID, conflicts); err != nil {
		s.fail(c, "record conflicts", err)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		BatchID:          batchID,
		Conflicts:        conflicts,
		DocsAnalyzed:     totals.DocsAnalyzed,
		ReportsGenerated: totals.ReportsGenerated,
	})
}

// Report renders the stored conflicts of a batch to a downloadable file.
func (s *Server) Report(c *gin.Context) {
	batchID := c.PostForm("batch_id")
	userID := c.PostForm("user_id")
	ctx := c.Request.Context()

	if _, err := s.Store.Totals(ctx, userID); err != nil {
		s.fail(c, "load user", err)
		return
	}
	conflicts, err := s.Store.Conflicts(ctx, batchID)
	if err != nil {
		s.fail(c, "load conflicts", err)
		return
	}
	if _, err := report.WriteFile(s.Config.Server.ReportDir, batchID, conflicts); err != nil {
		s.fail(c, "write report", err)
		return
	}

	if err := s.Store.Increment(ctx, userID, model.CounterReportsGenerated, 1); err != nil {
		s.fail(c, "count report", err)
		return
	}
	totals, err := s.Store.Totals(ctx, userID)
	if err != nil {
		s.fail(c, "load totals", err)
		return
	}

	c.JSON(http.StatusOK, ReportResponse{
		BatchID:          batchID,
		ReportURL:        "/download/" + batchID,
		DocsAnalyzed:     totals.DocsAnalyzed,
		ReportsGenerated: totals.ReportsGenerated,
	})
}

func (s *Server) Download(c *gin.Context) {
	batchID := c.Param("batch_id")
	if batchID == "" || filepath.Base(batchID) != batchID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	path := report.Path(s.Config.Server.ReportDir, batchID)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	c.FileAttachment(path, fmt.Sprintf("report_%s.txt", batchID))
}

func (s *Server) GetBatch(c *gin.Context) {
	b, err := s.Store.Batch(c.Request.Context(), c.Param("batch_id"))
	if err != nil {
		s.fail(c, "load batch", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// fail maps store and core errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrBatchNotFound), errors.Is(err, store.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrTooFewDocuments):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		log.Printf("Failed to %s: %v", op, err)
	}
	c.JSON(status, gin.H{"error": fmt.Sprintf("%s: %v", op, err)})
}

// readText decodes an upload as UTF-8, dropping invalid bytes.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func cors(allowed []string) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := origins[origin]; ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "*")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
