package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/driver"
)

// GraphStore persists batches in Memgraph:
// (:User)-[:OWNS]->(:Batch)-[:HAS_DOCUMENT|HAS_CONFLICT]->(:Document|:Conflict).
// Documents and conflicts carry a seq property so reads keep insertion order.
type GraphStore struct {
	Driver        driver.GraphDriver
	UUIDGenerator func() string
	Now           func() time.Time
}

func NewGraphStore(d driver.GraphDriver) *GraphStore {
	return &GraphStore{
		Driver:        d,
		UUIDGenerator: func() string { return uuid.New().String() },
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *GraphStore) InitUser(ctx context.Context, userID string) error {
	_, err := s.Driver.ExecuteQuery(ctx, driver.InitUserQuery, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		return fmt.Errorf("failed to init user: %w", err)
	}
	return nil
}

func (s *GraphStore) CreateBatch(ctx context.Context, userID string) (string, error) {
	id := s.UUIDGenerator()
	res, err := s.Driver.ExecuteQuery(ctx, driver.CreateBatchQuery, map[string]interface{}{
		"uuid":       id,
		"user_id":    userID,
		"created_at": s.Now().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create batch: %w", err)
	}
	if len(res.Records) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return id, nil
}

func (s *GraphStore) Batch(ctx context.Context, batchID string) (model.Batch, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetBatchQuery, map[string]interface{}{
		"batch_id": batchID,
	})
	if err != nil {
		return model.Batch{}, fmt.Errorf("failed to load batch: %w", err)
	}
	if len(res.Records) == 0 {
		return model.Batch{}, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	rec := res.Records[0]
	return model.Batch{
		ID:            recordString(rec, "uuid"),
		UserID:        recordString(rec, "user_id"),
		DocumentCount: recordInt(rec, "document_count"),
		ConflictCount: recordInt(rec, "conflict_count"),
	}, nil
}

func (s *GraphStore) AddDocument(ctx context.Context, batchID string, doc model.Document) error {
	res, err := s.Driver.ExecuteQuery(ctx, driver.AddDocumentQuery, map[string]interface{}{
		"batch_id": batchID,
		"uuid":     s.UUIDGenerator(),
		"name":     doc.Name,
		"text":     doc.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	return nil
}

func (s *GraphStore) Documents(ctx context.Context, batchID string) ([]model.Document, error) {
	if _, err := s.Batch(ctx, batchID); err != nil {
		return nil, err
	}
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetDocumentsQuery, map[string]interface{}{
		"batch_id": batchID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	docs := make([]model.Document, 0, len(res.Records))
	for _, rec := range res.Records {
		docs = append(docs, model.Document{
			Name: recordString(rec, "name"),
			Text: recordString(rec, "text"),
		})
	}
	return docs, nil
}

func (s *GraphStore) RecordConflicts(ctx context.Context, batchID string, conflicts []model.ConflictRecord) error {
	if _, err := s.Batch(ctx, batchID); err != nil {
		return err
	}

	params := map[string]interface{}{"batch_id": batchID}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.ClearConflictsQuery, params); err != nil {
		return fmt.Errorf("failed to clear conflicts: %w", err)
	}
	if len(conflicts) == 0 {
		return nil
	}

	rows := make([]interface{}, len(conflicts))
	for i, c := range conflicts {
		rows[i] = map[string]interface{}{
			"uuid":        s.UUIDGenerator(),
			"seq":         i,
			"doc_a":       c.DocA,
			"span_a":      c.SpanA,
			"doc_b":       c.DocB,
			"span_b":      c.SpanB,
			"type":        c.Type,
			"explanation": c.Explanation,
		}
	}
	_, err := s.Driver.ExecuteQuery(ctx, driver.SaveConflictsQuery, map[string]interface{}{
		"batch_id":  batchID,
		"conflicts": rows,
	})
	if err != nil {
		return fmt.Errorf("failed to save conflicts: %w", err)
	}
	return nil
}

func (s *GraphStore) Conflicts(ctx context.Context, batchID string) ([]model.ConflictRecord, error) {
	if _, err := s.Batch(ctx, batchID); err != nil {
		return nil, err
	}
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetConflictsQuery, map[string]interface{}{
		"batch_id": batchID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load conflicts: %w", err)
	}

	out := make([]model.ConflictRecord, 0, len(res.Records))
	for _, rec := range res.Records {
		out = append(out, model.ConflictRecord{
			DocA:        recordString(rec, "doc_a"),
			SpanA:       recordString(rec, "span_a"),
			DocB:        recordString(rec, "doc_b"),
			SpanB:       recordString(rec, "span_b"),
			Type:        recordString(rec, "type"),
			Explanation: recordString(rec, "explanation"),
		})
	}
	return out, nil
}

func (s *GraphStore) Increment(ctx context.Context, userID, counter string, n int) error {
	if err := validCounter(counter); err != nil {
		return err
	}
	res, err := s.Driver.ExecuteQuery(ctx, driver.IncrementCounterQuery, map[string]interface{}{
		"user_id": userID,
		"counter": counter,
		"n":       n,
	})
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", counter, err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return nil
}

func (s *GraphStore) Totals(ctx context.Context, userID string) (model.UsageTotals, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.GetTotalsQuery, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		return model.UsageTotals{}, fmt.Errorf("failed to load totals: %w", err)
	}
	if len(res.Records) == 0 {
		return model.UsageTotals{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	rec := res.Records[0]
	return model.UsageTotals{
		DocsAnalyzed:     recordInt(rec, "docs_analyzed"),
		ReportsGenerated: recordInt(rec, "reports_generated"),
	}, nil
}

func (s *GraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func recordString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func recordInt(rec *neo4j.Record, key string) int {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
