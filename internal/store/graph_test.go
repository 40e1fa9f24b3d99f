package store

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/driver"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batchKeys = []string{"uuid", "user_id", "document_count", "conflict_count"}

func TestGraphStoreCreateBatch(t *testing.T) {
	d := &MockDriver{Results: []neo4j.EagerResult{rows([]string{"uuid"}, []any{"batch-1"})}}
	s := NewGraphStore(d)
	s.UUIDGenerator = func() string { return "batch-1" }

	id, err := s.CreateBatch(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "batch-1", id)
	require.Len(t, d.Queries, 1)
	assert.Equal(t, driver.CreateBatchQuery, d.Queries[0].Query)
	assert.Equal(t, "user-1", d.Queries[0].Params["user_id"])
}

func TestGraphStoreCreateBatchUnknownUser(t *testing.T) {
	s := NewGraphStore(&MockDriver{Results: []neo4j.EagerResult{{}}})

	_, err := s.CreateBatch(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGraphStoreBatch(t *testing.T) {
	d := &MockDriver{Results: []neo4j.EagerResult{
		rows(batchKeys, []any{"batch-1", "user-1", int64(3), int64(2)}),
	}}
	s := NewGraphStore(d)

	b, err := s.Batch(context.Background(), "batch-1")

	require.NoError(t, err)
	assert.Equal(t, model.Batch{ID: "batch-1", UserID: "user-1", DocumentCount: 3, ConflictCount: 2}, b)
}

func TestGraphStoreDocumentsInOrder(t *testing.T) {
	d := &MockDriver{Results: []neo4j.EagerResult{
		rows(batchKeys, []any{"batch-1", "user-1", int64(2), int64(0)}),
		rows([]string{"name", "text"},
			[]any{"a.txt", "First."},
			[]any{"b.txt", "Second."},
		),
	}}
	s := NewGraphStore(d)

	docs, err := s.Documents(context.Background(), "batch-1")

	require.NoError(t, err)
	assert.Equal(t, []model.Document{{Name: "a.txt", Text: "First."}, {Name: "b.txt", Text: "Second."}}, docs)
	assert.Equal(t, driver.GetDocumentsQuery, d.Queries[1].Query)
}

func TestGraphStoreMissingBatch(t *testing.T) {
	s := NewGraphStore(&MockDriver{Results: []neo4j.EagerResult{{}}})

	_, err := s.Conflicts(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestGraphStoreRecordConflictsReplaces(t *testing.T) {
	d := &MockDriver{Results: []neo4j.EagerResult{
		rows(batchKeys, []any{"batch-1", "user-1", int64(2), int64(5)}),
		{},
		rows([]string{"saved"}, []any{int64(2)}),
	}}
	s := NewGraphStore(d)

	conflicts := []model.ConflictRecord{
		{DocA: "a", SpanA: "x", DocB: "b", SpanB: "y", Type: "contradiction", Explanation: "first"},
		{DocA: "a", SpanA: "z", DocB: "b", SpanB: "w", Type: "contradiction", Explanation: "second"},
	}
	require.NoError(t, s.RecordConflicts(context.Background(), "batch-1", conflicts))

	require.Len(t, d.Queries, 3)
	assert.Equal(t, driver.ClearConflictsQuery, d.Queries[1].Query)
	assert.Equal(t, driver.SaveConflictsQuery, d.Queries[2].Query)

	saved := d.Queries[2].Params["conflicts"].([]interface{})
	require.Len(t, saved, 2)
	second := saved[1].(map[string]interface{})
	assert.Equal(t, 1, second["seq"])
	assert.Equal(t, "second", second["explanation"])
}

func TestGraphStoreRecordNoConflictsOnlyClears(t *testing.T) {
	d := &MockDriver{Results: []neo4j.EagerResult{
		rows(batchKeys, []any{"batch-1", "user-1", int64(2), int64(1)}),
	}}
	s := NewGraphStore(d)

	require.NoError(t, s.RecordConflicts(context.Background(), "batch-1", nil))

	require.Len(t, d.Queries, 2)
	assert.Equal(t, driver.ClearConflictsQuery, d.Queries[1].Query)
}

func TestGraphStoreConflicts(t *testing.T) {
	keys := []string{"doc_a", "span_a", "doc_b", "span_b", "type", "explanation"}
	d := &MockDriver{Results: []neo4j.EagerResult{
		rows(batchKeys, []any{"batch-1", "user-1", int64(2), int64(1)}),
		rows(keys, []any{"a", "x", "b", "y", "contradiction", "why"}),
	}}
	s := NewGraphStore(d)

	got, err := s.Conflicts(context.Background(), "batch-1")

	require.NoError(t, err)
	assert.Equal(t, []model.ConflictRecord{{DocA: "a", SpanA: "x", DocB: "b", SpanB: "y", Type: "contradiction", Explanation: "why"}}, got)
}

func TestGraphStoreCounters(t *testing.T) {
	keys := []string{"docs_analyzed", "reports_generated"}
	d := &MockDriver{Results: []neo4j.EagerResult{
		rows(keys, []any{int64(1), int64(0)}),
		rows(keys, []any{int64(1), int64(0)}),
	}}
	s := NewGraphStore(d)
	ctx := context.Background()

	require.NoError(t, s.Increment(ctx, "user-1", model.CounterDocsAnalyzed, 1))
	assert.Equal(t, "docs_analyzed", d.Queries[0].Params["counter"])

	totals, err := s.Totals(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.UsageTotals{DocsAnalyzed: 1}, totals)

	assert.ErrorIs(t, s.Increment(ctx, "user-1", "bogus", 1), ErrUnknownCounter)
}

func TestGraphStoreDriverError(t *testing.T) {
	s := NewGraphStore(&MockDriver{Err: errors.New("connection refused")})

	err := s.InitUser(context.Background(), "user-1")

	assert.Error(t, err)
}
