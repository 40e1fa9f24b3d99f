package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/agenthands/doccheck/internal/core/model"
)

type memoryBatch struct {
	userID    string
	docs      []model.Document
	conflicts []model.ConflictRecord
}

// MemoryStore lives for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	batches map[string]*memoryBatch
	totals  map[string]*model.UsageTotals

	UUIDGenerator func() string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		batches:       make(map[string]*memoryBatch),
		totals:        make(map[string]*model.UsageTotals),
		UUIDGenerator: func() string { return uuid.New().String() },
	}
}

func (s *MemoryStore) InitUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.totals[userID]; !ok {
		s.totals[userID] = &model.UsageTotals{}
	}
	return nil
}

func (s *MemoryStore) CreateBatch(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.totals[userID]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	id := s.UUIDGenerator()
	s.batches[id] = &memoryBatch{userID: userID}
	return id, nil
}

func (s *MemoryStore) Batch(ctx context.Context, batchID string) (model.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.batch(batchID)
	if err != nil {
		return model.Batch{}, err
	}
	return model.Batch{
		ID:            batchID,
		UserID:        b.userID,
		DocumentCount: len(b.docs),
		ConflictCount: len(b.conflicts),
	}, nil
}

func (s *MemoryStore) AddDocument(ctx context.Context, batchID string, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.batch(batchID)
	if err != nil {
		return err
	}
	b.docs = append(b.docs, doc)
	return nil
}

func (s *MemoryStore) Documents(ctx context.Context, batchID string) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.batch(batchID)
	if err != nil {
		return nil, err
	}
	return append([]model.Document(nil), b.docs...), nil
}

func (s *MemoryStore) RecordConflicts(ctx context.Context, batchID string, conflicts []model.ConflictRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.batch(batchID)
	if err != nil {
		return err
	}
	b.conflicts = append([]model.ConflictRecord(nil), conflicts...)
	return nil
}

func (s *MemoryStore) Conflicts(ctx context.Context, batchID string) ([]model.ConflictRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.batch(batchID)
	if err != nil {
		return nil, err
	}
	return append([]model.ConflictRecord(nil), b.conflicts...), nil
}

func (s *MemoryStore) Increment(ctx context.Context, userID, counter string, n int) error {
	if err := validCounter(counter); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.totals[userID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	switch counter {
	case model.CounterDocsAnalyzed:
		t.DocsAnalyzed += n
	case model.CounterReportsGenerated:
		t.ReportsGenerated += n
	}
	return nil
}

func (s *MemoryStore) Totals(ctx context.Context, userID string) (model.UsageTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.totals[userID]
	if !ok {
		return model.UsageTotals{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return *t, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// batch must be called with s.mu held.
func (s *MemoryStore) batch(batchID string) (*memoryBatch, error) {
	b, ok := s.batches[batchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	return b, nil
}
