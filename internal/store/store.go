// Package store keeps analysis batches, their documents and detected
// conflicts, plus per-user usage counters. A Store is created once and passed
// to the request handlers that need it.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/doccheck/internal/config"
	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/driver"
)

var (
	ErrBatchNotFound  = errors.New("batch not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUnknownCounter = errors.New("unknown usage counter")
)

type Store interface {
	InitUser(ctx context.Context, userID string) error
	CreateBatch(ctx context.Context, userID string) (string, error)
	Batch(ctx context.Context, batchID string) (model.Batch, error)
	AddDocument(ctx context.Context, batchID string, doc model.Document) error
	Documents(ctx context.Context, batchID string) ([]model.Document, error)
	// RecordConflicts replaces whatever the batch held before.
	RecordConflicts(ctx context.Context, batchID string, conflicts []model.ConflictRecord) error
	Conflicts(ctx context.Context, batchID string) ([]model.ConflictRecord, error)
	Increment(ctx context.Context, userID, counter string, n int) error
	Totals(ctx context.Context, userID string) (model.UsageTotals, error)
	Close(ctx context.Context) error
}

// New opens the backend named in cfg.Store.Backend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(ctx); err != nil {
			return nil, err
		}
		return NewGraphStore(d), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

func validCounter(counter string) error {
	switch counter {
	case model.CounterDocsAnalyzed, model.CounterReportsGenerated:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCounter, counter)
}
