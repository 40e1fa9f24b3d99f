package core

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/doccheck/internal/config"
	"github.com/agenthands/doccheck/internal/core/adjudicate"
	"github.com/agenthands/doccheck/internal/core/candidate"
	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/core/segment"
	"github.com/agenthands/doccheck/internal/llm"
)

// ErrTooFewDocuments is returned when a batch cannot form a single document pair.
var ErrTooFewDocuments = errors.New("at least 2 documents are required")

// Detector runs segmentation, candidate filtering and adjudication across
// every unordered pair of documents in a batch.
type Detector struct {
	Filter      *candidate.Filter
	Adjudicator *adjudicate.Adjudicator
	// Concurrency is the number of adjudications allowed in flight. 1 keeps
	// the calls strictly sequential.
	Concurrency int
}

func NewDetector(llmClient llm.LLMClient, cfg *config.Config) *Detector {
	return &Detector{
		Filter:      candidate.NewFilter(cfg.Detection.MaxCandidates, cfg.Detection.OverlapThreshold()),
		Adjudicator: adjudicate.NewAdjudicator(llmClient, cfg.Prompts),
		Concurrency: cfg.Concurrency.Adjudicate,
	}
}

// DocumentPairs lists the index pairs (i, j), i < j, in evaluation order.
func DocumentPairs(n int) [][2]int {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

type adjudication struct {
	docA, docB int
	pair       model.CandidatePair
	verdict    *model.Verdict
}

// DetectAll returns every contradiction found, ordered by document pair and
// then by candidate pair. A failed adjudication is logged and skipped. If ctx
// ends before all pairs are judged the analysis fails as a whole and no
// records are returned.
func (d *Detector) DetectAll(ctx context.Context, docs []model.Document) ([]model.ConflictRecord, error) {
	if len(docs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewDocuments, len(docs))
	}

	sentences := make([][]string, len(docs))
	for i, doc := range docs {
		sentences[i] = segment.Sentences(doc.Text)
	}

	var work []adjudication
	for _, ij := range DocumentPairs(len(docs)) {
		for _, p := range d.Filter.Pairs(sentences[ij[0]], sentences[ij[1]]) {
			work = append(work, adjudication{docA: ij[0], docB: ij[1], pair: p})
		}
	}

	if err := d.judgeAll(ctx, docs, work); err != nil {
		return nil, err
	}

	var conflicts []model.ConflictRecord
	for _, w := range work {
		if w.verdict == nil || !w.verdict.IsContradiction() {
			continue
		}
		conflicts = append(conflicts, model.ConflictRecord{
			DocA:        docs[w.docA].Name,
			SpanA:       w.pair.SentenceA,
			DocB:        docs[w.docB].Name,
			SpanB:       w.pair.SentenceB,
			Type:        model.VerdictContradiction,
			Explanation: w.verdict.Explanation,
		})
	}
	return conflicts, nil
}

// DetectPair is DetectAll for exactly two documents.
func (d *Detector) DetectPair(ctx context.Context, a, b model.Document) ([]model.ConflictRecord, error) {
	return d.DetectAll(ctx, []model.Document{a, b})
}

// judgeAll fills in verdicts in place. Each goroutine writes only its own
// slot so the input order survives parallel completion.
func (d *Detector) judgeAll(ctx context.Context, docs []model.Document, work []adjudication) error {
	limit := d.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for k := range work {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			w := &work[k]
			v, err := d.Adjudicator.Judge(gctx, w.pair)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("Warning: skipping pair [%s] %q || [%s] %q: %v",
					docs[w.docA].Name, w.pair.SentenceA, docs[w.docB].Name, w.pair.SentenceB, err)
				return nil
			}
			w.verdict = &v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("analysis aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("analysis aborted: %w", err)
	}
	return nil
}
