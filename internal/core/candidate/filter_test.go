package candidate

import (
	"fmt"
	"testing"

	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsNumericOverlap(t *testing.T) {
	f := NewFilter(0, DefaultWordOverlapThreshold)

	pairs := f.Pairs([]string{"Fees are 10%"}, []string{"The fee is set at 10% annually"})

	require.Len(t, pairs, 1)
	assert.Equal(t, model.CandidatePair{SentenceA: "Fees are 10%", SentenceB: "The fee is set at 10% annually"}, pairs[0])
}

func TestPairsUnrelatedSentencesExcluded(t *testing.T) {
	f := NewFilter(0, DefaultWordOverlapThreshold)

	pairs := f.Pairs([]string{"The sky is blue."}, []string{"Bananas are yellow fruit."})

	assert.Empty(t, pairs)
}

func TestPairsWordOverlapThreshold(t *testing.T) {
	f := NewFilter(0, DefaultWordOverlapThreshold)

	// "returns are accepted within" is four shared words.
	kept := f.Pairs(
		[]string{"Returns are accepted within thirty days."},
		[]string{"Returns are accepted within sixty days."},
	)
	assert.Len(t, kept, 1)

	// Exactly three shared words is not enough.
	dropped := f.Pairs(
		[]string{"Returns are accepted promptly."},
		[]string{"returns ARE accepted rarely."},
	)
	assert.Empty(t, dropped)
}

func TestPairsNumberIsSubstringMatch(t *testing.T) {
	f := NewFilter(0, DefaultWordOverlapThreshold)

	pairs := f.Pairs([]string{"Limit is 10 items."}, []string{"Orders over 100 ship free."})

	assert.Len(t, pairs, 1)
}

func TestPairsCapped(t *testing.T) {
	f := NewFilter(0, DefaultWordOverlapThreshold)

	a := make([]string, 100)
	b := make([]string, 100)
	for i := range a {
		a[i] = fmt.Sprintf("Clause %d applies to all 7 regions.", i)
		b[i] = fmt.Sprintf("Section %d covers 7 regions.", i)
	}

	pairs := f.Pairs(a, b)

	require.Len(t, pairs, DefaultMaxPairs)
	// Nested order: the first 50 all come from a[0].
	for j, p := range pairs {
		assert.Equal(t, a[0], p.SentenceA)
		assert.Equal(t, b[j], p.SentenceB)
	}
}

func TestPairsNestedOrder(t *testing.T) {
	f := NewFilter(10, DefaultWordOverlapThreshold)

	a := []string{"Pay 5 dollars.", "Nothing here.", "Pay 9 dollars."}
	b := []string{"Costs 9 total.", "Costs 5 total."}

	pairs := f.Pairs(a, b)

	require.Len(t, pairs, 2)
	assert.Equal(t, "Pay 5 dollars.", pairs[0].SentenceA)
	assert.Equal(t, "Costs 5 total.", pairs[0].SentenceB)
	assert.Equal(t, "Pay 9 dollars.", pairs[1].SentenceA)
	assert.Equal(t, "Costs 9 total.", pairs[1].SentenceB)
}

func TestPairsTunableCap(t *testing.T) {
	f := NewFilter(3, DefaultWordOverlapThreshold)

	a := []string{"Rate is 4%.", "Rate is 4% too."}
	b := []string{"4 percent", "fee 4", "4 always"}

	assert.Len(t, f.Pairs(a, b), 3)
}

func TestPairsEmptyInputs(t *testing.T) {
	f := NewFilter(0, DefaultWordOverlapThreshold)

	assert.Empty(t, f.Pairs(nil, []string{"a 1"}))
	assert.Empty(t, f.Pairs([]string{"a 1"}, nil))
}

func TestPairsZeroThresholdKeepsSingleSharedWord(t *testing.T) {
	a := []string{"Refunds need approval first."}
	b := []string{"Approval takes time.", "Nothing else here."}

	assert.Empty(t, NewFilter(0, DefaultWordOverlapThreshold).Pairs(a, b))

	pairs := NewFilter(0, 0).Pairs(a, b)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Approval takes time.", pairs[0].SentenceB)

	assert.Equal(t, DefaultWordOverlapThreshold, NewFilter(0, -1).WordOverlapThreshold)
}
