// Package candidate narrows the sentence cross-product of two documents
// down to the pairs worth sending to the adjudicator.
package candidate

import (
	"regexp"
	"strings"

	"github.com/agenthands/doccheck/internal/core/model"
)

const (
	DefaultMaxPairs             = 50
	DefaultWordOverlapThreshold = 3
)

// numberToken matches standalone digit runs, optionally with a trailing '%'.
var numberToken = regexp.MustCompile(`\b\d+%?\b`)

// Filter keeps a pair when a number from sentence A occurs in sentence B, or
// when the two share more than WordOverlapThreshold lowercase words.
type Filter struct {
	MaxPairs             int
	WordOverlapThreshold int
}

// NewFilter applies the defaults for a non-positive cap or a negative threshold.
// A threshold of 0 keeps any pair sharing one word.
func NewFilter(maxPairs, wordOverlapThreshold int) *Filter {
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	if wordOverlapThreshold < 0 {
		wordOverlapThreshold = DefaultWordOverlapThreshold
	}
	return &Filter{
		MaxPairs:             maxPairs,
		WordOverlapThreshold: wordOverlapThreshold,
	}
}

// Pairs walks a against b in nested order and returns the first MaxPairs matches.
func (f *Filter) Pairs(sentencesA, sentencesB []string) []model.CandidatePair {
	wordsB := make([]map[string]struct{}, len(sentencesB))
	for i, sb := range sentencesB {
		wordsB[i] = wordSet(sb)
	}

	var pairs []model.CandidatePair
	for _, sa := range sentencesA {
		numbers := numberToken.FindAllString(sa, -1)
		wordsA := wordSet(sa)

		for j, sb := range sentencesB {
			if !sharesNumber(numbers, sb) && overlap(wordsA, wordsB[j]) <= f.WordOverlapThreshold {
				continue
			}
			pairs = append(pairs, model.CandidatePair{SentenceA: sa, SentenceB: sb})
			if len(pairs) == f.MaxPairs {
				return pairs
			}
		}
	}
	return pairs
}

// sharesNumber is a plain substring test, so "10" also hits "100".
func sharesNumber(numbers []string, sentence string) bool {
	for _, n := range numbers {
		if strings.Contains(sentence, n) {
			return true
		}
	}
	return false
}

func wordSet(sentence string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(sentence))
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}
