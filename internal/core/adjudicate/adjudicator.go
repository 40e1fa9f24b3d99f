// Package adjudicate asks a language model whether two sentences contradict.
package adjudicate

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/doccheck/internal/config"
	"github.com/agenthands/doccheck/internal/core/common"
	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/llm"
)

type Adjudicator struct {
	LLM     llm.LLMClient
	Prompts config.Prompts
}

func NewAdjudicator(llmClient llm.LLMClient, prompts config.Prompts) *Adjudicator {
	if prompts.System == "" {
		prompts.System = config.DefaultSystemPrompt
	}
	if prompts.User == "" {
		prompts.User = config.DefaultUserPrompt
	}
	return &Adjudicator{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// Prompt renders the user instruction with both sentences embedded verbatim.
func (a *Adjudicator) Prompt(sentenceA, sentenceB string) string {
	return fmt.Sprintf(a.Prompts.User, sentenceA, sentenceB)
}

// Adjudicate returns the model's raw answer for one sentence pair.
func (a *Adjudicator) Adjudicate(ctx context.Context, sentenceA, sentenceB string) (string, error) {
	response, err := a.LLM.Generate(ctx, a.Prompts.System, a.Prompt(sentenceA, sentenceB))
	if err != nil {
		return "", fmt.Errorf("failed to adjudicate pair: %w", err)
	}
	return response, nil
}

// Judge adjudicates a candidate pair and parses the answer.
func (a *Adjudicator) Judge(ctx context.Context, pair model.CandidatePair) (model.Verdict, error) {
	response, err := a.Adjudicate(ctx, pair.SentenceA, pair.SentenceB)
	if err != nil {
		return model.Verdict{}, err
	}
	return ParseVerdict(response), nil
}

type verdictPayload struct {
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
}

// ParseVerdict reads a model answer leniently. A JSON object whose "type" is
// one of contradiction, overlap or neutral wins. Otherwise the answer is scanned as text and counts as a
// contradiction whenever the word "contradiction" appears in it, in any case.
// Prose that merely mentions the word (e.g. "no contradiction") is misread on
// the text path.
func ParseVerdict(response string) model.Verdict {
	raw := strings.TrimSpace(response)

	if payload, err := common.ParseJSON[verdictPayload](raw); err == nil {
		if typ := normalizeType(payload.Type); knownType(typ) {
			explanation := strings.TrimSpace(payload.Explanation)
			if explanation == "" {
				explanation = raw
			}
			return model.Verdict{Type: typ, Explanation: explanation, Structured: true}
		}
	}

	lower := strings.ToLower(raw)
	v := model.Verdict{Type: model.VerdictNeutral, Explanation: raw}
	switch {
	case strings.Contains(lower, model.VerdictContradiction):
		v.Type = model.VerdictContradiction
	case strings.Contains(lower, model.VerdictOverlap):
		v.Type = model.VerdictOverlap
	}
	return v
}

func normalizeType(t string) string {
	return strings.ToLower(strings.Trim(t, " \t\r\n\"'.`"))
}

func knownType(t string) bool {
	switch t {
	case model.VerdictContradiction, model.VerdictOverlap, model.VerdictNeutral:
		return true
	}
	return false
}
