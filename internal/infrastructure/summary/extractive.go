// Package summary holds the deterministic extractive fallback tier: the
// first qualifying sentences of the cleaned text, verbatim. It cannot fail
// and needs no external capability, which is exactly why it sits last in
// the router.
package summary

import (
	"context"
	"regexp"
	"strings"

	"github.com/medscrub/medscrub/internal/core/domain"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

type Extractive struct {
	maxSentences   int
	minSentenceLen int
}

func NewExtractive(maxSentences, minSentenceLen int) *Extractive {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	if minSentenceLen <= 0 {
		minSentenceLen = 20
	}
	return &Extractive{
		maxSentences:   maxSentences,
		minSentenceLen: minSentenceLen,
	}
}

func (e *Extractive) Tier() domain.SummaryTier {
	return domain.TierExtractive
}

func (e *Extractive) Available(_ context.Context) bool {
	return true
}

// Summarize keeps sentences longer than the minimum length, takes the first
// few and joins them with sentence-terminating punctuation. An empty result
// means no qualifying content existed, which the caller must treat as "no
// summary available" rather than an error.
func (e *Extractive) Summarize(_ context.Context, text string) (string, error) {
	var kept []string
	for _, raw := range sentenceSplit.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if len(sentence) > e.minSentenceLen {
			kept = append(kept, sentence)
		}
		if len(kept) == e.maxSentences {
			break
		}
	}

	out := strings.Join(kept, ". ")
	if out != "" && !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out, nil
}
