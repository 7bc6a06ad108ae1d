package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/core/ports"
)

// SummaryRouter tries summarization providers in fixed priority order and
// stops at the first one that yields text. The AI tiers are skipped entirely
// when the caller did not ask for an AI summary; the last provider is the
// deterministic extractive tier, which cannot fail.
type SummaryRouter struct {
	aiTiers  []ports.SummaryProvider
	fallback ports.SummaryProvider
	log      *slog.Logger
}

func NewSummaryRouter(aiTiers []ports.SummaryProvider, fallback ports.SummaryProvider, log *slog.Logger) *SummaryRouter {
	return &SummaryRouter{
		aiTiers:  aiTiers,
		fallback: fallback,
		log:      log,
	}
}

// Summarize returns the provenance-tagged summary, the tier that produced it,
// and diagnostics for every tier that was skipped or failed. An empty summary
// means no qualifying content existed; it is not an error.
func (r *SummaryRouter) Summarize(ctx context.Context, text string, wantAI bool) (string, domain.SummaryTier, []string) {
	var diags []string

	if wantAI {
		for _, provider := range r.aiTiers {
			tier := provider.Tier()
			if !provider.Available(ctx) {
				diags = append(diags, fmt.Sprintf("summary tier %s unavailable", tier))
				continue
			}

			out, err := provider.Summarize(ctx, text)
			if err != nil {
				r.log.Warn("summary tier failed", "tier", string(tier), "error", err)
				diags = append(diags, domain.WrapError(domain.ErrSummarization, string(tier), err).Error())
				continue
			}
			if strings.TrimSpace(out) == "" {
				diags = append(diags, fmt.Sprintf("summary tier %s returned empty output", tier))
				continue
			}
			return FormatSummary(tier, out), tier, diags
		}
	}

	out, err := r.fallback.Summarize(ctx, text)
	if err != nil {
		// The extractive tier is pure string work; an error here means a bug,
		// but the contract still forbids propagating it.
		diags = append(diags, domain.WrapError(domain.ErrSummarization, string(domain.TierExtractive), err).Error())
		return "", domain.TierExtractive, diags
	}
	if strings.TrimSpace(out) == "" {
		return "", domain.TierExtractive, diags
	}
	return FormatSummary(domain.TierExtractive, out), domain.TierExtractive, diags
}

// FormatSummary wraps a summary body with a provenance header so downstream
// consumers can distinguish AI-generated output from extractive output.
func FormatSummary(tier domain.SummaryTier, body string) string {
	switch tier {
	case domain.TierRemoteLLM, domain.TierLocalLLM:
		return fmt.Sprintf("AI-Generated Summary (%s)\n\n%s", tier, strings.TrimSpace(body))
	default:
		return fmt.Sprintf("Extractive Summary\n\n%s", strings.TrimSpace(body))
	}
}
