// Package capability aggregates the availability checks of every external
// engine into one read-only report.
package capability

import "context"

// Capability names, fixed across the system.
const (
	OCR                 = "ocr"
	NER                 = "ner"
	LocalLLM            = "local_llm"
	RemoteLLM           = "remote_llm"
	StructuredExtractor = "structured_extractor"
)

// Availability is the one-method view the probe needs of each engine.
type Availability interface {
	Available(ctx context.Context) bool
}

type Probe struct {
	ocr       Availability
	ner       Availability
	localLLM  Availability
	remoteLLM Availability
}

func NewProbe(ocr, ner, localLLM, remoteLLM Availability) *Probe {
	return &Probe{
		ocr:       ocr,
		ner:       ner,
		localLLM:  localLLM,
		remoteLLM: remoteLLM,
	}
}

// Probe reports usability of each capability. It has no side effects and
// never errors: an unreachable engine is a false. The regex extractor has
// no external dependency and is always true.
func (p *Probe) Probe(ctx context.Context) map[string]bool {
	return map[string]bool{
		OCR:                 available(ctx, p.ocr),
		NER:                 available(ctx, p.ner),
		LocalLLM:            available(ctx, p.localLLM),
		RemoteLLM:           available(ctx, p.remoteLLM),
		StructuredExtractor: true,
	}
}

func available(ctx context.Context, a Availability) bool {
	if a == nil {
		return false
	}
	return a.Available(ctx)
}
