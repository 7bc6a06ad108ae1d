package capability

import (
	"context"
	"testing"
)

type availabilityFake bool

func (f availabilityFake) Available(context.Context) bool { return bool(f) }

func TestProbeReportsEachCapability(t *testing.T) {
	p := NewProbe(availabilityFake(true), availabilityFake(false), availabilityFake(true), availabilityFake(false))

	got := p.Probe(context.Background())
	if !got[OCR] || got[NER] || !got[LocalLLM] || got[RemoteLLM] {
		t.Fatalf("unexpected report: %v", got)
	}
	if !got[StructuredExtractor] {
		t.Fatalf("structured extractor must always be true")
	}
}

func TestProbeTreatsNilEngineAsUnavailable(t *testing.T) {
	p := NewProbe(nil, nil, nil, nil)

	got := p.Probe(context.Background())
	for _, name := range []string{OCR, NER, LocalLLM, RemoteLLM} {
		if got[name] {
			t.Fatalf("expected %q unavailable with nil engine", name)
		}
	}
	if !got[StructuredExtractor] {
		t.Fatalf("structured extractor must always be true")
	}
}
