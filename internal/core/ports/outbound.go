package ports

import (
	"context"
	"io"

	"github.com/medscrub/medscrub/internal/core/domain"
)

// TextExtractor turns source bytes into raw text for a declared format.
// Extraction degradations (missing OCR, scanned PDF, undecodable text) are
// reported as diagnostics, not errors; err is reserved for internal failures
// the pipeline wrapper must record.
type TextExtractor interface {
	Extract(ctx context.Context, format domain.Format, data []byte) (text string, diagnostics []string, err error)
}

// OCREngine converts image bytes to text.
type OCREngine interface {
	Available(ctx context.Context) bool
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Redactor removes PII and layout noise from raw text. Pure.
type Redactor interface {
	Redact(text string) (string, error)
}

// EntityRecognizer tags text spans and buckets them into the five fixed
// entity categories.
type EntityRecognizer interface {
	Available(ctx context.Context) bool
	Recognize(ctx context.Context, text string) (map[string][]string, error)
}

// PatternExtractor applies the phone/national-ID/date regex families.
type PatternExtractor interface {
	ExtractAll(text string) map[string][]string
}

// SummaryProvider is one tier of the summarization router.
type SummaryProvider interface {
	Tier() domain.SummaryTier
	Available(ctx context.Context) bool
	Summarize(ctx context.Context, text string) (string, error)
}

// CapabilityProbe reports which external capabilities are currently usable.
// It never errors; unavailability is a false.
type CapabilityProbe interface {
	Probe(ctx context.Context) map[string]bool
}

// ObjectStorage materializes and disposes of source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// ResultRepository persists the terminal pipeline state. At-rest encryption
// and retention are the caller's concern, not the pipeline's.
type ResultRepository interface {
	SaveResult(ctx context.Context, id string, state *domain.DocumentState) error
	GetResult(ctx context.Context, id string) (*domain.DocumentState, error)
}

// MessageQueue carries process requests between the upload surface and the
// worker.
type MessageQueue interface {
	PublishProcessRequest(ctx context.Context, req domain.ProcessRequest) error
	SubscribeProcessRequests(ctx context.Context, handler func(context.Context, domain.ProcessRequest) error) error
}
