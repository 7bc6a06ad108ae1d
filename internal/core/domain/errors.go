package domain

import (
	"errors"
	"fmt"
)

// Stage error kinds. All of them are non-fatal to the pipeline: they are
// recorded as diagnostics and the stage writes a degraded value. The only
// error that aborts a run is ErrSourceUnreadable, raised before any stage.
var (
	ErrSourceUnreadable  = errors.New("source unreadable")
	ErrExtraction        = errors.New("extraction failed")
	ErrRedaction         = errors.New("redaction failed")
	ErrEntityAnalysis    = errors.New("entity analysis failed")
	ErrStructuredData    = errors.New("structured data extraction failed")
	ErrSummarization     = errors.New("summarization failed")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrUnavailable       = errors.New("capability unavailable")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
