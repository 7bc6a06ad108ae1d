package ports

import (
	"context"

	"github.com/medscrub/medscrub/internal/core/domain"
)

// ProgressFunc receives the completed stage and a snapshot of the state after
// each transition. Observability only; return values would not change control
// flow, so there are none.
type ProgressFunc func(stage domain.Stage, snapshot domain.DocumentState)

// DocumentProcessor runs one document through the full pipeline. The returned
// state always has Stage == StageDone; the only error is a source that cannot
// be read before the first stage runs.
type DocumentProcessor interface {
	Process(ctx context.Context, sourceRef string, format domain.Format, wantAISummary bool, progress ProgressFunc) (*domain.DocumentState, error)
}
