package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/core/ports"
)

// Pipeline sequences the five processing stages over one DocumentState.
// Stages run strictly in order; any stage failure is captured into the
// state's diagnostics and replaced by a degraded value, so a run always
// reaches StageDone. The only abort is a source that cannot be read at all.
type Pipeline struct {
	storage    ports.ObjectStorage
	extractor  ports.TextExtractor
	redactor   ports.Redactor
	recognizer ports.EntityRecognizer
	patterns   ports.PatternExtractor
	router     *SummaryRouter
	log        *slog.Logger
}

func NewPipeline(
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	redactor ports.Redactor,
	recognizer ports.EntityRecognizer,
	patterns ports.PatternExtractor,
	router *SummaryRouter,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		storage:    storage,
		extractor:  extractor,
		redactor:   redactor,
		recognizer: recognizer,
		patterns:   patterns,
		router:     router,
		log:        log,
	}
}

// pipelineStage pairs a stage transition with its work and the degraded
// value written when that work fails unexpectedly.
type pipelineStage struct {
	stage   domain.Stage
	run     func(ctx context.Context, state *domain.DocumentState) error
	degrade func(state *domain.DocumentState)
}

func (p *Pipeline) Process(
	ctx context.Context,
	sourceRef string,
	format domain.Format,
	wantAISummary bool,
	progress ports.ProgressFunc,
) (*domain.DocumentState, error) {
	data, err := p.readSource(ctx, sourceRef)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceUnreadable, "read source", err)
	}

	state := domain.NewDocumentState(sourceRef, format, wantAISummary)

	stages := []pipelineStage{
		{
			stage: domain.StageExtracting,
			run: func(ctx context.Context, state *domain.DocumentState) error {
				return p.extractStage(ctx, state, data)
			},
			degrade: func(state *domain.DocumentState) { state.RawText = "" },
		},
		{
			stage:   domain.StageCleaning,
			run:     p.cleanStage,
			degrade: func(state *domain.DocumentState) { state.CleanedText = state.RawText },
		},
		{
			stage:   domain.StageAnalyzingEntities,
			run:     p.entityStage,
			degrade: func(state *domain.DocumentState) { state.Entities = domain.EmptyEntities() },
		},
		{
			stage:   domain.StageExtractingStructured,
			run:     p.structuredStage,
			degrade: func(state *domain.DocumentState) { state.StructuredData = domain.EmptyStructuredData() },
		},
		{
			stage:   domain.StageSummarizing,
			run:     p.summarizeStage,
			degrade: func(state *domain.DocumentState) {},
		},
	}

	for _, st := range stages {
		p.runStage(ctx, st, state)
		if progress != nil {
			progress(st.stage, *state)
		}
	}

	state.Stage = domain.StageDone
	if progress != nil {
		progress(domain.StageDone, *state)
	}
	return state, nil
}

// runStage is the uniform error-capturing adapter around every stage: errors
// and panics become diagnostics plus a degraded field value, never an abort.
func (p *Pipeline) runStage(ctx context.Context, st pipelineStage, state *domain.DocumentState) {
	state.Stage = st.stage

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("stage panic: %v", r)
			}
		}()
		return st.run(ctx, state)
	}()
	if err != nil {
		p.log.Warn("stage degraded", "stage", string(st.stage), "error", err)
		state.AddDiagnostic(fmt.Sprintf("%s: %v", st.stage, err))
		if st.degrade != nil {
			st.degrade(state)
		}
	}
}

func (p *Pipeline) readSource(ctx context.Context, sourceRef string) ([]byte, error) {
	reader, err := p.storage.Open(ctx, sourceRef)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *Pipeline) extractStage(ctx context.Context, state *domain.DocumentState, data []byte) error {
	text, diags, err := p.extractor.Extract(ctx, state.Format, data)
	for _, d := range diags {
		state.AddDiagnostic(d)
	}
	if err != nil {
		state.RawText = ""
		state.AddDiagnostic(domain.WrapError(domain.ErrExtraction, "extract text", err).Error())
		return nil
	}
	state.RawText = text
	return nil
}

func (p *Pipeline) cleanStage(_ context.Context, state *domain.DocumentState) error {
	cleaned, err := p.redactor.Redact(state.RawText)
	if err != nil {
		state.CleanedText = state.RawText
		state.AddDiagnostic(domain.WrapError(domain.ErrRedaction, "redact text", err).Error())
		return nil
	}
	state.CleanedText = cleaned
	return nil
}

func (p *Pipeline) entityStage(ctx context.Context, state *domain.DocumentState) error {
	if !p.recognizer.Available(ctx) {
		state.Entities = domain.EmptyEntities()
		state.AddDiagnostic("entity recognition unavailable, skipping NER")
		return nil
	}

	entities, err := p.recognizer.Recognize(ctx, state.CleanedText)
	if err != nil {
		state.Entities = domain.EmptyEntities()
		state.AddDiagnostic(domain.WrapError(domain.ErrEntityAnalysis, "recognize entities", err).Error())
		return nil
	}
	state.Entities = entities
	return nil
}

func (p *Pipeline) structuredStage(_ context.Context, state *domain.DocumentState) error {
	state.StructuredData = p.patterns.ExtractAll(state.CleanedText)
	return nil
}

func (p *Pipeline) summarizeStage(ctx context.Context, state *domain.DocumentState) error {
	summary, tier, diags := p.router.Summarize(ctx, state.CleanedText, state.WantAISummary)
	for _, d := range diags {
		state.AddDiagnostic(d)
	}
	state.Summary = summary
	state.SummaryTier = tier
	return nil
}
