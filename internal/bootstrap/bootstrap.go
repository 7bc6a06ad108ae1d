package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/medscrub/medscrub/internal/config"
	"github.com/medscrub/medscrub/internal/core/ports"
	"github.com/medscrub/medscrub/internal/core/usecase"
	"github.com/medscrub/medscrub/internal/infrastructure/capability"
	"github.com/medscrub/medscrub/internal/infrastructure/extractor"
	"github.com/medscrub/medscrub/internal/infrastructure/llm/lmstudio"
	"github.com/medscrub/medscrub/internal/infrastructure/llm/ollama"
	"github.com/medscrub/medscrub/internal/infrastructure/ner/spacy"
	"github.com/medscrub/medscrub/internal/infrastructure/ocr/tesseract"
	"github.com/medscrub/medscrub/internal/infrastructure/patterns"
	"github.com/medscrub/medscrub/internal/infrastructure/queue/nats"
	"github.com/medscrub/medscrub/internal/infrastructure/redaction"
	"github.com/medscrub/medscrub/internal/infrastructure/repository/postgres"
	"github.com/medscrub/medscrub/internal/infrastructure/resilience"
	"github.com/medscrub/medscrub/internal/infrastructure/storage/localfs"
	"github.com/medscrub/medscrub/internal/infrastructure/summary"
	"github.com/medscrub/medscrub/internal/observability/logging"
)

type App struct {
	Config config.Config
	Log    *slog.Logger

	Queue    ports.MessageQueue
	Repo     ports.ResultRepository
	Storage  ports.ObjectStorage
	Pipeline ports.DocumentProcessor
	Probe    ports.CapabilityProbe

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	log := logging.NewJSONLogger("medscrub-worker", cfg.LogLevel)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewResultRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	policy := redaction.DefaultPolicy()
	if cfg.RedactionPolicyPath != "" {
		policy, err = redaction.LoadPolicy(cfg.RedactionPolicyPath)
		if err != nil {
			queue.Close()
			_ = db.Close()
			return nil, fmt.Errorf("load redaction policy: %w", err)
		}
	}

	remoteFailure := func(error) resilience.Classification {
		return resilience.Classification{Retryable: true, RecordFailure: true}
	}

	ocr := tesseract.New(cfg.TesseractBinary, cfg.TesseractLanguage)
	ner := spacy.New(cfg.NERURL, 30*time.Second,
		resilience.NewGuard("ner.recognize", resilience.DefaultConfig(), remoteFailure))

	remoteLLM := lmstudio.New(
		cfg.RemoteLLMURL,
		cfg.RemoteLLMModel,
		time.Duration(cfg.RemoteLLMTimeoutSeconds)*time.Second,
		rate.NewLimiter(rate.Limit(cfg.RemoteLLMRatePerSecond), 1),
		resilience.NewGuard("llm.remote", resilience.DefaultConfig(), remoteFailure),
	)
	localLLM := ollama.New(cfg.OllamaURL, cfg.OllamaModel, 0)
	extractive := summary.NewExtractive(cfg.SummaryMaxSentences, cfg.SummaryMinSentenceLength)

	router := usecase.NewSummaryRouter(
		[]ports.SummaryProvider{remoteLLM, localLLM},
		extractive,
		log,
	)

	pipeline := usecase.NewPipeline(
		storage,
		extractor.NewDispatcher(ocr),
		redaction.NewEngine(policy),
		ner,
		patterns.NewExtractor(),
		router,
		log,
	)

	probe := capability.NewProbe(ocr, ner, localLLM, remoteLLM)

	return &App{
		Config:   cfg,
		Log:      log,
		Queue:    queue,
		Repo:     repo,
		Storage:  storage,
		Pipeline: pipeline,
		Probe:    probe,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
