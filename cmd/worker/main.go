package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medscrub/medscrub/internal/bootstrap"
	"github.com/medscrub/medscrub/internal/config"
	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/core/ports"
	"github.com/medscrub/medscrub/internal/observability/metrics"
)

const serviceName = "medscrub-worker"

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	m := metrics.NewPipelineMetrics(serviceName)
	go serveMetrics(cfg.WorkerMetricsPort, m)

	app.Log.Info("capabilities", "report", app.Probe.Probe(ctx))
	app.Log.Info("worker subscribed", "subject", cfg.NATSSubject)

	err = app.Queue.SubscribeProcessRequests(ctx, func(handlerCtx context.Context, req domain.ProcessRequest) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, time.Duration(cfg.ProcessTimeoutSeconds)*time.Second)
		defer cancel()
		return handleRequest(processCtx, app, m, req)
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

func handleRequest(ctx context.Context, app *bootstrap.App, m *metrics.PipelineMetrics, req domain.ProcessRequest) error {
	m.StartDocument()

	stageStart := time.Now()
	progress := func(stage domain.Stage, _ domain.DocumentState) {
		m.ObserveStage(serviceName, string(stage), time.Since(stageStart))
		stageStart = time.Now()
	}

	state, err := app.Pipeline.Process(ctx, req.StorageKey, req.Format, req.WantAISummary, ports.ProgressFunc(progress))
	m.FinishDocument(serviceName, string(req.Format), err)
	if err != nil {
		app.Log.Error("document processing aborted", "id", req.ID, "error", err)
		return err
	}

	m.CountSummary(serviceName, string(state.SummaryTier))
	m.CountDiagnostics(len(state.Diagnostics))

	if err := app.Repo.SaveResult(ctx, req.ID, state); err != nil {
		app.Log.Error("save result failed", "id", req.ID, "error", err)
		return err
	}

	// The raw upload holds unredacted PII; drop it as soon as the scrubbed
	// result is durable.
	if err := app.Storage.Remove(ctx, req.StorageKey); err != nil {
		app.Log.Warn("remove source failed", "id", req.ID, "key", req.StorageKey, "error", err)
	}

	app.Log.Info("document processed",
		"id", req.ID,
		"format", string(req.Format),
		"summary_tier", string(state.SummaryTier),
		"diagnostics", len(state.Diagnostics),
	)
	return nil
}

func serveMetrics(port string, m *metrics.PipelineMetrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("metrics server error: %v", err)
	}
}
