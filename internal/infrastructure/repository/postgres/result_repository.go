// Package postgres persists terminal pipeline states. The pipeline itself
// never touches this: persistence (and at-rest encryption, which is not
// done here) belongs to the worker calling it.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/medscrub/medscrub/internal/core/domain"
)

var ErrResultNotFound = errors.New("result not found")

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS pipeline_results (
	id TEXT PRIMARY KEY,
	source_ref TEXT NOT NULL,
	format TEXT NOT NULL,
	summary TEXT NOT NULL,
	summary_tier TEXT NOT NULL,
	entities JSONB NOT NULL DEFAULT '{}'::jsonb,
	structured_data JSONB NOT NULL DEFAULT '{}'::jsonb,
	diagnostics JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pipeline_results_created_at ON pipeline_results(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ResultRepository) SaveResult(ctx context.Context, id string, state *domain.DocumentState) error {
	entitiesJSON, err := json.Marshal(state.Entities)
	if err != nil {
		return fmt.Errorf("marshal entities: %w", err)
	}
	structuredJSON, err := json.Marshal(state.StructuredData)
	if err != nil {
		return fmt.Errorf("marshal structured data: %w", err)
	}
	diagnosticsJSON, err := json.Marshal(state.Diagnostics)
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO pipeline_results (
	id, source_ref, format, summary, summary_tier, entities, structured_data, diagnostics, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
	summary = EXCLUDED.summary,
	summary_tier = EXCLUDED.summary_tier,
	entities = EXCLUDED.entities,
	structured_data = EXCLUDED.structured_data,
	diagnostics = EXCLUDED.diagnostics
`,
		id, state.SourceRef, string(state.Format), state.Summary, string(state.SummaryTier),
		entitiesJSON, structuredJSON, diagnosticsJSON, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert pipeline result: %w", err)
	}
	return nil
}

func (r *ResultRepository) GetResult(ctx context.Context, id string) (*domain.DocumentState, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT source_ref, format, summary, summary_tier, entities, structured_data, diagnostics
FROM pipeline_results
WHERE id = $1
`, id)

	var (
		state          domain.DocumentState
		format         string
		tier           string
		entitiesRaw    []byte
		structuredRaw  []byte
		diagnosticsRaw []byte
	)
	err := row.Scan(&state.SourceRef, &format, &state.Summary, &tier, &entitiesRaw, &structuredRaw, &diagnosticsRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrResultNotFound, id)
		}
		return nil, fmt.Errorf("scan pipeline result: %w", err)
	}

	if err := json.Unmarshal(entitiesRaw, &state.Entities); err != nil {
		return nil, fmt.Errorf("unmarshal entities: %w", err)
	}
	if err := json.Unmarshal(structuredRaw, &state.StructuredData); err != nil {
		return nil, fmt.Errorf("unmarshal structured data: %w", err)
	}
	if err := json.Unmarshal(diagnosticsRaw, &state.Diagnostics); err != nil {
		return nil, fmt.Errorf("unmarshal diagnostics: %w", err)
	}
	state.Format = domain.Format(format)
	state.SummaryTier = domain.SummaryTier(tier)
	state.Stage = domain.StageDone
	return &state, nil
}
