// Package history keeps a log of which tier served each analysis.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

const schema = `CREATE TABLE IF NOT EXISTS analysis_runs (
	id           UUID PRIMARY KEY,
	place_id     TEXT        NOT NULL,
	tier         TEXT        NOT NULL,
	is_demo      BOOLEAN     NOT NULL DEFAULT FALSE,
	review_count INTEGER     NOT NULL DEFAULT 0,
	duration_ms  BIGINT      NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analysis_runs_place_created_idx ON analysis_runs (place_id, created_at DESC);`

const insertRun = `INSERT INTO analysis_runs (id, place_id, tier, is_demo, review_count, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectRecent = `SELECT id, place_id, tier, is_demo, review_count, duration_ms, created_at
FROM analysis_runs
WHERE place_id = $1
ORDER BY created_at DESC
LIMIT $2`

type Store interface {
	Record(ctx context.Context, run *models.AnalysisRun)
	Recent(ctx context.Context, placeID string, limit int) ([]models.AnalysisRun, error)
}

type Recorder struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewRecorder(db *sql.DB, log logger.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: log.With(map[string]interface{}{"component": "history"}),
		now:    time.Now,
	}
}

// EnsureSchema creates the runs table if it does not exist.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create analysis_runs: %w", err)
	}
	return nil
}

// Record stores run, assigning an id and timestamp when missing. Failures are
// logged and dropped.
func (r *Recorder) Record(ctx context.Context, run *models.AnalysisRun) {
	if run == nil {
		return
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = r.now().UTC()
	}

	_, err := r.db.ExecContext(ctx, insertRun,
		run.ID, run.PlaceID, run.Tier, run.IsDemo, run.ReviewCount, run.DurationMs, run.CreatedAt)
	if err != nil {
		r.logger.Warn("failed to record analysis run", map[string]interface{}{
			"placeId": run.PlaceID,
			"tier":    run.Tier,
			"error":   err.Error(),
		})
	}
}

// Recent returns the newest runs for placeID, newest first.
func (r *Recorder) Recent(ctx context.Context, placeID string, limit int) ([]models.AnalysisRun, error) {
	limit = clampLimit(limit)

	rows, err := r.db.QueryContext(ctx, selectRecent, placeID, limit)
	if err != nil {
		return nil, fmt.Errorf("query analysis_runs: %w", err)
	}
	defer rows.Close()

	runs := make([]models.AnalysisRun, 0, limit)
	for rows.Next() {
		var run models.AnalysisRun
		if err := rows.Scan(&run.ID, &run.PlaceID, &run.Tier, &run.IsDemo, &run.ReviewCount, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis_runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis_runs: %w", err)
	}
	return runs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Noop discards runs and reports none.
type Noop struct{}

func (Noop) Record(ctx context.Context, run *models.AnalysisRun) {}

func (Noop) Recent(ctx context.Context, placeID string, limit int) ([]models.AnalysisRun, error) {
	return []models.AnalysisRun{}, nil
}
