package repo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/infra"
	"mockupstudio/internal/sqlinline"
	"mockupstudio/internal/studio"
)

const recordTimeout = 3 * time.Second

// GenerationLog stores every generation attempt in Postgres. Designs
// themselves are never persisted.
type GenerationLog struct {
	sql    infra.SQLExecutor
	logger *infra.Logger
}

func NewGenerationLog(sql infra.SQLExecutor, logger *infra.Logger) *GenerationLog {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &GenerationLog{sql: sql, logger: logger}
}

// Record inserts a. Failures are logged and swallowed so that a database
// outage never turns into a failed generation.
func (r *GenerationLog) Record(ctx context.Context, a studio.Attempt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	_, err := r.sql.Exec(ctx, sqlinline.QInsertGenerationAttempt,
		a.DesignID,
		string(a.View),
		a.Provider,
		a.PromptHash,
		a.Input.String(),
		a.Success,
		int(a.Duration/time.Millisecond),
		a.At,
	)
	if err != nil {
		r.logger.Warn().Err(err).Str("design_id", a.DesignID).Msg("repo: record generation attempt failed")
	}
}

// ViewStats aggregates attempts for one provider and view.
type ViewStats struct {
	Provider      string      `json:"provider"`
	View          domain.View `json:"view"`
	Attempts      int         `json:"attempts"`
	Successes     int         `json:"successes"`
	AvgDurationMS float64     `json:"avg_duration_ms"`
}

// StatsSince aggregates attempts recorded at or after since.
func (r *GenerationLog) StatsSince(ctx context.Context, since time.Time) ([]ViewStats, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QGenerationStatsSince, since)
	if err != nil {
		return nil, fmt.Errorf("query generation stats: %w", err)
	}
	defer rows.Close()

	var out []ViewStats
	for rows.Next() {
		var s ViewStats
		var view string
		if err := rows.Scan(&s.Provider, &view, &s.Attempts, &s.Successes, &s.AvgDurationMS); err != nil {
			return nil, fmt.Errorf("scan generation stats: %w", err)
		}
		s.View = domain.View(view)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generation stats: %w", err)
	}
	return out, nil
}

var _ studio.Recorder = (*GenerationLog)(nil)
