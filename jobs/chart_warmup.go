package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukaan-pos/dukaan-pos/internal/analytics"
	jobmetrics "github.com/dukaan-pos/dukaan-pos/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// warmupSelectors are the fixed ranges worth pre-computing; custom
// ranges are unbounded and only computed on demand.
var warmupSelectors = []analytics.RangeSelector{
	analytics.RangeToday,
	analytics.RangeWeek,
	analytics.RangeMonth,
	analytics.RangeYear,
}

// ChartWarmupJob pre-populates the chart cache so dashboard loads hit
// redis instead of recomputing from raw rows.
type ChartWarmupJob struct {
	Analytics *analytics.Service
	Pool      *pgxpool.Pool
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewChartWarmupJob wires dependencies for the warmup handler.
func NewChartWarmupJob(analyticsSvc *analytics.Service, pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *ChartWarmupJob {
	return &ChartWarmupJob{
		Analytics: analyticsSvc,
		Pool:      pool,
		Logger:    logger,
		Metrics:   metrics,
		clock:     time.Now,
	}
}

// Handle processes chart warmup tasks.
func (j *ChartWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil {
		return errors.New("chart warmup: handler not configured")
	}
	var payload ChartWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskChartWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := j.now()
	logger.Info("starting chart warmup")

	tenants, err := j.resolveTenants(ctx, payload)
	if err != nil {
		resultErr = err
		logger.Error("load warmup tenants", slog.Any("error", err))
		return resultErr
	}
	if len(tenants) == 0 {
		logger.Info("no tenants discovered for warmup")
		return resultErr
	}

	warmed := 0
	for _, tenantID := range tenants {
		if err := j.warmTenant(ctx, tenantID); err != nil {
			resultErr = err
			logger.Error("warm tenant", slog.String("tenant_id", tenantID.String()), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed chart warmup", slog.Int("tenants", warmed), slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *ChartWarmupJob) warmTenant(ctx context.Context, tenantID uuid.UUID) error {
	if j.Analytics == nil {
		return nil
	}
	// Bound each tenant so one slow shop cannot stall the whole run.
	tenantCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	for _, selector := range warmupSelectors {
		if _, err := j.Analytics.Refresh(tenantCtx, nil, tenantID, analytics.Filter{Selector: selector}); err != nil {
			return err
		}
	}
	return nil
}

func (j *ChartWarmupJob) resolveTenants(ctx context.Context, payload ChartWarmupPayload) ([]uuid.UUID, error) {
	if payload.TenantID != "" {
		id, err := uuid.Parse(payload.TenantID)
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{id}, nil
	}
	if j.Pool == nil {
		return nil, errors.New("chart warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT id FROM tenants WHERE active ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}

func (j *ChartWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskChartWarmup))
	}
	return slog.Default().With(slog.String("job", TaskChartWarmup))
}

func (j *ChartWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *ChartWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now()
}
