package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskChartWarmup pre-computes dashboard chart caches per tenant.
	TaskChartWarmup = "analytics:chart_warmup"
)

// ChartWarmupPayload scopes a warmup run. An empty TenantID warms
// every tenant.
type ChartWarmupPayload struct {
	TenantID string `json:"tenant_id,omitempty"`
}

// NewChartWarmupTask constructs an Asynq task.
func NewChartWarmupTask(payload ChartWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskChartWarmup, data), nil
}
