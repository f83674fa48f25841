package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the instruments recorded by the cleanup pipeline.
// A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	StepRowsIn      metric.Int64Counter
	StepRowsOut     metric.Int64Counter
	StepRowsRemoved metric.Int64Counter
	StepDuration    metric.Float64Histogram
	RunsTotal       metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsIn, err := meter.Int64Counter(
		"salescleanup_step_rows_in",
		metric.WithDescription("Rows entering a cleanup step"),
	)
	if err != nil {
		return nil, err
	}

	rowsOut, err := meter.Int64Counter(
		"salescleanup_step_rows_out",
		metric.WithDescription("Rows leaving a cleanup step"),
	)
	if err != nil {
		return nil, err
	}

	rowsRemoved, err := meter.Int64Counter(
		"salescleanup_step_rows_removed",
		metric.WithDescription("Rows dropped by a cleanup step"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"salescleanup_step_duration",
		metric.WithDescription("Cleanup step duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"salescleanup_runs",
		metric.WithDescription("Cleanup runs by final status"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		StepRowsIn:      rowsIn,
		StepRowsOut:     rowsOut,
		StepRowsRemoved: rowsRemoved,
		StepDuration:    duration,
		RunsTotal:       runs,
	}, nil
}

// RecordStep records the row flow and duration of one step
func (m *PipelineMetrics) RecordStep(ctx context.Context, stepID string, rowsIn, rowsOut int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("step", stepID))

	m.StepRowsIn.Add(ctx, int64(rowsIn), attrs)
	m.StepRowsOut.Add(ctx, int64(rowsOut), attrs)
	if removed := rowsIn - rowsOut; removed > 0 {
		m.StepRowsRemoved.Add(ctx, int64(removed), attrs)
	}
	m.StepDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRun records the outcome of a whole run
func (m *PipelineMetrics) RecordRun(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
