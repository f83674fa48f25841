package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"salescleanup/internal/infrastructure"
	"salescleanup/pkg/contracts/domain"
)

const (
	TracerName = "salescleanup.operations"
)

// OperationTracer provides OpenTelemetry instrumentation for cleanup runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer. A nil tracer disables spans and nil
// metrics disables recording.
func NewOperationTracer(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *OperationTracer {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(TracerName)
	}
	return &OperationTracer{tracer: tracer, metrics: metrics}
}

// TraceOperationExecution creates a span for the entire run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, state *OperationState) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "cleanup.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.String("cleanup.source_file", state.Config.SourceFile),
		),
	)
}

// TraceStepExecution creates a span for one step
func (pt *OperationTracer) TraceStepExecution(ctx context.Context, operationID string, step Step, rowsIn int) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, fmt.Sprintf("cleanup.step.%s", step.ID()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
			attribute.Int("step.rows_in", rowsIn),
		),
	)
}

// RecordStepCompletion ends a step span and records its row flow
func (pt *OperationTracer) RecordStepCompletion(ctx context.Context, span trace.Span, result domain.StepResult, err error) {
	span.SetAttributes(
		attribute.Int("step.rows_out", result.RowsOut),
		attribute.Int("step.rows_removed", result.Removed()),
		attribute.Float64("step.duration_seconds", result.Duration.Seconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	pt.metrics.RecordStep(ctx, result.ID, result.RowsIn, result.RowsOut, result.Duration)
}

// RecordOperationCompletion ends the run span and counts the run
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, summary domain.CleanupSummary, err error) {
	status := "success"
	span.SetAttributes(
		attribute.Int("cleanup.original_count", summary.OriginalCount),
		attribute.Int("cleanup.final_count", summary.FinalCount),
	)
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	pt.metrics.RecordRun(ctx, status)
}
