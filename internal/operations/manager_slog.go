package operations

import (
	"context"
	"log/slog"
	"time"

	"salescleanup/pkg/contracts/domain"
)

func (m *Manager) logOperationStart(ctx context.Context, state *OperationState) {
	m.logger.InfoContext(ctx, "operation_start",
		slog.String("operation_id", state.ID),
		slog.String("source_file", state.Config.SourceFile),
		slog.Int("stage_count", len(m.steps)))
}

func (m *Manager) logOperationComplete(ctx context.Context, state *OperationState) {
	s := state.Summary
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", state.ID),
		slog.Int("original_count", s.OriginalCount),
		slog.Int("final_count", s.FinalCount),
		slog.Float64("retention_percent", s.RetentionPercent()),
		slog.Int("walk_in_removed", s.WalkInRemoved),
		slog.Int("incomplete_removed", s.IncompleteRemoved),
		slog.Int("invalid_date_removed", s.InvalidDateRemoved),
		slog.Int("duplicates_removed", s.DuplicatesRemoved),
		slog.Duration("duration", state.Duration()))
}

func (m *Manager) logOperationError(ctx context.Context, operationID string, err error) {
	m.logger.ErrorContext(ctx, "operation_error",
		slog.String("operation_id", operationID),
		slog.String("error", err.Error()))
}

func (m *Manager) logStageStart(ctx context.Context, operationID string, step Step, number int) {
	m.logger.InfoContext(ctx, "stage_start",
		slog.String("operation_id", operationID),
		slog.String("step", step.ID()),
		slog.Int("stage_number", number),
		slog.Int("total_stages", len(m.steps)))
}

func (m *Manager) logStageComplete(ctx context.Context, operationID string, result domain.StepResult) {
	m.logger.InfoContext(ctx, "stage_complete",
		slog.String("operation_id", operationID),
		slog.String("step", result.ID),
		slog.Int("rows_in", result.RowsIn),
		slog.Int("rows_out", result.RowsOut),
		slog.Int("rows_removed", result.Removed()),
		slog.Duration("duration", result.Duration))
}

func (m *Manager) logStageError(ctx context.Context, operationID, stepID string, duration time.Duration, err error) {
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.Duration("duration", duration),
		slog.String("error", err.Error()))
}
