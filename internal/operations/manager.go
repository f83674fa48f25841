package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "salescleanup/internal/errors"
	"salescleanup/pkg/contracts/domain"
)

// ManagerOptions configures a Manager. Every field is optional.
type ManagerOptions struct {
	Tracer   *OperationTracer
	Reporter *Reporter
	Logger   *slog.Logger
}

// Manager runs registered steps in order. The first failing step aborts the
// run and every later step is marked skipped.
type Manager struct {
	steps    []Step
	ids      map[string]bool
	tracer   *OperationTracer
	reporter *Reporter
	logger   *slog.Logger
}

// NewManager creates a manager with no steps
func NewManager(opts ManagerOptions) *Manager {
	if opts.Tracer == nil {
		opts.Tracer = NewOperationTracer(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{
		ids:      make(map[string]bool),
		tracer:   opts.Tracer,
		reporter: opts.Reporter,
		logger:   opts.Logger,
	}
}

// RegisterStage appends steps to the run order. IDs must be unique.
func (m *Manager) RegisterStage(steps ...Step) error {
	for _, step := range steps {
		if step == nil {
			return fmt.Errorf("cannot register nil step")
		}
		if step.ID() == "" {
			return fmt.Errorf("step %q has no id", step.Name())
		}
		if m.ids[step.ID()] {
			return fmt.Errorf("step %s already registered", step.ID())
		}
		m.ids[step.ID()] = true
		m.steps = append(m.steps, step)
	}
	return nil
}

// Steps returns the registered steps in run order
func (m *Manager) Steps() []Step {
	out := make([]Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Execute runs every step against state. Errors are PIPELINE errors wrapping
// the failing step's error.
func (m *Manager) Execute(ctx context.Context, state *OperationState) error {
	for _, step := range m.steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := m.tracer.TraceOperationExecution(ctx, state)
	state.Start()
	m.logOperationStart(ctx, state)

	err := m.executeSequential(ctx, state)
	if err != nil {
		state.Fail(err)
		m.logOperationError(ctx, state.ID, err)
	} else {
		state.Complete()
		m.logOperationComplete(ctx, state)
	}

	m.tracer.RecordOperationCompletion(ctx, span, state.Summary, err)
	return err
}

func (m *Manager) executeSequential(ctx context.Context, state *OperationState) error {
	section := ""
	for i, step := range m.steps {
		if err := ctx.Err(); err != nil {
			m.skipRemaining(state, i, "operation cancelled")
			return apperrors.NewPipelineError(step.ID(), err)
		}

		if s, ok := step.(sectioned); ok && s.Section() != "" && s.Section() != section {
			section = s.Section()
			m.reporter.Section(section)
		}

		m.logStageStart(ctx, state.ID, step, i+1)
		if err := m.executeStage(ctx, state, step); err != nil {
			m.skipRemaining(state, i+1, fmt.Sprintf("previous step %s failed", step.ID()))
			return apperrors.NewPipelineError(step.ID(), err)
		}
	}
	return nil
}

func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	rowsIn := len(state.Rows)

	stepCtx, span := m.tracer.TraceStepExecution(ctx, state.ID, step, rowsIn)
	stepState.Start(rowsIn)
	start := time.Now()

	err := step.Execute(stepCtx, state)

	result := domain.StepResult{
		ID:       step.ID(),
		Name:     step.Name(),
		RowsIn:   rowsIn,
		RowsOut:  len(state.Rows),
		Duration: time.Since(start),
	}
	m.tracer.RecordStepCompletion(stepCtx, span, result, err)

	if err != nil {
		stepState.Fail(err)
		m.logStageError(ctx, state.ID, step.ID(), result.Duration, err)
		return err
	}

	stepState.Complete(result.RowsOut)
	state.AddStepResult(result)
	m.logStageComplete(ctx, state.ID, result)
	return nil
}

// skipRemaining marks steps from index from onward as skipped
func (m *Manager) skipRemaining(state *OperationState, from int, reason string) {
	for _, step := range m.steps[from:] {
		if st := state.GetStage(step.ID()); st != nil {
			st.Skip(reason)
		}
	}
}
