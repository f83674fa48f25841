package operations

import (
	"sync"
	"time"

	"salescleanup/internal/dataprocessing"
	"salescleanup/internal/validation"
	"salescleanup/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
)

// OperationState is the state of one cleanup run. The table in Rows is
// replaced or mutated in place by each step.
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`
	Error     error                `json:"-"`

	Config RunConfig `json:"-"`

	steps     map[string]*StepState
	stepOrder []string

	// Rows is the working transaction table
	Rows []domain.Transaction `json:"-"`

	Summary domain.CleanupSummary `json:"summary"`

	// Reports gathered along the way
	Profile         []dataprocessing.ColumnProfile `json:"profile,omitempty"`
	SampleBefore    []domain.Transaction           `json:"-"`
	SampleAfter     []domain.Transaction           `json:"-"`
	LocationsBefore []string                       `json:"locations_before,omitempty"`
	LocationsAfter  []string                       `json:"locations_after,omitempty"`
	Verification    *validation.TableReport        `json:"verification,omitempty"`
}

// NewOperationState creates the state for a run
func NewOperationState(id string, cfg RunConfig) *OperationState {
	return &OperationState{
		ID:     id,
		Status: OperationStatusPending,
		Config: cfg,
		steps:  make(map[string]*StepState),
		Summary: domain.CleanupSummary{
			SourcePath: cfg.SourceFile,
		},
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
	p.Summary.StartedAt = p.StartTime
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
	p.Summary.FinishedAt = now
	p.Summary.FinalCount = len(p.Rows)
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
	p.Summary.FinishedAt = now
}

// GetStatus returns the current status
func (p *OperationState) GetStatus() OperationStatusValue {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.steps[stepID]
}

// SetStage records the state of a Step; new steps are appended to the run order
func (p *OperationState) SetStage(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.steps[stepID]; !exists {
		p.stepOrder = append(p.stepOrder, stepID)
	}
	p.steps[stepID] = state
}

// StepStates returns the Step states in run order
func (p *OperationState) StepStates() []*StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*StepState, 0, len(p.stepOrder))
	for _, id := range p.stepOrder {
		out = append(out, p.steps[id])
	}
	return out
}

// AddStepResult appends a finished step to the summary
func (p *OperationState) AddStepResult(result domain.StepResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Summary.Steps = append(p.Summary.Steps, result)
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.StartTime.IsZero() {
		return 0
	}
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}
