package operations

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "salescleanup/internal/errors"
	"salescleanup/internal/infrastructure"
	"salescleanup/internal/shared/testutil"
	"salescleanup/pkg/contracts/domain"
)

// fakeStep drops the first drop rows, or fails with err
type fakeStep struct {
	BaseStage
	drop  int
	err   error
	calls int
}

func newFakeStep(id, section string, drop int, err error) *fakeStep {
	return &fakeStep{BaseStage: NewBaseStage(id, "Fake "+id, section), drop: drop, err: err}
}

func (s *fakeStep) Execute(ctx context.Context, state *OperationState) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	state.Rows = state.Rows[s.drop:]
	return nil
}

type testHarness struct {
	manager *Manager
	spans   *tracetest.SpanRecorder
	reader  *sdkmetric.ManualReader
	console *bytes.Buffer
	logs    *testutil.BufferedSlogHandler
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := infrastructure.NewPipelineMetrics(mp.Meter("test"))
	require.NoError(t, err)

	logger, logs := testutil.NewTestLogger(t)
	console := &bytes.Buffer{}
	return &testHarness{
		manager: NewManager(ManagerOptions{
			Tracer:   NewOperationTracer(tp.Tracer("test"), metrics),
			Reporter: NewReporter(console),
			Logger:   logger,
		}),
		spans:   spans,
		reader:  reader,
		console: console,
		logs:    logs,
	}
}

// counterValue sums the data points of an int64 counter with the given step attribute
func (h *testHarness) counterValue(t *testing.T, name, step string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("step")); ok && v.AsString() == step {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func stateWithRows(n int) *OperationState {
	state := NewOperationState("run", RunConfig{SourceFile: "raw.xlsx"})
	state.Rows = make([]domain.Transaction, n)
	return state
}

func TestManagerExecute(t *testing.T) {
	h := newHarness(t)
	a := newFakeStep("a", "FIRST", 1, nil)
	b := newFakeStep("b", "FIRST", 2, nil)
	c := newFakeStep("c", "SECOND", 0, nil)
	require.NoError(t, h.manager.RegisterStage(a, b, c))

	state := stateWithRows(5)
	require.NoError(t, h.manager.Execute(context.Background(), state))

	assert.Equal(t, OperationStatusCompleted, state.GetStatus())
	assert.Equal(t, 2, state.Summary.FinalCount)
	require.Len(t, state.Summary.Steps, 3)
	assert.Equal(t, domain.StepResult{ID: "a", Name: "Fake a", RowsIn: 5, RowsOut: 4, Duration: state.Summary.Steps[0].Duration}, state.Summary.Steps[0])
	assert.Equal(t, 2, state.Summary.Steps[1].Removed())

	for _, st := range state.StepStates() {
		assert.Equal(t, StepStatusCompleted, st.GetStatus(), st.ID)
	}

	// one console heading per section change
	assert.Equal(t, 1, strings.Count(h.console.String(), "FIRST"))
	assert.Equal(t, 1, strings.Count(h.console.String(), "SECOND"))

	ended := h.spans.Ended()
	names := make([]string, len(ended))
	for i, s := range ended {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"cleanup.step.a", "cleanup.step.b", "cleanup.step.c", "cleanup.run"}, names)
	assert.Equal(t, codes.Ok, ended[3].Status().Code)

	assert.Equal(t, int64(1), h.counterValue(t, "salescleanup_step_rows_removed", "a"))
	assert.Equal(t, int64(2), h.counterValue(t, "salescleanup_step_rows_removed", "b"))
	assert.Equal(t, int64(5), h.counterValue(t, "salescleanup_step_rows_in", "a"))

	assert.True(t, h.logs.ContainsMessage("operation_complete"))
	testutil.AssertNoErrors(t, h.logs)
}

func TestManagerExecuteStopsOnFailure(t *testing.T) {
	h := newHarness(t)
	boom := apperrors.NewStorageError("disk full", nil)
	a := newFakeStep("a", "", 0, nil)
	b := newFakeStep("b", "", 0, boom)
	c := newFakeStep("c", "", 0, nil)
	require.NoError(t, h.manager.RegisterStage(a, b, c))

	state := stateWithRows(3)
	err := h.manager.Execute(context.Background(), state)
	require.Error(t, err)

	assert.Equal(t, apperrors.ErrTypePipeline, apperrors.TypeOf(err))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step b failed")

	assert.Equal(t, 0, c.calls)
	assert.Equal(t, OperationStatusFailed, state.GetStatus())
	assert.Equal(t, StepStatusCompleted, state.GetStage("a").GetStatus())
	assert.Equal(t, StepStatusFailed, state.GetStage("b").GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStage("c").GetStatus())
	assert.Len(t, state.Summary.Steps, 1)

	var failedSpan sdktrace.ReadOnlySpan
	for _, s := range h.spans.Ended() {
		if s.Name() == "cleanup.step.b" {
			failedSpan = s
		}
	}
	require.NotNil(t, failedSpan)
	assert.Equal(t, codes.Error, failedSpan.Status().Code)

	assert.True(t, h.logs.ContainsMessage("stage_error"))
	assert.True(t, h.logs.ContainsAttr("step", "b"))
}

func TestManagerExecuteCancelled(t *testing.T) {
	h := newHarness(t)
	a := newFakeStep("a", "", 0, nil)
	require.NoError(t, h.manager.RegisterStage(a))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := stateWithRows(1)
	err := h.manager.Execute(ctx, state)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, a.calls)
	assert.Equal(t, StepStatusSkipped, state.GetStage("a").GetStatus())
}

func TestManagerRegisterStage(t *testing.T) {
	m := NewManager(ManagerOptions{})

	require.NoError(t, m.RegisterStage(newFakeStep("a", "", 0, nil)))
	assert.Error(t, m.RegisterStage(newFakeStep("a", "", 0, nil)), "duplicate id")
	assert.Error(t, m.RegisterStage(newFakeStep("", "", 0, nil)), "empty id")
	assert.Error(t, m.RegisterStage(nil))
	assert.Len(t, m.Steps(), 1)
}

func TestManagerWithoutTelemetry(t *testing.T) {
	m := NewManager(ManagerOptions{})
	require.NoError(t, m.RegisterStage(newFakeStep("a", "", 1, nil)))

	state := stateWithRows(2)
	require.NoError(t, m.Execute(context.Background(), state))
	assert.Equal(t, 1, state.Summary.FinalCount)
}
