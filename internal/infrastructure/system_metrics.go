package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeStats is a snapshot of process resource usage
type RuntimeStats struct {
	Goroutines    int
	HeapAlloc     uint64
	TotalAlloc    uint64
	SysMemory     uint64
	GCCycles      uint32
	GCPauseTotal  time.Duration
	ProcessUptime time.Duration
}

// RuntimeMetrics records runtime resource usage at the end of a run.
// A nil *RuntimeMetrics records nothing.
type RuntimeMetrics struct {
	goroutines metric.Int64Gauge
	heapAlloc  metric.Int64Gauge
	totalAlloc metric.Int64Gauge
	sysMemory  metric.Int64Gauge
	gcCycles   metric.Int64Gauge
	gcPause    metric.Float64Gauge
	uptime     metric.Float64Gauge
}

// NewRuntimeMetrics creates the runtime instruments on meter
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	goroutines, err := meter.Int64Gauge(
		"salescleanup_runtime_goroutines",
		metric.WithDescription("Number of live goroutines"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"salescleanup_runtime_heap_alloc_bytes",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	totalAlloc, err := meter.Int64Gauge(
		"salescleanup_runtime_total_alloc_bytes",
		metric.WithDescription("Cumulative bytes allocated for heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	sysMemory, err := meter.Int64Gauge(
		"salescleanup_runtime_sys_bytes",
		metric.WithDescription("Memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCycles, err := meter.Int64Gauge(
		"salescleanup_runtime_gc_cycles",
		metric.WithDescription("Completed GC cycles"),
	)
	if err != nil {
		return nil, err
	}

	gcPause, err := meter.Float64Gauge(
		"salescleanup_runtime_gc_pause",
		metric.WithDescription("Cumulative GC pause time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	uptime, err := meter.Float64Gauge(
		"salescleanup_process_uptime",
		metric.WithDescription("Time since the run started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RuntimeMetrics{
		goroutines: goroutines,
		heapAlloc:  heapAlloc,
		totalAlloc: totalAlloc,
		sysMemory:  sysMemory,
		gcCycles:   gcCycles,
		gcPause:    gcPause,
		uptime:     uptime,
	}, nil
}

// ReadRuntimeStats takes a snapshot of the Go runtime
func ReadRuntimeStats(startTime time.Time) RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeStats{
		Goroutines:    runtime.NumGoroutine(),
		HeapAlloc:     m.HeapAlloc,
		TotalAlloc:    m.TotalAlloc,
		SysMemory:     m.Sys,
		GCCycles:      m.NumGC,
		GCPauseTotal:  time.Duration(m.PauseTotalNs),
		ProcessUptime: time.Since(startTime),
	}
}

// Collect records a snapshot and returns it
func (rm *RuntimeMetrics) Collect(ctx context.Context, startTime time.Time) RuntimeStats {
	stats := ReadRuntimeStats(startTime)
	if rm == nil {
		return stats
	}

	rm.goroutines.Record(ctx, int64(stats.Goroutines))
	rm.heapAlloc.Record(ctx, int64(stats.HeapAlloc))
	rm.totalAlloc.Record(ctx, int64(stats.TotalAlloc))
	rm.sysMemory.Record(ctx, int64(stats.SysMemory))
	rm.gcCycles.Record(ctx, int64(stats.GCCycles))
	rm.gcPause.Record(ctx, stats.GCPauseTotal.Seconds())
	rm.uptime.Record(ctx, stats.ProcessUptime.Seconds())
	return stats
}
