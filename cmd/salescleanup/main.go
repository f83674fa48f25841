package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"salescleanup/internal/config"
	"salescleanup/internal/infrastructure"
	"salescleanup/internal/operations"
	"salescleanup/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one cleanup and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	startTime := time.Now()
	fs := flag.NewFlagSet("salescleanup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	source := fs.String("source", "", "raw sales workbook (overrides cleanup.source_file)")
	csvFile := fs.String("csv", "", "cleaned CSV output (overrides cleanup.csv_file)")
	excelFile := fs.String("excel", "", "cleaned Excel output (overrides cleanup.excel_file)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetVersionString())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	overrideString(&cfg.Cleanup.SourceFile, *source)
	overrideString(&cfg.Cleanup.CSVFile, *csvFile)
	overrideString(&cfg.Cleanup.ExcelFile, *excelFile)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to resolve paths: %v\n", err)
		return 1
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(stderr, "Failed to create output directories: %v\n", err)
		return 1
	}
	cfg.Logging.FilePath = paths.LogFile

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = infrastructure.EnsureTraceID(ctx)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, paths.TraceFile, paths.MetricsFile, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create pipeline metrics", slog.String("error", err.Error()))
		return 1
	}
	runtimeMetrics, err := infrastructure.NewRuntimeMetrics(providers.Meter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create runtime metrics", slog.String("error", err.Error()))
		return 1
	}

	runCfg := operations.RunConfig{
		SourceFile: paths.SourceFile,
		CSVFile:    paths.CSVFile,
		ExcelFile:  paths.ExcelFile,
		SheetName:  cfg.Cleanup.SheetName,
		SampleSize: cfg.Cleanup.SampleSize,
		SampleSeed: cfg.Cleanup.SampleSeed,
	}

	reporter := operations.NewReporter(stdout)
	manager := operations.NewManager(operations.ManagerOptions{
		Tracer:   operations.NewOperationTracer(providers.Tracer, metrics),
		Reporter: reporter,
		Logger:   logger,
	})
	stages := operations.NewCleanupStages(runCfg, operations.StageOptions{Logger: logger, Reporter: reporter})
	if err := manager.RegisterStage(stages...); err != nil {
		logger.ErrorContext(ctx, "Failed to register cleanup steps", slog.String("error", err.Error()))
		return 1
	}

	reporter.Banner("LOCAL SUPERMARKET SALES DATA CLEANUP")

	state := operations.NewOperationState(infrastructure.GetTraceID(ctx), runCfg)
	err = manager.Execute(ctx, state)

	stats := runtimeMetrics.Collect(ctx, startTime)
	logger.InfoContext(ctx, "Runtime usage",
		slog.Int("goroutines", stats.Goroutines),
		slog.Uint64("heap_alloc_bytes", stats.HeapAlloc),
		slog.Uint64("gc_cycles", uint64(stats.GCCycles)),
		slog.Duration("uptime", stats.ProcessUptime))

	if err != nil {
		fmt.Fprintf(stderr, "Cleanup failed: %v\n", err)
		return 1
	}

	reporter.Summary(state.Summary)
	return 0
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
