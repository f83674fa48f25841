// Package operations runs the supermarket sales cleanup as an ordered list of
// steps over a shared OperationState.
//
// Manager executes registered steps sequentially. Each step gets its own
// OpenTelemetry span and step metrics, its row counts are recorded in the
// run summary, and the first failure aborts the run with a PIPELINE error;
// later steps are marked skipped.
//
// NewCleanupStages builds the standard step list:
//
//	load → inspect → locations → walk-ins → incomplete → dates → totals
//	→ text → duplicates → sort → verify → export
//
// Reporter prints the console progress lines; it is separate from the
// structured slog output.
//
// Example usage:
//
//	cfg := operations.RunConfig{SourceFile: "raw.xlsx", CSVFile: "out.csv", ExcelFile: "out.xlsx", SheetName: "Cleaned Data"}
//	manager := operations.NewManager(operations.ManagerOptions{Reporter: operations.NewReporter(os.Stdout)})
//	if err := manager.RegisterStage(operations.NewCleanupStages(cfg, operations.StageOptions{})...); err != nil {
//	    return err
//	}
//	state := operations.NewOperationState(runID, cfg)
//	err := manager.Execute(ctx, state)
package operations
