package operations

import (
	"context"
	"log/slog"

	"salescleanup/internal/dataprocessing"
	"salescleanup/internal/exporter"
	"salescleanup/internal/validation"
	"salescleanup/pkg/contracts/domain"
)

// StageOptions carries the collaborators the cleanup steps need.
// Nil fields are replaced with defaults by NewCleanupStages.
type StageOptions struct {
	Logger         *slog.Logger
	Reporter       *Reporter
	FileValidator  *validation.FileValidator
	TableValidator *validation.TableValidator
	Normalizer     *dataprocessing.TextNormalizer
	CSVWriter      *exporter.CSVWriter
	ExcelWriter    *exporter.ExcelWriter
}

func (o *StageOptions) withDefaults(cfg RunConfig) {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.FileValidator == nil {
		o.FileValidator = validation.NewFileValidator(o.Logger)
	}
	if o.TableValidator == nil {
		o.TableValidator = validation.NewTableValidator(o.Logger)
	}
	if o.Normalizer == nil {
		o.Normalizer = dataprocessing.NewTextNormalizer()
	}
	if o.CSVWriter == nil {
		o.CSVWriter = exporter.NewCSVWriter(o.Logger)
	}
	if o.ExcelWriter == nil {
		o.ExcelWriter = exporter.NewExcelWriter(cfg.SheetName, o.Logger)
	}
}

// NewCleanupStages returns the cleanup steps in execution order
func NewCleanupStages(cfg RunConfig, opts StageOptions) []Step {
	opts.withDefaults(cfg)
	return []Step{
		NewLoadStage(opts),
		NewInspectStage(opts),
		NewLocationStage(opts),
		NewWalkInStage(opts),
		NewIncompleteStage(opts),
		NewDateStage(opts),
		NewTotalsStage(opts),
		NewTextStage(opts),
		NewDuplicateStage(opts),
		NewSortStage(opts),
		NewVerifyStage(opts),
		NewExportStage(opts),
	}
}

// LoadStage reads the source workbook into the working table
type LoadStage struct {
	BaseStage
	opts StageOptions
}

// NewLoadStage creates the load step
func NewLoadStage(opts StageOptions) *LoadStage {
	return &LoadStage{BaseStage: NewBaseStage(StepIDLoad, StepNameLoad, ""), opts: opts}
}

// Execute implements Step
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	path := state.Config.SourceFile
	s.opts.Reporter.Linef("Loading raw sales data from Excel file...")

	if err := s.opts.FileValidator.ValidateSourceWorkbook(path); err != nil {
		return err
	}
	result, err := dataprocessing.ParseFile(path, s.opts.Logger)
	if err != nil {
		return err
	}

	state.Rows = result.Transactions
	state.Summary.SourcePath = path
	state.Summary.OriginalCount = len(state.Rows)

	if result.NumericErrors > 0 {
		s.opts.Logger.WarnContext(ctx, "Unparsable numeric cells treated as missing",
			slog.Int("count", result.NumericErrors))
	}
	s.opts.Reporter.Checkf("Loaded %d transaction records", len(state.Rows))
	return nil
}

// InspectStage profiles the raw table and draws a sample
type InspectStage struct {
	BaseStage
	opts StageOptions
}

// NewInspectStage creates the initial analysis step
func NewInspectStage(opts StageOptions) *InspectStage {
	return &InspectStage{BaseStage: NewBaseStage(StepIDInspect, StepNameInspect, SectionAnalysis), opts: opts}
}

// Execute implements Step
func (s *InspectStage) Execute(ctx context.Context, state *OperationState) error {
	state.Profile = dataprocessing.Profile(state.Rows)
	state.SampleBefore = dataprocessing.Sample(state.Rows, state.Config.SampleSize, uint64(state.Config.SampleSeed))

	for _, p := range state.Profile {
		s.opts.Logger.DebugContext(ctx, "Column profile",
			slog.String("column", p.Column),
			slog.Int("count", p.Count),
			slog.Int("missing", p.Missing),
			slog.Int("unique", p.Unique),
			slog.String("top", p.Top))
	}

	s.opts.Reporter.Linef("\nDataset Description:")
	s.opts.Reporter.Profile(state.Profile)
	if len(state.SampleBefore) > 0 {
		s.opts.Reporter.Linef("\nRandom Sample (%d records):", len(state.SampleBefore))
		s.opts.Reporter.Transactions(state.SampleBefore)
	}
	return nil
}

// LocationStage folds store locations into sales channels
type LocationStage struct {
	BaseStage
	opts StageOptions
}

// NewLocationStage creates the location standardization step
func NewLocationStage(opts StageOptions) *LocationStage {
	return &LocationStage{BaseStage: NewBaseStage(StepIDLocations, StepNameLocations, SectionLocations), opts: opts}
}

// Execute implements Step
func (s *LocationStage) Execute(ctx context.Context, state *OperationState) error {
	state.LocationsBefore = dataprocessing.UniqueLocations(state.Rows)
	s.opts.Reporter.Linef("Original store location categories:")
	s.opts.Reporter.Values(state.LocationsBefore)

	unmapped := dataprocessing.RemapLocations(state.Rows)
	if len(unmapped) > 0 {
		s.opts.Logger.WarnContext(ctx, "Store locations without a mapping kept as is",
			slog.Any("locations", unmapped))
	}

	state.LocationsAfter = dataprocessing.UniqueLocations(state.Rows)
	s.opts.Reporter.Checkf("Standardized location categories:")
	s.opts.Reporter.Values(state.LocationsAfter)
	return nil
}

// WalkInStage drops rows without a Customer_ID
type WalkInStage struct {
	BaseStage
	opts StageOptions
}

// NewWalkInStage creates the walk-in customer removal step
func NewWalkInStage(opts StageOptions) *WalkInStage {
	return &WalkInStage{BaseStage: NewBaseStage(StepIDWalkIns, StepNameWalkIns, SectionMissing), opts: opts}
}

// Execute implements Step
func (s *WalkInStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Removing walk-in customers (missing Customer_ID)...")
	rows, removed := dataprocessing.DropMissing(state.Rows, domain.FieldCustomerID)
	state.Rows = rows
	state.Summary.WalkInRemoved = removed
	s.opts.Reporter.Checkf("Removed %d walk-in customer records", removed)
	return nil
}

// IncompleteStage drops rows missing any required field
type IncompleteStage struct {
	BaseStage
	opts StageOptions
}

// NewIncompleteStage creates the incomplete record removal step
func NewIncompleteStage(opts StageOptions) *IncompleteStage {
	return &IncompleteStage{BaseStage: NewBaseStage(StepIDIncomplete, StepNameIncomplete, SectionMissing), opts: opts}
}

// Execute implements Step
func (s *IncompleteStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Removing records with any missing values...")
	rows, removed := dataprocessing.DropMissing(state.Rows)
	state.Rows = rows
	state.Summary.IncompleteRemoved = removed
	s.opts.Reporter.Checkf("Removed %d incomplete records", removed)
	s.opts.Reporter.Checkf("Final dataset: %d complete transaction records", len(rows))
	return nil
}

// DateStage parses the Date column and drops rows whose date is invalid
type DateStage struct {
	BaseStage
	opts StageOptions
}

// NewDateStage creates the date standardization step
func NewDateStage(opts StageOptions) *DateStage {
	return &DateStage{BaseStage: NewBaseStage(StepIDDates, StepNameDates, SectionFormat), opts: opts}
}

// Execute implements Step
func (s *DateStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Converting Date column to datetime format...")
	invalid := dataprocessing.CoerceDates(state.Rows)
	rows, removed := dataprocessing.DropMissing(state.Rows, domain.FieldDate)
	state.Rows = rows
	state.Summary.InvalidDateRemoved = removed

	if invalid > 0 {
		s.opts.Logger.InfoContext(ctx, "Dropped rows with unparsable dates",
			slog.Int("count", invalid))
	}
	s.opts.Reporter.Checkf("Date format standardized")
	s.opts.Reporter.Checkf("Removed %d records with invalid dates", removed)
	return nil
}

// TotalsStage rounds prices and recomputes Total_Sales
type TotalsStage struct {
	BaseStage
	opts StageOptions
}

// NewTotalsStage creates the sales recalculation step
func NewTotalsStage(opts StageOptions) *TotalsStage {
	return &TotalsStage{BaseStage: NewBaseStage(StepIDTotals, StepNameTotals, SectionFormat), opts: opts}
}

// Execute implements Step
func (s *TotalsStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Recalculating Total_Sales for accuracy...")
	dataprocessing.RecomputeTotals(state.Rows)
	s.opts.Reporter.Checkf("Sales calculations verified and standardized")
	return nil
}

// TextStage applies the text formatting rules and samples the result
type TextStage struct {
	BaseStage
	opts StageOptions
}

// NewTextStage creates the text standardization step
func NewTextStage(opts StageOptions) *TextStage {
	return &TextStage{BaseStage: NewBaseStage(StepIDText, StepNameText, SectionText), opts: opts}
}

// Execute implements Step
func (s *TextStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Applying consistent formatting to text columns...")
	dataprocessing.NormalizeText(state.Rows, s.opts.Normalizer)

	s.opts.Reporter.Checkf("Category names standardized to Title Case")
	s.opts.Reporter.Checkf("Payment methods cleaned (spaces removed)")
	s.opts.Reporter.Checkf("Store locations formatted consistently")
	s.opts.Reporter.Checkf("Product names standardized with underscores")

	state.SampleAfter = dataprocessing.Sample(state.Rows, state.Config.SampleSize, uint64(state.Config.SampleSeed))
	if len(state.SampleAfter) > 0 {
		s.opts.Reporter.Linef("\nSample of cleaned data (%d records):", len(state.SampleAfter))
		s.opts.Reporter.Transactions(state.SampleAfter)
	}
	return nil
}

// DuplicateStage removes rows identical to an earlier row
type DuplicateStage struct {
	BaseStage
	opts StageOptions
}

// NewDuplicateStage creates the duplicate removal step
func NewDuplicateStage(opts StageOptions) *DuplicateStage {
	return &DuplicateStage{BaseStage: NewBaseStage(StepIDDuplicates, StepNameDuplicates, SectionOrganization), opts: opts}
}

// Execute implements Step
func (s *DuplicateStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Removing duplicate transaction records...")
	rows, removed := dataprocessing.Deduplicate(state.Rows)
	state.Rows = rows
	state.Summary.DuplicatesRemoved = removed
	s.opts.Reporter.Checkf("Removed %d duplicate records", removed)
	return nil
}

// SortStage orders the table by date and renumbers it
type SortStage struct {
	BaseStage
	opts StageOptions
}

// NewSortStage creates the chronological sort step
func NewSortStage(opts StageOptions) *SortStage {
	return &SortStage{BaseStage: NewBaseStage(StepIDSort, StepNameSort, SectionOrganization), opts: opts}
}

// Execute implements Step
func (s *SortStage) Execute(ctx context.Context, state *OperationState) error {
	s.opts.Reporter.Linef("Sorting transactions by date and resetting index...")
	dataprocessing.SortByDate(state.Rows)
	s.opts.Reporter.Checkf("Data sorted chronologically with sequential indexing")
	return nil
}

// VerifyStage checks the cleaned table before it is written
type VerifyStage struct {
	BaseStage
	opts StageOptions
}

// NewVerifyStage creates the output verification step
func NewVerifyStage(opts StageOptions) *VerifyStage {
	return &VerifyStage{BaseStage: NewBaseStage(StepIDVerify, StepNameVerify, SectionOrganization), opts: opts}
}

// Execute implements Step
func (s *VerifyStage) Execute(ctx context.Context, state *OperationState) error {
	report := s.opts.TableValidator.Validate(state.Rows)
	state.Verification = report
	if err := report.Err(); err != nil {
		for _, v := range report.Violations {
			s.opts.Logger.ErrorContext(ctx, "Cleaned table violation",
				slog.Int("row_id", v.RowID),
				slog.String("rule", v.Rule),
				slog.String("message", v.Message))
		}
		return err
	}
	return nil
}

// ExportStage writes the cleaned table to CSV and Excel
type ExportStage struct {
	BaseStage
	opts StageOptions
}

// NewExportStage creates the export step
func NewExportStage(opts StageOptions) *ExportStage {
	return &ExportStage{BaseStage: NewBaseStage(StepIDExport, StepNameExport, SectionExport), opts: opts}
}

// Execute implements Step. Both files must be written for the step to succeed.
func (s *ExportStage) Execute(ctx context.Context, state *OperationState) error {
	cfg := state.Config
	s.opts.Reporter.Linef("Exporting cleaned data to multiple formats...")

	if err := s.opts.FileValidator.ValidateOutputFiles(cfg.CSVFile, cfg.ExcelFile); err != nil {
		return err
	}
	if err := s.opts.CSVWriter.WriteTransactions(cfg.CSVFile, state.Rows); err != nil {
		return err
	}
	if err := s.opts.ExcelWriter.WriteTransactions(cfg.ExcelFile, state.Rows); err != nil {
		return err
	}

	state.Summary.CSVPath = cfg.CSVFile
	state.Summary.ExcelPath = cfg.ExcelFile
	s.opts.Reporter.Checkf("CSV file: %s", cfg.CSVFile)
	s.opts.Reporter.Checkf("Excel file: %s", cfg.ExcelFile)
	return nil
}
