package operations

// Cleanup step identifiers, in execution order
const (
	StepIDLoad       = "load"
	StepIDInspect    = "inspect"
	StepIDLocations  = "locations"
	StepIDWalkIns    = "walk-ins"
	StepIDIncomplete = "incomplete"
	StepIDDates      = "dates"
	StepIDTotals     = "totals"
	StepIDText       = "text"
	StepIDDuplicates = "duplicates"
	StepIDSort       = "sort"
	StepIDVerify     = "verify"
	StepIDExport     = "export"
)

// Cleanup step names
const (
	StepNameLoad       = "Load Sales Data"
	StepNameInspect    = "Initial Data Analysis"
	StepNameLocations  = "Location Standardization"
	StepNameWalkIns    = "Remove Walk-in Customers"
	StepNameIncomplete = "Remove Incomplete Records"
	StepNameDates      = "Date Standardization"
	StepNameTotals     = "Sales Recalculation"
	StepNameText       = "Text Standardization"
	StepNameDuplicates = "Duplicate Removal"
	StepNameSort       = "Chronological Sort"
	StepNameVerify     = "Output Verification"
	StepNameExport     = "Data Export"
)

// Console sections the steps are grouped under
const (
	SectionAnalysis     = "INITIAL DATA ANALYSIS"
	SectionLocations    = "LOCATION STANDARDIZATION"
	SectionMissing      = "MISSING DATA CLEANUP"
	SectionFormat       = "FORMAT STANDARDIZATION"
	SectionText         = "TEXT STANDARDIZATION"
	SectionOrganization = "FINAL DATA ORGANIZATION"
	SectionExport       = "DATA EXPORT"
)

// RunConfig holds the inputs of one cleanup run
type RunConfig struct {
	SourceFile string
	CSVFile    string
	ExcelFile  string
	SheetName  string
	SampleSize int
	SampleSeed int64
}
