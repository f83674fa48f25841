package config

// Application constants
const (
	AppName = "Supermarket Sales Cleanup"

	// EnvPrefix namespaces every environment variable, e.g. SALESCLEAN_LOGGING_LEVEL
	EnvPrefix = "SALESCLEAN"

	// DotEnvFile is read into the environment before configuration is loaded
	DotEnvFile = ".env"

	// Fixed locations of the raw export and the cleaned outputs, relative to the working directory
	DefaultSourceFile = "../data/raw/messy_supermarket_sales.xlsx"
	DefaultCSVFile    = "../data/cleaned/supermarket_sales_cleaned.csv"
	DefaultExcelFile  = "../data/cleaned/supermarket_sales_cleaned.xlsx"
	DefaultSheetName  = "Cleaned Data"

	// Sampling used by the data analysis logs
	DefaultSampleSize = 10
	DefaultSampleSeed = 42

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "file"
	DefaultLogFile   = "logs/salescleanup.log"

	DefaultTraceExporter = "none"
)
