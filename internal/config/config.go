package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "salescleanup/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Cleanup   CleanupConfig   `yaml:"cleanup" envconfig:"CLEANUP"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// CleanupConfig describes the source workbook and the two sinks
type CleanupConfig struct {
	SourceFile string `yaml:"source_file" envconfig:"SOURCE_FILE" validate:"required"`
	CSVFile    string `yaml:"csv_file" envconfig:"CSV_FILE" validate:"required,nefield=SourceFile"`
	ExcelFile  string `yaml:"excel_file" envconfig:"EXCEL_FILE" validate:"required,nefield=SourceFile,nefield=CSVFile"`
	SheetName  string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required,max=31"`
	SampleSize int    `yaml:"sample_size" envconfig:"SAMPLE_SIZE" validate:"min=0,max=1000"`
	SampleSeed int64  `yaml:"sample_seed" envconfig:"SAMPLE_SEED"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	TraceFile     string  `yaml:"trace_file" envconfig:"TRACE_FILE"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
	MetricsFile   string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from defaults, the first config file found, and environment variables.
// Environment variables take precedence over the file. Variables from a .env file in the
// working directory are added to the environment first, without replacing ones already set.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load %s", DotEnvFile), err)
	}
	return LoadFrom(getConfigFilePath())
}

// loadDotEnv reads path into the environment; a missing file is not an error
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
	}

	// Fields without a matching variable keep the value from defaults or the file
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid value %q for %s (rule %s)", fmt.Sprint(fe.Value()), fe.Namespace(), fe.Tag())
		}
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Cleanup: CleanupConfig{
			SourceFile: DefaultSourceFile,
			CSVFile:    DefaultCSVFile,
			ExcelFile:  DefaultExcelFile,
			SheetName:  DefaultSheetName,
			SampleSize: DefaultSampleSize,
			SampleSeed: DefaultSampleSeed,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: DefaultTraceExporter,
			SampleRatio:   1.0,
		},
	}
}
