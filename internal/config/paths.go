package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file locations for one run.
// Relative configuration values are resolved against the working directory.
type Paths struct {
	WorkingDir  string
	SourceFile  string
	CSVFile     string
	ExcelFile   string
	LogFile     string
	TraceFile   string
	MetricsFile string
}

// GetPaths resolves every configured path to an absolute one
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(cfg, wd)
}

// ResolvePaths resolves configured paths against baseDir
func ResolvePaths(cfg *Config, baseDir string) (*Paths, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Clean(filepath.Join(baseDir, p))
	}

	paths := &Paths{
		WorkingDir:  baseDir,
		SourceFile:  resolve(cfg.Cleanup.SourceFile),
		CSVFile:     resolve(cfg.Cleanup.CSVFile),
		ExcelFile:   resolve(cfg.Cleanup.ExcelFile),
		TraceFile:   resolve(cfg.Telemetry.TraceFile),
		MetricsFile: resolve(cfg.Telemetry.MetricsFile),
	}
	if cfg.Logging.Output != "console" {
		paths.LogFile = resolve(cfg.Logging.FilePath)
	}

	return paths, nil
}

// OutputDirectories returns the distinct directories the run writes into
func (p *Paths) OutputDirectories() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, file := range []string{p.CSVFile, p.ExcelFile, p.LogFile, p.TraceFile, p.MetricsFile} {
		if file == "" {
			continue
		}
		dir := filepath.Dir(file)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// EnsureDirectories creates all output directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range p.OutputDirectories() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Resolved paths",
		slog.String("working_dir", p.WorkingDir),
		slog.String("source_file", p.SourceFile),
		slog.String("csv_file", p.CSVFile),
		slog.String("excel_file", p.ExcelFile),
		slog.String("log_file", p.LogFile))
}
