package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "salescleanup/internal/errors"
	"salescleanup/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
	// BOMPrefix adds a UTF-8 byte order mark for spreadsheet tools
	BOMPrefix bool
}

// WriteCSV writes data to filePath, replacing any existing file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", filePath)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return apperrors.NewStorageError("failed to create CSV file", err).WithContext("path", filePath)
	}

	if err := writeCSV(file, options); err != nil {
		file.Close()
		return apperrors.NewStorageError("failed to write CSV file", err).WithContext("path", filePath)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close CSV file", err).WithContext("path", filePath)
	}
	return nil
}

func writeCSV(file *os.File, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return err
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(options.Records); err != nil {
		return err
	}
	return writer.Error()
}

// WriteTransactions writes the cleaned table with the standard header
func (w *CSVWriter) WriteTransactions(filePath string, rows []domain.Transaction) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers: domain.Columns,
		Records: FormatRecords(rows),
	})
}
