package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "salescleanup/internal/errors"
)

// workbookExtensions are the formats the workbook reader can open
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// FileValidator checks input and output locations before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that path exists, is a regular file and can be opened
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("file", err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSourceWorkbook checks the sales workbook before it is loaded
func (v *FileValidator) ValidateSourceWorkbook(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !workbookExtensions[ext] {
		v.logger.Error("File is not an Excel workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewValidationError(
			fmt.Sprintf("file %s is not an Excel workbook (extension: %s)", path, ext), nil)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel lock file",
			slog.String("file", path))
		return apperrors.NewValidationError(fmt.Sprintf("file %s is a temporary Excel file", path), nil)
	}

	return nil
}

// ValidateOutputDirectory ensures dir exists or can be created and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("directory", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputFiles checks the directory of every output path
func (v *FileValidator) ValidateOutputFiles(paths ...string) error {
	seen := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := v.ValidateOutputDirectory(dir); err != nil {
			return err
		}
	}
	return nil
}
