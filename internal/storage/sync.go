package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/misterclayt0n/warrior/internal/models"
)

// ExportState writes st to outputPath. The format follows the file extension.
func ExportState(st *models.State, outputPath string) error {
	format, err := FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	data, err := Marshal(st, format)
	if err != nil {
		return err
	}

	// Make the output path absolute relative to the current directory.
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// DefaultExportName is the file name used when none is given.
func DefaultExportName(today string) string {
	return fmt.Sprintf("warrior-progression-%s.json", today)
}

// ImportState reads a document written by ExportState (or by the browser
// app, whose JSON export has the same top-level fields). The caller replaces
// its state wholesale with the result and normalizes it.
func ImportState(filePath string) (*models.State, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("Reading file %s: %w", filePath, err)
	}

	return Decode(data, format)
}
