package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/logger"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
)

// WriteCSV writes a header of sorted column names followed by one row per
// record. Records lacking a column get an empty cell. Nothing is written for
// an empty slice.
func WriteCSV(records []models.Record, path string) error {
	if len(records) == 0 {
		logger.Info("No records to export")
		return nil
	}

	t := newTable(records)
	logger.Info("Exporting records", "count", len(records), "path", path)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(t.columns); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(t.columns))
	for _, fields := range t.rows {
		for i, col := range t.columns {
			row[i] = cell(fields[col])
		}
		if err := w.Write(row); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}

	logger.Info("Successfully exported", "path", path)
	return nil
}
