package report

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/logger"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
)

// SheetName is the worksheet that holds the report in XLSX output.
const SheetName = "Analytics"

// WriteXLSX writes the same table as WriteCSV into a single worksheet.
// Counts are stored as numeric cells.
func WriteXLSX(records []models.Record, path string) error {
	if len(records) == 0 {
		logger.Info("No records to export")
		return nil
	}

	t := newTable(records)
	logger.Info("Exporting records", "count", len(records), "path", path)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, col := range t.columns {
		headerRow.AddCell().Value = col
	}

	for _, fields := range t.rows {
		row := sheet.AddRow()
		for _, col := range t.columns {
			c := row.AddCell()
			switch v := fields[col].(type) {
			case int64:
				c.SetInt64(v)
			default:
				c.Value = cell(v)
			}
		}
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save XLSX file: %w", err)
	}

	logger.Info("Successfully exported", "path", path)
	return nil
}
