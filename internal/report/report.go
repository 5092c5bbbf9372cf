// Package report writes aggregated records to delimited or spreadsheet files.
package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
)

// Writer persists records to path. Writing an empty slice is a no-op.
type Writer interface {
	Write(records []models.Record, path string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(records []models.Record, path string) error

// Write calls f.
func (f WriterFunc) Write(records []models.Record, path string) error {
	return f(records, path)
}

// ForFormat returns the writer for "csv" or "xlsx".
func ForFormat(format string) (Writer, error) {
	switch format {
	case "", "csv":
		return WriterFunc(WriteCSV), nil
	case "xlsx":
		return WriterFunc(WriteXLSX), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// table is the uniform view of a set of records: the sorted union of their
// columns and one field map per record.
type table struct {
	columns []string
	rows    []map[string]any
}

func newTable(records []models.Record) table {
	rows := lo.Map(records, func(r models.Record, _ int) map[string]any {
		return r.Fields()
	})
	return table{columns: columnsOf(rows), rows: rows}
}

// Columns returns the union of field names across records, sorted.
func Columns(records []models.Record) []string {
	return newTable(records).columns
}

func columnsOf(rows []map[string]any) []string {
	columns := lo.Uniq(lo.FlatMap(rows, func(row map[string]any, _ int) []string {
		return lo.Keys(row)
	}))
	sort.Strings(columns)
	return columns
}

// cell renders a value for text output. Missing values render empty.
func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}
