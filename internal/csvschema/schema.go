// Package csvschema maps typed records to CSV tables and back.
//
// Every record kind is described once by a [Schema]: an ordered list of columns,
// each knowing how to render its cell and how to read it back. Generate and Parse
// walk the same list.
//
// Parsing is positional. The header row is written for humans and spreadsheet tools
// and is skipped on import without being interpreted. Rows with fewer cells than
// MinColumns are dropped silently; cells missing at the end of a longer row are
// read as empty.
package csvschema

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/keepsake/internal/csvio"
	"github.com/at-ishikawa/keepsake/internal/record"
)

// Row describes the data row being parsed.
type Row struct {
	// Index is the zero-based position among the data rows of one import.
	Index int
	Now   time.Time
}

// SyntheticID builds an id for a row whose id cell is empty.
// It is unique within one import.
func (r Row) SyntheticID() string {
	return fmt.Sprintf("%d-%d", r.Now.UnixMilli(), r.Index)
}

// Column binds one CSV column to a field of T.
type Column[T any] struct {
	Label string
	// Cell returns the scalar value written for the record.
	Cell func(T) any
	// Set stores a parsed cell into the record.
	Set func(rec *T, cell string, row Row)
	// Display overrides how the value is shown by list and report output.
	Display func(T) string
}

// Schema describes the CSV layout of one record kind.
type Schema[T any] struct {
	// Name is the kind used on the command line and the RPC API.
	Name string
	// Stem prefixes file names and storage keys, e.g. "japanese" in japanese_db.csv.
	Stem       string
	Title      string
	MinColumns int
	Columns    []Column[T]
	// Key is the natural key used to drop duplicates on import. Nil disables it.
	Key record.KeyFunc[T]
}

// Labels returns the header labels in column order.
func (s Schema[T]) Labels() []string {
	labels := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		labels[i] = col.Label
	}
	return labels
}

// Cells returns the unescaped display values of rec in column order.
func (s Schema[T]) Cells(rec T) []string {
	cells := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		if col.Display != nil {
			cells[i] = col.Display(rec)
			continue
		}
		cells[i] = csvio.FormatValue(col.Cell(rec))
	}
	return cells
}

// Generate renders records as CSV text with a header row.
func (s Schema[T]) Generate(records []T) string {
	header := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		header[i] = csvio.EscapeField(col.Label)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(s.Columns))
		for j, col := range s.Columns {
			row[j] = csvio.EscapeField(col.Cell(rec))
		}
		rows[i] = row
	}
	return csvio.SerializeTable(header, rows)
}

// Parse reads CSV text produced by Generate or edited by hand.
func (s Schema[T]) Parse(text string) []T {
	return s.ParseAt(text, time.Now())
}

// ParseAt is Parse with an explicit clock for ids and timestamps.
func (s Schema[T]) ParseAt(text string, now time.Time) []T {
	lines := csvio.SplitRecords(text)
	if len(lines) <= 1 {
		return []T{}
	}

	records := make([]T, 0, len(lines)-1)
	for i, line := range lines[1:] {
		cells := csvio.ParseLine(line)
		if len(cells) < s.MinColumns {
			slog.Default().Debug("skip a row with too few columns",
				"schema", s.Name,
				"line", i+2,
				"columns", len(cells),
				"minColumns", s.MinColumns,
			)
			continue
		}
		records = append(records, s.build(cells, Row{Index: i, Now: now}))
	}
	return records
}

// FromFields builds a record from label/value pairs. Labels match case-insensitively
// and columns without a value get the same defaults as empty cells.
func (s Schema[T]) FromFields(fields map[string]string, now time.Time) (T, error) {
	cells := make([]string, len(s.Columns))
	for label, value := range fields {
		idx := s.columnIndex(label)
		if idx < 0 {
			var zero T
			return zero, fmt.Errorf("unknown column %q for %s, valid columns are %v", label, s.Name, s.Labels())
		}
		cells[idx] = value
	}
	return s.build(cells, Row{Now: now}), nil
}

func (s Schema[T]) columnIndex(label string) int {
	for i, col := range s.Columns {
		if strings.EqualFold(col.Label, label) {
			return i
		}
	}
	return -1
}

func (s Schema[T]) build(cells []string, row Row) T {
	var rec T
	for i, col := range s.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		col.Set(&rec, cell, row)
	}
	return rec
}
