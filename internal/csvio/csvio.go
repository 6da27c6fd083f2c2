// Package csvio implements the comma-separated tokenizer and serializer shared by
// every record schema.
//
// Fields are quoted only when they contain a comma, a double quote or a newline.
// Rows are split on raw line breaks, so a quoted field that spans lines ends up
// in two rows.
package csvio

import (
	"fmt"
	"strconv"
	"strings"
)

// BOM is written in front of every serialized table so spreadsheet tools detect UTF-8.
const BOM = "\uFEFF"

// EscapeField converts a scalar into a cell.
func EscapeField(value any) string {
	s, ok := stringify(value)
	if !ok {
		return ""
	}
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatValue stringifies a scalar the same way EscapeField does, without quoting.
func FormatValue(value any) string {
	s, _ := stringify(value)
	return s
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case *float64:
		if v == nil {
			return "", false
		}
		return strconv.FormatFloat(*v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// ParseLine splits a single record line into its raw fields.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, current.String())
}

// SplitRecords splits text into non-blank lines. The first line is the header.
func SplitRecords(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// SerializeTable joins already escaped cells into CSV text prefixed with a BOM.
func SerializeTable(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}
