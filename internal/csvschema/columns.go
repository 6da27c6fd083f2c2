package csvschema

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// TagSeparator joins tag-like lists into one cell.
	TagSeparator = ";"
	// BlobSeparator joins base64 blobs into one cell. The base64 alphabet has no ';'.
	BlobSeparator = ";;;"
)

func idColumn[T any](field func(*T) *string) Column[T] {
	return Column[T]{
		Label: "ID",
		Cell:  func(rec T) any { return *field(&rec) },
		Set: func(rec *T, cell string, row Row) {
			if cell == "" {
				cell = row.SyntheticID()
			}
			*field(rec) = cell
		},
	}
}

func textColumn[T any](label string, field func(*T) *string) Column[T] {
	return Column[T]{
		Label: label,
		Cell:  func(rec T) any { return *field(&rec) },
		Set: func(rec *T, cell string, _ Row) {
			*field(rec) = cell
		},
	}
}

func enumColumn[T any, E ~string](label string, field func(*T) *E, parse func(string) E) Column[T] {
	return Column[T]{
		Label: label,
		Cell:  func(rec T) any { return string(*field(&rec)) },
		Set: func(rec *T, cell string, _ Row) {
			*field(rec) = parse(cell)
		},
	}
}

// addedAtColumn holds unix milliseconds and falls back to the parse time.
func addedAtColumn[T any](field func(*T) *int64) Column[T] {
	return Column[T]{
		Label: "Added At",
		Cell:  func(rec T) any { return *field(&rec) },
		Set: func(rec *T, cell string, row Row) {
			*field(rec) = parseMillis(cell, row.Now.UnixMilli())
		},
	}
}

func parseMillis(cell string, fallback int64) int64 {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return int64(v)
	}
	return fallback
}

func ratingColumn[T any](label string, field func(*T) **float64) Column[T] {
	return Column[T]{
		Label: label,
		Cell:  func(rec T) any { return *field(&rec) },
		Set: func(rec *T, cell string, _ Row) {
			*field(rec) = parseOptionalFloat(cell)
		},
	}
}

func parseOptionalFloat(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}

// listColumn packs a list into one cell. Empty elements are dropped on parse, so an
// empty cell reads back as an empty list. Other elements are kept byte for byte.
func listColumn[T any](label, sep string, field func(*T) *[]string) Column[T] {
	return Column[T]{
		Label: label,
		Cell:  func(rec T) any { return strings.Join(*field(&rec), sep) },
		Set: func(rec *T, cell string, _ Row) {
			*field(rec) = splitList(cell, sep)
		},
	}
}

func splitList(cell, sep string) []string {
	items := []string{}
	for _, item := range strings.Split(cell, sep) {
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// blobColumn is a listColumn whose elements are too large to print.
func blobColumn[T any](label string, field func(*T) *[]string) Column[T] {
	col := listColumn(label, BlobSeparator, field)
	col.Display = func(rec T) string {
		n := len(*field(&rec))
		if n == 0 {
			return ""
		}
		return fmt.Sprintf("(%d attached)", n)
	}
	return col
}
