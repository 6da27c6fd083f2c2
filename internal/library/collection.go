// Package library keeps the per-profile record collections and runs the CSV
// export and import flows over them.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/keepsake/internal/csvio"
	"github.com/at-ishikawa/keepsake/internal/csvschema"
	"github.com/at-ishikawa/keepsake/internal/record"
	"github.com/at-ishikawa/keepsake/internal/storage"
	"github.com/at-ishikawa/keepsake/internal/transfer"
)

var (
	// ErrCorruptState is returned when the stored list cannot be decoded.
	ErrCorruptState = errors.New("stored records are corrupt")
	ErrDuplicate    = errors.New("record already exists")
	ErrNotFound     = errors.New("record not found")
)

// Export is the result of exporting a collection.
type Export struct {
	FileName string
	Text     string
	Count    int
}

type ImportOptions struct {
	// DryRun computes the merge without saving it.
	DryRun bool
}

// ImportLine describes one parsed row of an import.
type ImportLine struct {
	ID      string
	Summary string
	Skipped bool
}

type ImportResult struct {
	Parsed  int
	Added   int
	Skipped int
	Lines   []ImportLine
}

// Collection is the list of one record kind for one profile.
type Collection[T record.Record] struct {
	store   storage.Store
	schema  csvschema.Schema[T]
	profile string
	now     func() time.Time
	newID   func() string
}

func NewCollection[T record.Record](store storage.Store, schema csvschema.Schema[T], profile string, opts ...Option) *Collection[T] {
	o := newOptions(opts)
	return &Collection[T]{
		store:   store,
		schema:  schema,
		profile: profile,
		now:     o.now,
		newID:   o.newID,
	}
}

func (c *Collection[T]) Name() string     { return c.schema.Name }
func (c *Collection[T]) Stem() string     { return c.schema.Stem }
func (c *Collection[T]) Title() string    { return c.schema.Title }
func (c *Collection[T]) Labels() []string { return c.schema.Labels() }

// StorageKey returns "<profile>_<stem>_db".
func (c *Collection[T]) StorageKey() string {
	return StorageKey(c.profile, c.schema.Stem)
}

// StorageKey returns the key a profile's list of stem is stored under.
func StorageKey(profile, stem string) string {
	return fmt.Sprintf("%s_%s_db", profile, stem)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, bool, error) {
	key := c.StorageKey()
	value, ok, err := c.store.Load(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("store.Load(%s) > %w", key, err)
	}
	if !ok || strings.TrimSpace(value) == "" {
		return []T{}, ok, nil
	}

	var records []T
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrCorruptState, key, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, true, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	value, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	key := c.StorageKey()
	if err := c.store.Save(ctx, key, string(value)); err != nil {
		return fmt.Errorf("store.Save(%s) > %w", key, err)
	}
	return nil
}

// List returns the stored records, newest first.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	records, _, err := c.load(ctx)
	return records, err
}

// Rows returns the display cells of every record.
func (c *Collection[T]) Rows(ctx context.Context) ([][]string, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = c.schema.Cells(rec)
	}
	return rows, nil
}

func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	records, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Export renders the stored list as CSV.
func (c *Collection[T]) Export(ctx context.Context) (Export, error) {
	records, err := c.List(ctx)
	if err != nil {
		return Export{}, err
	}
	return Export{
		FileName: transfer.ExportFileName(c.schema.Stem, c.now()),
		Text:     c.schema.Generate(records),
		Count:    len(records),
	}, nil
}

// Import decodes raw CSV bytes, parses them and merges the records into the stored
// list. Nothing is saved when decoding fails or the stored list is corrupt.
func (c *Collection[T]) Import(ctx context.Context, raw []byte, opts ImportOptions) (ImportResult, error) {
	text, err := csvio.Decode(raw)
	if err != nil {
		return ImportResult{}, fmt.Errorf("csvio.Decode() > %w", err)
	}
	existing, _, err := c.load(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	return c.merge(ctx, existing, c.schema.ParseAt(text, c.now()), opts)
}

func (c *Collection[T]) merge(ctx context.Context, existing, incoming []T, opts ImportOptions) (ImportResult, error) {
	heldKeys := make(map[string]struct{}, len(existing))
	heldIDs := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		heldIDs[record.Identity(rec)] = struct{}{}
		if c.schema.Key != nil {
			heldKeys[c.schema.Key(rec)] = struct{}{}
		}
	}

	lines := make([]ImportLine, 0, len(incoming))
	for i, rec := range incoming {
		duplicate := false
		if c.schema.Key != nil {
			_, duplicate = heldKeys[c.schema.Key(rec)]
		}
		if !duplicate {
			// ids stay unique within the list, e.g. when an export is imported again
			if _, taken := heldIDs[record.Identity(rec)]; taken {
				rec = record.WithIdentity(rec, c.newID())
				incoming[i] = rec
			}
			heldIDs[record.Identity(rec)] = struct{}{}
		}
		lines = append(lines, ImportLine{
			ID:      record.Identity(rec),
			Summary: c.summary(rec),
			Skipped: duplicate,
		})
	}

	merged, skipped := record.Merge(existing, incoming, c.schema.Key)
	result := ImportResult{
		Parsed:  len(incoming),
		Added:   len(incoming) - skipped,
		Skipped: skipped,
		Lines:   lines,
	}

	if opts.DryRun || result.Added == 0 {
		return result, nil
	}
	if err := c.save(ctx, merged); err != nil {
		return ImportResult{}, err
	}
	slog.Default().Debug("imported records",
		"kind", c.schema.Name,
		"profile", c.profile,
		"added", result.Added,
		"skipped", result.Skipped,
	)
	return result, nil
}

// summary is the first non-empty display cell after the id.
func (c *Collection[T]) summary(rec T) string {
	cells := c.schema.Cells(rec)
	for _, cell := range cells[1:] {
		if cell != "" {
			return cell
		}
	}
	return ""
}

// Add prepends rec. An empty id is replaced by a generated one.
func (c *Collection[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	records, _, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	for _, held := range records {
		if c.schema.Key != nil && c.schema.Key(held) == c.schema.Key(rec) {
			return zero, fmt.Errorf("%w: %s", ErrDuplicate, c.schema.Key(rec))
		}
	}
	if record.Identity(rec) == "" {
		rec = record.WithIdentity(rec, c.newID())
	}
	for _, held := range records {
		if record.Identity(held) == record.Identity(rec) {
			return zero, fmt.Errorf("%w: id %s", ErrDuplicate, record.Identity(rec))
		}
	}

	if err := c.save(ctx, append([]T{rec}, records...)); err != nil {
		return zero, err
	}
	return rec, nil
}

// AddFields builds a record from label/value pairs and adds it.
func (c *Collection[T]) AddFields(ctx context.Context, fields map[string]string) (string, error) {
	rec, err := c.schema.FromFields(fields, c.now())
	if err != nil {
		return "", fmt.Errorf("schema.FromFields() > %w", err)
	}
	if !hasID(fields) {
		rec = record.WithIdentity(rec, c.newID())
	}
	added, err := c.Add(ctx, rec)
	if err != nil {
		return "", err
	}
	return record.Identity(added), nil
}

func hasID(fields map[string]string) bool {
	for label, value := range fields {
		if strings.EqualFold(label, "ID") && strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	records, _, err := c.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(records))
	for _, rec := range records {
		if record.Identity(rec) != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.schema.Name, id)
	}
	return c.save(ctx, kept)
}

// Seed imports raw CSV only when nothing was ever saved for this collection.
func (c *Collection[T]) Seed(ctx context.Context, raw []byte) (ImportResult, bool, error) {
	_, ok, err := c.load(ctx)
	if err != nil {
		return ImportResult{}, false, err
	}
	if ok {
		return ImportResult{}, false, nil
	}

	result, err := c.Import(ctx, raw, ImportOptions{})
	if err != nil {
		return ImportResult{}, false, err
	}
	return result, result.Added > 0, nil
}
