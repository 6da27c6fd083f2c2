package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/keepsake/internal/library"
	"github.com/at-ishikawa/keepsake/internal/transfer"
)

// Outcome reports what seeding did for one kind.
type Outcome struct {
	Kind  string
	File  string
	Found bool
	// Seeded is false when the kind already had saved state or the file held no rows.
	Seeded bool
	Added  int
}

// Load seeds every kind of lib from src. A kind whose file is missing is skipped.
func Load(ctx context.Context, lib *library.Library, src Source) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(lib.Kinds()))
	for _, kind := range lib.Kinds() {
		name := transfer.SeedFileName(kind.Stem())
		outcome := Outcome{Kind: kind.Name(), File: name}

		contents, ok, err := src.Fetch(ctx, name)
		if err != nil {
			return outcomes, fmt.Errorf("src.Fetch(%s) > %w", name, err)
		}
		if !ok {
			slog.Default().Debug("no seed file", "source", src.String(), "file", name)
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Found = true

		result, seeded, err := kind.Seed(ctx, contents)
		if err != nil {
			return outcomes, fmt.Errorf("kind.Seed(%s) > %w", kind.Name(), err)
		}
		outcome.Seeded = seeded
		outcome.Added = result.Added
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
