package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keepsake/internal/seed"
)

func newSeedCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load seed CSV files into kinds that have never been saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = ws.close() }()

			location := source
			if location == "" {
				location = ws.cfg.Seeds.BaseURL
			}
			if location == "" {
				location = ws.cfg.Seeds.Directory
			}
			src := seed.NewSource(location)

			outcomes, err := seed.Load(cmd.Context(), ws.lib, src)
			if err != nil {
				return fmt.Errorf("seed.Load() > %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Seeding profile %s from %s\n", ws.profile, src)
			for _, outcome := range outcomes {
				switch {
				case !outcome.Found:
					fmt.Fprintf(out, "  %-12s %s not found\n", outcome.Kind, outcome.File)
				case !outcome.Seeded:
					fmt.Fprintf(out, "  %-12s already has data, skipped\n", outcome.Kind)
				default:
					fmt.Fprintf(out, "  %-12s %d records\n", outcome.Kind, outcome.Added)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "seed directory or http(s) base URL (default seeds.base_url or seeds.directory)")
	return cmd
}
