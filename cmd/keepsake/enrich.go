package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keepsake/internal/enrich"
	"github.com/at-ishikawa/keepsake/internal/enrich/openai"
	"github.com/at-ishikawa/keepsake/internal/library"
)

var errMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

func newEnrichCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "enrich WORD...",
		Short: "Look up the reading, meaning and an example of Japanese words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = ws.close() }()

			if ws.cfg.OpenAI.APIKey == "" {
				return errMissingAPIKey
			}
			openaiClient := openai.NewClient(ws.cfg.OpenAI.APIKey, ws.cfg.OpenAI.Model, ws.cfg.OpenAI.MaxRetryAttempts)
			defer func() { _ = openaiClient.Close() }()
			client := enrich.NewCachedClient(openaiClient, time.Duration(ws.cfg.Enrichment.CacheTTLMinutes)*time.Minute)

			return runEnrich(cmd.Context(), cmd.OutOrStdout(), ws.lib, client, args, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "add the words to the vocabulary list")
	return cmd
}

// runEnrich looks up every word in order. A word repeated in words is answered by
// the client's cache when it has one.
func runEnrich(ctx context.Context, out io.Writer, lib *library.Library, client enrich.Client, words []string, save bool) error {
	for _, word := range words {
		details, err := client.EnrichVocabulary(ctx, word)
		if err != nil {
			return fmt.Errorf("client.EnrichVocabulary(%s) > %w", word, err)
		}

		fmt.Fprintf(out, "%s (%s)\n", details.Word, details.Reading)
		fmt.Fprintf(out, "  meaning:    %s\n", details.Meaning)
		fmt.Fprintf(out, "  meaning jp: %s\n", details.MeaningJP)
		fmt.Fprintf(out, "  example:    %s\n", details.ExampleSentence)
		fmt.Fprintf(out, "              %s\n", details.ExampleTranslation)

		if !save {
			continue
		}
		vocabulary := details.Vocabulary()
		vocabulary.AddedAt = time.Now().UnixMilli()
		added, err := lib.Vocabulary().Add(ctx, vocabulary)
		if errors.Is(err, library.ErrDuplicate) {
			fmt.Fprintf(out, "Already saved %s\n", details.Word)
			continue
		}
		if err != nil {
			return fmt.Errorf("vocabulary.Add() > %w", err)
		}
		fmt.Fprintf(out, "Saved vocabulary %s\n", added.ID)
	}
	return nil
}
