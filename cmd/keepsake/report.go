package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/keepsake/internal/library"
	"github.com/at-ishikawa/keepsake/internal/report"
)

func newReportCommand() *cobra.Command {
	var (
		outDir string
		pdf    bool
	)

	cmd := &cobra.Command{
		Use:   "report KIND",
		Short: "Render the records of a kind as a Markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKind(cmd.Context(), args[0], func(ws *workspace, kind library.Kind) error {
				data, err := report.Build(cmd.Context(), kind, ws.profile, time.Now())
				if err != nil {
					return fmt.Errorf("report.Build() > %w", err)
				}

				dir := outDir
				if dir == "" {
					dir = ws.cfg.Outputs.ReportDirectory
				}
				path, err := report.WriteFile(dir, ws.cfg.Templates.ReportTemplate, data)
				if err != nil {
					return fmt.Errorf("report.WriteFile() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

				if !pdf {
					return nil
				}
				pdfPath, err := report.ConvertMarkdownToPDF(path)
				if err != nil {
					return fmt.Errorf("report.ConvertMarkdownToPDF() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", pdfPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write the report to (default outputs.report_directory)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also convert the report to PDF")
	return cmd
}
