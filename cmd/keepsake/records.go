package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/keepsake/internal/csvio"
	"github.com/at-ishikawa/keepsake/internal/library"
	"github.com/at-ishikawa/keepsake/internal/transfer"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatCSV   OutputFormat = "csv"
)

var (
	_             pflag.Value = (*OutputFormat)(nil)
	outputFormats             = []OutputFormat{OutputFormatTable, OutputFormatCSV}
)

func (f *OutputFormat) Set(val string) error {
	for _, format := range outputFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f OutputFormat) String() string {
	return string(f)
}

func (f *OutputFormat) Type() string {
	return "format"
}

func newExportCommand() *cobra.Command {
	var outDir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export KIND",
		Short: "Export the records of a kind to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKind(cmd.Context(), args[0], func(ws *workspace, kind library.Kind) error {
				export, err := kind.Export(cmd.Context())
				if err != nil {
					return fmt.Errorf("kind.Export() > %w", err)
				}
				if toStdout {
					_, err := fmt.Fprint(cmd.OutOrStdout(), export.Text)
					return err
				}

				dir := outDir
				if dir == "" {
					dir = ws.cfg.Outputs.ExportDirectory
				}
				path, err := transfer.WriteExport(dir, export.FileName, export.Text)
				if err != nil {
					return fmt.Errorf("transfer.WriteExport() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s records to %s\n", export.Count, kind.Name(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write the file to (default outputs.export_directory)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the CSV instead of writing a file")
	return cmd
}

func newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import KIND FILE",
		Short: "Import records of a kind from a CSV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKind(cmd.Context(), args[0], func(ws *workspace, kind library.Kind) error {
				raw, err := transfer.ReadCSV(args[1])
				if err != nil {
					return fmt.Errorf("transfer.ReadCSV() > %w", err)
				}
				result, err := kind.Import(cmd.Context(), raw, library.ImportOptions{DryRun: dryRun})
				if err != nil {
					return fmt.Errorf("kind.Import() > %w", err)
				}
				printImportResult(cmd.OutOrStdout(), result, dryRun)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the import without saving")
	return cmd
}

func printImportResult(w io.Writer, result library.ImportResult, dryRun bool) {
	newLabel := color.New(color.FgGreen)
	skipLabel := color.New(color.FgYellow)
	for _, line := range result.Lines {
		if line.Skipped {
			skipLabel.Fprint(w, "[SKIP]")
		} else {
			newLabel.Fprint(w, "[NEW] ")
		}
		fmt.Fprintf(w, " %s %s\n", line.ID, line.Summary)
	}

	fmt.Fprintln(w, "\nImport Summary:")
	if dryRun {
		fmt.Fprintln(w, "  (dry-run mode, no changes made)")
	}
	fmt.Fprintf(w, "  %d parsed, %d new, %d skipped\n", result.Parsed, result.Added, result.Skipped)
}

func newListCommand() *cobra.Command {
	format := OutputFormatTable

	cmd := &cobra.Command{
		Use:   "list KIND",
		Short: "List the records of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKind(cmd.Context(), args[0], func(ws *workspace, kind library.Kind) error {
				if format == OutputFormatCSV {
					export, err := kind.Export(cmd.Context())
					if err != nil {
						return fmt.Errorf("kind.Export() > %w", err)
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimPrefix(export.Text, csvio.BOM))
					return err
				}

				rows, err := kind.Rows(cmd.Context())
				if err != nil {
					return fmt.Errorf("kind.Rows() > %w", err)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, strings.Join(kind.Labels(), "\t"))
				for _, row := range rows {
					fmt.Fprintln(tw, strings.Join(row, "\t"))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().Var(&format, "format", fmt.Sprintf("output format. Possible values are %v", outputFormats))
	return cmd
}

func newAddCommand() *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:     "add KIND",
		Short:   "Add a record from Label=value pairs",
		Example: `  keepsake add travel --set Name="Fushimi Inari" --set Status=VISITED`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			return withKind(cmd.Context(), args[0], func(ws *workspace, kind library.Kind) error {
				id, err := kind.AddFields(cmd.Context(), fields)
				if err != nil {
					return fmt.Errorf("kind.AddFields() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", kind.Name(), id)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "column value as Label=value, repeatable")
	return cmd
}

func parseAssignments(assignments []string) (map[string]string, error) {
	if len(assignments) == 0 {
		return nil, fmt.Errorf("at least one --set Label=value is required")
	}
	fields := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		label, value, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected Label=value", assignment)
		}
		fields[strings.TrimSpace(label)] = value
	}
	return fields, nil
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KIND ID",
		Short: "Delete a record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKind(cmd.Context(), args[0], func(ws *workspace, kind library.Kind) error {
				if err := kind.Delete(cmd.Context(), args[1]); err != nil {
					return fmt.Errorf("kind.Delete() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind.Name(), args[1])
				return nil
			})
		},
	}
}
