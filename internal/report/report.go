// Package report renders a collection as Markdown and optionally PDF.
package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/keepsake/internal/library"
)

const embeddedTemplateName = "collection.md.go.tmpl"

//go:embed templates/collection.md.go.tmpl
var fallbackTemplate string

// Report is the data handed to the template.
type Report struct {
	Title       string
	Kind        string
	Stem        string
	Profile     string
	GeneratedAt time.Time
	Labels      []string
	Rows        [][]string
}

// Build collects the rows of kind.
func Build(ctx context.Context, kind library.Kind, profile string, now time.Time) (Report, error) {
	rows, err := kind.Rows(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("kind.Rows() > %w", err)
	}
	return Report{
		Title:       kind.Title(),
		Kind:        kind.Name(),
		Stem:        kind.Stem(),
		Profile:     profile,
		GeneratedAt: now,
		Labels:      kind.Labels(),
		Rows:        rows,
	}, nil
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func parseTemplate(templatePath string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"cell": cellEscaper.Replace,
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a report template, using the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(embeddedTemplateName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// WriteMarkdown renders data with the template at templatePath, or the embedded
// template when the path is empty or unusable.
func WriteMarkdown(output io.Writer, templatePath string, data Report) error {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("parseTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// FileName returns "<stem>_report_<YYYY-MM-DD>.md".
func FileName(stem string, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.md", stem, now.Format("2006-01-02"))
}

// WriteFile renders data into dir and returns the Markdown path.
func WriteFile(dir, templatePath string, data Report) (string, error) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, templatePath, data); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, FileName(data.Stem, data.GeneratedAt))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// ConvertMarkdownToPDF writes a PDF next to the Markdown file and returns its path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("L", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}
	return pdfPath, nil
}
