// Package report builds the HTML innovation report and renders it to PDF via
// an external wkhtmltopdf binary. A missing binary disables PDF export with a
// warning; it never fails the process.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lexboard/internal/domain"
	"lexboard/internal/scores"
)

// ErrRendererUnavailable indicates the configured wkhtmltopdf binary does
// not exist. Callers surface this as a warning, not a failure.
var ErrRendererUnavailable = errors.New("report: wkhtmltopdf binary not found; PDF export disabled")

// DefaultBinaryPath is where wkhtmltopdf is looked for when unconfigured.
const DefaultBinaryPath = "/usr/local/bin/wkhtmltopdf"

// FileName returns the export name for the PDF report.
func FileName(industry string) string {
	slug := strings.ReplaceAll(strings.ToLower(industry), " ", "_")
	return slug + "_innovation_report.pdf"
}

// Data is everything the report template needs.
type Data struct {
	Title       string
	Scores      []scores.Scored
	Legislation []domain.LegislationRow
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; color: #ffffff; background-color: #0e1117; }
h1 { color: #00ccff; }
h2 { color: #66d9ef; margin-top: 30px; }
table { width: 100%; border-collapse: collapse; margin-top: 15px; }
th, td { border: 1px solid #444; padding: 8px; font-size: 12px; color: #ffffff; }
th { background-color: #333; }
</style>
</head>
<body>
<h1>Innovation Score Summary &ndash; {{.Title}}</h1>
<table>
<tr><th>Jurisdiction</th><th>Innovation Score</th></tr>
{{range .Scores}}<tr><td>{{.Jurisdiction}}</td><td>{{printf "%.2f" .Score}}</td></tr>
{{end}}</table>
{{if .Legislation}}<h2>Relevant Laws &amp; Barriers &ndash; {{.Title}}</h2>
<table>
<tr><th>Jurisdiction</th><th>Law/Subprovision</th><th>Significance</th><th>Innovation Stage</th><th>Enforceability</th><th>Risk Score</th></tr>
{{range .Legislation}}<tr><td>{{.Jurisdiction}}</td><td>{{.Law}}</td><td>{{.Significance}}</td><td>{{.InnovationStage}}</td><td>{{.Enforceability}}</td><td>{{.RiskScore}}</td></tr>
{{end}}</table>
{{else}}<p><i>No legislation found for this combination.</i></p>
{{end}}</body>
</html>
`))

// BuildHTML renders the report markup. The score table deliberately omits
// the explanation column, matching the displayed summary.
func BuildHTML(data Data) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

// Renderer turns report HTML into a PDF file.
type Renderer interface {
	Available() bool
	Render(ctx context.Context, html, outPath string) error
}

// Wkhtmltopdf renders via the wkhtmltopdf binary at BinPath.
type Wkhtmltopdf struct {
	BinPath string
}

// NewWkhtmltopdf returns a renderer for the given binary path, falling back
// to DefaultBinaryPath when empty.
func NewWkhtmltopdf(binPath string) *Wkhtmltopdf {
	if binPath == "" {
		binPath = DefaultBinaryPath
	}
	return &Wkhtmltopdf{BinPath: binPath}
}

// Available reports whether the binary exists.
func (r *Wkhtmltopdf) Available() bool {
	info, err := os.Stat(r.BinPath)
	return err == nil && !info.IsDir()
}

// Render pipes the HTML through wkhtmltopdf to outPath.
func (r *Wkhtmltopdf) Render(ctx context.Context, html, outPath string) error {
	if !r.Available() {
		return ErrRendererUnavailable
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, r.BinPath, "--quiet", "-", outPath)
	cmd.Stdin = bytes.NewBufferString(html)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wkhtmltopdf failed: %w (%s)", err, stderr.String())
	}
	return nil
}

// Generate builds the report HTML and renders it to a PDF under dir,
// returning the output path.
func Generate(ctx context.Context, r Renderer, dir string, data Data) (string, error) {
	html, err := BuildHTML(data)
	if err != nil {
		return "", err
	}
	out := filepath.Join(dir, FileName(data.Title))
	if err := r.Render(ctx, html, out); err != nil {
		return "", err
	}
	return out, nil
}
