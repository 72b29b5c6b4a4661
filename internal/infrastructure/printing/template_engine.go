package printing

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	certapp "github.com/institute/backend/internal/application/certification"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/certificate.html
var certificateHTML string

// TemplateEngine renders certificate documents to HTML
type TemplateEngine struct {
	tmpl        *template.Template
	caser       cases.Caser
	institution string
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithInstitution sets the issuing institution printed on the certificate
func WithInstitution(name string) TemplateEngineOption {
	return func(e *TemplateEngine) { e.institution = name }
}

// WithTemplate replaces the built-in certificate layout
func WithTemplate(tmpl *template.Template) TemplateEngineOption {
	return func(e *TemplateEngine) { e.tmpl = tmpl }
}

// NewTemplateEngine creates an engine using the built-in layout
func NewTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{
		caser:       cases.Title(language.English),
		institution: "Training Institute",
	}
	tmpl, err := template.New("certificate").Funcs(e.funcMap()).Parse(certificateHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate template: %w", err)
	}
	e.tmpl = tmpl
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FuncMap exposes the template helpers for custom layouts
func (e *TemplateEngine) FuncMap() template.FuncMap {
	return e.funcMap()
}

func (e *TemplateEngine) funcMap() template.FuncMap {
	return template.FuncMap{
		"title":      e.titleCase,
		"formatDate": formatDate,
		"upper":      strings.ToUpper,
	}
}

type certificateView struct {
	certapp.Document
	Institution string
}

// RenderHTML fills the certificate layout with doc
func (e *TemplateEngine) RenderHTML(doc certapp.Document) (string, error) {
	var buf bytes.Buffer
	view := certificateView{Document: doc, Institution: e.institution}
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to render certificate template", err)
	}
	return buf.String(), nil
}

// titleCase normalizes names typed in any case ("ASHA sharma" -> "Asha Sharma")
func (e *TemplateEngine) titleCase(s string) string {
	return e.caser.String(strings.ToLower(strings.Join(strings.Fields(s), " ")))
}

// formatDate prints dates the way certificates show them: 15 March 2026
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2 January 2006")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2 January 2006")
	}
	return ""
}
