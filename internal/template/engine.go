// Package template renders the CI files that run clever-review.
package template

import (
	"fmt"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
	templatefs "github.com/kjourdan1/clever-review/templates"
)

// Module is the import path installed by generated workflows.
const Module = "github.com/kjourdan1/clever-review"

// WorkflowPath is where the review-app workflow is written.
const WorkflowPath = ".github/workflows/review-app.yml"

// prNumber expands to the pull request number at workflow run time.
const prNumber = "${{ github.event.pull_request.number }}"

// RenderedFile is a rendered output artifact.
type RenderedFile struct {
	Path    string
	Content string
}

// Engine renders config-driven templates into files.
type Engine struct {
	funcMap texttemplate.FuncMap
}

// NewEngine creates a new template engine with helper functions.
func NewEngine() (*Engine, error) {
	return &Engine{funcMap: HelperFuncMap()}, nil
}

// WorkflowData is the context of the workflow template. Alias and Domain
// hold GitHub expressions so that every pull request gets its own app.
type WorkflowData struct {
	Name   string
	Module string
	OrgaID string
	Type   string
	Region string
	Alias  string
	Domain string
}

// NewWorkflowData derives per-pull-request values from cfg: the alias gets
// a "-pr-<number>" suffix and a configured domain is used as the parent of
// "<alias>-pr-<number>.<domain>".
func NewWorkflowData(cfg *config.FileConfig) WorkflowData {
	alias := Slugify(cfg.Alias)
	if alias == "" {
		alias = clever.DefaultAlias
	}
	data := WorkflowData{
		Name:   "Review app",
		Module: Module,
		OrgaID: strings.TrimSpace(cfg.OrgaID),
		Type:   strings.TrimSpace(cfg.Type),
		Region: strings.TrimSpace(cfg.Region),
		Alias:  alias + "-pr-" + prNumber,
	}
	if domain := strings.Trim(strings.TrimSpace(cfg.Domain), "."); domain != "" {
		data.Domain = alias + "-pr-" + prNumber + "." + domain
	}
	return data
}

// RenderWorkflow renders the GitHub Actions workflow deploying one review
// app per pull request.
func (e *Engine) RenderWorkflow(cfg *config.FileConfig) ([]RenderedFile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	content, err := e.renderTemplate("workflows/review-app.yml.tmpl", NewWorkflowData(cfg))
	if err != nil {
		return nil, err
	}
	return []RenderedFile{{Path: WorkflowPath, Content: content}}, nil
}

// renderTemplate renders a single template with the given context. Actions
// use [[ ]] so that GitHub's ${{ }} expressions pass through untouched.
func (e *Engine) renderTemplate(templatePath string, ctx interface{}) (string, error) {
	var sb strings.Builder
	t, err := texttemplate.New(path.Base(templatePath)).
		Delims("[[", "]]").
		Funcs(e.funcMap).
		Option("missingkey=error").
		ParseFS(templatefs.FS, templatePath)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", templatePath, err)
	}
	if err := t.ExecuteTemplate(&sb, path.Base(templatePath), ctx); err != nil {
		return "", fmt.Errorf("rendering %s: %w", templatePath, err)
	}
	return sb.String(), nil
}
