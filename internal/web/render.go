package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/ops"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "prompts", "checkpoints"
}

// PromptListPageData is the template data for the prompt list page.
type PromptListPageData struct {
	PageData
	Categories []ops.CategorySummary
	CategoryID string
	Items      []ops.PromptSummary
}

// PromptDetailPageData is the template data for the prompt detail page.
type PromptDetailPageData struct {
	PageData
	Prompt       *ops.GetPromptOutput
	RenderedHTML template.HTML
}

// CheckpointListPageData is the template data for the checkpoint list page.
type CheckpointListPageData struct {
	PageData
	Categories []ops.CategorySummary
	CategoryID string
	Items      []ops.CheckpointSummary
}

// CheckpointDetailPageData is the template data for the checkpoint detail page.
type CheckpointDetailPageData struct {
	PageData
	Checkpoint   *ops.GetCheckpointOutput
	RenderedHTML template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	log       *zap.Logger
}

// pages are parsed on top of layout.html; each file is <name>.html.
var pages = []string{"prompts", "prompt", "checkpoints", "checkpoint", "error"}

// NewRenderer parses layout.html plus every page from templateFS. It panics on
// a malformed template since they are embedded at build time.
func NewRenderer(templateFS fs.FS, version string, log *zap.Logger) *Renderer {
	base := template.Must(template.New("layout").Funcs(template.FuncMap{
		"formatSavedAt": formatSavedAt,
		"formatChars":   formatChars,
	}).ParseFS(templateFS, "layout.html"))

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t := template.Must(base.Clone())
		templates[name] = template.Must(t.ParseFS(templateFS, name+".html"))
	}

	return &Renderer{
		templates: templates,
		version:   version,
		log:       log,
	}
}

func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus writes page name with status. htmx requests get the
// "content" block alone.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.log.Error("template not found", zap.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	block := "layout"
	if req != nil && req.Header.Get("HX-Request") == "true" {
		block = "content"
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.log.Error("template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError maps err to its LibError status and answers in the form the
// client asked for: an htmx fragment, JSON, or the error page.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var lErr *errors.LibError
	if !stderrors.As(err, &lErr) {
		lErr = errors.NewInternal(err)
	}
	if lErr.Code == errors.ErrInternal || lErr.Code == errors.ErrIO {
		r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
	}

	status := lErr.Status
	message := lErr.Message

	if req.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `<div class="error-message">%s</div>`, template.HTMLEscapeString(message))
		return
	}

	if wantsJSON(req) {
		renderJSON(w, status, map[string]any{
			"error": map[string]any{
				"code":    string(lErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}

func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
// Raw HTML in bodies is not passed through.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatSavedAt shortens a stored timestamp to "2006-01-02 15:04".
// Values that do not parse are shown as stored.
func formatSavedAt(s string) string {
	t, err := time.Parse(library.TimestampLayout, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02 15:04")
}

// formatChars formats a count with thousands separators.
func formatChars(n int) string {
	return humanize.Comma(int64(n))
}
