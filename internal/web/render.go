package web

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/logger"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/ops"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Theme   note.Theme

	// Sidebar feeds the filter and category navigation
	Sidebar *ops.ListCategoriesOutput

	// Filter is the active filter string, used to highlight the sidebar
	Filter string
	Query  string
}

// ListPageData is the template data for the note list page.
type ListPageData struct {
	PageData
	View *ops.ViewOutput
}

// DetailPageData is the template data for the note detail page.
type DetailPageData struct {
	PageData
	Note         *ops.GetOutput
	RenderedHTML template.HTML
}

// EditPageData is the template data for the create/edit form.
type EditPageData struct {
	PageData
	Note       *ops.GetOutput // nil when creating
	Categories []string
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
	markdown  goldmark.Markdown
	version   string
	log       *logger.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, log *logger.Logger) *Renderer {
	funcMap := template.FuncMap{
		"formatDate": note.FormatDate,
		"filterFor":  func(name string) string { return "category:" + name },
		"isDark":     func(t note.Theme) bool { return t == note.ThemeDark },
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"list":   "list.html",
		"detail": "detail.html",
		"edit":   "edit.html",
		"error":  "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		// Note content is editor markup; raw HTML must pass through.
		markdown: goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe())),
		version:  version,
		log:      log,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		logger.Log(req.Context(), r.log).Error(req.Context(), "template not found", zap.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Log(req.Context(), r.log).Error(req.Context(), "template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var jErr *errors.JotError
	if !stderrors.As(err, &jErr) {
		jErr = errors.NewInternal(err)
	}

	status := jErr.Status
	log := logger.Log(req.Context(), r.log)
	if status >= http.StatusInternalServerError {
		log.Error(req.Context(), "request failed", zap.Error(err))
	} else {
		log.Debug(req.Context(), "request rejected", zap.String("code", string(jErr.Code)), zap.Int("status", status))
	}

	if wantsJSON(req) {
		renderJSON(w, status, map[string]any{
			"error": map[string]any{
				"code":    string(jErr.Code),
				"message": jErr.Message,
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
		Message:    jErr.Message,
	})
}

// render converts note content to HTML using goldmark. Markup already in
// HTML form passes through untouched.
func (r *Renderer) render(ctx context.Context, content note.Content) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(content), &buf); err != nil {
		logger.Log(ctx, r.log).Warn(ctx, "content render failed, showing escaped text", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(content.String()))
	}
	return template.HTML(buf.String())
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
