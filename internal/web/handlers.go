package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hpungsan/jotter/internal/config"
	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/ops"
	"github.com/hpungsan/jotter/internal/store"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	st       *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// page assembles the fields every page shares.
func (h *Handlers) page(title, filter, query string) PageData {
	return PageData{
		Title:   title,
		Version: h.renderer.version,
		Theme:   h.st.Theme(),
		Sidebar: ops.ListCategories(h.st),
		Filter:  filter,
		Query:   query,
	}
}

// HandleList handles GET /notes: the filtered, searched note list.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ViewInput{
		Filter: r.URL.Query().Get("filter"),
		Query:  r.URL.Query().Get("q"),
	}

	result, err := ops.View(h.st, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: h.page(result.Title, result.Filter, result.Query),
		View:     result,
	})
}

// HandleDetail handles GET /notes/{id}: a single note with rendered content.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	n, err := ops.Get(h.st, ops.GetInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, n)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData:     h.page(n.Title, "", ""),
		Note:         n,
		RenderedHTML: h.renderer.render(r.Context(), n.Content),
	})
}

// HandleNew handles GET /notes/new: the empty editor.
func (h *Handlers) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "edit", EditPageData{
		PageData:   h.page("New Note", "", ""),
		Categories: h.st.Categories(),
	})
}

// HandleEdit handles GET /notes/{id}/edit: the editor for an existing note.
func (h *Handlers) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	n, err := ops.Get(h.st, ops.GetInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "edit", EditPageData{
		PageData:   h.page("Edit "+n.Title, "", ""),
		Note:       n,
		Categories: h.st.Categories(),
	})
}

// HandleCreate handles POST /notes: save a new note.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := ops.Create(r.Context(), h.st, ops.CreateInput{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, result)
		return
	}
	http.Redirect(w, r, notePath(result.Note.ID), http.StatusSeeOther)
}

// HandleUpdate handles POST /notes/{id}: save edits to an existing note.
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := ops.Update(r.Context(), h.st, ops.UpdateInput{
		ID:       id,
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	if !result.Updated {
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, notePath(id), http.StatusSeeOther)
}

// HandlePin handles POST /notes/{id}/pin: toggle the pinned flag.
func (h *Handlers) HandlePin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.TogglePin(r.Context(), h.st, ops.TogglePinInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, backTo(r, notePath(id)), http.StatusSeeOther)
}

// HandleDelete handles DELETE /notes/{id} and POST /notes/{id}/delete.
// The request must carry confirm=true.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := ops.Delete(r.Context(), h.st, ops.DeleteInput{
		ID:      id,
		Confirm: r.FormValue("confirm") == "true",
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

// HandleExport handles GET /notes/{id}/export: download the text artifact.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	artifact, err := ops.RenderExport(h.st, id, r.URL.Query().Get("raw") == "true")
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Body)
}

// HandleAddCategory handles POST /categories.
func (h *Handlers) HandleAddCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := ops.AddCategory(r.Context(), h.st, ops.AddCategoryInput{Name: r.FormValue("name")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, result)
		return
	}
	http.Redirect(w, r, "/notes?filter="+url.QueryEscape("category:"+result.Name), http.StatusSeeOther)
}

// HandleCategories handles GET /categories: the sidebar data as JSON.
func (h *Handlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, ops.ListCategories(h.st))
}

// HandleTheme handles POST /theme. Without a theme value it toggles.
func (h *Handlers) HandleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	theme := r.FormValue("theme")
	if theme == "" {
		theme = "toggle"
	}

	result, err := ops.SetTheme(r.Context(), h.st, ops.ThemeInput{Theme: theme})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, backTo(r, "/notes"), http.StatusSeeOther)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, errors.NewInvalidRequest("note ID is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidRequest("note ID must be a positive integer")
	}
	return id, nil
}

func notePath(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}

// backTo returns the same-origin path from the Referer header, or fallback.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
