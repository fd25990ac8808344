package web

import (
	"net/http"
	"strings"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/ops"
	"github.com/hpungsan/promptlib/internal/store"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *store.Store
	renderer *Renderer
}

// HandlePromptList handles GET /prompts, optionally filtered by ?category=.
func (h *Handlers) HandlePromptList(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))

	cats, err := ops.ListCategories(h.store, ops.ListCategoriesInput{Kind: string(library.KindPrompt)})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	result, err := ops.ListPrompts(h.store, ops.ListPromptsInput{CategoryID: categoryID})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "prompts", PromptListPageData{
		PageData: PageData{
			Title:   "Prompts",
			Version: h.renderer.version,
			Nav:     "prompts",
		},
		Categories: cats.Items,
		CategoryID: categoryID,
		Items:      result.Items,
	})
}

// HandlePromptDetail handles GET /prompts/{id}.
func (h *Handlers) HandlePromptDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("prompt id is required"))
		return
	}

	prompt, err := ops.GetPrompt(h.store, ops.GetPromptInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, prompt)
		return
	}

	h.renderer.renderPage(w, r, "prompt", PromptDetailPageData{
		PageData: PageData{
			Title:   prompt.Title,
			Version: h.renderer.version,
			Nav:     "prompts",
		},
		Prompt:       prompt,
		RenderedHTML: renderMarkdown(prompt.Body),
	})
}

// HandlePromptDelete handles DELETE /prompts/{id}.
func (h *Handlers) HandlePromptDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("prompt id is required"))
		return
	}

	result, err := ops.DeletePrompt(h.store, ops.DeletePromptInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.afterDelete(w, r, "/prompts", result.Deleted, result.ID)
}

// HandleCheckpointList handles GET /checkpoints, optionally filtered by ?category=.
func (h *Handlers) HandleCheckpointList(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))

	cats, err := ops.ListCategories(h.store, ops.ListCategoriesInput{Kind: string(library.KindCheckpoint)})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	result, err := ops.ListCheckpoints(h.store, ops.ListCheckpointsInput{CategoryID: categoryID})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "checkpoints", CheckpointListPageData{
		PageData: PageData{
			Title:   "Checkpoints",
			Version: h.renderer.version,
			Nav:     "checkpoints",
		},
		Categories: cats.Items,
		CategoryID: categoryID,
		Items:      result.Items,
	})
}

// HandleCheckpointDetail handles GET /checkpoints/{id}.
func (h *Handlers) HandleCheckpointDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("checkpoint id is required"))
		return
	}

	cp, err := ops.GetCheckpoint(h.store, ops.GetCheckpointInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, cp)
		return
	}

	h.renderer.renderPage(w, r, "checkpoint", CheckpointDetailPageData{
		PageData: PageData{
			Title:   cp.Title,
			Version: h.renderer.version,
			Nav:     "checkpoints",
		},
		Checkpoint:   cp,
		RenderedHTML: renderMarkdown(cp.Body),
	})
}

// HandleCheckpointDelete handles DELETE /checkpoints/{id}.
func (h *Handlers) HandleCheckpointDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("checkpoint id is required"))
		return
	}

	result, err := ops.DeleteCheckpoint(h.store, ops.DeleteCheckpointInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.afterDelete(w, r, "/checkpoints", result.Deleted, result.ID)
}

// afterDelete answers a successful delete the way the client asked.
func (h *Handlers) afterDelete(w http.ResponseWriter, r *http.Request, listPath string, deleted bool, id string) {
	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", listPath)
		w.WriteHeader(http.StatusOK)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": deleted,
			"id":      id,
		})
		return
	}

	http.Redirect(w, r, listPath, http.StatusFound)
}
