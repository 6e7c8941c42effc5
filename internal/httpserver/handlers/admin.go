package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/toolhub/toolhub/internal/ai"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/editor"
	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/logger"
)

type toolRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	DescriptionZh string   `json:"descriptionZh"`
	Category      string   `json:"category"`
	URL           string   `json:"url"`
	IconURL       string   `json:"iconUrl"`
	Tags          []string `json:"tags"`
	IsFeatured    bool     `json:"isFeatured"`
}

func (tr toolRequest) applyTo(draft *domain.Draft) {
	draft.Name = tr.Name
	draft.Description = tr.Description
	draft.DescriptionZh = tr.DescriptionZh
	if tr.Category != "" {
		draft.Category = domain.CategoryID(tr.Category)
	}
	draft.URL = tr.URL
	draft.IconURL = tr.IconURL
	if tr.Tags != nil {
		draft.Tags = tr.Tags
	}
	draft.IsFeatured = tr.IsFeatured
}

// CreateTool commits a new tool through the editor. The committed
// record is prepended to the catalog.
func CreateTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		e := d.Editor
		e.Open()
		e.Discard() // drop any stale draft from an aborted request
		if _, err := e.OpenCreate(); err != nil {
			writeEditorError(w, err)
			return
		}
		if err := e.UpdateDraft(req.applyTo); err != nil {
			writeEditorError(w, err)
			return
		}

		tool, err := e.Save(r.Context())
		if err != nil {
			e.Discard()
			writeEditorError(w, err)
			return
		}

		d.Logger.Info("tool created",
			logger.String("id", tool.ID),
			logger.String("name", tool.Name))
		writeJSON(w, http.StatusCreated, tool)
	}
}

// UpdateTool edits an existing tool in place, keeping its position.
func UpdateTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req toolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		e := d.Editor
		e.Open()
		e.Discard()
		if _, err := e.OpenEdit(id); err != nil {
			writeEditorError(w, err)
			return
		}
		if err := e.UpdateDraft(req.applyTo); err != nil {
			writeEditorError(w, err)
			return
		}

		tool, err := e.Save(r.Context())
		if err != nil {
			e.Discard()
			writeEditorError(w, err)
			return
		}

		d.Logger.Info("tool updated",
			logger.String("id", tool.ID))
		writeJSON(w, http.StatusOK, tool)
	}
}

// DeleteTool removes a tool. The confirm query parameter is required:
// without confirm=true nothing is deleted.
func DeleteTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		confirmed := r.URL.Query().Get("confirm") == "true"

		e := d.Editor
		e.Open()
		e.Discard()
		if err := e.Delete(r.Context(), id, confirmed); err != nil {
			writeEditorError(w, err)
			return
		}

		d.Logger.Info("tool deleted via endpoint",
			logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

type iconRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type iconResponse struct {
	IconURL string `json:"iconUrl"`
}

// GenerateIcon produces an inline icon for the given tool name. One
// generation at a time; the name must be present before any model call.
//
// This is the stateless counterpart of Editor.GenerateIcon: the form
// being filled in lives in the browser, not in a server-side draft, so
// the request carries the fields directly. Keep the two contracts in
// step (name precondition, single-flight, failure changes nothing).
func GenerateIcon(d deps.Deps) http.HandlerFunc {
	var inFlight atomic.Bool

	return func(w http.ResponseWriter, r *http.Request) {
		var req iconRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Name == "" {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error: "name is required before generating an icon",
				Field: "name",
			})
			return
		}

		if !inFlight.CompareAndSwap(false, true) {
			writeError(w, http.StatusConflict, "icon generation already in progress")
			return
		}
		defer inFlight.Store(false)

		icon, err := d.AI.GenerateIcon(r.Context(), req.Name, req.Description)
		if err != nil {
			if errors.Is(err, ai.ErrDisabled) {
				writeError(w, http.StatusServiceUnavailable, "AI features are disabled")
				return
			}
			d.Logger.Warn("icon generation failed",
				logger.String("name", req.Name),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "icon generation failed")
			return
		}

		writeJSON(w, http.StatusOK, iconResponse{IconURL: icon})
	}
}

func writeEditorError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: verr.Error(),
			Field: verr.Field,
		})
	case errors.Is(err, editor.ErrToolNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, editor.ErrConfirmationRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, editor.ErrInvalidTransition),
		errors.Is(err, editor.ErrGenerationInFlight):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
