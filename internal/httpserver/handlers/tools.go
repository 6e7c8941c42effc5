package handlers

import (
	"net/http"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/httpserver/deps"
)

type toolsResponse struct {
	Tools []domain.Tool `json:"tools"`
	Count int           `json:"count"`
}

type partitionResponse struct {
	Categories []domain.Category      `json:"categories"`
	Groups     []domain.CategoryGroup `json:"groups"`
	Active     domain.CategoryID      `json:"active"`
}

// Tools returns the full catalog in stored order.
func Tools(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tools := d.Catalog.All()
		writeJSON(w, http.StatusOK, toolsResponse{
			Tools: tools,
			Count: len(tools),
		})
	}
}

// Partition returns the catalog grouped by category for the browsing
// view, plus the category nav and the active highlight.
func Partition(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, partitionResponse{
			Categories: domain.Categories(),
			Groups:     domain.Partition(d.Catalog.All()),
			Active:     d.View.ActiveCategory(),
		})
	}
}

type selectCategoryResponse struct {
	Active domain.CategoryID `json:"active"`
}

// SelectCategory handles explicit category navigation. Selecting a
// category clears any active search before the highlight moves.
func SelectCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := domain.CategoryID(r.URL.Query().Get("id"))
		if _, ok := domain.LookupCategory(id); !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}

		d.View.SelectCategory(id, func(domain.CategoryID) {})
		writeJSON(w, http.StatusOK, selectCategoryResponse{
			Active: d.View.ActiveCategory(),
		})
	}
}
