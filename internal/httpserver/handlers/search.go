package handlers

import (
	"net/http"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/logger"
)

type searchResponse struct {
	Query   string            `json:"query"`
	Mode    domain.SearchMode `json:"mode"`
	ToolIDs []string          `json:"toolIds"`
	Tools   []domain.Tool     `json:"tools"`
	Failed  bool              `json:"failed,omitempty"`
	Stale   bool              `json:"stale,omitempty"`
}

// Search resolves a query in plain or assisted mode. An empty query
// clears the search state and returns no results.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := domain.NormalizeQuery(r.URL.Query().Get("q"))
		mode := domain.SearchMode(r.URL.Query().Get("mode"))
		if mode == "" {
			mode = domain.SearchModePlain
		}
		if mode != domain.SearchModePlain && mode != domain.SearchModeAssisted {
			writeError(w, http.StatusBadRequest, "unknown search mode")
			return
		}

		if query == "" {
			d.View.ClearSearch()
			writeJSON(w, http.StatusOK, searchResponse{
				Query:   "",
				Mode:    mode,
				ToolIDs: []string{},
				Tools:   []domain.Tool{},
			})
			return
		}

		snapshot := d.Catalog.All()

		if mode == domain.SearchModePlain {
			results := domain.ResolvePlain(query, snapshot)
			ids := make([]string, 0, len(results))
			for _, t := range results {
				ids = append(ids, t.ID)
			}
			d.View.SetSearch(domain.SearchState{Query: query, Mode: mode})

			d.Logger.Debug("plain search resolved",
				logger.String("query", query),
				logger.Int("matches", len(results)))

			writeJSON(w, http.StatusOK, searchResponse{
				Query:   query,
				Mode:    mode,
				ToolIDs: ids,
				Tools:   results,
			})
			return
		}

		// Assisted mode. The generation token makes the last request
		// win when responses arrive out of order.
		token := d.View.BeginAssisted(query)
		outcome := d.AI.ResolveAssisted(ctx, query, snapshot)
		applied := d.View.ApplyAssisted(token, outcome.ToolIDs)

		if outcome.Failed {
			d.Logger.Warn("assisted search failed, returning no matches",
				logger.String("query", query))
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Query:   query,
			Mode:    mode,
			ToolIDs: outcome.ToolIDs,
			Tools:   domain.FilterByIDs(outcome.ToolIDs, snapshot),
			Failed:  outcome.Failed,
			Stale:   !applied,
		})
	}
}
