package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/toolhub/toolhub/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready         bool `json:"ready"`
	CatalogLoaded bool `json:"catalog_loaded"`
	RedisOK       bool `json:"redis_ok"`
}

// Readyz reports readiness: the catalog must be loaded. Redis state is
// reported but does not gate readiness, the in-memory catalog serves
// reads on its own.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loaded := d.Catalog.Loaded()

		redisOK := false
		if d.RedisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			redisOK = d.RedisClient.Ping(ctx).Err() == nil
			cancel()
		}

		status := http.StatusOK
		if !loaded {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:         loaded,
			CatalogLoaded: loaded,
			RedisOK:       redisOK,
		})
	}
}
