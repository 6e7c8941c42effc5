package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/toolhub/toolhub/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ToolsLoaded *int   `json:"tools_loaded,omitempty"`
	Sessions    *int   `json:"sessions,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		toolCount := d.Catalog.Len()
		sessionCount := d.Chat.Count()

		redisStatus := checkRedis(d)

		aiMode := "disabled"
		if d.AI.Enabled() {
			aiMode = "enabled"
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:          d.Catalog.Loaded(),
				ToolsLoaded: &toolCount,
			},
			"redis": redisStatus,
			"ai": {
				OK:     d.AI.Enabled(),
				Mode:   aiMode,
				Impact: "assisted-search-and-chat",
			},
			"chat": {
				OK:       true,
				Sessions: &sessionCount,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		})
	}
}

func determineServingMode(components map[string]componentStatus) string {
	// No catalog = nothing to serve
	if cat, exists := components["catalog"]; exists && !cat.OK {
		return "critical"
	}

	// Redis down = no persistence, memory only
	if rds, exists := components["redis"]; exists && !rds.OK {
		return "degraded"
	}

	// AI off = browsing and plain search only
	if aic, exists := components["ai"]; exists && !aic.OK {
		return "basic"
	}

	return "full"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-enabled",
		Error:  "none",
	}
}
