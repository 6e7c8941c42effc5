package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
)

// SearchOutcome is the tagged result of an assisted search call.
// Failed distinguishes "the endpoint broke" from "zero matches"
// internally; the UI may still collapse both to the same empty state.
type SearchOutcome struct {
	ToolIDs []string
	Failed  bool
}

const searchSystemPrompt = `You are an AI tool recommendation engine.
You will receive a user query and a list of available AI tools (id, name, description, tags, category).
Your goal is to identify which tools from the list best match the user's intent.
Return ONLY a JSON object containing an array of matching tool IDs under the key "toolIds".
If no tools match significantly, return an empty array.
Be lenient with matching; if a user asks for "art", match "image" tools.`

type searchRequest struct {
	Query string                  `json:"query"`
	Tools []domain.ToolProjection `json:"tools"`
}

type searchResponse struct {
	ToolIDs []string `json:"toolIds"`
}

// ResolveAssisted sends the query and a reduced catalog projection to
// the text endpoint and returns the candidate id set.
//
// Degradation contract: on a missing credential or any transport or
// parse failure the outcome is empty with Failed set; errors never
// propagate past this call site. An absent "toolIds" field is an
// empty match set, not a failure.
func (c *Client) ResolveAssisted(ctx context.Context, query string, catalog []domain.Tool) SearchOutcome {
	if !c.Enabled() {
		c.logger.Debug("assisted search skipped, AI disabled")
		return SearchOutcome{ToolIDs: []string{}, Failed: true}
	}

	payload, err := json.Marshal(searchRequest{
		Query: query,
		Tools: domain.Project(catalog),
	})
	if err != nil {
		c.logger.Warn("assisted search: failed to marshal request",
			logger.Error(err))
		return SearchOutcome{ToolIDs: []string{}, Failed: true}
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, searchSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, string(payload)),
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithJSONMode(),
		llms.WithModel(c.cfg.Model),
	)
	if err != nil {
		c.logger.Warn("assisted search: generation failed",
			logger.String("query", query),
			logger.Error(err))
		return SearchOutcome{ToolIDs: []string{}, Failed: true}
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("assisted search: empty response",
			logger.String("query", query))
		return SearchOutcome{ToolIDs: []string{}, Failed: true}
	}

	var parsed searchResponse
	if err := json.Unmarshal([]byte(stripFences(resp.Choices[0].Content)), &parsed); err != nil {
		c.logger.Warn("assisted search: undecodable response",
			logger.String("query", query),
			logger.Error(err))
		return SearchOutcome{ToolIDs: []string{}, Failed: true}
	}

	if parsed.ToolIDs == nil {
		parsed.ToolIDs = []string{}
	}
	return SearchOutcome{ToolIDs: parsed.ToolIDs}
}

// stripFences removes a markdown code fence some models wrap around
// JSON output despite JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
