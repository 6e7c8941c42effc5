package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/toolhub/toolhub/internal/logger"
	"github.com/toolhub/toolhub/internal/utils"
)

// ErrNoImage is returned when the image endpoint answers without an
// inline image payload.
var ErrNoImage = errors.New("no image in response")

// The image endpoint speaks the raw generateContent REST shape; the
// text client cannot return inline image bytes.

type imageRequest struct {
	Contents         []imageContent    `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type imageContent struct {
	Parts []imagePart `json:"parts"`
}

type imagePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type imageResponse struct {
	Candidates []struct {
		Content imageContent `json:"content"`
	} `json:"candidates"`
}

// GenerateIcon asks the image model for a minimalist square icon for
// the named tool and returns it as an inline data URL. The caller is
// responsible for validating the name; failures here are recoverable
// and leave whatever draft triggered them untouched.
func (c *Client) GenerateIcon(ctx context.Context, name, description string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	prompt := fmt.Sprintf(
		"Generate a minimalist square app icon for an AI tool named %q. %s. Flat design, simple geometric shapes, solid background, no text.",
		name, description)

	body, err := json.Marshal(imageRequest{
		Contents: []imageContent{
			{Parts: []imagePart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal icon request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		c.cfg.ImageBaseURL, c.cfg.ImageModel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build icon request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("icon generation request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("icon generation rejected",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(raw)))
		return "", fmt.Errorf("icon generation returned status %d", resp.StatusCode)
	}

	var decoded imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode icon response: %w", err)
	}

	for _, cand := range decoded.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return fmt.Sprintf("data:%s;base64,%s",
					part.InlineData.MimeType, part.InlineData.Data), nil
			}
		}
	}

	return "", ErrNoImage
}
