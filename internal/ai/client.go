package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/toolhub/toolhub/internal/logger"
)

const (
	// DefaultModel handles assisted search and chat.
	DefaultModel = "gemini-2.5-flash"
	// DefaultImageModel handles icon generation.
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultImageBaseURL is the REST endpoint for the image model.
	DefaultImageBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second
)

// ErrDisabled is returned by every AI entry point when no credential
// is configured. Callers degrade to an empty/null result; nothing
// else in the system depends on the AI endpoints.
var ErrDisabled = errors.New("ai disabled: no api key configured")

// Config holds the Gemini client settings.
type Config struct {
	APIKey       string        // empty = all AI features degrade to no-ops
	Model        string        // text model id
	ImageModel   string        // image model id
	ImageBaseURL string        // REST base for the image endpoint
	Timeout      time.Duration // per-call HTTP timeout
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = DefaultImageBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Client wraps the generative endpoints: assisted search, icon
// generation and chat model access. A client without a key is valid
// and permanently disabled.
type Client struct {
	model      llms.Model
	httpClient *http.Client
	cfg        Config
	logger     logger.Logger
}

// New builds a client. A missing key is a configuration degradation,
// not an error: the client is returned disabled and every call
// short-circuits.
func New(ctx context.Context, cfg Config, log logger.Logger) (*Client, error) {
	cfg.applyDefaults()

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     log,
	}

	if cfg.APIKey == "" {
		log.Warn("gemini api key not configured, AI features disabled")
		return c, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	c.model = model

	return c, nil
}

// NewWithModel builds a client around an existing model. Used by tests
// and anywhere a fake model is injected.
func NewWithModel(model llms.Model, log logger.Logger) *Client {
	cfg := Config{}
	cfg.applyDefaults()
	return &Client{
		model:      model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     log,
	}
}

// Enabled reports whether AI features are available. New only builds a
// model when a credential is configured, so a nil model means every AI
// surface (assisted search, chat, icon generation) is off.
func (c *Client) Enabled() bool {
	return c.model != nil
}

// Model exposes the underlying text model for the chat adapter.
// Nil when disabled.
func (c *Client) Model() llms.Model {
	return c.model
}
