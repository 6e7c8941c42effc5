package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
	redisstore "github.com/toolhub/toolhub/internal/store/redis"
)

// Turn roles as rendered in a transcript.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ApologyMessage replaces a model turn whose stream failed mid-way.
// The partial buffer is discarded, not shown.
const ApologyMessage = "Sorry, I ran into a problem. Please try again."

// Turn is one transcript entry.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TranscriptSink mirrors turns to durable storage, best effort.
type TranscriptSink interface {
	AppendTurn(ctx context.Context, sessionID string, turn redisstore.TranscriptTurn) error
	DeleteTranscript(ctx context.Context, sessionID string) error
}

const chatSystemPromptFmt = `You are the concierge of an AI tool directory. Help visitors find the right tool.
Rules:
- Recommend only tools from the list below, using their exact names.
- Never invent tools that are not in the list.
- Stay concise.

Available tools:
%s`

// Session is one conversational session bound to a catalog snapshot.
// The snapshot is embedded in the system prompt at open time and never
// refreshed: later catalog mutations are invisible to the session.
type Session struct {
	id     string
	model  llms.Model // nil when AI is disabled
	sink   TranscriptSink
	logger logger.Logger

	mu         sync.Mutex
	history    []llms.MessageContent
	turns      []Turn
	lastActive time.Time
}

func newSession(id string, model llms.Model, snapshot []domain.Tool, sink TranscriptSink, log logger.Logger, now time.Time) *Session {
	projection, err := json.Marshal(domain.Project(snapshot))
	if err != nil {
		// A catalog of plain strings always marshals; guard anyway.
		projection = []byte("[]")
	}
	system := fmt.Sprintf(chatSystemPromptFmt, string(projection))

	return &Session{
		id:     id,
		model:  model,
		sink:   sink,
		logger: log,
		history: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
		},
		lastActive: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// LastActive returns the time of the last send.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Turns returns a copy of the visible transcript.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Send appends a user turn, streams the model turn and returns its
// final text. observe, when non-nil, is called with the accumulated
// partial buffer after every received token so callers can render
// progressively.
//
// On a transport error mid-stream the partial buffer is discarded and
// the model turn becomes the fixed apology message; the session stays
// usable for subsequent turns. The same applies when AI is disabled.
func (s *Session) Send(ctx context.Context, text string, observe func(partial string)) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.appendTurn(ctx, Turn{Role: RoleUser, Text: text})
	s.history = append(s.history, llms.TextParts(llms.ChatMessageTypeHuman, text))

	if s.model == nil {
		s.logger.Debug("chat send with AI disabled, returning apology",
			logger.String("session", s.id))
		return s.finishModelTurn(ctx, ApologyMessage, observe)
	}

	var buf strings.Builder
	resp, err := s.model.GenerateContent(ctx, s.history,
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			buf.Write(chunk)
			if observe != nil {
				observe(buf.String())
			}
			return nil
		}),
	)
	if err != nil {
		s.logger.Warn("chat stream failed, replacing partial with apology",
			logger.String("session", s.id),
			logger.Error(err))
		return s.finishModelTurn(ctx, ApologyMessage, observe)
	}

	final := buf.String()
	if final == "" && len(resp.Choices) > 0 {
		final = resp.Choices[0].Content
	}
	return s.finishModelTurn(ctx, final, observe)
}

// finishModelTurn commits a completed model turn. Callers hold s.mu.
func (s *Session) finishModelTurn(ctx context.Context, text string, observe func(string)) string {
	if observe != nil {
		observe(text)
	}
	s.appendTurn(ctx, Turn{Role: RoleModel, Text: text})
	s.history = append(s.history, llms.TextParts(llms.ChatMessageTypeAI, text))
	return text
}

// appendTurn records a turn locally and mirrors it to the sink.
// Sink failures are logged and ignored: transcripts are disposable.
func (s *Session) appendTurn(ctx context.Context, turn Turn) {
	s.turns = append(s.turns, turn)
	if s.sink == nil {
		return
	}
	if err := s.sink.AppendTurn(ctx, s.id, redisstore.TranscriptTurn(turn)); err != nil {
		s.logger.Debug("failed to mirror chat turn",
			logger.String("session", s.id),
			logger.Error(err))
	}
}
