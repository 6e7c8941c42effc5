package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
)

// Manager owns the chat sessions. One session lives per widget-open
// lifecycle: opening an already-open widget returns the existing
// session instead of creating a second one.
type Manager struct {
	model  llms.Model // nil when AI is disabled
	sink   TranscriptSink
	logger logger.Logger

	mu        sync.Mutex
	byWidget  map[string]*Session
	bySession map[string]*Session
}

// NewManager creates a session manager. model may be nil (AI
// disabled); sink may be nil (no transcript mirroring).
func NewManager(model llms.Model, sink TranscriptSink, log logger.Logger) *Manager {
	return &Manager{
		model:     model,
		sink:      sink,
		logger:    log,
		byWidget:  make(map[string]*Session),
		bySession: make(map[string]*Session),
	}
}

// Open returns the session for widgetID, creating one bound to a
// snapshot of the given catalog if none exists. Idempotent per widget:
// reopening without a Close returns the same session and ignores the
// new snapshot.
func (m *Manager) Open(widgetID string, snapshot []domain.Tool) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if widgetID == "" {
		widgetID = uuid.NewString()
	}

	if existing, ok := m.byWidget[widgetID]; ok {
		return existing
	}

	s := newSession(uuid.NewString(), m.model, snapshot, m.sink, m.logger, time.Now())
	m.byWidget[widgetID] = s
	m.bySession[s.ID()] = s

	m.logger.Info("chat session opened",
		logger.String("session", s.ID()),
		logger.Int("snapshot_size", len(snapshot)))

	return s
}

// Get returns a session by its session id.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.bySession[sessionID]
	return s, ok
}

// Close ends the session of a widget, fully resetting its transcript.
// A later Open for the same widget starts fresh.
func (m *Manager) Close(ctx context.Context, widgetID string) {
	m.mu.Lock()
	s, ok := m.byWidget[widgetID]
	if ok {
		delete(m.byWidget, widgetID)
		delete(m.bySession, s.ID())
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	m.dropTranscript(ctx, s)
	m.logger.Info("chat session closed",
		logger.String("session", s.ID()))
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bySession)
}

// Reap removes sessions idle for longer than ttl and returns how many
// were removed.
func (m *Manager) Reap(ctx context.Context, ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	m.mu.Lock()
	var reaped []*Session
	for widgetID, s := range m.byWidget {
		if s.LastActive().Before(cutoff) {
			delete(m.byWidget, widgetID)
			delete(m.bySession, s.ID())
			reaped = append(reaped, s)
		}
	}
	m.mu.Unlock()

	for _, s := range reaped {
		m.dropTranscript(ctx, s)
		m.logger.Info("reaped idle chat session",
			logger.String("session", s.ID()))
	}
	return len(reaped)
}

func (m *Manager) dropTranscript(ctx context.Context, s *Session) {
	if m.sink == nil {
		return
	}
	if err := m.sink.DeleteTranscript(ctx, s.ID()); err != nil {
		m.logger.Debug("failed to delete transcript",
			logger.String("session", s.ID()),
			logger.Error(err))
	}
}
