package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
	redisstore "github.com/toolhub/toolhub/internal/store/redis"
)

// streamingModel feeds chunks through the streaming callback before
// returning, or fails mid-stream after failAfter chunks.
type streamingModel struct {
	chunks    []string
	failAfter int // -1 = never fail
	calls     int
}

func (m *streamingModel) GenerateContent(ctx context.Context, _ []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}

	full := ""
	for i, chunk := range m.chunks {
		if m.failAfter >= 0 && i >= m.failAfter {
			return nil, errors.New("stream interrupted")
		}
		full += chunk
		if opts.StreamingFunc != nil {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: full}},
	}, nil
}

func (m *streamingModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", nil
}

// recordingSink captures mirrored turns.
type recordingSink struct {
	appended []redisstore.TranscriptTurn
	deleted  []string
}

func (s *recordingSink) AppendTurn(_ context.Context, _ string, turn redisstore.TranscriptTurn) error {
	s.appended = append(s.appended, turn)
	return nil
}

func (s *recordingSink) DeleteTranscript(_ context.Context, sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	return nil
}

func chatCatalog() []domain.Tool {
	return []domain.Tool{
		{ID: "a", Name: "ChatGPT", Category: domain.CategoryText},
	}
}

func TestSessionSendStreamsProgressively(t *testing.T) {
	log := logger.New("error", false)
	model := &streamingModel{chunks: []string{"Try ", "ChatGPT ", "for that."}, failAfter: -1}

	s := newSession("s1", model, chatCatalog(), nil, log, time.Now())

	var partials []string
	reply := s.Send(context.Background(), "what should I use for writing?", func(partial string) {
		partials = append(partials, partial)
	})

	if reply != "Try ChatGPT for that." {
		t.Errorf("reply = %q", reply)
	}

	// every observation is the accumulated buffer so far, plus the
	// final full text from the turn commit
	want := []string{"Try ", "Try ChatGPT ", "Try ChatGPT for that.", "Try ChatGPT for that."}
	if len(partials) != len(want) {
		t.Fatalf("observed %d partials, want %d: %v", len(partials), len(want), partials)
	}
	for i := range want {
		if partials[i] != want[i] {
			t.Errorf("partial[%d] = %q, want %q", i, partials[i], want[i])
		}
	}

	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("transcript has %d turns, want 2", len(turns))
	}
	if turns[0].Role != RoleUser || turns[1].Role != RoleModel {
		t.Errorf("turn roles = %s/%s, want user/model", turns[0].Role, turns[1].Role)
	}
}

func TestSessionSendStreamErrorBecomesApology(t *testing.T) {
	log := logger.New("error", false)
	model := &streamingModel{chunks: []string{"I was about to", " say something"}, failAfter: 1}

	s := newSession("s1", model, chatCatalog(), nil, log, time.Now())

	reply := s.Send(context.Background(), "hello", nil)
	if reply != ApologyMessage {
		t.Errorf("reply = %q, want the apology", reply)
	}

	// the partial is discarded, the transcript records the apology
	turns := s.Turns()
	if turns[1].Text != ApologyMessage {
		t.Errorf("model turn = %q, want the apology", turns[1].Text)
	}

	// the session stays usable
	model.failAfter = -1
	reply = s.Send(context.Background(), "try again", nil)
	if reply == ApologyMessage {
		t.Error("session did not recover after a failed stream")
	}
}

func TestSessionSendDisabledModel(t *testing.T) {
	log := logger.New("error", false)
	s := newSession("s1", nil, chatCatalog(), nil, log, time.Now())

	reply := s.Send(context.Background(), "hello", nil)
	if reply != ApologyMessage {
		t.Errorf("reply = %q, want the apology when AI is disabled", reply)
	}
}

func TestSessionMirrorsTurnsToSink(t *testing.T) {
	log := logger.New("error", false)
	model := &streamingModel{chunks: []string{"hi"}, failAfter: -1}
	sink := &recordingSink{}

	s := newSession("s1", model, chatCatalog(), sink, log, time.Now())
	s.Send(context.Background(), "hello", nil)

	if len(sink.appended) != 2 {
		t.Fatalf("sink received %d turns, want 2", len(sink.appended))
	}
	if sink.appended[0].Role != RoleUser || sink.appended[1].Role != RoleModel {
		t.Errorf("sink roles = %s/%s", sink.appended[0].Role, sink.appended[1].Role)
	}
}

func TestManagerOpenIsIdempotentPerWidget(t *testing.T) {
	log := logger.New("error", false)
	m := NewManager(&streamingModel{failAfter: -1}, nil, log)

	first := m.Open("widget-1", chatCatalog())
	second := m.Open("widget-1", chatCatalog())

	if first.ID() != second.ID() {
		t.Error("reopening the same widget must return the same session")
	}

	other := m.Open("widget-2", chatCatalog())
	if other.ID() == first.ID() {
		t.Error("distinct widgets must get distinct sessions")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

func TestManagerGetAndClose(t *testing.T) {
	log := logger.New("error", false)
	sink := &recordingSink{}
	m := NewManager(&streamingModel{failAfter: -1}, sink, log)

	s := m.Open("widget-1", chatCatalog())
	if got, ok := m.Get(s.ID()); !ok || got.ID() != s.ID() {
		t.Fatal("Get must find an open session by id")
	}

	m.Close(context.Background(), "widget-1")
	if _, ok := m.Get(s.ID()); ok {
		t.Error("session still reachable after close")
	}
	if len(sink.deleted) != 1 || sink.deleted[0] != s.ID() {
		t.Errorf("transcript not dropped on close: %v", sink.deleted)
	}
}

func TestManagerReap(t *testing.T) {
	log := logger.New("error", false)
	sink := &recordingSink{}
	m := NewManager(&streamingModel{failAfter: -1}, sink, log)

	stale := m.Open("stale-widget", chatCatalog())
	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-3 * time.Hour)
	stale.mu.Unlock()

	fresh := m.Open("fresh-widget", chatCatalog())

	reaped := m.Reap(context.Background(), 2*time.Hour)
	if reaped != 1 {
		t.Fatalf("Reap removed %d sessions, want 1", reaped)
	}
	if _, ok := m.Get(stale.ID()); ok {
		t.Error("stale session survived the reap")
	}
	if _, ok := m.Get(fresh.ID()); !ok {
		t.Error("fresh session was reaped")
	}
	if len(sink.deleted) != 1 || sink.deleted[0] != stale.ID() {
		t.Errorf("stale transcript not dropped: %v", sink.deleted)
	}
}

func TestSessionSnapshotIsFixedAtOpen(t *testing.T) {
	log := logger.New("error", false)
	s := newSession("s1", nil, chatCatalog(), nil, log, time.Now())

	// the system prompt embeds the snapshot taken at open
	if len(s.history) != 1 {
		t.Fatalf("history has %d entries, want the system prompt only", len(s.history))
	}
	sys := s.history[0]
	if sys.Role != llms.ChatMessageTypeSystem {
		t.Errorf("first history entry role = %s, want system", sys.Role)
	}
}
