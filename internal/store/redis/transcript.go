package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTranscriptTTL bounds how long an idle transcript survives.
const DefaultTranscriptTTL = 24 * time.Hour

// TranscriptTurn is one persisted chat turn.
type TranscriptTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// AppendTurn appends one turn to a session transcript and refreshes
// its TTL. Transcripts are a best-effort mirror: losing them does not
// affect the in-memory session.
func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn TranscriptTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	key := TranscriptKey(sessionID)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, DefaultTranscriptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append transcript turn: %w", err)
	}

	return nil
}

// DeleteTranscript removes a session transcript.
func (s *Store) DeleteTranscript(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, TranscriptKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}
