package scheduler

import (
	"context"
	"time"

	"github.com/toolhub/toolhub/internal/chat"
	"github.com/toolhub/toolhub/internal/logger"
)

const (
	// DefaultSessionTTL is the idle duration after which chat sessions are dropped
	DefaultSessionTTL = 2 * time.Hour
)

// SessionReaper handles cleanup of idle chat sessions
type SessionReaper struct {
	manager  *chat.Manager
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
}

// NewSessionReaper creates a new session reaper
func NewSessionReaper(
	manager *chat.Manager,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *SessionReaper {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionReaper{
		manager:  manager,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic reaping process
func (sr *SessionReaper) Start(ctx context.Context) error {
	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.Reap(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reaper
func (sr *SessionReaper) Stop() {
	close(sr.stopCh)
}

// Reap drops sessions that have been idle for longer than the ttl
func (sr *SessionReaper) Reap(ctx context.Context) {
	reaped := sr.manager.Reap(ctx, sr.ttl)
	if reaped > 0 {
		sr.logger.Info("reaped idle chat sessions",
			logger.Int("count", reaped))
	} else {
		sr.logger.Debug("no idle chat sessions to reap")
	}
}
