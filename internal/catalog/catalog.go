package catalog

import (
	"context"
	"sync"

	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
)

// Persister is the durable side of the store. The catalog is written
// as one unit; there is no partial-update API.
type Persister interface {
	SaveCatalog(ctx context.Context, tools []domain.Tool) error
	LoadCatalog(ctx context.Context) ([]domain.Tool, error)
}

// Store owns the canonical ordered sequence of tool records.
//
// The in-memory sequence is authoritative for the process lifetime;
// persistence is a write-through side effect of every mutation. A
// failed persist is logged and tolerated: the session keeps working,
// the catalog just will not survive a restart.
//
// The mutex serializes writers within the process: every mutation goes
// through Update, which holds the write lock across its read-modify-
// write. No cross-process coordination is attempted.
type Store struct {
	mu      sync.RWMutex
	tools   []domain.Tool
	seed    []domain.Tool
	persist Persister
	logger  logger.Logger
	loaded  bool
}

// NewStore creates a catalog store. seed is the built-in list used
// when nothing (or nothing readable) is persisted.
func NewStore(persist Persister, seed []domain.Tool, log logger.Logger) *Store {
	return &Store{
		seed:    domain.CloneCatalog(seed),
		persist: persist,
		logger:  log,
	}
}

// Load populates the in-memory sequence from persistence, falling back
// to the seed list on absence or a decode failure. Non-fatal: the
// fallback is logged, never surfaced.
func (s *Store) Load(ctx context.Context) {
	tools, err := s.persist.LoadCatalog(ctx)
	if err != nil {
		s.logger.Warn("catalog not loadable, falling back to seed list",
			logger.Int("seed_count", len(s.seed)),
			logger.Error(err))
		tools = domain.CloneCatalog(s.seed)
	} else {
		s.logger.Info("catalog loaded from store",
			logger.Int("count", len(tools)))
	}

	s.mu.Lock()
	s.tools = tools
	s.loaded = true
	s.mu.Unlock()
}

// Update applies fn to the current sequence and installs the result,
// holding the write lock across the whole read-modify-write so
// concurrent writers cannot interleave and lose each other's changes.
// fn receives a copy and returns the complete next sequence; returning
// nil leaves the catalog untouched and skips the write-through.
func (s *Store) Update(ctx context.Context, fn func(current []domain.Tool) []domain.Tool) {
	s.mu.Lock()
	next := fn(domain.CloneCatalog(s.tools))
	if next == nil {
		s.mu.Unlock()
		return
	}
	s.tools = domain.CloneCatalog(next)
	s.mu.Unlock()

	s.Persist(ctx)
}

// Persist writes the current sequence to the durable store. Errors
// (quota, serialization, transport) are logged and swallowed; the
// in-memory catalog remains authoritative for the session.
func (s *Store) Persist(ctx context.Context) {
	s.mu.RLock()
	tools := domain.CloneCatalog(s.tools)
	s.mu.RUnlock()

	if err := s.persist.SaveCatalog(ctx, tools); err != nil {
		s.logger.Warn("failed to persist catalog, in-memory copy remains authoritative",
			logger.Int("count", len(tools)),
			logger.Error(err))
	}
}

// All returns a copy of the full ordered sequence.
func (s *Store) All() []domain.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCatalog(s.tools)
}

// Get retrieves a record by id.
func (s *Store) Get(id string) (domain.Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tools {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return domain.Tool{}, false
}

// Has reports whether a record with this id exists.
func (s *Store) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tools)
}

// Loaded reports whether Load has completed. Used by readiness checks.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
