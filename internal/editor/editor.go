package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/toolhub/toolhub/internal/catalog"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
)

// State is the editor's position in its lifecycle:
// Closed → Listing → {Creating, Editing} → Listing.
type State int

const (
	StateClosed State = iota
	StateListing
	StateCreating
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateListing:
		return "listing"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition is returned when an operation is not legal
	// in the current state.
	ErrInvalidTransition = errors.New("invalid editor transition")
	// ErrToolNotFound is returned by OpenEdit for an unknown id.
	ErrToolNotFound = errors.New("tool not found")
	// ErrNoDraft is returned when an operation needs an open draft.
	ErrNoDraft = errors.New("no draft open")
	// ErrGenerationInFlight enforces single-flight icon generation.
	ErrGenerationInFlight = errors.New("icon generation already in progress")
	// ErrConfirmationRequired gates the destructive delete path.
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
)

// IconService produces an inline icon payload for a draft.
type IconService interface {
	GenerateIcon(ctx context.Context, name, description string) (string, error)
}

// Editor owns exactly one draft at a time, independent of the catalog,
// until committed. There is a single editor per process: the admin
// surface is single-user.
type Editor struct {
	mu         sync.Mutex
	state      State
	draft      *domain.Draft
	generating bool

	catalog *catalog.Store
	icons   IconService
	logger  logger.Logger
	now     func() time.Time
}

// New creates a closed editor over the given catalog store.
func New(cat *catalog.Store, icons IconService, log logger.Logger) *Editor {
	return &Editor{
		state:   StateClosed,
		catalog: cat,
		icons:   icons,
		logger:  log,
		now:     time.Now,
	}
}

// State returns the current lifecycle state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Draft returns a copy of the open draft, if any.
func (e *Editor) Draft() (domain.Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return domain.Draft{}, false
	}
	return *e.draft, true
}

// Open transitions Closed → Listing. Opening an already-open editor is
// a no-op.
func (e *Editor) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateClosed {
		e.state = StateListing
	}
}

// CloseListing transitions back to Closed, discarding any draft.
func (e *Editor) CloseListing() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateClosed
	e.draft = nil
}

// OpenCreate transitions Listing → Creating with a fresh draft: newly
// generated id, empty required fields, default category.
func (e *Editor) OpenCreate() (domain.Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateListing {
		return domain.Draft{}, fmt.Errorf("%w: open create from %s", ErrInvalidTransition, e.state)
	}
	d := domain.NewDraft(e.now())
	e.draft = &d
	e.state = StateCreating
	return d, nil
}

// OpenEdit transitions Listing → Editing with a draft copied from the
// identified record. The copy keeps edits away from the catalog until
// commit.
func (e *Editor) OpenEdit(id string) (domain.Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateListing {
		return domain.Draft{}, fmt.Errorf("%w: open edit from %s", ErrInvalidTransition, e.state)
	}
	tool, ok := e.catalog.Get(id)
	if !ok {
		return domain.Draft{}, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	d := domain.DraftOf(tool)
	e.draft = &d
	e.state = StateEditing
	return d, nil
}

// UpdateDraft applies a field-level mutation to the open draft. The id
// is immutable: apply cannot change it.
func (e *Editor) UpdateDraft(apply func(*domain.Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNoDraft
	}
	id := e.draft.ID
	apply(e.draft)
	e.draft.ID = id
	return nil
}

// GenerateIcon calls the icon service for the open draft. Requires a
// non-empty name, validated before any network call. Single-flight:
// re-invocation while a generation is pending is rejected. On failure
// the draft is left unchanged and the error is recoverable.
//
// The HTTP admin surface does not reach this method: its client keeps
// the form in the browser, so handlers.GenerateIcon applies the same
// contract statelessly. Changes here must be mirrored there.
func (e *Editor) GenerateIcon(ctx context.Context) error {
	e.mu.Lock()
	if e.draft == nil {
		e.mu.Unlock()
		return ErrNoDraft
	}
	if e.draft.Name == "" {
		e.mu.Unlock()
		return &domain.ValidationError{Field: "name", Reason: "is required before generating an icon"}
	}
	if e.generating {
		e.mu.Unlock()
		return ErrGenerationInFlight
	}
	e.generating = true
	name := e.draft.Name
	desc := e.draft.BestDescription()
	draftID := e.draft.ID
	e.mu.Unlock()

	icon, err := e.icons.GenerateIcon(ctx, name, desc)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.generating = false

	if err != nil {
		e.logger.Warn("icon generation failed, draft unchanged",
			logger.String("draft", draftID),
			logger.Error(err))
		return fmt.Errorf("icon generation failed: %w", err)
	}

	// The draft may have been replaced while the call was in flight
	// (editor closed and reopened); only apply to the same draft.
	if e.draft == nil || e.draft.ID != draftID {
		e.logger.Debug("discarding icon for stale draft",
			logger.String("draft", draftID))
		return nil
	}
	e.draft.IconURL = icon
	return nil
}

// Save validates and commits the open draft into the catalog, then
// transitions back to Listing. Commit policy: an existing id is
// replaced in place (position preserved); a novel id is prepended so
// newly created tools list most-recent-first. Always persists.
func (e *Editor) Save(ctx context.Context) (domain.Tool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCreating && e.state != StateEditing {
		return domain.Tool{}, fmt.Errorf("%w: save from %s", ErrInvalidTransition, e.state)
	}
	if e.draft == nil {
		return domain.Tool{}, ErrNoDraft
	}

	tool, err := e.draft.Commit()
	if err != nil {
		// Validation failures block the transition; no catalog mutation.
		return domain.Tool{}, err
	}

	replaced := false
	e.catalog.Update(ctx, func(current []domain.Tool) []domain.Tool {
		next := make([]domain.Tool, 0, len(current)+1)
		for _, t := range current {
			if t.ID == tool.ID {
				next = append(next, tool)
				replaced = true
				continue
			}
			next = append(next, t)
		}
		if !replaced {
			next = append([]domain.Tool{tool}, next...)
		}
		return next
	})

	op := "create"
	if replaced {
		op = "replace"
	}
	e.logger.Info("draft committed",
		logger.String("id", tool.ID),
		logger.String("name", tool.Name),
		logger.String("op", op))

	e.draft = nil
	e.state = StateListing
	return tool, nil
}

// Discard abandons the open draft and returns to Listing.
func (e *Editor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateCreating || e.state == StateEditing {
		e.draft = nil
		e.state = StateListing
	}
}

// Delete removes a record. The confirmed flag is the destructive-action
// gate: without it the catalog is untouched. There is no undo.
func (e *Editor) Delete(ctx context.Context, id string, confirmed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateListing {
		return fmt.Errorf("%w: delete from %s", ErrInvalidTransition, e.state)
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	found := false
	e.catalog.Update(ctx, func(current []domain.Tool) []domain.Tool {
		next := make([]domain.Tool, 0, len(current))
		for _, t := range current {
			if t.ID == id {
				found = true
				continue
			}
			next = append(next, t)
		}
		if !found {
			return nil
		}
		return next
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	e.logger.Info("tool deleted",
		logger.String("id", id))
	return nil
}
