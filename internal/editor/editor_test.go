package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/toolhub/toolhub/internal/catalog"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/logger"
)

type nullPersister struct{}

func (nullPersister) SaveCatalog(context.Context, []domain.Tool) error { return nil }
func (nullPersister) LoadCatalog(context.Context) ([]domain.Tool, error) {
	return nil, errors.New("empty")
}

// fakeIcons returns a canned icon or error, and records calls.
type fakeIcons struct {
	icon  string
	err   error
	calls int
}

func (f *fakeIcons) GenerateIcon(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.icon, f.err
}

func newTestEditor(t *testing.T, seed []domain.Tool, icons IconService) (*Editor, *catalog.Store) {
	t.Helper()
	log := logger.New("error", false)
	cat := catalog.NewStore(nullPersister{}, seed, log)
	cat.Load(context.Background())
	if icons == nil {
		icons = &fakeIcons{icon: "data:image/png;base64,x"}
	}
	return New(cat, icons, log), cat
}

func existingTools() []domain.Tool {
	return []domain.Tool{
		{ID: "1", Name: "First", Category: domain.CategoryText},
		{ID: "2", Name: "Second", Category: domain.CategoryImage},
	}
}

func TestEditorLifecycle(t *testing.T) {
	e, _ := newTestEditor(t, existingTools(), nil)

	if e.State() != StateClosed {
		t.Fatalf("initial state = %s, want closed", e.State())
	}

	e.Open()
	if e.State() != StateListing {
		t.Fatalf("state after Open = %s, want listing", e.State())
	}

	// opening twice is a no-op
	e.Open()
	if e.State() != StateListing {
		t.Error("double Open changed state")
	}

	e.CloseListing()
	if e.State() != StateClosed {
		t.Errorf("state after CloseListing = %s, want closed", e.State())
	}
}

func TestOpenCreateRequiresListing(t *testing.T) {
	e, _ := newTestEditor(t, existingTools(), nil)

	if _, err := e.OpenCreate(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("OpenCreate from closed = %v, want ErrInvalidTransition", err)
	}

	e.Open()
	draft, err := e.OpenCreate()
	if err != nil {
		t.Fatalf("OpenCreate() error = %v", err)
	}
	if draft.ID == "" {
		t.Error("fresh draft has no generated id")
	}
	if draft.Category != domain.DefaultCategory {
		t.Errorf("fresh draft category = %s, want default", draft.Category)
	}
	if e.State() != StateCreating {
		t.Errorf("state = %s, want creating", e.State())
	}
}

func TestOpenEditCopiesRecord(t *testing.T) {
	e, cat := newTestEditor(t, existingTools(), nil)
	e.Open()

	draft, err := e.OpenEdit("2")
	if err != nil {
		t.Fatalf("OpenEdit() error = %v", err)
	}
	if draft.Name != "Second" {
		t.Errorf("draft name = %q, want Second", draft.Name)
	}

	// mutating the draft must not touch the catalog until Save
	if err := e.UpdateDraft(func(d *domain.Draft) { d.Name = "Renamed" }); err != nil {
		t.Fatal(err)
	}
	if tool, _ := cat.Get("2"); tool.Name != "Second" {
		t.Error("catalog changed before commit")
	}
}

func TestOpenEditUnknownID(t *testing.T) {
	e, _ := newTestEditor(t, existingTools(), nil)
	e.Open()

	if _, err := e.OpenEdit("nope"); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("OpenEdit(nope) = %v, want ErrToolNotFound", err)
	}
	if e.State() != StateListing {
		t.Errorf("state after failed edit = %s, want listing", e.State())
	}
}

func TestUpdateDraftCannotChangeID(t *testing.T) {
	e, _ := newTestEditor(t, existingTools(), nil)
	e.Open()
	draft, _ := e.OpenEdit("1")

	_ = e.UpdateDraft(func(d *domain.Draft) { d.ID = "hijacked" })

	got, _ := e.Draft()
	if got.ID != draft.ID {
		t.Errorf("draft id changed to %q", got.ID)
	}
}

func TestSaveCreatePrepends(t *testing.T) {
	e, cat := newTestEditor(t, existingTools(), nil)
	e.Open()
	_, _ = e.OpenCreate()
	_ = e.UpdateDraft(func(d *domain.Draft) {
		d.Name = "Newest"
		d.Category = domain.CategoryCode
	})

	tool, err := e.Save(context.Background())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all := cat.All()
	if len(all) != 3 {
		t.Fatalf("catalog has %d tools, want 3", len(all))
	}
	if all[0].ID != tool.ID {
		t.Errorf("new tool at position %v, want front", all)
	}
	if e.State() != StateListing {
		t.Errorf("state after save = %s, want listing", e.State())
	}
}

func TestSaveEditReplacesInPlace(t *testing.T) {
	e, cat := newTestEditor(t, existingTools(), nil)
	e.Open()
	_, _ = e.OpenEdit("2")
	_ = e.UpdateDraft(func(d *domain.Draft) { d.Name = "Second Edited" })

	if _, err := e.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all := cat.All()
	if len(all) != 2 {
		t.Fatalf("catalog has %d tools, want 2", len(all))
	}
	// position preserved
	if all[1].ID != "2" || all[1].Name != "Second Edited" {
		t.Errorf("edited tool = %+v, want in place at index 1", all[1])
	}
}

func TestSaveValidationBlocksCommit(t *testing.T) {
	e, cat := newTestEditor(t, existingTools(), nil)
	e.Open()
	_, _ = e.OpenCreate()
	// name left empty

	_, err := e.Save(context.Background())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Save() error = %v, want ValidationError", err)
	}
	if cat.Len() != 2 {
		t.Error("catalog mutated by a failed save")
	}
	// the draft survives for correction
	if e.State() != StateCreating {
		t.Errorf("state = %s, failed save must keep the draft open", e.State())
	}
}

func TestDiscard(t *testing.T) {
	e, _ := newTestEditor(t, existingTools(), nil)
	e.Open()
	_, _ = e.OpenCreate()

	e.Discard()
	if e.State() != StateListing {
		t.Errorf("state after discard = %s, want listing", e.State())
	}
	if _, ok := e.Draft(); ok {
		t.Error("draft still present after discard")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	e, cat := newTestEditor(t, existingTools(), nil)
	e.Open()

	err := e.Delete(context.Background(), "1", false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("Delete without confirm = %v, want ErrConfirmationRequired", err)
	}
	if cat.Len() != 2 {
		t.Error("unconfirmed delete mutated the catalog")
	}

	if err := e.Delete(context.Background(), "1", true); err != nil {
		t.Fatalf("confirmed Delete error = %v", err)
	}
	if cat.Has("1") {
		t.Error("tool still present after confirmed delete")
	}
	if cat.Len() != 1 {
		t.Errorf("catalog has %d tools, want 1", cat.Len())
	}
}

func TestDeleteUnknownID(t *testing.T) {
	e, _ := newTestEditor(t, existingTools(), nil)
	e.Open()

	if err := e.Delete(context.Background(), "nope", true); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Delete(nope) = %v, want ErrToolNotFound", err)
	}
}

func TestGenerateIconRequiresName(t *testing.T) {
	icons := &fakeIcons{icon: "data:image/png;base64,x"}
	e, _ := newTestEditor(t, existingTools(), icons)
	e.Open()
	_, _ = e.OpenCreate()

	err := e.GenerateIcon(context.Background())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("GenerateIcon without name = %v, want name ValidationError", err)
	}
	// validated before any network call
	if icons.calls != 0 {
		t.Error("icon service called despite missing name")
	}
}

func TestGenerateIconAppliesToDraft(t *testing.T) {
	icons := &fakeIcons{icon: "data:image/png;base64,generated"}
	e, _ := newTestEditor(t, existingTools(), icons)
	e.Open()
	_, _ = e.OpenCreate()
	_ = e.UpdateDraft(func(d *domain.Draft) { d.Name = "Named" })

	if err := e.GenerateIcon(context.Background()); err != nil {
		t.Fatalf("GenerateIcon() error = %v", err)
	}
	draft, _ := e.Draft()
	if draft.IconURL != "data:image/png;base64,generated" {
		t.Errorf("draft icon = %q", draft.IconURL)
	}
}

func TestGenerateIconFailureLeavesDraftUntouched(t *testing.T) {
	icons := &fakeIcons{err: errors.New("model unavailable")}
	e, _ := newTestEditor(t, existingTools(), icons)
	e.Open()
	_, _ = e.OpenEdit("1")
	before, _ := e.Draft()

	if err := e.GenerateIcon(context.Background()); err == nil {
		t.Fatal("expected error from failed generation")
	}
	after, _ := e.Draft()
	if after.IconURL != before.IconURL {
		t.Error("failed generation changed the draft icon")
	}
	// recoverable: the editor is still editing
	if e.State() != StateEditing {
		t.Errorf("state = %s, want editing", e.State())
	}
}
