package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/toolhub/toolhub/internal/ai"
	"github.com/toolhub/toolhub/internal/catalog"
	"github.com/toolhub/toolhub/internal/chat"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/editor"
	"github.com/toolhub/toolhub/internal/logger"
)

type memPersister struct {
	tools []domain.Tool
}

func (p *memPersister) SaveCatalog(_ context.Context, tools []domain.Tool) error {
	p.tools = append([]domain.Tool(nil), tools...)
	return nil
}

func (p *memPersister) LoadCatalog(context.Context) ([]domain.Tool, error) {
	if p.tools == nil {
		return nil, errors.New("no catalog persisted")
	}
	return append([]domain.Tool(nil), p.tools...), nil
}

type scriptedModel struct {
	reply string
}

func (m *scriptedModel) GenerateContent(ctx context.Context, _ []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	if opts.StreamingFunc != nil {
		for _, word := range strings.SplitAfter(m.reply, " ") {
			if err := opts.StreamingFunc(ctx, []byte(word)); err != nil {
				return nil, err
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.reply}},
	}, nil
}

func (m *scriptedModel) Call(context.Context, string, ...llms.CallOption) (string, error) {
	return m.reply, nil
}

type noopIcons struct{}

func (noopIcons) GenerateIcon(context.Context, string, string) (string, error) {
	return "data:image/png;base64,AAAA", nil
}

// TestBrowseSearchAndNavigate walks the main visitor flow: load the
// seeded catalog, search, then clear the search by picking a category.
func TestBrowseSearchAndNavigate(t *testing.T) {
	log := logger.New("error", false)
	persist := &memPersister{}
	cat := catalog.NewStore(persist, catalog.DefaultSeed(), log)
	cat.Load(context.Background())

	if len(cat.All()) == 0 {
		t.Fatal("seed catalog is empty")
	}

	vm := domain.NewViewModel(domain.CategoryAll)

	// plain search
	results := domain.ResolvePlain("imag", cat.All())
	if len(results) == 0 {
		t.Fatal("no matches for 'imag' in the seed catalog")
	}
	vm.SetSearch(domain.SearchState{Query: "imag", Mode: domain.SearchModePlain})
	if !vm.Search().Active() {
		t.Fatal("search state not active")
	}

	// scroll tracking is suspended while searching
	vm.ObserveScroll(domain.CategoryVideo)
	if vm.ActiveCategory() != domain.CategoryAll {
		t.Errorf("scroll updated active category during search: %s", vm.ActiveCategory())
	}

	// picking a category clears the search before navigating
	var navigated domain.CategoryID
	vm.SelectCategory(domain.CategoryCode, func(id domain.CategoryID) {
		if vm.Search().Active() {
			t.Error("search still active inside navigate")
		}
		navigated = id
	})
	if navigated != domain.CategoryCode {
		t.Errorf("navigate got %s, want code", navigated)
	}
	if vm.ActiveCategory() != domain.CategoryCode {
		t.Errorf("active = %s, want code", vm.ActiveCategory())
	}
}

// TestAssistedSearchLastRequestWins fires two assisted searches and
// verifies only the most recent one can apply its results.
func TestAssistedSearchLastRequestWins(t *testing.T) {
	log := logger.New("error", false)
	cat := catalog.NewStore(&memPersister{}, catalog.DefaultSeed(), log)
	cat.Load(context.Background())

	aiClient := ai.NewWithModel(&scriptedModel{reply: `{"toolIds":[]}`}, log)
	vm := domain.NewViewModel(domain.CategoryAll)

	first := vm.BeginAssisted("draw a cat")
	second := vm.BeginAssisted("write a poem")

	outcome := aiClient.ResolveAssisted(context.Background(), "draw a cat", cat.All())
	if outcome.Failed {
		t.Fatalf("assisted resolve failed")
	}

	if vm.ApplyAssisted(first, outcome.ToolIDs) {
		t.Error("stale request applied its results")
	}
	if !vm.ApplyAssisted(second, outcome.ToolIDs) {
		t.Error("latest request was rejected")
	}
}

// TestAdminEditLifecycle runs create, edit and delete through the
// editor and checks the catalog is persisted after each commit.
func TestAdminEditLifecycle(t *testing.T) {
	log := logger.New("error", false)
	persist := &memPersister{}
	cat := catalog.NewStore(persist, catalog.DefaultSeed(), log)
	cat.Load(context.Background())
	before := len(cat.All())

	e := editor.New(cat, noopIcons{}, log)
	ctx := context.Background()

	// create
	e.Open()
	if _, err := e.OpenCreate(); err != nil {
		t.Fatal(err)
	}
	if err := e.UpdateDraft(func(d *domain.Draft) {
		d.Name = "Suno"
		d.Description = "AI music generation"
		d.Category = domain.CategoryAudio
		d.URL = "https://suno.com"
	}); err != nil {
		t.Fatal(err)
	}
	created, err := e.Save(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(cat.All()); got != before+1 {
		t.Fatalf("catalog size = %d, want %d", got, before+1)
	}
	if cat.All()[0].ID != created.ID {
		t.Error("new tool not at the front")
	}
	if len(persist.tools) != before+1 {
		t.Error("create not persisted")
	}

	// edit in place
	if _, err := e.OpenEdit(created.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.UpdateDraft(func(d *domain.Draft) {
		d.Description = "AI music and song generation"
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Save(ctx); err != nil {
		t.Fatal(err)
	}
	got, _ := cat.Get(created.ID)
	if got.Description != "AI music and song generation" {
		t.Errorf("edit not applied: %q", got.Description)
	}
	if cat.All()[0].ID != created.ID {
		t.Error("edited tool moved from its position")
	}

	// delete requires confirmation
	if err := e.Delete(ctx, created.ID, false); !errors.Is(err, editor.ErrConfirmationRequired) {
		t.Fatalf("unconfirmed delete: err = %v", err)
	}
	if err := e.Delete(ctx, created.ID, true); err != nil {
		t.Fatal(err)
	}
	if cat.Has(created.ID) {
		t.Error("tool still present after delete")
	}
	if len(persist.tools) != before {
		t.Error("delete not persisted")
	}

	// a fresh store sees the persisted catalog, not the seed
	cat2 := catalog.NewStore(persist, catalog.DefaultSeed(), log)
	cat2.Load(context.Background())
	if len(cat2.All()) != before {
		t.Errorf("reloaded catalog size = %d, want %d", len(cat2.All()), before)
	}
}

// TestChatConciergeSession opens a session, exchanges a turn and
// verifies the transcript survives a reopen of the same widget.
func TestChatConciergeSession(t *testing.T) {
	log := logger.New("error", false)
	cat := catalog.NewStore(&memPersister{}, catalog.DefaultSeed(), log)
	cat.Load(context.Background())

	model := &scriptedModel{reply: "ChatGPT is a good fit for writing."}
	m := chat.NewManager(model, nil, log)

	s := m.Open("widget-1", cat.All())

	var partials []string
	reply := s.Send(context.Background(), "what should I use for writing?", func(partial string) {
		partials = append(partials, partial)
	})
	if reply != model.reply {
		t.Errorf("reply = %q, want %q", reply, model.reply)
	}
	if len(partials) < 2 {
		t.Errorf("expected progressive partials, got %d", len(partials))
	}

	// reopening the widget returns the same session with history
	again := m.Open("widget-1", cat.All())
	if again.ID() != s.ID() {
		t.Fatal("reopen created a new session")
	}
	turns := again.Turns()
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want user + model", len(turns))
	}
	if turns[0].Role != chat.RoleUser || turns[1].Role != chat.RoleModel {
		t.Errorf("roles = %s/%s", turns[0].Role, turns[1].Role)
	}

	m.Close(context.Background(), "widget-1")
	if _, ok := m.Get(s.ID()); ok {
		t.Error("session still reachable after close")
	}
}
