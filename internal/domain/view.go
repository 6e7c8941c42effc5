package domain

import "sync"

// CategoryGroup is one section of the browsing view.
type CategoryGroup struct {
	Category Category `json:"category"`
	Tools    []Tool   `json:"tools"`
}

// Partition groups tools by category for the browsing view, preserving
// catalog order within each group. Categories with zero members are
// omitted; the "all" pseudo-category is not a section.
func Partition(catalog []Tool) []CategoryGroup {
	byCategory := make(map[CategoryID][]Tool, len(categories))
	for _, t := range catalog {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	groups := make([]CategoryGroup, 0, len(categories))
	for _, c := range categories {
		if c.ID == CategoryAll {
			continue
		}
		tools := byCategory[c.ID]
		if len(tools) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Category: c, Tools: tools})
	}
	return groups
}

// SearchState is the derived, non-persisted search surface: the raw
// query, the mode, and the assisted result-id set. A nil ResultIDs
// means "not in assisted mode".
type SearchState struct {
	Query     string     `json:"query"`
	Mode      SearchMode `json:"mode"`
	ResultIDs []string   `json:"resultIds,omitempty"`
}

// Active reports whether any search is in effect.
func (s SearchState) Active() bool {
	return s.Query != "" || s.ResultIDs != nil
}

// ViewModel tracks the active category for navigation highlighting and
// the current search state. The scroll-position heuristic that drives
// the active category is suspended whenever search is active.
type ViewModel struct {
	mu     sync.Mutex
	active CategoryID
	search SearchState
	gen    uint64
}

// NewViewModel returns a view model starting at the given category.
func NewViewModel(initial CategoryID) *ViewModel {
	return &ViewModel{active: initial}
}

// ActiveCategory returns the category currently highlighted.
func (vm *ViewModel) ActiveCategory() CategoryID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.active
}

// Search returns the current search state.
func (vm *ViewModel) Search() SearchState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.search
}

// SetSearch replaces the search state. Entering assisted mode replaces
// plain filtering outright; the caller passes the resolved id set.
// Any outstanding assisted-search token is invalidated.
func (vm *ViewModel) SetSearch(state SearchState) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.gen++
	vm.search = state
}

// ClearSearch resets the search state to empty, restoring the full
// browsing view. Any outstanding assisted-search token is invalidated:
// a late response for a cleared query is dropped.
func (vm *ViewModel) ClearSearch() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.gen++
	vm.search = SearchState{}
}

// BeginAssisted registers a new in-flight assisted search and returns
// its token. Only the holder of the latest token may apply a result;
// without the token discipline the race degenerates to the tolerated
// last-response-wins behavior.
func (vm *ViewModel) BeginAssisted(query string) uint64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.gen++
	vm.search = SearchState{Query: query, Mode: SearchModeAssisted}
	return vm.gen
}

// ApplyAssisted installs an assisted result set if token is still the
// latest request. Reports whether the result was applied.
func (vm *ViewModel) ApplyAssisted(token uint64, resultIDs []string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if token != vm.gen {
		return false
	}
	if resultIDs == nil {
		resultIDs = []string{}
	}
	vm.search.ResultIDs = resultIDs
	return true
}

// ObserveScroll updates the active category from the scroll-position
// heuristic. Ignored while search is active: the category sections are
// not on screen in search mode.
func (vm *ViewModel) ObserveScroll(id CategoryID) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.search.Active() {
		return
	}
	if _, ok := LookupCategory(id); !ok {
		return
	}
	vm.active = id
}

// SelectCategory handles an explicit category selection. While search
// is active this is a two-step sequential contract: clear the search
// state first, then run navigate once the listing view is back. The
// section only exists again after the clear step; navigate is the
// continuation, not a timer.
func (vm *ViewModel) SelectCategory(id CategoryID, navigate func(CategoryID)) {
	vm.mu.Lock()
	if vm.search.Active() {
		vm.search = SearchState{}
	}
	vm.active = id
	vm.mu.Unlock()

	if navigate != nil {
		navigate(id)
	}
}
