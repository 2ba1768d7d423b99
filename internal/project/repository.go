package project

import (
	"sort"
	"sync"
)

// Repository is an in-memory registry of project states keyed by id.
//
// All access goes through the mutex, so concurrent tool calls are safe.
// Note the single-writer-per-project discipline still applies: two
// concurrent writers to the SAME project id race at the application
// level (last Update wins) even though the map itself stays consistent.
type Repository struct {
	mu       sync.Mutex
	projects map[string]*State
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{projects: make(map[string]*State)}
}

// Get returns the project state for id, or nil if it doesn't exist.
func (r *Repository) Get(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.projects[id]
}

// GetOrCreate returns the existing state for id, creating it on first
// reference.
func (r *Repository) GetOrCreate(id, name, description string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.projects[id]; ok {
		return state
	}

	state := NewState(id, name, description)
	r.projects[id] = state
	return state
}

// Update stores the state under its project id, replacing any previous
// entry.
func (r *Repository) Update(state *State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[state.ID] = state
}

// Delete removes a project. Returns false if it didn't exist.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return false
	}
	delete(r.projects, id)
	return true
}

// List returns all known project ids, sorted.
func (r *Repository) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
