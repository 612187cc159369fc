package state

import "sync"

// CacheField identifies a product-cache slot with its own fetch
// generation counter.
type CacheField int

const (
	CacheProducts CacheField = iota
	CacheFeatured
	CacheBestSeller
)

// Store owns one State value. Dispatch serializes all transitions under
// a mutex so collaborator goroutines (in-flight fetches) and UI events
// never interleave partial updates.
//
// Product-cache actions carry a generation token captured when their
// fetch started; a response that lands after a newer fetch has been
// issued is dropped instead of clobbering fresher data.
type Store struct {
	mu          sync.Mutex
	state       State
	generations map[CacheField]uint64
}

// NewStore builds an independent container starting from the empty state.
func NewStore() *Store {
	return &Store{
		state:       NewState(),
		generations: map[CacheField]uint64{},
	}
}

// State returns a copy of the current state.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.clone()
}

// BeginFetch issues a new generation token for the cache field. The
// matching Set* action must carry this token.
func (st *Store) BeginFetch(field CacheField) uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.generations[field]++
	return st.generations[field]
}

// Dispatch applies the action and returns the resulting state. Stale
// product-cache actions are dropped; the current state is returned
// unchanged.
func (st *Store) Dispatch(action Action) (State, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.isStale(action) {
		return st.state.clone(), nil
	}

	next, err := Reduce(st.state, action)
	if err != nil {
		return st.state.clone(), err
	}
	st.state = next
	return st.state.clone(), nil
}

func (st *Store) isStale(action Action) bool {
	switch a := action.(type) {
	case SetProducts:
		return a.Generation != 0 && a.Generation != st.generations[CacheProducts]
	case SetFeaturedProducts:
		return a.Generation != 0 && a.Generation != st.generations[CacheFeatured]
	case SetBestSeller:
		return a.Generation != 0 && a.Generation != st.generations[CacheBestSeller]
	default:
		return false
	}
}
