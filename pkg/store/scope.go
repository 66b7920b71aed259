package store

import "sync"

// Scope is a dispatcher owned by one consumer. Closing it voids every task it started,
// so late settlements never mutate the store.
type Scope struct {
	store  *Store
	mu     sync.Mutex
	tasks  map[*task]struct{}
	closed bool
}

func newScope(store *Store) *Scope {
	return &Scope{
		store: store,
		tasks: make(map[*task]struct{}),
	}
}

// Dispatch forwards the action to the store. A closed scope only forwards settlements,
// which the store turns into cancellations.
func (s *Scope) Dispatch(action Action) {
	if s.Closed() && !(action.Phase.Settled() && action.Token != "") {
		s.store.logger.WithField("action", action.Name()).Debug("dropping action dispatched through closed scope")
		return
	}
	s.store.Dispatch(action)
}

// Close voids and cancels every in-flight task started through the scope
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for t := range s.tasks {
		s.store.tasks.void(t)
	}
	s.tasks = make(map[*task]struct{})
}

// Closed reports whether Close has been called
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Store returns the store the scope dispatches into
func (s *Scope) Store() *Store {
	return s.store
}

func (s *Scope) track(t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.store.tasks.void(t)
		return
	}
	s.tasks[t] = struct{}{}
}

func (s *Scope) untrack(t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, t)
}

func (s *Scope) target() (*Store, *Scope) {
	return s.store, s
}
