package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/metrics"
)

// Registrable is implemented by *Slice[T]
type Registrable interface {
	Name() string
	bind(mu *sync.RWMutex)
	reduce(action Action)
	reset()
	snapshot() any
}

// Dispatcher accepts actions. It is implemented by *Store and *Scope.
type Dispatcher interface {
	Dispatch(action Action)
	target() (*Store, *Scope)
}

// Store composes every slice under a distinct key. Dispatch is the only mutation path.
type Store struct {
	mu     sync.RWMutex
	slices map[string]Registrable

	subMu       sync.RWMutex
	subscribers map[int]func(Action)
	nextSub     int

	// latest pending token per slice, used to settle voided tasks
	lastPending map[string]string

	tasks  *taskRegistry
	logger ectologger.Logger
}

// NewStore creates a store with the given slices registered
func NewStore(logger ectologger.Logger, slices ...Registrable) *Store {
	s := &Store{
		slices:      make(map[string]Registrable),
		subscribers: make(map[int]func(Action)),
		lastPending: make(map[string]string),
		tasks:       newTaskRegistry(),
		logger:      logger,
	}
	for _, slice := range slices {
		s.Register(slice)
	}
	return s
}

// Register adds a slice under its name. Registering a name twice panics.
func (s *Store) Register(slice Registrable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.slices[slice.Name()]; exists {
		panic(fmt.Sprintf("store: slice %q registered twice", slice.Name()))
	}
	slice.bind(&s.mu)
	s.slices[slice.Name()] = slice
}

// Keys returns the registered slice names in order
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.slices))
	for key := range s.slices {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dispatch reduces the action into its slice and notifies subscribers.
// A voided settlement never mutates data. If it belongs to the latest pending action on
// its slice it is applied as a canceled rejection so the slice leaves loading; otherwise
// it is dropped.
func (s *Store) Dispatch(action Action) {
	if action.At.IsZero() {
		action.At = time.Now().UTC()
	}

	voided := action.Token != "" && s.tasks.isVoided(action.Token)
	if voided {
		metrics.RecordVoidedSettlement(action.Slice)
	}

	action, result := s.apply(action, voided)
	switch result {
	case dropped:
		s.logger.WithFields(map[string]interface{}{
			"action": action.Name(),
			"token":  action.Token,
		}).Debug("ignoring action with voided token")
		return
	case unknownSlice:
		s.logger.WithField("action", action.Name()).Warnf("no slice registered under %q", action.Slice)
		return
	}

	metrics.RecordStoreAction(action.Slice, string(action.Phase))
	if action.Phase == PhaseRejected {
		s.logger.WithFields(map[string]interface{}{
			"action": action.Name(),
			"kind":   action.ErrorKind,
		}).Warnf("action rejected: %s", action.Error)
	} else {
		s.logger.WithField("action", action.Name()).Debug("action applied")
	}

	s.notify(action)
}

type applyResult int

const (
	applied applyResult = iota
	dropped
	unknownSlice
)

func (s *Store) apply(action Action, voided bool) (Action, applyResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if action.Slice == "" && action.Op == OpReset {
		for _, slice := range s.slices {
			slice.reset()
		}
		s.lastPending = make(map[string]string)
		return action, applied
	}

	slice, ok := s.slices[action.Slice]
	if !ok {
		return action, unknownSlice
	}

	if voided {
		if !action.Phase.Settled() || s.lastPending[action.Slice] != action.Token {
			return action, dropped
		}
		action = canceled(action)
	}

	switch {
	case action.Phase == PhasePending && action.Token != "":
		s.lastPending[action.Slice] = action.Token
	case action.Op == OpReset:
		delete(s.lastPending, action.Slice)
	}

	slice.reduce(action)
	return action, applied
}

// canceled turns a voided settlement into a rejection that carries no data
func canceled(action Action) Action {
	action.Phase = PhaseRejected
	action.Payload = nil
	action.Error = fmt.Sprintf("%s canceled", action.Type)
	action.ErrorKind = apierrors.KindCanceled
	return action
}

// Snapshot returns a copy of every slice state keyed by slice name
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any, len(s.slices))
	for name, slice := range s.slices {
		snapshot[name] = slice.snapshot()
	}
	return snapshot
}

// Subscribe registers fn to be called after every applied action. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Action)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify(action Action) {
	s.subMu.RLock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subscribers := make([]func(Action), 0, len(ids))
	for _, id := range ids {
		subscribers = append(subscribers, s.subscribers[id])
	}
	s.subMu.RUnlock()

	for _, fn := range subscribers {
		fn(action)
	}
}

// NewScope returns a dispatcher whose in-flight tasks are voided when it is closed
func (s *Store) NewScope() *Scope {
	return newScope(s)
}

func (s *Store) target() (*Store, *Scope) {
	return s, nil
}
