package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/models"
)

// State is a snapshot of one slice. Items and Current are independent caches:
// see the reduce rules for when each one changes.
type State[T models.Record] struct {
	Items     []T            `json:"items" yaml:"items"`
	Current   *T             `json:"current,omitempty" yaml:"current,omitempty"`
	Status    Status         `json:"status" yaml:"status"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind apierrors.Kind `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	Scope     string         `json:"scope,omitempty" yaml:"scope,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Find returns the item with the given id
func (s State[T]) Find(id string) (T, bool) {
	for _, item := range s.Items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Slice holds the state of one resource under a unique store key
type Slice[T models.Record] struct {
	name  string
	mu    *sync.RWMutex
	state State[T]
}

// NewSlice creates an unregistered slice. It must be registered on a Store before use.
func NewSlice[T models.Record](name string) *Slice[T] {
	return &Slice[T]{
		name:  name,
		mu:    &sync.RWMutex{},
		state: initialState[T](),
	}
}

func initialState[T models.Record]() State[T] {
	return State[T]{Items: []T{}, Status: StatusIdle}
}

// Name returns the store key
func (s *Slice[T]) Name() string {
	return s.name
}

// State returns a copy of the slice state
func (s *Slice[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyState()
}

func (s *Slice[T]) copyState() State[T] {
	state := s.state
	state.Items = append(make([]T, 0, len(s.state.Items)), s.state.Items...)
	if s.state.Current != nil {
		current := *s.state.Current
		state.Current = &current
	}
	return state
}

func (s *Slice[T]) bind(mu *sync.RWMutex) {
	s.mu = mu
}

func (s *Slice[T]) snapshot() any {
	return s.copyState()
}

func (s *Slice[T]) reset() {
	s.state = initialState[T]()
}

// reduce applies an action. Callers hold the store lock.
func (s *Slice[T]) reduce(action Action) {
	switch action.Phase {
	case PhaseSync:
		if action.Op == OpReset {
			s.reset()
		}
		return
	case PhasePending:
		s.state.Status = StatusLoading
		return
	case PhaseRejected:
		s.fail(action.ErrorKind, action.Error)
		return
	case PhaseFulfilled:
	default:
		return
	}

	if err := s.apply(action); err != nil {
		s.fail(apierrors.KindParse, err.Error())
		return
	}
	s.state.Status = StatusSucceeded
	s.state.Error = ""
	s.state.ErrorKind = ""
	s.state.UpdatedAt = action.At
}

func (s *Slice[T]) fail(kind apierrors.Kind, message string) {
	if message == "" {
		message = fmt.Sprintf("%s request failed", s.name)
	}
	if kind == "" {
		kind = apierrors.KindServer
	}
	s.state.Status = StatusFailed
	s.state.Error = message
	s.state.ErrorKind = kind
}

func (s *Slice[T]) apply(action Action) error {
	switch action.Op {
	case OpFetchAll:
		items, err := payloadItems[T](action.Payload)
		if err != nil {
			return err
		}
		s.state.Items = items
		s.state.Scope = action.Scope
	case OpFetchOne:
		record, err := payloadRecord[T](action.Payload)
		if err != nil {
			return err
		}
		s.state.Current = &record
	case OpCreate:
		record, err := payloadRecord[T](action.Payload)
		if err != nil {
			return err
		}
		s.state.Items = append(s.withoutID(record.GetID()), record)
	case OpUpdate:
		record, err := payloadRecord[T](action.Payload)
		if err != nil {
			return err
		}
		s.replaceItem(record)
		s.state.Current = &record
	case OpReplace:
		record, err := payloadRecord[T](action.Payload)
		if err != nil {
			return err
		}
		s.replaceItem(record)
		if s.state.Current != nil && (*s.state.Current).GetID() == record.GetID() {
			s.state.Current = &record
		}
	case OpDelete:
		id := deletedID(action)
		s.state.Items = s.withoutID(id)
		if s.state.Current != nil && (*s.state.Current).GetID() == id {
			s.state.Current = nil
		}
	}
	return nil
}

func (s *Slice[T]) replaceItem(record T) {
	s.state.Items = ectolinq.Map(s.state.Items, func(item T) T {
		if item.GetID() == record.GetID() {
			return record
		}
		return item
	})
}

func (s *Slice[T]) withoutID(id string) []T {
	return ectolinq.Filter(s.state.Items, func(item T) bool {
		return item.GetID() != id
	})
}

func deletedID(action Action) string {
	if id, ok := action.Input.(string); ok && id != "" {
		return id
	}
	return action.Key
}

func payloadItems[T models.Record](payload any) ([]T, error) {
	switch v := payload.(type) {
	case []T:
		return append(make([]T, 0, len(v)), v...), nil
	case nil:
		return []T{}, nil
	default:
		return nil, fmt.Errorf("unexpected payload %T for list of %T", payload, *new(T))
	}
}

func payloadRecord[T models.Record](payload any) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unexpected payload %T for %T", payload, zero)
}
