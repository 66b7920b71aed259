package twin

import (
	"sync"

	"github.com/Ramsey-B/collably/pkg/models"
)

// table is a thread-safe in-memory collection that lists in insertion order
type table[T models.Record] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newTable[T models.Record]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

// put stores item under its id, keeping the original position on overwrite
func (t *table[T]) put(item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[item.GetID()]; !exists {
		t.order = append(t.order, item.GetID())
	}
	t.items[item.GetID()] = item
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, ok := t.items[id]
	return item, ok
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[id]; !exists {
		return false
	}
	delete(t.items, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]T, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.items[id])
	}
	return result
}

// find returns the first item matching the predicate
func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, item := range t.list() {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = make(map[string]T)
	t.order = nil
}
