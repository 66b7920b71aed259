package session

import (
	"context"
	"time"

	"github.com/Ramsey-B/collably/pkg/metrics"
)

// instrumented records the duration of every operation of the wrapped backend
type instrumented struct {
	backend string
	store   Store
}

// WithMetrics wraps store so its operations are observed under the backend label
func WithMetrics(backend string, store Store) Store {
	return &instrumented{backend: backend, store: store}
}

func (i *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	defer i.observe("get", time.Now())
	return i.store.Get(ctx, key)
}

func (i *instrumented) Set(ctx context.Context, key, value string) error {
	defer i.observe("set", time.Now())
	return i.store.Set(ctx, key, value)
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	defer i.observe("delete", time.Now())
	return i.store.Delete(ctx, key)
}

func (i *instrumented) Clear(ctx context.Context) error {
	defer i.observe("clear", time.Now())
	return i.store.Clear(ctx)
}

func (i *instrumented) observe(operation string, start time.Time) {
	metrics.RecordSessionOperation(i.backend, operation, time.Since(start).Seconds())
}
