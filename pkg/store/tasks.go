package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Ramsey-B/collably/pkg/metrics"
)

// task is one in-flight async action
type task struct {
	key    string
	token  string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	result any
	err    error

	// joiners counts duplicate mutations waiting on this task
	joiners int
}

// taskRegistry tracks in-flight tasks by (slice, type, input key) and the tokens whose
// settlements must be ignored.
type taskRegistry struct {
	mu     sync.Mutex
	tasks  map[string]*task
	voided map[string]struct{}
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{
		tasks:  make(map[string]*task),
		voided: make(map[string]struct{}),
	}
}

func taskKey(slice, actionType, inputKey string) string {
	return slice + "|" + actionType + "|" + inputKey
}

// mutationKey extends an input key with a digest of the whole input, so only identical
// mutations join. Pointer fields compare by address.
func mutationKey(inputKey string, input any) string {
	digest := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%#v", input)))
	return inputKey + "#" + digest.String()
}

// begin starts a task under key. A mutation with the same key already in flight is
// returned with joined set; an in-flight read with the same key is voided and canceled.
func (r *taskRegistry) begin(ctx context.Context, key string, mutation bool) (t *task, joined bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tasks[key]; ok {
		if mutation {
			existing.joiners++
			return existing, true
		}
		r.voided[existing.token] = struct{}{}
		existing.cancel()
	}

	taskCtx, cancel := context.WithCancel(ctx)
	t = &task{
		key:    key,
		token:  uuid.NewString(),
		ctx:    taskCtx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.tasks[key] = t
	metrics.StoreTasksInFlight.Inc()

	return t, false
}

// finish records the task result, releases its key and forgets its token
func (r *taskRegistry) finish(t *task, result any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.result, t.err = result, err
	if r.tasks[t.key] == t {
		delete(r.tasks, t.key)
	}
	delete(r.voided, t.token)
	t.cancel()
	close(t.done)
	metrics.StoreTasksInFlight.Dec()
}

// void marks the token so its settlement is ignored, and cancels the task
func (r *taskRegistry) void(t *task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tasks[t.key] != t {
		return
	}
	r.voided[t.token] = struct{}{}
	t.cancel()
}

func (r *taskRegistry) isVoided(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.voided[token]
	return ok
}

// joinersOf returns how many duplicate dispatches are waiting on the task under key
func (r *taskRegistry) joinersOf(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[key]; ok {
		return t.joiners
	}
	return 0
}

// inFlight returns the number of running tasks
func (r *taskRegistry) inFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}
