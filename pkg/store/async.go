package store

import (
	"context"
	"fmt"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	ctxkeys "github.com/Ramsey-B/collably/pkg/context"
	"github.com/Ramsey-B/collably/pkg/tracing"
)

// AsyncAction wraps a call that settles a slice: it dispatches pending, runs, then
// dispatches exactly one of fulfilled or rejected.
type AsyncAction[I, O any] struct {
	// Type is "<slice>/<name>", e.g. "products/fetchAllProducts"
	Type  string
	Slice string
	Op    Op
	// Key derives the input key used for task identity and delete-by-id
	Key func(input I) string
	// Scope derives the value stored on the slice by a fulfilled fetch-all
	Scope func(input I) string
	Run   func(ctx context.Context, input I) (O, error)
}

// Dispatch runs the action through d and returns its result. The result is returned even
// when the settlement was ignored because the task was superseded or its scope closed.
func (a *AsyncAction[I, O]) Dispatch(ctx context.Context, d Dispatcher, input I) (O, error) {
	var zero O
	store, scope := d.target()

	inputKey := ""
	if a.Key != nil {
		inputKey = a.Key(input)
	}

	taskID := inputKey
	if a.Op.IsMutation() {
		taskID = mutationKey(inputKey, input)
	}

	t, joined := store.tasks.begin(ctx, taskKey(a.Slice, a.Type, taskID), a.Op.IsMutation())
	if joined {
		store.logger.WithField("action", a.Type).Debug("joining in-flight mutation")
		return a.wait(ctx, t)
	}
	if scope != nil {
		scope.track(t)
		defer scope.untrack(t)
	}

	base := Action{
		Type:  a.Type,
		Slice: a.Slice,
		Op:    a.Op,
		Input: input,
		Key:   inputKey,
		Token: t.token,
	}
	if a.Scope != nil {
		base.Scope = a.Scope(input)
	}

	pending := base
	pending.Phase = PhasePending
	d.Dispatch(pending)

	runCtx := ctxkeys.SetActionToken(ctxkeys.SetAction(t.ctx, a.Type), t.token)
	runCtx, span := tracing.StartAction(runCtx, a.Type, a.Slice, string(a.Op), t.token)

	out, err := a.run(runCtx, input)
	tracing.EndSpan(span, err)

	settled := base
	settled.TraceID = tracing.GetTraceID(runCtx)
	if err != nil {
		settled.Phase = PhaseRejected
		settled.Error = err.Error()
		settled.ErrorKind = apierrors.KindOf(err)
	} else {
		settled.Phase = PhaseFulfilled
		settled.Payload = out
	}
	d.Dispatch(settled)

	store.tasks.finish(t, out, err)
	if err != nil {
		return zero, err
	}
	return out, nil
}

func (a *AsyncAction[I, O]) run(ctx context.Context, input I) (out O, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", a.Type, r)
		}
	}()
	return a.Run(ctx, input)
}

func (a *AsyncAction[I, O]) wait(ctx context.Context, t *task) (O, error) {
	var zero O
	select {
	case <-t.done:
		if t.err != nil {
			return zero, t.err
		}
		out, ok := t.result.(O)
		if !ok {
			return zero, fmt.Errorf("%s: unexpected joined result %T", a.Type, t.result)
		}
		return out, nil
	case <-ctx.Done():
		return zero, apierrors.Wrap(apierrors.KindCanceled, ctx.Err(), fmt.Sprintf("%s canceled: %v", a.Type, ctx.Err()))
	}
}
