package store

import (
	"time"

	"github.com/Ramsey-B/collably/pkg/apierrors"
)

// Op is the kind of data mutation an action performs on its slice
type Op string

const (
	OpFetchAll Op = "fetch-all"
	OpFetchOne Op = "fetch-one"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	// OpReplace swaps the matching item and only re-syncs current when its id matches
	OpReplace Op = "replace"
	OpDelete  Op = "delete"
	OpReset   Op = "reset"
)

// IsMutation reports whether the op changes server state. Identical in-flight mutations
// are coalesced; reads with the same key supersede each other.
func (o Op) IsMutation() bool {
	switch o {
	case OpCreate, OpUpdate, OpReplace, OpDelete:
		return true
	default:
		return false
	}
}

// Phase is the lifecycle stage of an action
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
	// PhaseSync marks plain synchronous actions such as resets
	PhaseSync Phase = "sync"
)

// Settled reports whether the phase ends an async action
func (p Phase) Settled() bool {
	return p == PhaseFulfilled || p == PhaseRejected
}

// Status is the request status of a slice
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Action is the only way state changes. Slice "" with OpReset targets every slice.
type Action struct {
	Type  string `json:"type"`
	Slice string `json:"slice"`
	Op    Op     `json:"op"`
	Phase Phase  `json:"phase"`
	// Input is the original input of the async action, carried through to settlement
	Input any `json:"-"`
	// Key identifies the input, e.g. the record id of a fetch-one, update or delete
	Key     string `json:"key,omitempty"`
	Payload any    `json:"-"`
	Error   string `json:"error,omitempty"`
	// ErrorKind classifies Error
	ErrorKind apierrors.Kind `json:"errorKind,omitempty"`
	// Scope is stored on the slice by a fulfilled fetch-all, e.g. the user id a list belongs to
	Scope string `json:"scope,omitempty"`
	Token string `json:"token,omitempty"`
	// TraceID is the trace of the run that settled the action
	TraceID string    `json:"traceId,omitempty"`
	At      time.Time `json:"at"`
}

// Name returns the action type with its phase, e.g. "products/fetchAllProducts/pending"
func (a Action) Name() string {
	if a.Phase == "" || a.Phase == PhaseSync {
		return a.Type
	}
	return a.Type + "/" + string(a.Phase)
}

// Reset builds the synchronous action that returns a slice to its initial state.
// An empty slice name resets the whole store.
func Reset(actionType, slice string) Action {
	return Action{Type: actionType, Slice: slice, Op: OpReset, Phase: PhaseSync}
}
