// Package apierrors defines the closed set of failure kinds surfaced by the API client,
// the store and the import pipeline.
package apierrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure so callers can branch without matching message text.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindTransport    Kind = "transport"
	KindServer       Kind = "server"
	KindParse        Kind = "parse"
	KindCanceled     Kind = "canceled"
)

// Error is a classified failure with a human readable detail.
type Error struct {
	Kind       Kind
	Op         string
	Resource   string
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Op != "" || e.Resource != "" {
		return GenericMessage(e.Op, e.Resource)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf creates an error of the given kind with a formatted detail.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, keeping it reachable through errors.Is/As.
func Wrap(kind Kind, err error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Validation returns a validation error
func Validation(detail string) *Error {
	return New(KindValidation, detail)
}

// NotFound returns a not-found error with a descriptive message
func NotFound(format string, args ...any) *Error {
	return Newf(KindNotFound, format, args...)
}

// RequestError builds the failure for a response that arrived with a non-2xx status.
// message is the server supplied message; when empty the generic
// "Failed to <op> <resource>" text is used.
func RequestError(op, resource string, status int, message string) *Error {
	if strings.TrimSpace(message) == "" {
		message = GenericMessage(op, resource)
	}
	return &Error{
		Kind:       FromStatus(status),
		Op:         op,
		Resource:   resource,
		StatusCode: status,
		Detail:     message,
	}
}

// NetworkError builds the failure for a request that never produced a response.
func NetworkError(op, resource string, err error) *Error {
	kind := KindTransport
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}
	return &Error{
		Kind:     kind,
		Op:       op,
		Resource: resource,
		Detail:   fmt.Sprintf("%s: %v", GenericMessage(op, resource), err),
		Err:      err,
	}
}

// GenericMessage is the fallback text used when the server supplies none.
func GenericMessage(op, resource string) string {
	return strings.TrimSpace(fmt.Sprintf("Failed to %s %s", op, resource))
}

// FromStatus maps an HTTP status code onto a Kind.
func FromStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}

// KindOf returns the kind carried by err. Context cancellation maps to KindCanceled;
// anything unclassified is reported as KindServer.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}
	return KindServer
}

// StatusCode returns the HTTP status carried by err, or 0 when no response was received.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsRequestError reports whether err came from a response with a non-2xx status.
func IsRequestError(err error) bool {
	return StatusCode(err) != 0
}

// IsNetworkError reports whether err came from a request that received no response.
func IsNetworkError(err error) bool {
	return KindOf(err) == KindTransport
}

func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsCanceled(err error) bool     { return KindOf(err) == KindCanceled }
