package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseHandshake Phase = "handshake" // API table resolution
	PhaseTransfer  Phase = "transfer"  // context switch
	PhaseSchedule  Phase = "schedule"  // ready queue / scheduler
	PhaseSave      Phase = "save"      // save-mask manipulation
	PhaseArena     Phase = "arena"     // coroutine table
)

// Kind categorizes the error
type Kind string

const (
	KindVersionMismatch Kind = "version_mismatch"
	KindNotFound        Kind = "not_found"
	KindInvalidMask     Kind = "invalid_mask"
	KindNotInitialized  Kind = "not_initialized"
	KindInvalidHandle   Kind = "invalid_handle"
	KindBusy            Kind = "busy"
	KindClosed          Kind = "closed"
)

// Error is the structured error type used throughout the engine
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Consumer  string
	Coroutine string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Consumer != "" {
		b.WriteString(" for ")
		b.WriteString(e.Consumer)
	}
	if e.Coroutine != "" {
		b.WriteString(" on coroutine ")
		b.WriteString(e.Coroutine)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Consumer sets the identity of the dependent module
func (b *Builder) Consumer(name string) *Builder {
	b.err.Consumer = name
	return b
}

// Coroutine sets the name of the coroutine involved
func (b *Builder) Coroutine(name string) *Builder {
	b.err.Coroutine = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// VersionMismatch creates the fatal handshake error. It names the
// version the engine exports, the version the consumer was built
// against, and the consumer itself, so the operator knows what to
// rebuild before trying again.
func VersionMismatch(consumer, got, want string) *Error {
	return &Error{
		Phase:    PhaseHandshake,
		Kind:     KindVersionMismatch,
		Consumer: consumer,
		Detail:   fmt.Sprintf("API version mismatch (%s != %s) -- please rebuild %s", got, want, consumer),
	}
}

// TableNotFound creates an error for a missing API table export
func TableNotFound(consumer, name string) *Error {
	return &Error{
		Phase:    PhaseHandshake,
		Kind:     KindNotFound,
		Consumer: consumer,
		Detail:   fmt.Sprintf("API table %q not found", name),
	}
}

// InvalidMask creates an invalid save-mask error
func InvalidMask(coroutine string, mask uint32) *Error {
	return &Error{
		Phase:     PhaseSave,
		Kind:      KindInvalidMask,
		Coroutine: coroutine,
		Detail:    fmt.Sprintf("mask %#x has bits outside the defined categories", mask),
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidHandle creates an invalid handle error
func InvalidHandle(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %d does not refer to a live coroutine", handle),
	}
}

// Busy creates an error for dropping a ready or running coroutine
func Busy(coroutine, state string) *Error {
	return &Error{
		Phase:     PhaseArena,
		Kind:      KindBusy,
		Coroutine: coroutine,
		Detail:    fmt.Sprintf("cannot drop %s coroutine", state),
	}
}

// Closed creates an error for operations on a closed arena
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseArena,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s closed", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
