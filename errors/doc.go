// Package errors provides structured error types for the coroutine engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes the consumer identity, the coroutine involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHandshake, errors.KindVersionMismatch).
//		Consumer("Coro::Event").
//		Detail("built against v%d", want).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.VersionMismatch("Coro::Event", got, want)
//	err := errors.Busy("worker-3", "ready")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
