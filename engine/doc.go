// Package engine provides the cooperative scheduling core: the
// transfer primitive, the ready queue, and the current-coroutine
// register.
//
// # Architecture
//
// The engine package provides three main types:
//
//	Scheduler - owns the ready queue, the current register, and the live bindings
//	Context   - a coroutine's saved execution context, pure data
//	Coroutine - the capability a host-owned handle must provide
//
// # Switching Model
//
// Every coroutine body runs on its own goroutine, but the goroutines
// form a single logical thread of control: a suspended coroutine is
// parked on its context's resume channel, and Transfer performs a
// strict baton handoff from the running coroutine to the target.
// Parking the caller and unparking the target is the Go rendition of
// the register-and-stack swap in a native coroutine implementation.
//
//  1. Transfer captures the live bindings selected by the caller's save-mask
//  2. The target's saved bindings, selected by its mask, become live
//  3. The current-coroutine register is updated
//  4. The target is unparked (or its entry function started) and the caller parks
//
// # Scheduling
//
// Schedule, Cede, and CedeNotself drive Transfer from the strict FIFO
// ready queue. None of them block when there is nothing to run; they
// return and the caller keeps running. There is no preemption and no
// cancellation: a coroutine leaves the running state only at a point
// it chose.
//
// # Preconditions
//
// The engine does not defensively validate handles. Transferring with
// a destroyed handle, transferring into a coroutine that was never
// entered and has no entry function, or readying a finished coroutine
// are contract violations with undefined behavior, not recoverable
// errors. The arena package upholds these contracts for hosts that
// want managed handle lifetime.
package engine
