// Package coroengine provides a cooperative coroutine engine for Go.
//
// Many logical threads of execution share one logical thread of
// control, switching between them explicitly rather than via
// preemption. The engine supplies the transfer primitive, a strict
// FIFO ready queue, voluntary-yield scheduling, and selective
// save/restore of dynamically scoped bindings across switches.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	coroengine/        Root package with save-mask bits and the Bindings struct
//	├── engine/        Scheduler core: transfer primitive, ready queue, current register
//	├── arena/         Host-side coroutine table owning handle lifetime
//	├── api/           Versioned function-table export and load-time handshake
//	└── errors/        Structured error types for debugging
//
// # Quick Start
//
// Spawn coroutines through an arena and drive them with a scheduler:
//
//	sched := engine.New()
//	coros := arena.New(sched)
//	defer coros.Close()
//
//	worker, _ := coros.Spawn("worker", func() {
//	    for i := 0; i < 3; i++ {
//	        sched.Cede()
//	    }
//	})
//
//	sched.Run(func() {
//	    sched.Ready(worker)
//	    for sched.NReady() > 0 {
//	        sched.Schedule()
//	    }
//	})
//
// # Save Masks
//
// Each coroutine carries a SaveMask selecting which of the five
// binding categories (Args, Topic, LastErr, InputSep, Channel) its
// switches capture and restore. The default is SaveAll. Narrowing the
// mask skips save/restore work for categories a call chain is known
// not to touch, at the cost of those bindings leaking across switches.
//
// # Thread Safety
//
// Coroutines form a single logical thread of control: exactly one is
// running at any time and switches happen only at points the running
// coroutine chooses. Scheduler state is internally synchronized so
// host goroutines may call Ready to arrange wakeups from external
// events, but the live Bindings set must only be touched by the
// coroutine currently running.
package coroengine
