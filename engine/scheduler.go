package engine

import (
	"sync"

	"go.uber.org/zap"

	coroengine "github.com/wippyai/coro-engine"
)

// Scheduler owns the ready queue, the current-coroutine register, and
// the live bindings set. It is an explicit instance rather than
// package state; an embedding that needs exactly one scheduler
// constructs exactly one.
//
// All coroutines managed by one scheduler form a single logical
// thread of control: exactly one is running at any time, and switches
// happen only at points the running coroutine chooses. Scheduler
// state is internally locked so host goroutines may call Ready to
// arrange wakeups from external events.
type Scheduler struct {
	mu      sync.Mutex
	rq      readyQueue
	current Coroutine
	boot    Coroutine
	live    coroengine.Bindings
}

// New creates a scheduler with an empty ready queue.
func New() *Scheduler {
	return &Scheduler{}
}

// Bootstrap adopts main as the coroutine running on the calling
// goroutine and sets the current-coroutine register without
// switching. It must be called once, before any transfer, and main's
// context must not have an entry function (the calling goroutine is
// already executing it).
//
// When a coroutine's entry function returns and the ready queue is
// empty, control passes back to main.
func (s *Scheduler) Bootstrap(main Coroutine) {
	ctx := main.CoroContext()
	s.mu.Lock()
	ctx.entered = true
	s.current = main
	s.boot = main
	s.mu.Unlock()
	Logger().Debug("scheduler bootstrapped", zap.String("coroutine", coroName(main)))
}

// Run adopts the calling goroutine as an anonymous bootstrap
// coroutine, runs fn as its body, and returns when fn does. It is a
// convenience for embeddings that have no handle of their own for the
// initial thread of control.
func (s *Scheduler) Run(fn func()) {
	main := &adopted{ctx: NewContext(nil)}
	main.ctx.entered = true
	s.Bootstrap(main)
	fn()
}

// adopted is the handle Run creates for the calling goroutine.
type adopted struct {
	ctx *Context
}

func (a *adopted) CoroContext() *Context { return a.ctx }

func (a *adopted) Name() string { return "main" }

// Current returns the coroutine presently executing. Before the first
// Bootstrap it returns nil: the engine has not been entered.
func (s *Scheduler) Current() Coroutine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Ready appends the coroutine to the ready queue and reports true. It
// reports false without changing state if the coroutine is already
// queued or is the one currently running.
//
// Ready may be called from any goroutine; it is how the host arranges
// for a coroutine to resume after an external event completes.
func (s *Scheduler) Ready(c Coroutine) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == s.current {
		return false
	}
	if !s.rq.push(c) {
		return false
	}
	Logger().Debug("coroutine readied",
		zap.String("coroutine", coroName(c)),
		zap.Int("nready", s.rq.size))
	return true
}

// IsReady reports whether the coroutine is in the ready queue.
func (s *Scheduler) IsReady(c Coroutine) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rq.contains(c)
}

// NReady returns the number of coroutines in the ready queue.
func (s *Scheduler) NReady() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rq.size
}

// Save atomically reads the coroutine's save-mask and, unless mask is
// SaveQuery, replaces it. The prior mask is returned in all cases.
// Bits outside the defined categories are clamped.
//
// The usual discipline for a performance-sensitive region is scoped
// narrowing: record the prior mask, install the narrower one, do the
// work, and restore the prior mask on every exit path.
//
//	prev := sched.Save(c, prev&^coroengine.SaveArgs)
//	defer sched.Save(c, prev)
//
// Changing the mask affects only future transfers, never one already
// in flight.
func (s *Scheduler) Save(c Coroutine, mask coroengine.SaveMask) coroengine.SaveMask {
	ctx := c.CoroContext()
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := ctx.mask
	if mask != coroengine.SaveQuery {
		ctx.mask = mask.Clamp()
	}
	return prev
}

// Live returns the live bindings set. Only the coroutine currently
// running may read or write it; any other coroutine's view of these
// values is whatever its own context saved at its last switch away.
func (s *Scheduler) Live() *coroengine.Bindings {
	return &s.live
}
