package engine

import (
	coroengine "github.com/wippyai/coro-engine"
)

// Context is a coroutine's saved execution context: the parked
// goroutine's resume channel (the register and stack snapshot in this
// rendition), the bindings captured at the last switch away, and the
// save-mask selecting which binding categories those switches touch.
//
// A Context is pure data. Only the scheduler that switches into and
// out of the coroutine may mutate it.
type Context struct {
	resume chan struct{}
	entry  func()
	saved  coroengine.Bindings
	mask   coroengine.SaveMask

	// ready queue intrusive link, owned by the scheduler
	next   Coroutine
	queued bool

	entered  bool
	finished bool
}

// NewContext creates an execution context for a coroutine whose body
// is entry. The entry function runs when the coroutine is first
// transferred into; a coroutine whose entry is nil must never be a
// transfer target before being adopted via Bootstrap.
func NewContext(entry func()) *Context {
	return &Context{
		resume: make(chan struct{}),
		entry:  entry,
		mask:   coroengine.SaveDefault,
	}
}

// Mask returns the save-mask currently in effect.
func (c *Context) Mask() coroengine.SaveMask {
	return c.mask
}

// Entered reports whether the coroutine has ever been transferred
// into (or adopted).
func (c *Context) Entered() bool {
	return c.entered
}

// Finished reports whether the coroutine's entry function returned.
// A finished coroutine must not be readied or transferred into.
func (c *Context) Finished() bool {
	return c.finished
}

// Coroutine is the capability the engine requires of a host-owned
// handle: access to the coroutine's execution context. The engine
// never allocates or frees the handle itself; lifetime belongs to the
// host embedding, and a handle passed to the engine must stay valid
// for the duration of any call that touches it.
type Coroutine interface {
	CoroContext() *Context
}

// coroName extracts a display name for logging when the handle
// provides one.
func coroName(c Coroutine) string {
	if c == nil {
		return "<nil>"
	}
	if n, ok := c.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "<anon>"
}
