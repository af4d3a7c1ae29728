package arena

import (
	"github.com/wippyai/coro-engine/engine"
)

// Handle is an opaque reference to a coroutine in an arena.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for coroutine lifecycle notifications.
type EventType uint8

const (
	EventSpawned EventType = iota
	EventDropped
)

// Event represents a coroutine lifecycle event.
type Event struct {
	Coro   *Coro
	Handle Handle
	Type   EventType
}

// Observer receives notifications about coroutine lifecycle events.
type Observer interface {
	OnCoroutineEvent(Event)
}

// Coro is the coroutine object an arena owns. It carries the
// execution context the engine manipulates; the arena controls when
// it is created and destroyed.
type Coro struct {
	name string
	ctx  *engine.Context
}

// CoroContext exposes the execution context to the engine.
func (c *Coro) CoroContext() *engine.Context { return c.ctx }

// Name returns the name the coroutine was spawned with.
func (c *Coro) Name() string { return c.name }
