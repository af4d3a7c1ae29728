package arena

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/coro-engine/engine"
	"github.com/wippyai/coro-engine/errors"
)

// Arena is an in-memory table owning coroutine objects, with handle
// recycling and lifecycle observers. The engine only ever sees the
// objects the arena hands it; allocation and teardown stay here, on
// the host side of the contract.
type Arena struct {
	sched     *engine.Scheduler
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	coro  *Coro
	valid bool
}

// New creates an arena whose coroutines are scheduled by sched.
func New(sched *engine.Scheduler) *Arena {
	return &Arena{
		sched:    sched,
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Spawn allocates a coroutine with the given name and entry function
// and returns its handle together with the object the scheduler
// accepts. The coroutine starts with the default save-mask and is not
// ready; the host decides when to ready or transfer into it. Returns
// handle 0 if the arena is closed.
func (a *Arena) Spawn(name string, entry func()) (Handle, *Coro) {
	c := &Coro{name: name, ctx: engine.NewContext(entry)}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return 0, nil
	}
	h := a.place(c)
	a.mu.Unlock()

	Logger().Debug("coroutine spawned",
		zap.String("coroutine", name),
		zap.Uint32("handle", uint32(h)))

	a.notify(Event{Type: EventSpawned, Handle: h, Coro: c})
	return h, c
}

// place stores the coroutine, recycling a freed slot when one exists.
// Caller holds the write lock.
func (a *Arena) place(c *Coro) Handle {
	e := entry{coro: c, valid: true}
	if len(a.freeList) > 0 {
		h := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		a.entries[h-1] = e
		return h
	}
	a.entries = append(a.entries, e)
	return Handle(len(a.entries))
}

// Get retrieves a coroutine by handle.
func (a *Arena) Get(h Handle) (*Coro, bool) {
	if h == 0 {
		return nil, false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(a.entries) {
		return nil, false
	}
	e := a.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.coro, true
}

// Drop destroys the coroutine behind the handle. Dropping a coroutine
// that is ready or currently running is refused: its saved context is
// the only way control can ever leave it again.
func (a *Arena) Drop(h Handle) error {
	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		return errors.Closed("coroutine arena")
	}

	idx := h - 1
	if h == 0 || int(idx) >= len(a.entries) || !a.entries[idx].valid {
		a.mu.Unlock()
		return errors.InvalidHandle(errors.PhaseArena, uint32(h))
	}
	c := a.entries[idx].coro

	if a.sched.IsReady(c) {
		a.mu.Unlock()
		return errors.Busy(c.name, "ready")
	}
	if a.sched.Current() == engine.Coroutine(c) {
		a.mu.Unlock()
		return errors.Busy(c.name, "running")
	}

	a.entries[idx].valid = false
	a.entries[idx].coro = nil
	a.freeList = append(a.freeList, h)
	a.mu.Unlock()

	Logger().Debug("coroutine dropped",
		zap.String("coroutine", c.name),
		zap.Uint32("handle", uint32(h)))

	a.notify(Event{Type: EventDropped, Handle: h, Coro: c})
	return nil
}

// Len returns the number of live coroutines.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := 0
	for _, e := range a.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all live coroutines.
func (a *Arena) Each(fn func(Handle, *Coro) bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i, e := range a.entries {
		if e.valid {
			if !fn(Handle(i+1), e.coro) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (a *Arena) Subscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	a.observers = append(a.observers, o)
}

// Unsubscribe removes an observer.
func (a *Arena) Unsubscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	for i, obs := range a.observers {
		if obs == o {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return
		}
	}
}

// Close releases all coroutine objects and stops accepting
// operations. Coroutines still ready or running are the host's
// responsibility to drain first; Close does not check.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	for i := range a.entries {
		a.entries[i].valid = false
		a.entries[i].coro = nil
	}
	a.entries = nil
	a.freeList = nil
	return nil
}

func (a *Arena) notify(e Event) {
	a.obsMu.RLock()
	defer a.obsMu.RUnlock()
	for _, o := range a.observers {
		o.OnCoroutineEvent(e)
	}
}
