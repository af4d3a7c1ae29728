// Package arena provides host-side ownership of coroutine handles.
//
// The engine deliberately never allocates or frees a coroutine: it
// only manipulates state of handles it is given. The arena is the
// host collaborator that owns that lifetime, mapping dense integer
// handles to coroutine objects.
//
// # Handle Table
//
// The Arena maps integer handles to coroutines:
//
//	sched := engine.New()
//	coros := arena.New(sched)
//
//	// Spawn a coroutine, get a handle and the scheduler-facing object
//	h, worker := coros.Spawn("worker", body)
//
//	// Retrieve by handle
//	c, ok := coros.Get(h)
//
//	// Destroy when no longer running or ready
//	err := coros.Drop(h)
//
// Handle 0 is reserved invalid, and freed slots are recycled.
//
// # Lifetime Rules
//
// A handle passed to the engine must remain valid for the duration of
// any call that touches it. Drop enforces the safe subset of that
// contract: a coroutine that is ready or currently running cannot be
// dropped, because its saved context is the only path control can
// take out of it. Suspended-but-not-ready and finished coroutines
// drop freely.
package arena
