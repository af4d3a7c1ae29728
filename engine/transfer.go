package engine

import (
	"go.uber.org/zap"
)

// Transfer suspends from, which must be the coroutine currently
// executing, at exactly this point and resumes to at whatever point
// it last suspended (or at its entry function, if never entered). The
// live bindings selected by from's save-mask are captured into from's
// context; the bindings selected by to's save-mask are restored from
// to's context. The current-coroutine register is set to to.
//
// Transfer is a symmetric, point-to-point switch: it does not consult
// the ready queue and changes the ready-state of neither coroutine.
// It returns only when some later transfer switches back into from.
// Transferring with from == to is a no-op.
//
// Preconditions the engine does not check: from is current, both
// handles are valid, and to has an entry function or was entered
// before.
func (s *Scheduler) Transfer(from, to Coroutine) {
	if from == to {
		return
	}
	fctx := from.CoroContext()
	Logger().Debug("transfer",
		zap.String("from", coroName(from)),
		zap.String("to", coroName(to)))
	s.switchTo(fctx, to)
	<-fctx.resume
}

// switchTo performs the half of a transfer that runs on the switching
// goroutine: save from's selected bindings (skipped when fctx is nil,
// for a coroutine whose body has finished), restore to's, update the
// register, and unpark to. The caller parks afterwards, or returns if
// its coroutine is done.
func (s *Scheduler) switchTo(fctx *Context, to Coroutine) {
	tctx := to.CoroContext()
	if asserts && tctx.finished {
		panic("engine: transfer into a finished coroutine")
	}

	s.mu.Lock()
	if fctx != nil {
		fctx.saved.CopyFrom(&s.live, fctx.mask)
	}
	s.live.CopyFrom(&tctx.saved, tctx.mask)
	s.current = to
	start := !tctx.entered
	tctx.entered = true
	s.mu.Unlock()

	if start {
		go s.enter(to)
		return
	}
	tctx.resume <- struct{}{}
}

// enter runs a coroutine's entry function on its own goroutine. The
// goroutine exists for the coroutine's whole lifetime but is parked
// on the context's resume channel whenever the coroutine is
// suspended.
func (s *Scheduler) enter(c Coroutine) {
	ctx := c.CoroContext()
	ctx.entry()
	s.finish(c)
}

// finish hands control onward after a coroutine's entry function
// returns: to the ready-queue head, or to the bootstrap coroutine
// when nothing is ready. The finished coroutine's bindings are
// discarded, not saved.
func (s *Scheduler) finish(c Coroutine) {
	ctx := c.CoroContext()
	s.mu.Lock()
	ctx.finished = true
	next := s.rq.pop()
	if next == nil {
		next = s.boot
	}
	s.mu.Unlock()
	Logger().Debug("coroutine finished",
		zap.String("coroutine", coroName(c)),
		zap.String("next", coroName(next)))
	s.switchTo(nil, next)
}

// Schedule dequeues the head of the ready queue and transfers the
// currently running coroutine to it. With an empty queue there is
// nothing else to run and Schedule returns immediately.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	from := s.current
	next := s.rq.pop()
	s.mu.Unlock()
	if next == nil {
		return
	}
	s.Transfer(from, next)
}

// Cede enqueues the current coroutine at the tail of the ready queue
// and schedules, voluntarily yielding until the queue cycles back to
// the caller. It reports whether an actual switch occurred: false
// means the queue was empty and the caller simply kept running.
func (s *Scheduler) Cede() bool {
	s.mu.Lock()
	cur := s.current
	s.rq.push(cur)
	next := s.rq.pop()
	s.mu.Unlock()
	if next == cur {
		// Alone in the queue; popping undid the enqueue.
		return false
	}
	s.Transfer(cur, next)
	return true
}

// CedeNotself behaves like Cede when the ready queue is non-empty.
// When it is empty, CedeNotself returns immediately without enqueuing
// the caller, avoiding a pointless self-transfer. This is a
// single-yield operation; it does not recheck the queue after the
// switch completes.
func (s *Scheduler) CedeNotself() bool {
	s.mu.Lock()
	if s.rq.size == 0 {
		s.mu.Unlock()
		return false
	}
	cur := s.current
	s.rq.push(cur)
	next := s.rq.pop()
	s.mu.Unlock()
	s.Transfer(cur, next)
	return true
}
