package engine

const asserts = false

// readyQueue is a FIFO of distinct coroutines, linked intrusively
// through their contexts. The zero value is an empty queue. Callers
// must hold the scheduler lock.
type readyQueue struct {
	head, tail Coroutine
	size       int
}

// push appends a coroutine. Reports false without modifying the queue
// if the coroutine is already a member.
func (q *readyQueue) push(c Coroutine) bool {
	ctx := c.CoroContext()
	if ctx.queued {
		return false
	}
	if asserts && ctx.next != nil {
		panic("engine: pushing a coroutine with a non-nil queue link")
	}
	if q.tail != nil {
		q.tail.CoroContext().next = c
	}
	q.tail = c
	ctx.next = nil
	ctx.queued = true
	if q.head == nil {
		q.head = c
	}
	q.size++
	return true
}

// pop removes and returns the head, or nil if the queue is empty.
func (q *readyQueue) pop() Coroutine {
	c := q.head
	if c == nil {
		return nil
	}
	ctx := c.CoroContext()
	q.head = ctx.next
	if q.tail == c {
		q.tail = nil
	}
	ctx.next = nil
	ctx.queued = false
	q.size--
	return c
}

// contains reports membership without mutating the queue.
func (q *readyQueue) contains(c Coroutine) bool {
	return c.CoroContext().queued
}
