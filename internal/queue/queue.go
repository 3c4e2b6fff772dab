// Package queue implements the work queue: a shared FIFO or LIFO
// container of pending node handles with an integrated in-flight counter
// enabling multi-producer/multi-consumer termination detection.
// See doc.go for complete package documentation.
package queue

import (
	"time"

	"github.com/dreamware/reachcheck/internal/handle"
	"github.com/dreamware/reachcheck/internal/spinlock"
)

// Order selects the queue discipline.
type Order int

const (
	// FIFO yields breadth-first exploration.
	FIFO Order = iota
	// LIFO yields depth-first exploration.
	LIFO
)

// retryDelay is the sleep between empty-but-not-quiescent poll attempts
// inside Pop, matching the waiting container's back-off in the original
// algorithm.
const retryDelay = 5 * time.Microsecond

// Queue is a thread-safe waiting list of node handles. The zero value is
// not usable; construct with New.
//
// Element transfer is always by move, never by copy: Pop and
// PushAndRelease take each handle out of its old slot and set that slot
// to nil, so a handle's reference count is never
// touched while it merely passes through the queue (see the handle
// package's lock-discipline invariant).
type Queue struct {
	lock     spinlock.Spinlock
	order    Order
	items    []*handle.Handle
	inFlight int
}

// New constructs an empty Queue with the given discipline.
func New(order Order) *Queue {
	return &Queue{order: order}
}

// Pop blocks until it can either hand back a node or determine that
// exploration is complete. It returns (node, true) after moving the head
// (FIFO) or tail (LIFO) element out of the queue and incrementing the
// in-flight counter. It returns (nil, false) once the queue is empty and
// no node is in flight anywhere — the quiescence condition. While the
// queue is transiently empty but in_flight > 0, it releases the lock,
// sleeps briefly, and retries.
func (q *Queue) Pop() (*handle.Handle, bool) {
	for {
		q.lock.Lock()
		if len(q.items) == 0 {
			if q.inFlight == 0 {
				q.lock.Unlock()
				return nil, false
			}
			q.lock.Unlock()
			time.Sleep(retryDelay)
			continue
		}

		var h *handle.Handle
		switch q.order {
		case LIFO:
			last := len(q.items) - 1
			h = q.items[last]
			q.items[last] = nil
			q.items = q.items[:last]
		default: // FIFO
			h = q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
		}
		q.inFlight++
		q.lock.Unlock()
		return h, true
	}
}

// PushAndRelease moves every non-nil handle out of batch and into the
// queue, in order, then — if decrement is true — decrements the
// in-flight counter by one. batch is left empty (every slot zeroed)
// regardless of which entries were nil on entry, matching the worker's
// expectation that it can reuse the same scratch slice across
// iterations.
func (q *Queue) PushAndRelease(batch []*handle.Handle, decrement bool) {
	q.lock.Lock()
	for i, h := range batch {
		if h == nil {
			continue
		}
		q.items = append(q.items, h)
		batch[i] = nil
	}
	if decrement {
		q.inFlight--
	}
	q.lock.Unlock()
}

// Len returns the current number of queued (not in-flight) handles. It
// is intended for tests and diagnostics, not for control flow — the
// result may be stale before the caller observes it.
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}

// InFlight returns the current in-flight count, subject to the same
// staleness caveat as Len.
func (q *Queue) InFlight() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.inFlight
}
