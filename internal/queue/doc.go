// Package queue implements the shared waiting list workers pop nodes
// from and push successors onto.
//
// # Overview
//
// Termination of a parallel worst-case search is the classic hard part:
// a queue that looks empty to one goroutine might be about to receive
// more work from another goroutine still expanding a node. Queue solves
// this with an in-flight counter — incremented on every Pop, decremented
// on every PushAndRelease(..., decrement=true) — so that "queue empty and
// in_flight == 0" is a sound, checkable quiescence condition.
//
// # Concurrency Model
//
// One spinlock guards the slice and the counter together; both Pop and
// PushAndRelease hold it only for the duration of the swap, never across
// a caller-supplied callback.
//
// # See Also
//
//   - internal/handle: the swap-not-copy discipline this package relies
//     on to avoid touching reference counts.
//   - internal/worker: the sole caller of Pop, and the caller of
//     PushAndRelease during exploration; internal/coordinator also
//     calls PushAndRelease once to seed the initial nodes.
package queue
