// Package handle implements the node handle described in the data model:
// a shared, reference-counted wrapper around an opaque sts.Node, with two
// intrusive singly-linked edge lists (outgoing, incoming).
//
// # Concurrency Model
//
// The reference count and activity flag may only change while the
// bucket that currently owns the handle is locked, or while the handle
// has not yet been published to any bucket. This package does not
// enforce that invariant itself — callers (internal/covergraph,
// internal/queue) are responsible for holding the right lock before
// calling Ref, Unref, or MakeInactive. The type deliberately exposes
// plain, non-atomic fields through its methods: an atomic counter would
// let a caller "get away with" skipping the lock, masking exactly the
// bug this invariant exists to prevent.
//
// # Edge Migration
//
// MoveIncomingTo and MoveOutgoingTo splice entire lists by pointer
// reassignment, in time linear in the lengths of the two lists (each
// moved edge is retargeted, and dst's tail is found by walking its
// list), matching the covering algorithm's requirement
// that subsuming a node never touches a separate edge allocator while
// bucket locks are held.
package handle
