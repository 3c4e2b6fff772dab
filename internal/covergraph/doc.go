// Package covergraph implements the central algorithm of the whole
// module: a fixed array of buckets, each independently lockable, holding
// the live antichain of symbolic nodes that share a fingerprint.
//
// # Overview
//
// BuildAndInsert is deliberately structured to take exactly two bucket
// locks at a time — the parent's and one target's — always acquiring
// the parent's first and the target's with a non-blocking try-lock. That
// ordering, plus a stall counter that releases the parent lock and backs
// off after roughly a hundred unproductive passes, replaces a global
// lock order that would otherwise be needed to avoid deadlock cycles
// between workers contending for overlapping bucket sets.
//
// # Concurrency Model
//
//	Worker A                         Worker B
//	  lock(bucket[parent])             lock(bucket[parent'])
//	  try_lock(bucket[target])         try_lock(bucket[target'])
//	  (retry with backoff on stall)    (retry with backoff on stall)
//
// No two buckets are ever held by the same goroutine except a
// parent/target pair, and the target lock is always a try-lock, so a
// goroutine never blocks indefinitely waiting for a second lock it
// cannot get — it backs off and lets the holder make progress instead.
//
// # Reference Counting
//
// A Go garbage collector reclaims memory on its own; the handle
// package's reference counts exist purely to let tests verify the
// lock-discipline invariant on reference counts, not to drive manual
// deallocation. BuildAndInsert still calls Ref/Unref at the same points
// the original algorithm would adjust a shared_ptr, so that invariant
// remains meaningfully checkable.
//
// # See Also
//
//   - internal/handle: the node handle and intrusive edge lists this
//     package mutates.
//   - internal/worker: the sole caller of BuildAndInsert.
package covergraph
