// Package stats implements the counters named in the external interface:
// visited nodes, directly-covered siblings, covered leaves, covered
// non-leaves, stored nodes, elapsed wall-clock time, and aggregate
// edge-check time.
//
// Each worker owns one Counters value for the duration of a run and
// updates it with atomic adds — no lock is needed because, unlike a
// handle's reference count, these numbers never need to agree with the
// antichain invariant at every instant, only at the end. The coordinator
// combines the per-worker snapshots into one Aggregate after every
// worker has exited, stamping the result with a uuid.UUID run
// identifier so a notify_every log stream can be correlated with the
// final report it preceded.
package stats
