// Package coordinator implements the six-step run assembly described in
// §4.6: construct per-thread views, the cover graph, and the queue; seed
// the initial nodes; launch N-1 goroutines plus the calling goroutine;
// join and aggregate.
//
// # Overview
//
// golang.org/x/sync/errgroup supplies the "launch N, collect the first
// error, cancel the rest" idiom: an STS error from any worker cancels
// the shared context the remaining workers poll, and is the single
// error Run returns. Exhaustion is never represented as an error — it
// is the Outcome value when the reached flag never gets set.
//
// # See Also
//
//   - internal/worker: the per-goroutine loop this package launches.
//   - internal/config: Options, validated by the caller before Run.
//   - internal/stats: the per-worker counters this package sums.
package coordinator
