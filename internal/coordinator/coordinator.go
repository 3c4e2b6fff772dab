// Package coordinator assembles one run of the core algorithm: it
// constructs the per-thread STS views, the cover graph, and the work
// queue, seeds the initial nodes, launches the worker goroutines, and
// aggregates their statistics into a single outcome.
// See doc.go for complete package documentation.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dreamware/reachcheck/internal/config"
	"github.com/dreamware/reachcheck/internal/covergraph"
	"github.com/dreamware/reachcheck/internal/handle"
	"github.com/dreamware/reachcheck/internal/queue"
	"github.com/dreamware/reachcheck/internal/stats"
	"github.com/dreamware/reachcheck/internal/sts"
	"github.com/dreamware/reachcheck/internal/worker"
)

// Outcome is the two-valued result of a run, per §6 of the external
// interface.
type Outcome string

const (
	// Reachable means some node satisfying the accepting predicate was
	// found, modulo the covering preorder.
	Reachable Outcome = "REACHABLE"
	// Exhausted means the queue emptied with no accepting node found.
	Exhausted Outcome = "EXHAUSTED"
)

// Run executes one complete reachability search: constructing the graph
// and queue from opts, seeding ts's initial nodes, launching opts.Threads
// worker goroutines (including the calling goroutine as one of them),
// and returning once every worker has exited.
//
// Run returns a non-nil error only for an STS error surfaced by some
// worker (§7 kind 2); exhaustion is reported as outcome Exhausted, not
// as an error. Callers are expected to have already called
// opts.Validate.
func Run(ctx context.Context, opts config.Options, ts sts.TransitionSystem, accepting sts.Accepting, log zerolog.Logger) (Outcome, stats.Aggregate, error) {
	start := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	graph := covergraph.New(opts.BucketCount, ts.Covers)
	q := queue.New(opts.QueueOrder())
	reached := &worker.Reached{}

	initial, err := ts.Initial(ctx)
	if err != nil {
		return Exhausted, stats.Aggregate{}, fmt.Errorf("coordinator: initial states: %w", err)
	}

	seedCounters := &stats.Counters{}
	initialHandles := make([]*handle.Handle, len(initial))
	for i, n := range initial {
		h := handle.New(n, ts.Fingerprint(n, opts.BucketCount))
		graph.AddInitial(h)
		seedCounters.IncrementStored()
		initialHandles[i] = h
	}
	q.PushAndRelease(initialHandles, false)

	views := make([]sts.TransitionSystem, opts.Threads)
	pools := make([]*handle.Pool, opts.Threads)
	counters := make([]*stats.Counters, opts.Threads)
	for i := range views {
		views[i] = ts.NewView()
		pools[i] = handle.NewPool(opts.BlockSize)
		if i == 0 {
			counters[i] = seedCounters
		} else {
			counters[i] = &stats.Counters{}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	for i := 1; i < opts.Threads; i++ {
		i := i
		g.Go(func() error {
			return worker.Run(gctx, worker.Deps{
				View:        views[i],
				Graph:       graph,
				Queue:       q,
				Pool:        pools[i],
				Accepting:   accepting,
				Reached:     reached,
				Counters:    counters[i],
				NotifyEvery: opts.NotifyEvery,
				Log:         log.With().Int("worker", i).Logger(),
			})
		})
	}

	// The calling goroutine runs the remaining worker itself (§4.6 step
	// 5); its error, if any, cancels the other workers and takes priority
	// over any error they report via errgroup.
	err = worker.Run(gctx, worker.Deps{
		View:        views[0],
		Graph:       graph,
		Queue:       q,
		Pool:        pools[0],
		Accepting:   accepting,
		Reached:     reached,
		Counters:    counters[0],
		NotifyEvery: opts.NotifyEvery,
		Log:         log.With().Int("worker", 0).Logger(),
	})
	if err != nil {
		cancel()
	}
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		log.Error().Err(err).Msg("run aborted by an STS error")
		return Exhausted, stats.Aggregate{}, err
	}

	elapsed := time.Since(start)
	snapshots := make([]stats.Counters, len(counters))
	for i, c := range counters {
		snapshots[i] = c.Snapshot()
	}
	agg := stats.Sum(runID, elapsed, snapshots)

	outcome := Exhausted
	if reached.Load() {
		outcome = Reachable
	}

	log.Info().
		Str("outcome", string(outcome)).
		Uint64("visited", agg.VisitedNodes).
		Uint64("stored", agg.StoredNodes).
		Dur("elapsed", agg.Elapsed).
		Msg("run complete")

	return outcome, agg, nil
}
