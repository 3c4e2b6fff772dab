// Package worker implements the per-goroutine exploration loop: pop a
// node from the shared queue, check it against the accepting predicate,
// expand it through the cover graph, and push its surviving successors
// back onto the queue.
// See doc.go for complete package documentation.
package worker

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dreamware/reachcheck/internal/covergraph"
	"github.com/dreamware/reachcheck/internal/handle"
	"github.com/dreamware/reachcheck/internal/queue"
	"github.com/dreamware/reachcheck/internal/stats"
	"github.com/dreamware/reachcheck/internal/sts"
)

// Reached is the shared cancellation flag workers observe between
// iterations and at the top of every pop. Once set it is never cleared;
// the coordinator constructs one Reached per run and copies its pointer
// into every worker's Deps.
type Reached struct {
	flag atomic.Bool
}

// Set publishes reached with release semantics; safe to call from any
// worker, any number of times.
func (r *Reached) Set() { r.flag.Store(true) }

// Load observes reached with acquire semantics.
func (r *Reached) Load() bool { return r.flag.Load() }

// Deps bundles everything one worker iteration needs: its own private
// STS view, the shared cover graph and queue, the shared accepting
// predicate and reached flag, this worker's counters, and a logger
// already tagged with this worker's identity.
type Deps struct {
	View        sts.TransitionSystem
	Graph       *covergraph.Graph
	Queue       *queue.Queue
	Pool        *handle.Pool
	Accepting   sts.Accepting
	Reached     *Reached
	Counters    *stats.Counters
	NotifyEvery uint64
	Log         zerolog.Logger
}

// Run executes the worker loop until the queue reports quiescence or the
// reached flag becomes set, per §4.5 of the external contract. It never
// returns the queue's "no more work" signal as an error: exhaustion is a
// normal outcome, reported to the caller only through Counters and the
// reached flag's final state.
func Run(ctx context.Context, d Deps) error {
	scratch := covergraph.NewScratch()

	for {
		if d.Reached.Load() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		current, ok := d.Queue.Pop()
		if !ok {
			return nil
		}

		d.Counters.IncrementVisited()
		if d.NotifyEvery > 0 && d.Counters.Snapshot().VisitedNodes%d.NotifyEvery == 0 {
			d.Log.Info().Uint64("visited", d.Counters.Snapshot().VisitedNodes).Msg("progress")
		}

		if d.Accepting(current.Node) {
			d.Reached.Set()
			d.Queue.PushAndRelease(nil, true)
			return nil
		}

		expand := func(ctx context.Context, parent *handle.Handle) ([]*handle.Handle, error) {
			successors, err := d.View.Outgoing(ctx, parent.Node)
			if err != nil {
				return nil, err
			}
			next := make([]*handle.Handle, len(successors))
			for i, s := range successors {
				bucket := d.View.Fingerprint(s.Node, d.Graph.BucketCount())
				next[i] = d.Pool.NewHandle(s.Node, bucket)
			}
			return next, nil
		}

		if err := d.Graph.BuildAndInsert(ctx, current, expand, scratch, d.Pool, d.Counters); err != nil {
			d.Log.Error().Err(err).Msg("expansion failed")
			d.Queue.PushAndRelease(scratch.Next, true)
			return err
		}

		d.Queue.PushAndRelease(scratch.Next, true)
	}
}
