// Package stats implements the per-worker and aggregate statistics
// counters returned alongside a reachability outcome.
// See doc.go for complete package documentation.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Counters holds one worker's running totals. All fields are updated
// atomically so a worker never needs its own lock to report progress,
// matching the cover graph's "reference counts need a lock, plain
// counters don't" split.
type Counters struct {
	VisitedNodes          uint64
	DirectlyCoveredLeaves uint64
	CoveredLeaves         uint64
	CoveredNonLeaves      uint64
	StoredNodes           uint64
	EdgeCheckNanos        uint64
}

// IncrementVisited records that a node was popped from the work queue,
// whether or not it is then expanded.
func (c *Counters) IncrementVisited() { atomic.AddUint64(&c.VisitedNodes, 1) }

// IncrementDirectlyCovered records an intra-batch sibling deactivation.
func (c *Counters) IncrementDirectlyCovered() { atomic.AddUint64(&c.DirectlyCoveredLeaves, 1) }

// IncrementCoveredLeaf records a freshly computed successor discarded
// because an existing node already covers it.
func (c *Counters) IncrementCoveredLeaf() { atomic.AddUint64(&c.CoveredLeaves, 1) }

// IncrementCoveredNonLeaf records an existing node subsumed by a newly
// inserted one.
func (c *Counters) IncrementCoveredNonLeaf() { atomic.AddUint64(&c.CoveredNonLeaves, 1) }

// IncrementStored records a node that was actually inserted into the
// cover graph.
func (c *Counters) IncrementStored() { atomic.AddUint64(&c.StoredNodes, 1) }

// AddEdgeCheckTime accumulates time spent scanning an outgoing edge list
// for an existing edge before allocating a new one.
func (c *Counters) AddEdgeCheckTime(d time.Duration) {
	atomic.AddUint64(&c.EdgeCheckNanos, uint64(d.Nanoseconds()))
}

// Snapshot returns a point-in-time copy of c, safe to retain and combine
// with Aggregate.
func (c *Counters) Snapshot() Counters {
	return Counters{
		VisitedNodes:          atomic.LoadUint64(&c.VisitedNodes),
		DirectlyCoveredLeaves: atomic.LoadUint64(&c.DirectlyCoveredLeaves),
		CoveredLeaves:         atomic.LoadUint64(&c.CoveredLeaves),
		CoveredNonLeaves:      atomic.LoadUint64(&c.CoveredNonLeaves),
		StoredNodes:           atomic.LoadUint64(&c.StoredNodes),
		EdgeCheckNanos:        atomic.LoadUint64(&c.EdgeCheckNanos),
	}
}

// Aggregate is the final, run-level statistics report the coordinator
// returns alongside an outcome.
type Aggregate struct {
	RunID uuid.UUID

	VisitedNodes          uint64
	DirectlyCoveredLeaves uint64
	CoveredLeaves         uint64
	CoveredNonLeaves      uint64
	StoredNodes           uint64

	Elapsed        time.Duration
	EdgeCheckTotal time.Duration
}

// Sum combines one Counters snapshot per worker thread into a single
// Aggregate, stamped with the supplied run id and wall-clock
// elapsed time.
func Sum(runID uuid.UUID, elapsed time.Duration, perWorker []Counters) Aggregate {
	var agg Aggregate
	agg.RunID = runID
	agg.Elapsed = elapsed
	for _, c := range perWorker {
		agg.VisitedNodes += c.VisitedNodes
		agg.DirectlyCoveredLeaves += c.DirectlyCoveredLeaves
		agg.CoveredLeaves += c.CoveredLeaves
		agg.CoveredNonLeaves += c.CoveredNonLeaves
		agg.StoredNodes += c.StoredNodes
		agg.EdgeCheckTotal += time.Duration(c.EdgeCheckNanos)
	}
	return agg
}
