package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCountersIncrement(t *testing.T) {
	var c Counters
	c.IncrementVisited()
	c.IncrementVisited()
	c.IncrementDirectlyCovered()
	c.IncrementCoveredLeaf()
	c.IncrementCoveredNonLeaf()
	c.IncrementStored()
	c.AddEdgeCheckTime(100 * time.Nanosecond)

	snap := c.Snapshot()
	if snap.VisitedNodes != 2 {
		t.Errorf("VisitedNodes = %d, want 2", snap.VisitedNodes)
	}
	if snap.DirectlyCoveredLeaves != 1 {
		t.Errorf("DirectlyCoveredLeaves = %d, want 1", snap.DirectlyCoveredLeaves)
	}
	if snap.CoveredLeaves != 1 {
		t.Errorf("CoveredLeaves = %d, want 1", snap.CoveredLeaves)
	}
	if snap.CoveredNonLeaves != 1 {
		t.Errorf("CoveredNonLeaves = %d, want 1", snap.CoveredNonLeaves)
	}
	if snap.StoredNodes != 1 {
		t.Errorf("StoredNodes = %d, want 1", snap.StoredNodes)
	}
	if snap.EdgeCheckNanos != 100 {
		t.Errorf("EdgeCheckNanos = %d, want 100", snap.EdgeCheckNanos)
	}
}

func TestSumAggregatesAcrossWorkers(t *testing.T) {
	perWorker := []Counters{
		{VisitedNodes: 3, StoredNodes: 2},
		{VisitedNodes: 5, StoredNodes: 1, CoveredLeaves: 4},
	}
	runID := uuid.New()
	agg := Sum(runID, 10*time.Millisecond, perWorker)

	if agg.RunID != runID {
		t.Error("Sum must stamp the supplied run id")
	}
	if agg.VisitedNodes != 8 {
		t.Errorf("VisitedNodes = %d, want 8", agg.VisitedNodes)
	}
	if agg.StoredNodes != 3 {
		t.Errorf("StoredNodes = %d, want 3", agg.StoredNodes)
	}
	if agg.CoveredLeaves != 4 {
		t.Errorf("CoveredLeaves = %d, want 4", agg.CoveredLeaves)
	}
	if agg.Elapsed != 10*time.Millisecond {
		t.Errorf("Elapsed = %v, want 10ms", agg.Elapsed)
	}
}

func TestSumEmpty(t *testing.T) {
	agg := Sum(uuid.New(), 0, nil)
	if agg.VisitedNodes != 0 || agg.StoredNodes != 0 {
		t.Error("Sum of no workers must be the zero aggregate")
	}
}
