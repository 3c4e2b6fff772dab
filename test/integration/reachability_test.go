// Package integration exercises the assembled coordinator against
// whole scenarios from §8 of the external interface, rather than any
// single package's unit behavior.
package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dreamware/reachcheck/internal/config"
	"github.com/dreamware/reachcheck/internal/coordinator"
	"github.com/dreamware/reachcheck/internal/demosts"
	"github.com/dreamware/reachcheck/internal/sts"
)

func neverAccepting(sts.Node) bool { return false }

type cycleSTS struct {
	edges map[string]string
}

func (c *cycleSTS) Initial(ctx context.Context) ([]sts.Node, error) {
	return []sts.Node{"s0"}, nil
}

func (c *cycleSTS) Outgoing(ctx context.Context, node sts.Node) ([]sts.Successor, error) {
	return []sts.Successor{{Node: c.edges[node.(string)]}}, nil
}

func (c *cycleSTS) Covers(ctx context.Context, a, b sts.Node) (bool, error) {
	return a == b, nil
}

func (c *cycleSTS) Fingerprint(node sts.Node, bucketCount int) int {
	s := node.(string)
	return int(s[len(s)-1]) % bucketCount
}

func (c *cycleSTS) NewView() sts.TransitionSystem { return c }

func TestEmptyInitialSetIsExhaustedWithZeroVisited(t *testing.T) {
	ts := demosts.LinearChain(0)
	opts := config.Default()
	opts.BucketCount = 8

	outcome, agg, err := coordinator.Run(context.Background(), opts, ts, neverAccepting, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != coordinator.Exhausted {
		t.Errorf("outcome = %v, want Exhausted", outcome)
	}
	if agg.VisitedNodes != 0 {
		t.Errorf("VisitedNodes = %d, want 0", agg.VisitedNodes)
	}
}

func TestSingleAcceptingInitialNodeExploresNothingElse(t *testing.T) {
	ts := demosts.LinearChain(5)
	opts := config.Default()
	opts.BucketCount = 8
	initial, _ := ts.Initial(context.Background())
	accepting := func(n sts.Node) bool { return n == initial[0] }

	outcome, agg, err := coordinator.Run(context.Background(), opts, ts, accepting, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != coordinator.Reachable {
		t.Errorf("outcome = %v, want Reachable", outcome)
	}
	if agg.VisitedNodes != 1 {
		t.Errorf("VisitedNodes = %d, want 1", agg.VisitedNodes)
	}
}

func TestStronglyConnectedAcceptingFreeComponentVisitsOnlyTheQuotient(t *testing.T) {
	ts := &cycleSTS{edges: map[string]string{"s0": "s1", "s1": "s2", "s2": "s0"}}
	opts := config.Default()
	opts.BucketCount = 8

	outcome, agg, err := coordinator.Run(context.Background(), opts, ts, neverAccepting, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != coordinator.Exhausted {
		t.Errorf("outcome = %v, want Exhausted", outcome)
	}
	if agg.VisitedNodes != 3 {
		t.Errorf("VisitedNodes = %d, want 3 (the symbolic quotient s0,s1,s2)", agg.VisitedNodes)
	}
	if agg.StoredNodes != 3 {
		t.Errorf("StoredNodes = %d, want 3", agg.StoredNodes)
	}
}

func TestRepeatedRunsAgreeOnOutcomeAndStoredCount(t *testing.T) {
	opts := config.Default()
	opts.BucketCount = 16

	var outcomes []coordinator.Outcome
	var stored []uint64
	for i := 0; i < 3; i++ {
		ts := demosts.Diamond()
		outcome, agg, err := coordinator.Run(context.Background(), opts, ts, neverAccepting, zerolog.Nop())
		if err != nil {
			t.Fatalf("run %d: Run() error = %v", i, err)
		}
		outcomes = append(outcomes, outcome)
		stored = append(stored, agg.StoredNodes)
	}
	for i := 1; i < len(outcomes); i++ {
		if outcomes[i] != outcomes[0] {
			t.Errorf("run %d outcome = %v, want %v", i, outcomes[i], outcomes[0])
		}
		if stored[i] != stored[0] {
			t.Errorf("run %d stored = %d, want %d", i, stored[i], stored[0])
		}
	}
}

func TestOutcomeAgreesAcrossThreadCounts(t *testing.T) {
	for _, scenario := range []struct {
		name string
		ts   func() sts.TransitionSystem
	}{
		{"linear", func() sts.TransitionSystem { return demosts.LinearChain(4) }},
		{"covered-sibling", func() sts.TransitionSystem { return demosts.CoveredSibling() }},
		{"diamond", func() sts.TransitionSystem { return demosts.Diamond() }},
	} {
		var outcomes []coordinator.Outcome
		for _, threads := range []int{1, 2, 4, 8} {
			opts := config.Default()
			opts.Threads = threads
			opts.BucketCount = 16
			outcome, _, err := coordinator.Run(context.Background(), opts, scenario.ts(), neverAccepting, zerolog.Nop())
			if err != nil {
				t.Fatalf("%s threads=%d: Run() error = %v", scenario.name, threads, err)
			}
			outcomes = append(outcomes, outcome)
		}
		for i := 1; i < len(outcomes); i++ {
			if outcomes[i] != outcomes[0] {
				t.Errorf("%s: threads[%d] outcome = %v, want %v", scenario.name, i, outcomes[i], outcomes[0])
			}
		}
	}
}

func TestEarlyTerminationKeepsVisitedFarBelowReachableSet(t *testing.T) {
	ts, accepting := demosts.LargeSynthetic(16, 3)
	opts := config.Default()
	opts.Threads = 4
	opts.BucketCount = 1024

	outcome, agg, err := coordinator.Run(context.Background(), opts, ts, accepting, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != coordinator.Reachable {
		t.Fatalf("outcome = %v, want Reachable", outcome)
	}

	const fullReachableSet = 1<<17 - 1 // 2^(16+1) - 1 nodes in a depth-16 binary tree
	if agg.VisitedNodes >= fullReachableSet/100 {
		t.Errorf("VisitedNodes = %d, want far fewer than the %d-node reachable set", agg.VisitedNodes, fullReachableSet)
	}
}
