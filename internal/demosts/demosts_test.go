package demosts

import (
	"context"
	"testing"

	"github.com/dreamware/reachcheck/internal/sts"
)

func TestLinearChainInitialAndOutgoing(t *testing.T) {
	ts := LinearChain(4)
	initial, err := ts.Initial(context.Background())
	if err != nil || len(initial) != 1 {
		t.Fatalf("Initial() = %v, %v", initial, err)
	}

	node := initial[0]
	visited := []State{node.(State)}
	for {
		out, err := ts.Outgoing(context.Background(), node)
		if err != nil {
			t.Fatalf("Outgoing() error = %v", err)
		}
		if len(out) == 0 {
			break
		}
		node = out[0].Node
		visited = append(visited, node.(State))
	}
	if len(visited) != 4 {
		t.Fatalf("expected a chain of 4 states, got %d: %v", len(visited), visited)
	}
}

func TestCoveredSiblingCovers(t *testing.T) {
	ts := CoveredSibling()
	initial, _ := ts.Initial(context.Background())
	out, err := ts.Outgoing(context.Background(), initial[0])
	if err != nil || len(out) != 2 {
		t.Fatalf("Outgoing(s0) = %v, %v", out, err)
	}

	a, aPrime := out[0].Node, out[1].Node
	covers, err := ts.Covers(context.Background(), a, aPrime)
	if err != nil || !covers {
		t.Errorf("expected a to be covered by a', got %v, %v", covers, err)
	}
	reverse, _ := ts.Covers(context.Background(), aPrime, a)
	if reverse {
		t.Error("expected a' not to be covered by a")
	}
}

func TestFingerprintAgreesForCoveringStates(t *testing.T) {
	ts := CoveredSibling()
	initial, _ := ts.Initial(context.Background())
	out, _ := ts.Outgoing(context.Background(), initial[0])
	a, aPrime := out[0].Node, out[1].Node

	fa := ts.Fingerprint(a, 1<<10)
	faPrime := ts.Fingerprint(aPrime, 1<<10)
	if fa != faPrime {
		t.Errorf("Fingerprint(a) = %d, Fingerprint(a') = %d, want equal", fa, faPrime)
	}
}

func TestDiamondBothPathsReachIdenticalState(t *testing.T) {
	ts := Diamond()
	initial, _ := ts.Initial(context.Background())
	out, _ := ts.Outgoing(context.Background(), initial[0])
	if len(out) != 2 {
		t.Fatalf("expected s0 to branch twice, got %d", len(out))
	}
	leftOut, _ := ts.Outgoing(context.Background(), out[0].Node)
	rightOut, _ := ts.Outgoing(context.Background(), out[1].Node)
	if len(leftOut) != 1 || len(rightOut) != 1 || leftOut[0].Node != rightOut[0].Node {
		t.Error("expected both branches to converge on an identical s3")
	}
}

func TestBranchingAcceptingAtDepthTwo(t *testing.T) {
	ts, accepting := BranchingAcceptingAtDepthTwo()
	initial, _ := ts.Initial(context.Background())
	if accepting(initial[0]) {
		t.Fatal("s0 must not be accepting")
	}

	out, _ := ts.Outgoing(context.Background(), initial[0])
	var s1 sts.Node
	for _, succ := range out {
		if succ.Node.(State).Location == "s1" {
			s1 = succ.Node
		}
	}
	if s1 == nil {
		t.Fatal("expected s0 to reach s1")
	}
	s1Out, _ := ts.Outgoing(context.Background(), s1)
	if len(s1Out) != 1 || !accepting(s1Out[0].Node) {
		t.Fatal("expected s1's successor to be the accepting state")
	}
}

func TestSetCoveringModeRelaxesToSimulation(t *testing.T) {
	ts := CoveredSibling()
	initial, _ := ts.Initial(context.Background())
	out, _ := ts.Outgoing(context.Background(), initial[0])
	a, aPrime := out[0].Node, out[1].Node

	setter, ok := ts.(sts.CoveringModeSetter)
	if !ok {
		t.Fatal("expected the demo graph to implement sts.CoveringModeSetter")
	}
	setter.SetCoveringMode(sts.CoveringSimulation)

	reverse, err := ts.Covers(context.Background(), aPrime, a)
	if err != nil || !reverse {
		t.Errorf("expected simulation mode to admit a' covering a, got %v, %v", reverse, err)
	}
}

func TestLabelsEnumeratesEveryLocation(t *testing.T) {
	ts := Diamond()
	src, ok := ts.(sts.LabelSource)
	if !ok {
		t.Fatal("expected the demo graph to implement sts.LabelSource")
	}

	labels := src.Labels()
	want := map[string]bool{"s0": false, "s1": false, "s2": false, "s3": false}
	for _, l := range labels {
		want[l] = true
	}
	for label, found := range want {
		if !found {
			t.Errorf("expected Labels() to include %q, got %v", label, labels)
		}
	}
}

func TestLargeSyntheticAcceptingStateIsReachableAtDepth(t *testing.T) {
	ts, accepting := LargeSynthetic(10, 3)
	initial, _ := ts.Initial(context.Background())

	node := initial[0]
	for depth := 0; depth < 3; depth++ {
		out, err := ts.Outgoing(context.Background(), node)
		if err != nil || len(out) == 0 {
			t.Fatalf("expected a successor at depth %d", depth)
		}
		node = out[0].Node
	}
	if !accepting(node) {
		t.Errorf("expected the leftmost node at depth 3 to be accepting, got %v", node)
	}
}
