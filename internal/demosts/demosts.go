// Package demosts provides small, fully in-memory sts.TransitionSystem
// implementations used by cmd/reachcheck's demo subcommands and by
// test/integration: one per scenario enumerated in §8 of the external
// interface.
// See doc.go for complete package documentation.
package demosts

import (
	"context"
	"fmt"

	"github.com/dgryski/go-farm"

	"github.com/dreamware/reachcheck/internal/sts"
)

// State is the node type every demo transition system produces: a
// discrete location label paired with an integer standing in for a
// zone's "size" — covering compares zones by inclusion (a smaller zone
// is covered by a larger one at the same location), the same shape as a
// real DBM-based covering decision without any of the DBM algebra.
type State struct {
	Location string
	Zone     int
}

func (s State) String() string { return fmt.Sprintf("%s[%d]", s.Location, s.Zone) }

// Label implements sts.Labeled by reporting the discrete location name,
// letting sts.AcceptingFromLabels recognize states by name.
func (s State) Label() string { return s.Location }

// graph is a shared implementation backing every demo STS: successors
// and coverage pairs are precomputed into adjacency/covering tables, and
// Outgoing/Covers/Fingerprint are just table lookups. This mirrors the
// teacher's storage.MemoryStore: a minimal, fully synchronized reference
// implementation good enough for tests and illustrative callers, not
// for production scale.
type graph struct {
	initial []State
	edges   map[State][]State
	covers  map[[2]State]bool
	mode    sts.CoveringMode
}

// SetCoveringMode implements sts.CoveringModeSetter. Under
// CoveringSimulation, Covers relaxes to "same discrete location is
// enough", admitting covering relationships plain zone inclusion would
// reject; the zero value (and CoveringInclusion) keep the exact
// zone-inclusion behavior below.
func (g *graph) SetCoveringMode(mode sts.CoveringMode) { g.mode = mode }

// Labels implements sts.LabelSource by reporting every discrete
// location name reachable from the initial states, including locations
// that only appear as an edge's successor.
func (g *graph) Labels() []string {
	seen := map[string]struct{}{}
	for _, s := range g.initial {
		seen[s.Location] = struct{}{}
	}
	for from, tos := range g.edges {
		seen[from.Location] = struct{}{}
		for _, to := range tos {
			seen[to.Location] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	return labels
}

func (g *graph) Initial(ctx context.Context) ([]sts.Node, error) {
	nodes := make([]sts.Node, len(g.initial))
	for i, s := range g.initial {
		nodes[i] = s
	}
	return nodes, nil
}

func (g *graph) Outgoing(ctx context.Context, node sts.Node) ([]sts.Successor, error) {
	next := g.edges[node.(State)]
	out := make([]sts.Successor, len(next))
	for i, s := range next {
		out[i] = sts.Successor{Node: s, Transition: fmt.Sprintf("%s->%s", node.(State).Location, s.Location)}
	}
	return out, nil
}

func (g *graph) Covers(ctx context.Context, a, b sts.Node) (bool, error) {
	as, bs := a.(State), b.(State)
	if as == bs {
		return true, nil
	}
	if as.Location != bs.Location {
		return false, nil
	}
	if explicit, ok := g.covers[[2]State{as, bs}]; ok {
		return explicit, nil
	}
	if g.mode == sts.CoveringSimulation {
		return true, nil
	}
	return bs.Zone >= as.Zone, nil
}

// Fingerprint hashes the location label with FarmHash so that states at
// the same discrete location — the only ones Covers ever returns true
// for — always land in the same bucket, per the STS/cover-graph
// fingerprint-agreement contract.
func (g *graph) Fingerprint(node sts.Node, bucketCount int) int {
	s := node.(State)
	h := farm.Hash64([]byte(s.Location))
	return int(h % uint64(bucketCount))
}

func (g *graph) NewView() sts.TransitionSystem { return g }

// LinearChain builds the §8 scenario 1 fixture: a chain of n states with
// no covering between any pair, each state's only successor being the
// next in sequence.
func LinearChain(n int) sts.TransitionSystem {
	g := &graph{edges: map[State][]State{}}
	if n <= 0 {
		return g
	}
	states := make([]State, n)
	for i := range states {
		states[i] = State{Location: fmt.Sprintf("s%d", i), Zone: 0}
	}
	g.initial = []State{states[0]}
	for i := 0; i < n-1; i++ {
		g.edges[states[i]] = []State{states[i+1]}
	}
	return g
}

// BranchingAcceptingAtDepthTwo builds the §8 scenario 2 fixture:
// s0 -> {s1, s2}; s1 -> s3, with s3 the only state an accepting
// predicate needs to recognize.
func BranchingAcceptingAtDepthTwo() (sts.TransitionSystem, sts.Accepting) {
	s0 := State{Location: "s0"}
	s1 := State{Location: "s1"}
	s2 := State{Location: "s2"}
	s3 := State{Location: "s3"}
	g := &graph{
		initial: []State{s0},
		edges: map[State][]State{
			s0: {s1, s2},
			s1: {s3},
		},
	}
	accepting := func(n sts.Node) bool { return n.(State) == s3 }
	return g, accepting
}

// CoveredSibling builds the §8 scenario 3 fixture: s0 -> {a, a'} where a
// is covered by a' (same location, smaller zone), and neither has any
// further successors.
func CoveredSibling() sts.TransitionSystem {
	s0 := State{Location: "s0"}
	a := State{Location: "a", Zone: 1}
	aPrime := State{Location: "a", Zone: 2}
	return &graph{
		initial: []State{s0},
		edges: map[State][]State{
			s0: {a, aPrime},
		},
	}
}

// Diamond builds the §8 scenario 4 fixture: s0 -> s1 -> s3 and
// s0 -> s2 -> s3 with both paths reaching an identical s3, so the cover
// graph stores s3 once: the second copy is covered by the stored one and
// gets an Abstract edge to it through addEdge's existence check.
func Diamond() sts.TransitionSystem {
	s0 := State{Location: "s0"}
	s1 := State{Location: "s1"}
	s2 := State{Location: "s2"}
	s3 := State{Location: "s3"}
	return &graph{
		initial: []State{s0},
		edges: map[State][]State{
			s0: {s1, s2},
			s1: {s3},
			s2: {s3},
		},
	}
}

// LargeSynthetic builds the §8 scenario 6 fixture: a binary-branching
// tree of the given depth (so 2^(depth+1)-1 reachable states), with a
// single accepting state reachable at acceptDepth along the leftmost
// path. It is intended to demonstrate that early termination keeps the
// visited count far below the full reachable set once any worker
// reaches the accepting node.
func LargeSynthetic(depth, acceptDepth int) (sts.TransitionSystem, sts.Accepting) {
	g := &graph{edges: map[State][]State{}}
	root := State{Location: "s0"}
	g.initial = []State{root}

	var acceptState State
	var build func(loc string, level int) State
	build = func(loc string, level int) State {
		s := State{Location: loc}
		if level == acceptDepth && loc == acceptPath(acceptDepth) {
			acceptState = s
		}
		if level >= depth {
			return s
		}
		left := build(loc+"0", level+1)
		right := build(loc+"1", level+1)
		g.edges[s] = []State{left, right}
		return s
	}
	build("s0", 0)

	accepting := func(n sts.Node) bool { return n.(State) == acceptState }
	return g, accepting
}

// acceptPath names the leftmost node at the given depth, matching the
// naming scheme build uses ("s0" then "0" appended per level).
func acceptPath(depth int) string {
	s := "s0"
	for i := 0; i < depth; i++ {
		s += "0"
	}
	return s
}
