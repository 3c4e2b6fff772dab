// Package sts defines the symbolic transition system contract that
// reachcheck's core consumes as an external collaborator, providing a
// consistent API across different timed-automaton front ends while
// enforcing the monotonicity guarantees the cover graph depends on.
// See doc.go for complete package documentation.
package sts

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrNoSuchLabel is returned (wrapped) by AcceptingFromLabels when one of
// the requested labels is not among the transition system's known
// labels, so callers can distinguish a configuration mistake from a
// transition system failure during expansion.
var ErrNoSuchLabel = errors.New("sts: no such accepting label")

// Node is an opaque handle to a symbolic state as produced by a
// TransitionSystem. Its only externally visible property is equality:
// two Node values compare equal iff they denote the same underlying
// symbolic state. The core never inspects a Node's internal structure;
// it is carried, fingerprinted, and compared only through the
// TransitionSystem that produced it.
type Node interface{}

// Transition is an opaque label attached to an outgoing edge. The core
// does not interpret transitions; they exist purely so an STS can
// report, alongside each successor, which concrete transition produced
// it (for diagnostics or output), without the core needing to know the
// transition system's alphabet.
type Transition interface{}

// Successor pairs a freshly computed symbolic state with the transition
// that produced it from some parent node.
type Successor struct {
	// Node is the successor symbolic state.
	Node Node

	// Transition is the transition system's own label for the edge that
	// produced Node; may be nil if the transition system has nothing to
	// report.
	Transition Transition
}

// TransitionSystem is the external contract the core consumes to explore
// a symbolic state graph. Out of scope for this package, and therefore
// not represented anywhere in this interface: parsing a system
// description, constructing the automaton network, and the zone algebra
// backing the covering decision — those live entirely behind a concrete
// implementation.
//
// Contract:
//   - Initial, Outgoing, and Covers must be referentially transparent
//     with respect to the Node values they are given; calling them twice
//     with equal arguments must yield equal (or at least ⊑-equivalent)
//     results.
//   - Covers must implement a preorder: reflexive (Covers(a, a) is always
//     true) and transitive. It need not be antisymmetric — two distinct
//     nodes may mutually cover each other, in which case the cover graph
//     keeps whichever one it observed first (see DESIGN.md).
//   - Covers must agree with Fingerprint: if Covers(a, b) or Covers(b, a)
//     can ever be true, Fingerprint(a) must equal Fingerprint(b). The
//     cover graph's bucket queries only ask Covers about nodes sharing a
//     bucket; its direct covering among siblings asks about every pair
//     of successors of one parent, whatever their fingerprints.
//   - A TransitionSystem implementation is not required to be safe for
//     concurrent use by itself. NewView must produce independent views
//     that are each single-threaded but share enough underlying state
//     (node identity, covering decisions) that Nodes produced by one
//     view remain meaningful to another.
type TransitionSystem interface {
	// Initial returns the set of initial symbolic states.
	Initial(ctx context.Context) ([]Node, error)

	// Outgoing computes the successors of node via every enabled
	// transition. The returned slice is freshly allocated; the core
	// takes ownership of every Successor.Node it contains.
	Outgoing(ctx context.Context, node Node) ([]Successor, error)

	// Covers decides the covering preorder a ⊑ b: every behavior from a
	// is also a behavior from b. It is evaluated between nodes sharing a
	// bucket and between sibling successors of the same parent.
	Covers(ctx context.Context, a, b Node) (bool, error)

	// Fingerprint maps node to a bucket selector in [0, bucketCount).
	// Nodes that might ever cover one another must fingerprint
	// identically.
	Fingerprint(node Node, bucketCount int) int

	// NewView returns an independent view of this transition system for
	// use by a single worker goroutine. The returned view shares node
	// identity with ts but owns its own transition-computation state;
	// expanding a node through one view must not be visible through
	// another.
	NewView() TransitionSystem
}

// Accepting is a pure predicate over symbolic nodes, monotone with
// respect to the covering preorder: if a ⊑ b and Accepting(a), then
// Accepting(b) must also hold. The coordinator copies this value into
// every worker; implementations must therefore be safe to call
// concurrently from multiple goroutines (a plain closure over immutable
// data satisfies this trivially).
type Accepting func(node Node) bool

// Labeled is implemented by a Node that can report a discrete label
// naming its location, letting AcceptingFromLabels recognize accepting
// states by name instead of by value identity.
type Labeled interface {
	Label() string
}

// LabelSource is optionally implemented by a TransitionSystem that can
// enumerate every label its nodes may ever report via Labeled.
// AcceptingFromLabels uses it, when available, to catch an unresolvable
// label at startup rather than building a predicate that silently never
// matches anything.
type LabelSource interface {
	Labels() []string
}

// AcceptingFromLabels builds an Accepting predicate that holds for any
// node whose Label() (see Labeled) is among labels. If known is
// non-nil, every requested label must appear in it; the first one that
// doesn't causes AcceptingFromLabels to fail immediately with
// ErrNoSuchLabel, so a configuration mistake in accepting_labels (see
// internal/config) surfaces before any worker starts instead of
// producing a predicate that never fires. A Node that does not
// implement Labeled never matches.
func AcceptingFromLabels(labels []string, known []string) (Accepting, error) {
	if known != nil {
		for _, l := range labels {
			if !slices.Contains(known, l) {
				return nil, fmt.Errorf("%w: %q", ErrNoSuchLabel, l)
			}
		}
	}

	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return func(n Node) bool {
		labeled, ok := n.(Labeled)
		if !ok {
			return false
		}
		_, match := set[labeled.Label()]
		return match
	}, nil
}

// CoveringMode selects among the concrete covering preorders a
// TransitionSystem may be asked to use via configuration (see
// internal/config). The transition system implementation, not this
// package, decides what each mode means; CoveringMode only carries the
// caller's selection through to it.
type CoveringMode string

const (
	// CoveringInclusion selects plain inclusion of the continuous
	// component (e.g. zone containment) with exact discrete-state
	// equality.
	CoveringInclusion CoveringMode = "inclusion"

	// CoveringSimulation selects a simulation-based relaxation of
	// inclusion, typically admitting more covering relationships (and
	// therefore a smaller explored graph) at the cost of a more
	// expensive Covers decision procedure.
	CoveringSimulation CoveringMode = "simulation"
)

// CoveringModeSetter is optionally implemented by a TransitionSystem
// constructor's result to accept the caller's --covering-mode /
// covering_mode selection (see internal/config) after construction,
// without every implementation needing a CoveringMode constructor
// parameter. Callers apply it, if present, before the first call to
// Initial.
type CoveringModeSetter interface {
	SetCoveringMode(CoveringMode)
}
