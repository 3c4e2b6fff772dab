// Package sts defines the abstract symbolic-transition-system interfaces
// that reachcheck's core treats as an external collaborator.
//
// # Overview
//
// The core (internal/covergraph, internal/worker, internal/coordinator)
// never constructs a timed automaton, never touches a difference-bound
// matrix, and never parses a model file. All of that lives behind the
// TransitionSystem interface defined here. Concrete implementations used
// for demonstration and testing live in internal/demosts.
//
// # Architecture
//
//	 Coordinator
//	     |
//	     | NewView() per worker
//	     v
//	TransitionSystem (per-worker view)
//	     |
//	     | Initial / Outgoing / Covers / Fingerprint
//	     v
//	 user-supplied model (out of scope for this module)
//
// # Concurrency Model
//
// A single TransitionSystem value may be shared read-only across workers
// only through NewView: each worker owns exactly one view and calls its
// methods from a single goroutine. The interface makes no promise about
// the safety of calling the same view from two goroutines concurrently.
//
// # Optional Capabilities
//
// AcceptingFromLabels builds an Accepting predicate from the
// accepting_labels configuration option (see internal/config) against
// any Node implementing Labeled; CoveringModeSetter lets a construction
// site apply the covering_mode option to a TransitionSystem that
// supports more than one covering preorder. Both are optional: a
// TransitionSystem that doesn't implement them simply can't be
// targeted by that option.
//
// # See Also
//
//   - internal/demosts: reference implementations exercising every
//     contract clause above, Labeled, LabelSource, and
//     CoveringModeSetter.
//   - internal/covergraph: the sole caller of Covers. Fingerprint is
//     called by internal/coordinator (seeding) and internal/worker
//     (expansion).
package sts
