// Package demosts supplies illustrative sts.TransitionSystem
// implementations, one per scenario in §8 of the external interface,
// used by cmd/reachcheck's demo subcommands and by test/integration.
//
// # Overview
//
// Every demo builds its adjacency (and, where relevant, covering) table
// eagerly at construction time rather than computing successors
// on-the-fly, the same trade-off the teacher's storage.MemoryStore makes
// in choosing a fully materialized map over a real storage engine: fine
// for illustration and testing, not a statement about how a production
// STS front end (e.g. a real timed-automaton zone graph) should be
// built. LargeSynthetic therefore uses a modest tree depth rather than
// literally the 10^6 states the scenario describes — enough to show
// visited nodes staying far below the full reachable set once the
// accepting state is found, without materializing a million-node map in
// a unit test.
//
// Every State also implements sts.Labeled (by its Location field), and
// the graph backing each demo implements sts.LabelSource and
// sts.CoveringModeSetter, so cmd/reachcheck's --accepting-labels and
// --covering-mode flags take effect against every demo.
//
// # See Also
//
//   - internal/sts: the TransitionSystem contract these implementations
//     satisfy.
//   - cmd/reachcheck: wires one "run" subcommand to each of these
//     constructors.
package demosts
