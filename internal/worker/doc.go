// Package worker implements the four-step per-iteration loop every
// exploration goroutine runs: pop, accepting check, build-and-insert,
// push.
//
// # Overview
//
// The accepting check happens strictly before expansion, so a node that
// satisfies the accepting predicate is never itself passed through
// BuildAndInsert — it is only ever published to the graph through
// seeding or through an earlier call's insertion of it as a successor.
// That ordering means no half-expanded accepting node can be observed
// after termination.
//
// # State Machine
//
// Per node: LOCAL -> IN_QUEUE -> IN_FLIGHT -> (INSERTED_ACTIVE |
// COVERED_DISCARDED); INSERTED_ACTIVE may later transition to
// INSERTED_INACTIVE when a subsequent insertion covers it.
//
// # See Also
//
//   - internal/covergraph: BuildAndInsert, the insertion algorithm this
//     loop drives.
//   - internal/queue: Pop/PushAndRelease and the in-flight counter that
//     makes quiescence detection sound.
//   - internal/coordinator: launches one goroutine per worker and
//     constructs its Deps.
package worker
