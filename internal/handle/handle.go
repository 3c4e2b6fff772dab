// Package handle implements the reference-counted node handle and the
// intrusive edge lists the cover graph threads through it.
// See doc.go for complete package documentation.
package handle

import "github.com/dreamware/reachcheck/internal/sts"

// EdgeKind distinguishes an exact successor edge from a covering one.
type EdgeKind int

const (
	// Actual marks an edge whose target is the exact successor computed
	// by the transition system.
	Actual EdgeKind = iota

	// Abstract marks an edge whose target merely subsumes the exact
	// successor (the exact successor was covered and discarded).
	Abstract
)

// Join combines two edge kinds observed between the same ordered pair of
// nodes, implementing the merge rule max(Actual, Abstract) = Actual: once
// any observation reports an exact successor, the edge is Actual for
// good.
func (k EdgeKind) Join(other EdgeKind) EdgeKind {
	if k == Actual || other == Actual {
		return Actual
	}
	return Abstract
}

// Edge is a directed edge owned jointly by its source and target
// Handles, linked into each endpoint's intrusive edge list. Edges are
// never shared outside the cover graph.
type Edge struct {
	Src  *Handle
	Tgt  *Handle
	Kind EdgeKind

	// nextOut links Src's outgoing list; nextIn links Tgt's incoming
	// list. Both are private to the cover graph's list-splicing code.
	nextOut *Edge
	nextIn  *Edge
}

// Handle is a shared, reference-counted wrapper around a symbolic node
// produced by an sts.TransitionSystem.
//
// Invariant (must be preserved by every caller): Refcount, Active,
// outgoing and incoming are mutated only while the bucket owning this
// handle is locked, or while the handle is strictly thread-local (not
// yet visible to any other goroutine through the cover graph). Violating
// this invariant admits data races on the counter; Go's race detector
// will catch a violation immediately, which is the whole point of
// keeping these fields unexported and funneling every mutation through
// this package's methods.
type Handle struct {
	Node sts.Node

	// refcount starts at one for the worker that created the handle; the
	// cover graph adds one when it inserts the handle into a bucket and
	// drops that one when the handle is covered and removed. Edges and the
	// work queue do not change it.
	refcount int

	// active is false once this node has been subsumed by another and
	// removed from its bucket; its edges are preserved for output but it
	// is never re-enqueued or compared against again.
	active bool

	outHead *Edge
	inHead  *Edge

	// bucket is the index this handle currently occupies, valid only
	// while active. Bucket owners use it to avoid re-hashing a node to
	// find its own lock.
	Bucket int
}

// New allocates a thread-local handle for node, initially active with a
// single reference. It is not yet visible to any other goroutine and may
// be freely mutated until it is inserted into the cover graph.
func New(node sts.Node, bucket int) *Handle {
	return &Handle{Node: node, refcount: 1, active: true, Bucket: bucket}
}

// IsActive reports whether h is still part of the live graph. Callers
// must hold h's bucket lock, except when h is known to be thread-local.
func (h *Handle) IsActive() bool {
	return h.active
}

// MakeInactive marks h as subsumed. Callers must hold h's bucket lock.
func (h *Handle) MakeInactive() {
	h.active = false
}

// Ref increments h's reference count. Callers must hold h's bucket lock,
// or h must be strictly thread-local.
func (h *Handle) Ref() {
	h.refcount++
}

// Unref decrements h's reference count and reports the new value.
// Callers must hold h's bucket lock, or h must be strictly thread-local.
func (h *Handle) Unref() int {
	h.refcount--
	return h.refcount
}

// Refcount returns the current reference count. Callers must hold h's
// bucket lock, or h must be strictly thread-local.
func (h *Handle) Refcount() int {
	return h.refcount
}

// AddOutgoing appends e to h's outgoing edge list. Callers must hold the
// lock on the bucket owning h.
func (h *Handle) AddOutgoing(e *Edge) {
	e.nextOut = nil
	if h.outHead == nil {
		h.outHead = e
		return
	}
	last := h.outHead
	for last.nextOut != nil {
		last = last.nextOut
	}
	last.nextOut = e
}

// AddIncoming appends e to h's incoming edge list. Callers must hold the
// lock on the bucket owning h.
func (h *Handle) AddIncoming(e *Edge) {
	e.nextIn = nil
	if h.inHead == nil {
		h.inHead = e
		return
	}
	last := h.inHead
	for last.nextIn != nil {
		last = last.nextIn
	}
	last.nextIn = e
}

// Outgoing returns h's outgoing edges, head first. The returned slice is
// a fresh copy; mutating it does not affect h. Callers must hold the
// lock on the bucket owning h.
func (h *Handle) Outgoing() []*Edge {
	var out []*Edge
	for e := h.outHead; e != nil; e = e.nextOut {
		out = append(out, e)
	}
	return out
}

// Incoming returns h's incoming edges, head first. The returned slice is
// a fresh copy; mutating it does not affect h. Callers must hold the
// lock on the bucket owning h.
func (h *Handle) Incoming() []*Edge {
	var in []*Edge
	for e := h.inHead; e != nil; e = e.nextIn {
		in = append(in, e)
	}
	return in
}

// FindOutgoing returns the existing outgoing edge to tgt, if any.
// Callers must hold the lock on the bucket owning h.
func (h *Handle) FindOutgoing(tgt *Handle) *Edge {
	for e := h.outHead; e != nil; e = e.nextOut {
		if e.Tgt == tgt {
			return e
		}
	}
	return nil
}

// MoveIncomingTo splices every edge in h's incoming list onto dst's
// incoming list without allocating, retyping each to newKind, and
// retargets each
// edge's Tgt to dst. h is left with an empty incoming list. Callers must
// hold the lock on the buckets owning both h and dst. A no-op if h == dst
// or h has no incoming edges.
func (h *Handle) MoveIncomingTo(dst *Handle, newKind EdgeKind) {
	if h == dst || h.inHead == nil {
		return
	}
	for e := h.inHead; e != nil; e = e.nextIn {
		e.Kind = newKind
		e.Tgt = dst
	}
	if dst.inHead == nil {
		dst.inHead = h.inHead
	} else {
		last := dst.inHead
		for last.nextIn != nil {
			last = last.nextIn
		}
		last.nextIn = h.inHead
	}
	h.inHead = nil
}

// MoveOutgoingTo splices every edge in h's outgoing list onto dst's
// outgoing list without allocating, preserving each edge's kind, and
// retargets each
// edge's Src to dst. h is left with an empty outgoing list. Callers must
// hold the lock on the buckets owning both h and dst. A no-op if h == dst
// or h has no outgoing edges.
func (h *Handle) MoveOutgoingTo(dst *Handle) {
	if h == dst || h.outHead == nil {
		return
	}
	for e := h.outHead; e != nil; e = e.nextOut {
		e.Src = dst
	}
	if dst.outHead == nil {
		dst.outHead = h.outHead
	} else {
		last := dst.outHead
		for last.nextOut != nil {
			last = last.nextOut
		}
		last.nextOut = h.outHead
	}
	h.outHead = nil
}
