package handle

import "github.com/dreamware/reachcheck/internal/sts"

// Pool is a block allocator for Handle and Edge values, grounded on the
// original algorithm's node/edge allocators (options.block_size()): each
// worker carves its handles and edges out of blockSize-sized backing
// arrays instead of allocating one at a time, amortizing allocation
// overhead across a whole block of exploration work.
//
// A Pool is not safe for concurrent use. Each worker goroutine owns one,
// and no lock guards it: NewHandle is called with no bucket lock held,
// and NewEdge is called while the worker holds only its own parent and
// target bucket locks, which do not exclude other workers' Pools.
type Pool struct {
	blockSize int
	handles   []Handle
	edges     []Edge
}

// NewPool returns a Pool that allocates blockSize Handles and Edges per
// underlying array. A non-positive blockSize falls back to 1, which
// degrades to allocating one at a time.
func NewPool(blockSize int) *Pool {
	if blockSize < 1 {
		blockSize = 1
	}
	return &Pool{blockSize: blockSize}
}

// NewHandle returns a fresh, thread-local, active Handle for node,
// carved from the pool's current block (allocating a new block first if
// the current one is exhausted).
func (p *Pool) NewHandle(node sts.Node, bucket int) *Handle {
	if len(p.handles) == 0 {
		p.handles = make([]Handle, p.blockSize)
	}
	h := &p.handles[0]
	p.handles = p.handles[1:]
	*h = Handle{Node: node, refcount: 1, active: true, Bucket: bucket}
	return h
}

// NewEdge returns a fresh Edge from src to tgt of kind, carved from the
// pool's current block.
func (p *Pool) NewEdge(src, tgt *Handle, kind EdgeKind) *Edge {
	if len(p.edges) == 0 {
		p.edges = make([]Edge, p.blockSize)
	}
	e := &p.edges[0]
	p.edges = p.edges[1:]
	*e = Edge{Src: src, Tgt: tgt, Kind: kind}
	return e
}
