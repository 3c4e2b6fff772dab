// Package covergraph implements the bucketed hash index of live symbolic
// nodes: fine-grained per-bucket locking, covering/subsumption queries
// restricted to a bucket, and the edge bookkeeping that keeps the
// antichain invariant intact across concurrent insertions.
// See doc.go for complete package documentation.
package covergraph

import (
	"context"
	"time"

	"github.com/dreamware/reachcheck/internal/handle"
	"github.com/dreamware/reachcheck/internal/spinlock"
	"github.com/dreamware/reachcheck/internal/stats"
	"github.com/dreamware/reachcheck/internal/sts"
)

// stallLimit is the number of consecutive no-progress passes through the
// inner loop of BuildAndInsert before it releases the parent bucket and
// backs off, matching the original algorithm's dead-lock avoidance
// threshold.
const stallLimit = 100

// stallBackoff is how long BuildAndInsert sleeps after hitting
// stallLimit, giving contending workers a chance to make progress.
const stallBackoff = 5 * time.Microsecond

// CoversFunc decides the covering preorder between two nodes. Bucket
// queries invoke it with the bucket that owns both nodes locked; direct
// covering among a parent's freshly computed siblings invokes it on every
// sibling pair, whatever their buckets, with no lock held.
type CoversFunc func(ctx context.Context, a, b sts.Node) (bool, error)

// bucket is one slot of the cover graph's fixed array: a spinlock and
// the subset of live nodes whose fingerprint maps to it.
type bucket struct {
	lock  spinlock.Spinlock
	nodes []*handle.Handle
}

func (b *bucket) findCovering(ctx context.Context, covers CoversFunc, n sts.Node) (*handle.Handle, error) {
	for _, c := range b.nodes {
		if !c.IsActive() {
			continue
		}
		ok, err := covers(ctx, n, c.Node)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, nil
}

// findCovered scans b for nodes covered by n, appending them to dst[:0]
// so the caller's scratch buffer is reused across calls instead of
// allocating a fresh slice every time.
func (b *bucket) findCovered(ctx context.Context, covers CoversFunc, n *handle.Handle, dst []*handle.Handle) ([]*handle.Handle, error) {
	dst = dst[:0]
	for _, c := range b.nodes {
		if c == n || !c.IsActive() {
			continue
		}
		ok, err := covers(ctx, c.Node, n.Node)
		if err != nil {
			return nil, err
		}
		if ok {
			dst = append(dst, c)
		}
	}
	return dst, nil
}

func (b *bucket) remove(h *handle.Handle) {
	for i, c := range b.nodes {
		if c == h {
			last := len(b.nodes) - 1
			b.nodes[i] = b.nodes[last]
			b.nodes[last] = nil
			b.nodes = b.nodes[:last]
			return
		}
	}
}

// Graph is the bucketed cover graph. The zero value is not usable;
// construct with New.
type Graph struct {
	buckets []bucket
	covers  CoversFunc
}

// New constructs a Graph with bucketCount buckets, using covers to
// decide the covering preorder between nodes sharing a bucket.
func New(bucketCount int, covers CoversFunc) *Graph {
	return &Graph{buckets: make([]bucket, bucketCount), covers: covers}
}

// BucketCount returns the number of buckets the graph was constructed
// with.
func (g *Graph) BucketCount() int {
	return len(g.buckets)
}

// AddInitial inserts h into its bucket unconditionally, used to seed the
// graph before any worker starts. Callers must not call AddInitial
// concurrently with BuildAndInsert or with another AddInitial on a node
// that could share a bucket — seeding happens single-threaded, before
// workers are launched.
func (g *Graph) AddInitial(h *handle.Handle) {
	b := &g.buckets[h.Bucket]
	b.lock.Lock()
	b.nodes = append(b.nodes, h)
	b.lock.Unlock()
}

// Scratch holds the per-worker temporary buffers BuildAndInsert needs,
// letting a worker reuse the same allocation across every node it
// expands instead of allocating fresh slices per call.
type Scratch struct {
	// Next holds the successors currently being treated. Entries are
	// swapped to nil when they are deactivated or covered-and-discarded;
	// a successor that was inserted into the graph is put back in its
	// slot. PushAndRelease onto the work queue only transfers the non-nil
	// survivors.
	Next []*handle.Handle

	containerNum []int
	treated      []bool
	covered      []*handle.Handle
}

// NewScratch returns an empty Scratch ready for reuse across many
// BuildAndInsert calls.
func NewScratch() *Scratch {
	return &Scratch{}
}

// ExpandFunc computes the successors of parent, returning freshly
// allocated, thread-local handles already assigned to their target
// buckets (via handle.New or handle.Pool.NewHandle). It is invoked with
// no cover-graph lock held.
type ExpandFunc func(ctx context.Context, parent *handle.Handle) ([]*handle.Handle, error)

// BuildAndInsert is the central cover-graph operation. parent must
// currently be referenced by the caller and still possibly active;
// expand computes parent's successors; scratch is the caller's
// (per-worker) reusable buffer; counters accumulates this worker's
// running statistics.
//
// On return, scratch.Next contains exactly the surviving successors —
// handles that were inserted into the graph as ACTUAL targets and
// remain active — with every other slot swapped to nil. The caller
// (internal/worker) is responsible for transferring scratch.Next into
// the work queue.
func (g *Graph) BuildAndInsert(ctx context.Context, parent *handle.Handle, expand ExpandFunc, scratch *Scratch, pool *handle.Pool, counters *stats.Counters) error {
	parentBucket := &g.buckets[parent.Bucket]

	parentBucket.lock.Lock()
	if !parent.IsActive() {
		parentBucket.lock.Unlock()
		return nil
	}
	parentBucket.lock.Unlock()

	next, err := expand(ctx, parent)
	if err != nil {
		return err
	}
	scratch.Next = next

	// Direct covering among siblings: order-independent, since Covers is
	// a preorder. Ties deactivate exactly one representative.
	for i, a := range scratch.Next {
		if a == nil || !a.IsActive() {
			continue
		}
		for j, b := range scratch.Next {
			if i == j || b == nil || !b.IsActive() {
				continue
			}
			ok, err := g.covers(ctx, a.Node, b.Node)
			if err != nil {
				return err
			}
			if ok {
				a.MakeInactive()
				counters.IncrementDirectlyCovered()
				break
			}
		}
	}

	if cap(scratch.containerNum) < len(scratch.Next) {
		scratch.containerNum = make([]int, len(scratch.Next))
		scratch.treated = make([]bool, len(scratch.Next))
	} else {
		scratch.containerNum = scratch.containerNum[:len(scratch.Next)]
		scratch.treated = scratch.treated[:len(scratch.Next)]
	}

	numToTreat := 0
	for i, h := range scratch.Next {
		if h != nil && h.IsActive() {
			scratch.containerNum[i] = h.Bucket
			scratch.treated[i] = false
			numToTreat++
		} else {
			scratch.Next[i] = nil
			scratch.treated[i] = true
		}
	}

	for numToTreat > 0 {
		parentBucket.lock.Lock()
		noAccessCounter := 0

		for numToTreat > 0 {
			if !parent.IsActive() {
				parentBucket.lock.Unlock()
				g.deleteReturn(scratch)
				return nil
			}

			madeProgress := false
			for i := range scratch.Next {
				if scratch.treated[i] {
					continue
				}
				targetBucketNum := scratch.containerNum[i]
				sameBucket := targetBucketNum == parent.Bucket
				targetBucket := &g.buckets[targetBucketNum]

				if !sameBucket && !targetBucket.lock.TryLock() {
					continue
				}
				madeProgress = true

				next := scratch.Next[i]
				scratch.Next[i] = nil
				scratch.treated[i] = true
				numToTreat--

				if err := g.treatSuccessor(ctx, parent, next, targetBucket, scratch, i, pool, counters); err != nil {
					if !sameBucket {
						targetBucket.lock.Unlock()
					}
					parentBucket.lock.Unlock()
					return err
				}

				if !sameBucket {
					targetBucket.lock.Unlock()
				}
			}

			if !madeProgress {
				noAccessCounter++
			} else {
				noAccessCounter = 0
			}

			if noAccessCounter > stallLimit {
				parentBucket.lock.Unlock()
				time.Sleep(stallBackoff)
				break
			}
		}
	}

	parentBucket.lock.Unlock()
	return nil
}

// treatSuccessor handles one successor once both the parent bucket and
// the successor's target bucket (or the shared parent bucket) are held.
// It is the body of step 5 in the cover-graph algorithm: check for an
// existing covering node, otherwise insert and absorb anything the new
// node covers in turn.
func (g *Graph) treatSuccessor(ctx context.Context, parent, next *handle.Handle, targetBucket *bucket, scratch *Scratch, i int, pool *handle.Pool, counters *stats.Counters) error {
	covering, err := targetBucket.findCovering(ctx, g.covers, next.Node)
	if err != nil {
		return err
	}
	if covering != nil {
		g.addEdge(parent, covering, handle.Abstract, true, pool, counters)
		counters.IncrementCoveredLeaf()
		return nil
	}

	targetBucket.nodes = append(targetBucket.nodes, next)
	next.Ref()
	counters.IncrementStored()
	g.addEdge(parent, next, handle.Actual, false, pool, counters)

	covered, err := targetBucket.findCovered(ctx, g.covers, next, scratch.covered)
	if err != nil {
		return err
	}
	scratch.covered = covered
	for _, c := range covered {
		c.MakeInactive()
		g.coverNode(c, next)
		targetBucket.remove(c)
		c.Unref()
		counters.IncrementCoveredNonLeaf()
	}

	// next survives: swap it back into its original slot so the caller
	// transfers it to the work queue once the whole pass finishes.
	scratch.Next[i] = next
	return nil
}

// coverNode makes covering replace covered: covered's incoming edges
// move to covering (retyped Abstract), its outgoing edges move to
// covering (kind preserved). Removing covered from its bucket is left to
// the caller. Callers must hold the locks on both covered's and
// covering's buckets.
func (g *Graph) coverNode(covered, covering *handle.Handle) {
	covered.MoveIncomingTo(covering, handle.Abstract)
	covered.MoveOutgoingTo(covering)
}

// addEdge adds an edge parent -> target of kind, merging with any
// existing edge per the join rule when checkExistence is true. Callers
// must hold the locks on both endpoints' buckets.
func (g *Graph) addEdge(parent, target *handle.Handle, kind handle.EdgeKind, checkExistence bool, pool *handle.Pool, counters *stats.Counters) {
	if checkExistence {
		start := time.Now()
		existing := parent.FindOutgoing(target)
		counters.AddEdgeCheckTime(time.Since(start))
		if existing != nil {
			existing.Kind = existing.Kind.Join(kind)
			return
		}
	}
	e := pool.NewEdge(parent, target, kind)
	parent.AddOutgoing(e)
	target.AddIncoming(e)
}

// deleteReturn is called when parent became inactive mid-expansion: it
// discards every successor still thread-local, then makes one pass that
// attempts to lock and remove successors that already made it into some
// bucket, leaving in place any whose bucket it cannot currently acquire.
// No successor is left in scratch.Next for the work queue. It never
// blocks on a contended bucket
// — this is an optimization, not a correctness requirement, so it is
// safe to leave a contended node in the graph for another pass to clean
// up implicitly via later coverage.
func (g *Graph) deleteReturn(scratch *Scratch) {
	for i, h := range scratch.Next {
		if !scratch.treated[i] && h != nil {
			scratch.Next[i] = nil
		}
	}
	for i, h := range scratch.Next {
		if h == nil {
			continue
		}
		b := &g.buckets[scratch.containerNum[i]]
		if b.lock.TryLock() {
			if h.IsActive() {
				h.MakeInactive()
				b.remove(h)
				h.Unref()
			}
			b.lock.Unlock()
		}
		scratch.Next[i] = nil
	}
}
