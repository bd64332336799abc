package parser

import "fmt"

// BlockSize is the number of records held by one arena block.
const BlockSize = 1024

// FragmentKind tags an arena record with the destructor it needs.
type FragmentKind int

const (
	KindNone FragmentKind = iota
	KindPoint
	KindLinestring
	KindRing
	KindPolygon
	KindGeometry
)

func (k FragmentKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPoint:
		return "point"
	case KindLinestring:
		return "linestring"
	case KindRing:
		return "ring"
	case KindPolygon:
		return "polygon"
	case KindGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("FragmentKind(%d)", int(k))
	}
}

type arenaRecord struct {
	kind   FragmentKind
	handle interface{}
}

type arenaBlock struct {
	records [BlockSize]arenaRecord
	n       int
	next    *arenaBlock
}

// ArenaStats counts what happened to the fragments of one parse.
type ArenaStats struct {
	// Registered is the number of fragments ever registered.
	Registered int
	// Absorbed fragments were deregistered because a parent took ownership.
	Absorbed int
	// Released fragments were deregistered and destroyed.
	Released int
	// Transferred fragments were cleared by a sweep that kept them alive.
	Transferred int
	// Live is the number of fragments currently registered.
	Live int
	// Blocks is the number of blocks allocated over the arena's lifetime.
	Blocks int
}

// Arena tracks every fragment created during one parse so that a failed
// parse can release them all exactly once. It is a singly linked list of
// fixed-capacity blocks; deregistration tombstones a slot without compaction.
//
// Handles must be pointers. An Arena is owned by a single parse and is not
// safe for concurrent use.
type Arena struct {
	first *arenaBlock
	last  *arenaBlock

	// Oldest slot that may still be live. Deregistration scans forward from
	// here, which keeps the scan short when fragments are consumed in
	// creation order.
	scanBlock *arenaBlock
	scanIdx   int

	limit int
	stats ArenaStats

	observe func(ev arenaEvent, kind FragmentKind, handle interface{})
}

type arenaEvent int

const (
	eventRegister arenaEvent = iota
	eventAbsorb
	eventRelease
	eventTransfer
)

func (a *Arena) notify(ev arenaEvent, kind FragmentKind, handle interface{}) {
	if a.observe != nil {
		a.observe(ev, kind, handle)
	}
}

// NewArena creates an arena that refuses registrations once limit fragments
// are live. A limit of zero or less means no limit.
func NewArena(limit int) *Arena {
	return &Arena{limit: limit}
}

// Register records a newly created fragment.
func (a *Arena) Register(kind FragmentKind, handle interface{}) error {
	if a.limit > 0 && a.stats.Live >= a.limit {
		return &ErrAllocation{Kind: kind, Limit: a.limit}
	}
	if a.last == nil || a.last.n == BlockSize {
		blk := &arenaBlock{}
		if a.last == nil {
			a.first = blk
			a.scanBlock, a.scanIdx = blk, 0
		} else {
			a.last.next = blk
		}
		a.last = blk
		a.stats.Blocks++
	}
	a.last.records[a.last.n] = arenaRecord{kind: kind, handle: handle}
	a.last.n++
	a.stats.Registered++
	a.stats.Live++
	a.notify(eventRegister, kind, handle)
	return nil
}

// Deregister tombstones the record holding handle and reports its kind.
// It returns false if handle is not registered.
func (a *Arena) Deregister(handle interface{}) (FragmentKind, bool) {
	for blk, i := a.scanBlock, a.scanIdx; blk != nil; blk, i = blk.next, 0 {
		for ; i < blk.n; i++ {
			r := &blk.records[i]
			if r.kind == KindNone || r.handle != handle {
				continue
			}
			kind := r.kind
			*r = arenaRecord{}
			a.stats.Live--
			a.skipTombstones()
			return kind, true
		}
	}
	return KindNone, false
}

func (a *Arena) skipTombstones() {
	for a.scanBlock != nil {
		if a.scanIdx < a.scanBlock.n {
			if a.scanBlock.records[a.scanIdx].kind != KindNone {
				return
			}
			a.scanIdx++
			continue
		}
		if a.scanBlock.next == nil {
			return
		}
		a.scanBlock, a.scanIdx = a.scanBlock.next, 0
	}
}

// Absorb deregisters a fragment whose ownership moved into a parent fragment.
func (a *Arena) Absorb(handle interface{}) bool {
	kind, ok := a.Deregister(handle)
	if !ok {
		return false
	}
	a.stats.Absorbed++
	a.notify(eventAbsorb, kind, handle)
	return true
}

// Release deregisters a fragment and destroys it.
func (a *Arena) Release(handle interface{}) bool {
	kind, ok := a.Deregister(handle)
	if !ok {
		return false
	}
	a.destroy(kind, handle)
	return true
}

// Sweep walks every block. With releaseAll every live fragment is destroyed;
// without it the records are cleared and the fragments left to their new
// owner. The blocks are dropped either way. Sweep returns the number of live
// records it visited.
func (a *Arena) Sweep(releaseAll bool) int {
	n := 0
	for blk := a.first; blk != nil; blk = blk.next {
		for i := 0; i < blk.n; i++ {
			r := blk.records[i]
			if r.kind == KindNone {
				continue
			}
			n++
			if releaseAll {
				a.destroy(r.kind, r.handle)
			} else {
				a.stats.Transferred++
				a.notify(eventTransfer, r.kind, r.handle)
			}
		}
	}
	a.first, a.last = nil, nil
	a.scanBlock, a.scanIdx = nil, 0
	a.stats.Live = 0
	return n
}

// Stats returns the arena's counters.
func (a *Arena) Stats() ArenaStats {
	return a.stats
}

// destroy runs the type-specific destructor for a fragment.
func (a *Arena) destroy(kind FragmentKind, handle interface{}) {
	a.stats.Released++
	a.notify(eventRelease, kind, handle)
	switch kind {
	case KindPoint:
		putPoint(handle.(*Point))
	case KindLinestring:
		handle.(*Linestring).Coords = nil
	case KindRing:
		handle.(*Ring).Coords = nil
	case KindPolygon:
		p := handle.(*Polygon)
		p.Exterior = nil
		p.Interiors = nil
	case KindGeometry:
		handle.(*Collection).release()
	}
}
