// this code is derived from https://github.com/ryogrid/SamehadaDB's
// ClockReplacer (storage/buffer/clock_replacer.go, circular_list.go)
// and bustub's LRUReplacer (src/buffer/lru_replacer.cpp); there is
// license and copyright notice in licenses/samehadadb and
// licenses/go-bustub dirs.

package buffer

import (
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/pagepool/pagepool/types"
)

// lruNode is one entry of the eligible list, ordered oldest-unpinned
// first (head) to most-recently-unpinned (tail).
type lruNode struct {
	frameID types.FrameID
	prev    *lruNode
	next    *lruNode
}

// LRUReplacer tracks unpinned-eligible frames in least-recently-unpinned
// order. Victim always takes from the head; Unpin always appends to the
// tail, so repeated pin/unpin cycles move a frame to the tail each time
// it is unpinned, and Pin on an already-eligible frame forgets its
// prior position.
type LRUReplacer struct {
	mutex deadlock.Mutex

	head, tail *lruNode                    // eligible list, head = oldest
	eligible   map[types.FrameID]*lruNode  // frameID -> its node in the eligible list
	pinned     map[types.FrameID]struct{}  // frames registered but not eligible
}

// NewLRUReplacer returns an empty LRUReplacer sized for numPages
// distinct frame ids. numPages is advisory: the replacer never rejects
// an Unpin that keeps total tracked frames within it.
func NewLRUReplacer(numPages int) *LRUReplacer {
	return &LRUReplacer{
		eligible: make(map[types.FrameID]*lruNode, numPages),
		pinned:   make(map[types.FrameID]struct{}, numPages),
	}
}

// Victim removes and returns the head (oldest-unpinned) of the eligible
// list. The victim leaves the replacer entirely — it is not left
// pinned or eligible.
func (r *LRUReplacer) Victim() (types.FrameID, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.head == nil {
		return 0, false
	}

	victim := r.head
	r.unlink(victim)
	delete(r.eligible, victim.frameID)
	return victim.frameID, true
}

// Pin removes frameID from the eligible list and records it pinned. A
// no-op if frameID is already pinned or untracked.
func (r *LRUReplacer) Pin(frameID types.FrameID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	node, ok := r.eligible[frameID]
	if !ok {
		return
	}
	r.unlink(node)
	delete(r.eligible, frameID)
	r.pinned[frameID] = struct{}{}
}

// Unpin makes frameID eligible for eviction at the tail of the list. A
// no-op if frameID is already eligible; otherwise it registers frameID
// whether it was previously tracked as pinned or never seen before —
// the buffer pool manager only calls this once a frame's pin count
// hits zero, and the Pin that Fetch/NewPage call at bind time is a
// no-op for a frame the Replacer does not track, so the first Unpin
// after a bind is exactly how a frame enters the Replacer at all.
func (r *LRUReplacer) Unpin(frameID types.FrameID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.eligible[frameID]; ok {
		return
	}
	delete(r.pinned, frameID)

	node := &lruNode{frameID: frameID}
	r.appendTail(node)
	r.eligible[frameID] = node
}

// Forget removes frameID from the replacer entirely, whether it was
// pinned or eligible. A no-op if frameID is untracked.
func (r *LRUReplacer) Forget(frameID types.FrameID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if node, ok := r.eligible[frameID]; ok {
		r.unlink(node)
		delete(r.eligible, frameID)
	}
	delete(r.pinned, frameID)
}

// Size returns the combined count of eligible and pinned frames.
func (r *LRUReplacer) Size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.eligible) + len(r.pinned)
}

func (r *LRUReplacer) appendTail(node *lruNode) {
	if r.tail == nil {
		r.head = node
		r.tail = node
		return
	}
	node.prev = r.tail
	r.tail.next = node
	r.tail = node
}

func (r *LRUReplacer) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		r.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		r.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}
