package buffer

import "github.com/pagepool/pagepool/types"

// Replacer is a capability over frame ids: it tracks which frames are
// currently eligible for eviction (unpinned) and produces a victim on
// demand. The BufferPoolManager only ever depends on this interface,
// so alternative policies (clock, LRU-K) are substitutable without
// touching the manager.
type Replacer interface {
	// Victim removes and returns the next frame to evict, or false if
	// no frame is eligible.
	Victim() (types.FrameID, bool)

	// Pin removes frameID from the eligible set, if present. A no-op
	// when the frame is already pinned or unknown.
	Pin(frameID types.FrameID)

	// Unpin makes frameID eligible for eviction, inserting it at the
	// most-recently-unpinned end of the policy's order. A no-op when
	// the frame is already eligible; a frame the Replacer does not yet
	// track is registered as eligible.
	Unpin(frameID types.FrameID)

	// Forget removes frameID from the Replacer entirely, whether it was
	// pinned or eligible. Used when a frame is returned to the free
	// list, so Size() never counts a frame that is simultaneously free.
	Forget(frameID types.FrameID)

	// Size returns the number of frames currently tracked, pinned or
	// eligible.
	Size() int
}
