package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagepool/pagepool/types"
)

func TestLRUReplacer_VictimOnEmptyReturnsFalse(t *testing.T) {
	r := NewLRUReplacer(4)
	_, ok := r.Victim()
	require.False(t, ok)
	require.Equal(t, 0, r.Size())
}

func TestLRUReplacer_UnpinOrdersOldestFirst(t *testing.T) {
	r := NewLRUReplacer(4)
	for _, f := range []types.FrameID{1, 2, 3, 4} {
		r.Pin(f) // f is untracked, so this does not register it
	}
	require.Equal(t, 0, r.Size(), "Pin on an unknown frame is a no-op")

	r.Unpin(1)
	r.Unpin(2)
	r.Unpin(3)
	r.Unpin(4)
	require.Equal(t, 4, r.Size())

	for _, want := range []types.FrameID{1, 2, 3, 4} {
		got, ok := r.Victim()
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := r.Victim()
	require.False(t, ok)
}

func TestLRUReplacer_PinRemovesFromEligible(t *testing.T) {
	r := NewLRUReplacer(4)
	r.Unpin(1)
	r.Unpin(2)
	require.Equal(t, 2, r.Size())

	r.Pin(1)
	require.Equal(t, 2, r.Size(), "Pin keeps the frame tracked, just ineligible")

	got, ok := r.Victim()
	require.True(t, ok)
	require.Equal(t, types.FrameID(2), got, "pinned frame 1 must not be victimized")
}

func TestLRUReplacer_RepinForgetsPriorPosition(t *testing.T) {
	r := NewLRUReplacer(4)
	r.Unpin(1)
	r.Unpin(2)
	r.Unpin(3)

	// Pin frame 1 (was oldest), then unpin it again: it should land at
	// the tail, not its old head position.
	r.Pin(1)
	r.Unpin(1)

	order := []types.FrameID{}
	for {
		f, ok := r.Victim()
		if !ok {
			break
		}
		order = append(order, f)
	}
	require.Equal(t, []types.FrameID{2, 3, 1}, order)
}

func TestLRUReplacer_UnpinNeverSeenFrameRegistersIt(t *testing.T) {
	// A frame enters the Replacer for the first time through Unpin, not
	// through Pin: the buffer pool manager binds a frame and only calls
	// Unpin once its pin count reaches zero.
	r := NewLRUReplacer(4)
	r.Unpin(99)
	require.Equal(t, 1, r.Size())

	got, ok := r.Victim()
	require.True(t, ok)
	require.Equal(t, types.FrameID(99), got)
}

func TestLRUReplacer_PinUnknownFrameIsNoop(t *testing.T) {
	r := NewLRUReplacer(4)
	r.Unpin(1)
	r.Pin(42)
	require.Equal(t, 1, r.Size())
}

func TestLRUReplacer_VictimLeavesReplacerEntirely(t *testing.T) {
	r := NewLRUReplacer(4)
	r.Unpin(1)

	f, ok := r.Victim()
	require.True(t, ok)
	require.Equal(t, types.FrameID(1), f)
	require.Equal(t, 0, r.Size())

	// A victimized frame leaves the Replacer entirely, not into some
	// third "evicted" state — a later Unpin re-registers it exactly as
	// it would for any frame the Replacer has never seen, because by
	// the time the manager calls this the frame has been rebound to a
	// different page.
	r.Unpin(1)
	require.Equal(t, 1, r.Size())
}
