// this code is derived from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/samehadadb dir

// Package page defines Frame, the in-memory slot a BufferPoolManager
// hands out to clients.
package page

import (
	"sync/atomic"

	"github.com/ncw/directio"

	"github.com/pagepool/pagepool/common"
	"github.com/pagepool/pagepool/types"
)

// Frame is a fixed-size memory slot holding one page's worth of bytes
// plus the bookkeeping the buffer pool needs: which page id it holds
// (or InvalidPageID when free), how many live handles reference it, and
// whether it has been modified since it was loaded.
//
// A Frame never changes which frame_id it is; it only changes which
// page_id it is bound to.
type Frame struct {
	id       types.FrameID
	pageID   types.PageID
	pinCount int32
	isDirty  bool
	data     []byte
}

// NewFrame allocates a Frame's backing buffer via directio's
// page-aligned allocator, the way the teacher's FetchPage path does for
// every page it loads, so every frame is ready for O_DIRECT reads and
// writes regardless of which page ends up bound to it.
func NewFrame(id types.FrameID) *Frame {
	return &Frame{
		id:     id,
		pageID: types.InvalidPageID,
		data:   directio.AlignedBlock(common.PageSize),
	}
}

// ID returns the frame's fixed slot index.
func (f *Frame) ID() types.FrameID { return f.id }

// PageID returns the page currently bound to this frame, or
// InvalidPageID when the frame is free.
func (f *Frame) PageID() types.PageID { return f.pageID }

// PinCount returns the number of live handles on this frame.
func (f *Frame) PinCount() int32 { return atomic.LoadInt32(&f.pinCount) }

// IsDirty reports whether the frame's contents differ from disk.
func (f *Frame) IsDirty() bool { return f.isDirty }

// Data returns the frame's backing buffer. The manager reads and
// writes through this slice; clients read/write it between Fetch/New
// and the matching Unpin.
func (f *Frame) Data() []byte { return f.data }

// MarkDirty ORs isDirty true into the frame. Unpin never clears it this
// way — only a write-back does.
func (f *Frame) MarkDirty() { f.isDirty = true }

// IncPin increments the pin count and returns the new value.
func (f *Frame) IncPin() int32 { return atomic.AddInt32(&f.pinCount, 1) }

// DecPin decrements the pin count and returns the new value.
func (f *Frame) DecPin() int32 { return atomic.AddInt32(&f.pinCount, -1) }

// ClearDirty clears the dirty flag after a write-back.
func (f *Frame) ClearDirty() { f.isDirty = false }

// Bind rebinds the frame to a new page id, resetting pin count to 1 and
// clearing the dirty flag. Used on both Fetch-miss binds and NewPage
// binds.
func (f *Frame) Bind(id types.PageID) {
	f.pageID = id
	atomic.StoreInt32(&f.pinCount, 1)
	f.isDirty = false
}

// Free returns the frame to the FREE state: no page, no pins, clean,
// zeroed data. Used by Delete when handing the frame back to the free
// list.
func (f *Frame) Free() {
	f.pageID = types.InvalidPageID
	atomic.StoreInt32(&f.pinCount, 0)
	f.isDirty = false
	f.Zero()
}

// Zero clears the frame's data buffer without touching metadata. Used
// by NewPage, which zero-inits rather than reading from disk.
func (f *Frame) Zero() {
	for i := range f.data {
		f.data[i] = 0
	}
}
