// this code is derived from https://github.com/brunocalza/go-bustub and
// https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub and
// licenses/samehadadb dirs

package buffer

import (
	deadlock "github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"

	"github.com/pagepool/pagepool/common"
	"github.com/pagepool/pagepool/recovery"
	"github.com/pagepool/pagepool/storage/disk"
	"github.com/pagepool/pagepool/storage/page"
	"github.com/pagepool/pagepool/types"
)

// Manager owns the frame array, the page table, the free list, and
// coordinates with the Replacer and the Disk Manager to satisfy page
// requests. A single mutex serializes every public operation,
// including the disk I/O performed during eviction and loading, so no
// other operation can observe or rebind a frame while its write-back
// or load is in progress.
type Manager struct {
	mutex deadlock.Mutex

	frames    []*page.Frame // index is frame id
	freeList  []types.FrameID
	pageTable map[types.PageID]types.FrameID
	replacer  Replacer

	diskManager disk.Manager
	logManager  *recovery.Manager

	log *zap.Logger
}

// NewManager returns a buffer pool of cfg.PoolSize frames, all
// initially on the free list.
func NewManager(cfg common.Config, diskManager disk.Manager, logManager *recovery.Manager, log *zap.Logger) *Manager {
	frames := make([]*page.Frame, cfg.PoolSize)
	freeList := make([]types.FrameID, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		frames[i] = page.NewFrame(types.FrameID(i))
		freeList[i] = types.FrameID(i)
	}

	return &Manager{
		frames:      frames,
		freeList:    freeList,
		pageTable:   make(map[types.PageID]types.FrameID, cfg.PoolSize),
		replacer:    NewLRUReplacer(cfg.PoolSize),
		diskManager: diskManager,
		logManager:  logManager,
		log:         log,
	}
}

// Fetch resolves pageID to a pinned Frame, loading it from disk if
// necessary. It returns nil when the pool is saturated (every frame is
// pinned and neither the free list nor the Replacer can supply a
// victim); no state is mutated in that case.
func (m *Manager) Fetch(pageID types.PageID) *page.Frame {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if frameID, ok := m.pageTable[pageID]; ok {
		frame := m.frames[frameID]
		frame.IncPin()
		m.replacer.Pin(frameID)
		return frame
	}

	frameID, ok := m.takeFrame()
	if !ok {
		return nil
	}
	frame := m.frames[frameID]

	if err := m.diskManager.ReadPage(pageID, frame.Data()); err != nil {
		m.log.Error("read page failed", zap.Int32("page_id", int32(pageID)), zap.Error(err))
	}
	frame.Bind(pageID)
	m.pageTable[pageID] = frameID
	m.replacer.Pin(frameID)

	m.log.Debug("fetch: loaded page", zap.Int32("page_id", int32(pageID)), zap.Int32("frame_id", int32(frameID)))
	return frame
}

// Unpin decrements pageID's pin count. If isDirty is true the frame's
// dirty flag is OR'd in (never cleared here). Returns false if pageID's
// pin count was already zero (a caller bug); true for a benign no-op
// on an unknown pageID, and true on a normal decrement.
func (m *Manager) Unpin(pageID types.PageID, isDirty bool) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	frameID, ok := m.pageTable[pageID]
	if !ok {
		return true
	}
	frame := m.frames[frameID]

	if isDirty {
		frame.MarkDirty()
	}

	if frame.PinCount() <= 0 {
		return false
	}

	if frame.DecPin() == 0 {
		m.replacer.Unpin(frameID)
	}
	return true
}

// Flush writes pageID's frame back to disk and clears its dirty flag.
// It returns false when pageID is not resident; it never changes pin
// state.
func (m *Manager) Flush(pageID types.PageID) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.flushLocked(pageID)
}

func (m *Manager) flushLocked(pageID types.PageID) bool {
	frameID, ok := m.pageTable[pageID]
	if !ok {
		return false
	}
	frame := m.frames[frameID]
	if err := m.diskManager.WritePage(pageID, frame.Data()); err != nil {
		m.log.Error("flush page failed", zap.Int32("page_id", int32(pageID)), zap.Error(err))
		return false
	}
	frame.ClearDirty()
	return true
}

// NewPage allocates a fresh page id and returns a pinned Frame bound to
// it. It returns nil, InvalidPageID when every frame in the pool is
// pinned, or when neither the free list nor the Replacer can supply a
// victim — in either case no page id is allocated, so none leaks.
func (m *Manager) NewPage() (*page.Frame, types.PageID) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.allPinned() {
		return nil, types.InvalidPageID
	}

	frameID, ok := m.takeFrame()
	if !ok {
		return nil, types.InvalidPageID
	}
	frame := m.frames[frameID]

	pageID := m.diskManager.AllocatePage()
	frame.Bind(pageID)
	frame.Zero()
	m.pageTable[pageID] = frameID
	m.replacer.Pin(frameID)

	m.log.Debug("new page", zap.Int32("page_id", int32(pageID)), zap.Int32("frame_id", int32(frameID)))
	return frame, pageID
}

// Delete removes pageID from the pool and deallocates it on disk. It
// returns true when pageID was not resident (nothing to do) or was
// successfully deleted; false when the page is resident but pinned.
func (m *Manager) Delete(pageID types.PageID) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	frameID, ok := m.pageTable[pageID]
	if !ok {
		return true
	}
	frame := m.frames[frameID]
	if frame.PinCount() != 0 {
		return false
	}

	if frame.IsDirty() {
		if err := m.diskManager.WritePage(pageID, frame.Data()); err != nil {
			m.log.Error("write-back on delete failed", zap.Int32("page_id", int32(pageID)), zap.Error(err))
		}
	}

	delete(m.pageTable, pageID)
	m.diskManager.DeallocatePage(pageID)

	// A pin-count-0 resident frame is normally eligible in the
	// Replacer; untrack it before returning the frame to the free list
	// so the Replacer can never hand out a frame that is also free
	// (see the Delete open question on Replacer bookkeeping).
	m.replacer.Forget(frameID)

	frame.Free()
	m.freeList = append(m.freeList, frameID)
	return true
}

// FlushAll writes back every dirty resident page and clears their
// dirty flags. It does not touch pin state or the Replacer.
func (m *Manager) FlushAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for pageID, frameID := range m.pageTable {
		if m.frames[frameID].IsDirty() {
			m.flushLocked(pageID)
		}
	}
}

// allPinned reports whether every frame in the pool currently has a
// positive pin count. Must be called with mutex held.
func (m *Manager) allPinned() bool {
	for _, frame := range m.frames {
		if frame.PinCount() <= 0 {
			return false
		}
	}
	return true
}

// takeFrame selects a target frame for binding: the free list first,
// else a Replacer victim. If the chosen frame currently holds a dirty
// page, it is written back before its page-table entry is removed.
// Must be called with mutex held.
func (m *Manager) takeFrame() (types.FrameID, bool) {
	if n := len(m.freeList); n > 0 {
		frameID := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		common.Assert(m.frames[frameID].PageID() == types.InvalidPageID,
			"takeFrame: frame on the free list is still bound to a page")
		return frameID, true
	}

	frameID, ok := m.replacer.Victim()
	if !ok {
		return 0, false
	}

	victim := m.frames[frameID]
	if victim.PageID() != types.InvalidPageID {
		if victim.IsDirty() {
			if err := m.diskManager.WritePage(victim.PageID(), victim.Data()); err != nil {
				m.log.Error("eviction write-back failed", zap.Int32("page_id", int32(victim.PageID())), zap.Error(err))
			}
		}
		m.log.Debug("cache out", zap.Int32("page_id", int32(victim.PageID())), zap.Int32("frame_id", int32(frameID)))
		delete(m.pageTable, victim.PageID())
	}
	return frameID, true
}
