// this code is derived from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/samehadadb dir

package disk

import (
	"github.com/dsnet/golib/memfile"
	deadlock "github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"

	"github.com/pagepool/pagepool/common"
	"github.com/pagepool/pagepool/types"
)

// VirtualManager is an in-memory implementation of Manager backed by
// memfile.File instead of an os.File. It gives real
// ReadPage/WritePage/AllocatePage semantics (including reads of
// never-written pages returning zeros) without touching disk.
// NewManagerForTest returns it only when common.EnableOnMemStorage is
// true.
type VirtualManager struct {
	db         *memfile.File
	nextPageID types.PageID
	numWrites  uint64
	size       int64
	mutex      deadlock.Mutex
	log        *zap.Logger
}

// NewVirtualManager returns a Manager whose storage lives entirely in
// memory.
func NewVirtualManager(log *zap.Logger) *VirtualManager {
	return &VirtualManager{
		db:  memfile.New(nil),
		log: log,
	}
}

// WritePage durably writes pageData as the contents of page id.
func (d *VirtualManager) WritePage(id types.PageID, pageData []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	offset := int64(id) * int64(common.PageSize)
	if _, err := d.db.WriteAt(pageData, offset); err != nil {
		d.log.Error("virtual disk write failed", zap.Int32("page_id", int32(id)), zap.Error(err))
		return err
	}

	d.numWrites++
	if end := offset + int64(len(pageData)); end > d.size {
		d.size = end
	}
	return nil
}

// ReadPage fills pageData with the contents of page id, or zeros when
// the page was allocated but never written.
func (d *VirtualManager) ReadPage(id types.PageID, pageData []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	offset := int64(id) * int64(common.PageSize)
	if offset >= d.size {
		for i := range pageData {
			pageData[i] = 0
		}
		return nil
	}

	if _, err := d.db.ReadAt(pageData, offset); err != nil {
		return err
	}
	return nil
}

// AllocatePage reserves and returns a fresh page id.
func (d *VirtualManager) AllocatePage() types.PageID {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	id := d.nextPageID
	d.nextPageID++
	return id
}

// DeallocatePage releases a page id. The in-memory backing never
// reclaims space.
func (d *VirtualManager) DeallocatePage(types.PageID) {}

// GetNumWrites returns the number of WritePage calls that have
// completed successfully.
func (d *VirtualManager) GetNumWrites() uint64 { return d.numWrites }

// Size returns the current size, in bytes, of the backing buffer.
func (d *VirtualManager) Size() int64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.size
}

// ShutDown is a no-op: there is nothing to close for an in-memory file.
func (d *VirtualManager) ShutDown() {}
