// this code is derived from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"io"
	"os"

	"github.com/ncw/directio"
	deadlock "github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"

	"github.com/pagepool/pagepool/common"
	"github.com/pagepool/pagepool/types"
)

// FileManager is the file-backed implementation of Manager. It keeps
// one os.File for page data and reads/writes through directio's
// page-aligned buffers so the on-disk layout stays O_DIRECT friendly.
type FileManager struct {
	db         *os.File
	fileName   string
	nextPageID types.PageID
	numWrites  uint64
	size       int64
	mutex      deadlock.Mutex
	log        *zap.Logger
}

// NewFileManager opens (or creates) dbFilename and returns a Manager
// backed by it.
func NewFileManager(dbFilename string, log *zap.Logger) (*FileManager, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	fileSize := fileInfo.Size()
	nPages := fileSize / common.PageSize
	nextPageID := types.PageID(0)
	if nPages > 0 {
		nextPageID = types.PageID(nPages)
	}

	return &FileManager{
		db:         file,
		fileName:   dbFilename,
		nextPageID: nextPageID,
		size:       fileSize,
		log:        log,
	}, nil
}

// ShutDown closes the database file.
func (d *FileManager) ShutDown() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if err := d.db.Close(); err != nil {
		d.log.Error("close db file failed", zap.Error(err))
	}
}

// WritePage durably writes pageData as the contents of page id.
func (d *FileManager) WritePage(id types.PageID, pageData []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	offset := int64(id) * int64(common.PageSize)
	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		d.log.Error("seek for write failed", zap.Int32("page_id", int32(id)), zap.Error(err))
		return err
	}

	buf := directio.AlignedBlock(common.PageSize)
	copy(buf, pageData)

	bytesWritten, err := d.db.Write(buf)
	if err != nil {
		return err
	}
	if bytesWritten != common.PageSize {
		return errors.New("disk: short write")
	}

	d.numWrites++
	if offset+int64(bytesWritten) > d.size {
		d.size = offset + int64(bytesWritten)
	}

	return d.db.Sync()
}

// ReadPage fills pageData with the on-disk contents of page id.
func (d *FileManager) ReadPage(id types.PageID, pageData []byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	offset := int64(id) * int64(common.PageSize)
	if offset >= d.size {
		// Allocated but never written: reads as zeros.
		for i := range pageData {
			pageData[i] = 0
		}
		return nil
	}

	if _, err := d.db.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	buf := directio.AlignedBlock(common.PageSize)
	if _, err := io.ReadFull(d.db, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			for i := range pageData {
				pageData[i] = 0
			}
			return nil
		}
		return err
	}
	copy(pageData, buf)
	return nil
}

// AllocatePage reserves and returns a fresh page id.
func (d *FileManager) AllocatePage() types.PageID {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	id := d.nextPageID
	d.nextPageID++
	return id
}

// DeallocatePage releases a page id. The file layer never reclaims the
// backing space for now; a later bitmap-based allocator would.
func (d *FileManager) DeallocatePage(types.PageID) {}

// GetNumWrites returns the number of WritePage calls that have
// completed successfully.
func (d *FileManager) GetNumWrites() uint64 { return d.numWrites }

// Size returns the current size, in bytes, of the backing file.
func (d *FileManager) Size() int64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.size
}

// RemoveFile deletes the backing file. Only valid after ShutDown.
func (d *FileManager) RemoveFile() error {
	return os.Remove(d.fileName)
}
