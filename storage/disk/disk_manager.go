// this code is derived from https://github.com/brunocalza/go-bustub and
// https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

// Package disk is the external collaborator the buffer pool reads from
// and writes to. It is deliberately minimal: no WAL, no recovery — the
// core never invokes anything beyond the operations below.
package disk

import (
	"github.com/pagepool/pagepool/types"
)

// Manager takes care of allocation and deallocation of pages and the
// reading/writing of their contents. All I/O here is synchronous and
// assumed infallible at the buffer pool layer; errors returned are for
// the disk manager's own diagnostics, not part of the pool's public
// contract.
type Manager interface {
	ReadPage(id types.PageID, buf []byte) error
	WritePage(id types.PageID, buf []byte) error
	AllocatePage() types.PageID
	DeallocatePage(id types.PageID)
	GetNumWrites() uint64
	Size() int64
	ShutDown()
}
