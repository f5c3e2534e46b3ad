// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

// PageSize is the size, in bytes, of a single page in the buffer pool
// and on disk.
const PageSize = 4096

// EnableOnMemStorage selects the in-memory (memfile-backed) Disk Manager
// over the file-backed one when a caller doesn't ask for one explicitly.
const EnableOnMemStorage = false

// Config holds the knobs a BufferPoolManager is constructed with. It
// replaces the teacher's compile-time BufferPoolMaxFrameNumForTest
// constant with a runtime value, since NewBufferPoolManager already
// took pool size as a parameter.
type Config struct {
	// PoolSize is the number of frames held in memory.
	PoolSize int

	// LogPath, when non-empty, routes diagnostic logging (page loads,
	// cache-out, failed disk I/O) to a rotated file via lumberjack
	// instead of stderr. Empty means stderr.
	LogPath string
}

// DefaultConfig returns sane defaults for a standalone pool.
func DefaultConfig(poolSize int) Config {
	return Config{PoolSize: poolSize}
}
