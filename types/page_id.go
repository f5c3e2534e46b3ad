// Package types holds the small identifier types shared across the
// buffer pool: page ids (disk-level) and frame ids (in-memory slots).
package types

// PageID identifies a page on disk. It is opaque to the buffer pool:
// the pool never interprets it beyond equality and the InvalidPageID
// sentinel.
type PageID int32

// InvalidPageID is the sentinel used by a frame holding no page.
const InvalidPageID PageID = -1

// FrameID identifies a slot in the buffer pool's frame array, in
// [0, pool_size). Assigned once at construction and never reused for a
// different slot.
type FrameID int32
