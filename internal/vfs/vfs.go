// Package vfs defines the file I/O boundary the storage core consumes
// but does not implement: narrow, capability-shaped contracts for a
// writable file, a readable file, and a file manager, plus one
// OS-backed production implementation and one in-memory implementation
// for tests.
//
// Per spec.md §4.8/§9, these contracts intentionally expose boolean
// success rather than Go's usual (n int, err error) shape: the core
// treats any I/O failure as fatal to the containing operation and
// does not attempt to distinguish failure causes at this boundary.
// sync must provide durability to the storage device — strictly
// stronger than flush, which only moves bytes out of user-space
// buffers.
package vfs

// WritableFile is an open file a caller may append bytes to.
type WritableFile interface {
	// Write appends data to the file, reporting success.
	Write(data []byte) bool
	// Flush moves any user-space buffers to the OS; does not imply durability.
	Flush() bool
	// Sync requests durable persistence to the storage device.
	Sync() bool
	// Close releases the underlying handle.
	Close() bool
}

// ReadableFile is an open file a caller may read sequentially.
type ReadableFile interface {
	// Read reads up to len(p) bytes into p, returning the count read.
	// 0 means EOF or error — the two are not distinguished at this
	// boundary, by design (see spec.md §9's documented open question).
	Read(p []byte) int
	// Close releases the underlying handle.
	Close() bool
}

// FileManager creates, opens, and manages files by path.
type FileManager interface {
	// NewWritableFile creates (truncating if it exists) a writable file at path.
	NewWritableFile(path string) (WritableFile, bool)
	// NewReadableFile opens an existing file at path for reading.
	NewReadableFile(path string) (ReadableFile, bool)
	// FileExists reports whether path exists.
	FileExists(path string) bool
	// DeleteFile removes path. Idempotent: deleting a non-existent file succeeds.
	DeleteFile(path string) bool
	// RenameFile renames src to target, atomically where the platform supports it.
	RenameFile(src, target string) bool
}
