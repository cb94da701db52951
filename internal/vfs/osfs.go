package vfs

import (
	"os"

	"github.com/dreamvrutik/VrootKV/internal/logging"
)

// logger narrates OS-level file failures; defaults to silent.
var logger logging.Logger = logging.NopLogger{}

// SetLogger installs l as the logger used for file manager diagnostics.
// Passing nil restores the silent default.
func SetLogger(l logging.Logger) {
	logger = logging.OrDefault(l)
}

// osFileManager is the production FileManager backed by the host OS.
type osFileManager struct{}

// NewOSFileManager returns the default OS-backed file manager.
func NewOSFileManager() FileManager {
	return &osFileManager{}
}

func (m *osFileManager) NewWritableFile(path string) (WritableFile, bool) {
	f, err := os.Create(path)
	if err != nil {
		logger.Errorf("%s create %s failed: %v", logging.NamespaceVFS, path, err)
		return nil, false
	}
	return &osWritableFile{f: f}, true
}

func (m *osFileManager) NewReadableFile(path string) (ReadableFile, bool) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warnf("%s open %s failed: %v", logging.NamespaceVFS, path, err)
		return nil, false
	}
	return &osReadableFile{f: f}, true
}

func (m *osFileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (m *osFileManager) DeleteFile(path string) bool {
	err := os.Remove(path)
	return err == nil || os.IsNotExist(err)
}

func (m *osFileManager) RenameFile(src, target string) bool {
	if err := os.Rename(src, target); err != nil {
		logger.Errorf("%s rename %s -> %s failed: %v", logging.NamespaceVFS, src, target, err)
		return false
	}
	return true
}

type osWritableFile struct {
	f *os.File
}

func (w *osWritableFile) Write(data []byte) bool {
	n, err := w.f.Write(data)
	return err == nil && n == len(data)
}

func (w *osWritableFile) Flush() bool {
	// os.File has no user-space buffer of its own to flush; writes go
	// straight to the OS, so this is intentionally a no-op that always
	// succeeds. Use Sync for durability.
	return true
}

func (w *osWritableFile) Sync() bool {
	return w.f.Sync() == nil
}

func (w *osWritableFile) Close() bool {
	return w.f.Close() == nil
}

type osReadableFile struct {
	f *os.File
}

func (r *osReadableFile) Read(p []byte) int {
	n, err := r.f.Read(p)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (r *osReadableFile) Close() bool {
	return r.f.Close() == nil
}
