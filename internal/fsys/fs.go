// Package fsys is the narrow Platform/FS abstraction spec.md §2 calls for:
// a filesystem interface thin enough to run the indexer and the workspace
// locator against an in-memory backend in tests, and against the real
// filesystem in production, via github.com/spf13/afero.
package fsys

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/afero"
)

// FS is the filesystem surface the rest of the module depends on. It is
// satisfied by afero.Fs directly, so production code wraps afero.NewOsFs()
// and tests wrap afero.NewMemMapFs() with no adapter layer in between.
type FS = afero.Fs

// NewOS returns the real, on-disk filesystem.
func NewOS() FS { return afero.NewOsFs() }

// NewMem returns an in-memory filesystem, for tests.
func NewMem() FS { return afero.NewMemMapFs() }

// IsWindows reports whether the server is running on Windows, where path
// separators and case-sensitivity differ. The workspace locator does not
// call it; it relies on path/filepath's own platform handling.
func IsWindows() bool { return runtime.GOOS == "windows" }

// ToSlash normalizes a platform path to forward slashes, for building URIs.
func ToSlash(p string) string { return filepath.ToSlash(p) }

// Entry describes one file encountered while walking a directory tree.
type Entry struct {
	Path    string // full path, platform separators
	Name    string // base name
	ModTime time.Time
	IsDir   bool
}

// WalkFiles recursively enumerates regular files under root, depth-first,
// and calls fn for each one. Directories are not passed to fn. Symlinks are
// never followed (spec.md §4.6): a Lstater backend reports them and they
// are skipped entirely, whether they point at a file or a directory.
func WalkFiles(fs FS, root string, fn func(Entry) error) error {
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return err
	}
	for _, info := range entries {
		full := filepath.Join(root, info.Name())
		if isSymlink(fs, full, info) {
			continue
		}
		if info.IsDir() {
			if err := WalkFiles(fs, full, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(Entry{Path: full, Name: info.Name(), ModTime: info.ModTime(), IsDir: false}); err != nil {
			return err
		}
	}
	return nil
}

func isSymlink(fs FS, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		return true
	}
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return false
	}
	lst, _, err := lstater.LstatIfPossible(path)
	if err != nil || lst == nil {
		return false
	}
	return lst.Mode()&os.ModeSymlink != 0
}

// ModTimeOrZero returns the mtime of path, or the zero time if it does not
// exist or cannot be stat'd.
func ModTimeOrZero(fs FS, path string) time.Time {
	info, err := fs.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Exists reports whether path exists on fs.
func Exists(fs FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
