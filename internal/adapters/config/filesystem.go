package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of the disk the loader needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	// Glob returns the paths matching pattern, like filepath.Glob.
	Glob(pattern string) ([]string, error)
}

// OSFS reads from the real filesystem.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() OSFS {
	return OSFS{}
}

// Stat returns file info for the given path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // paths come from workspace discovery
}

// Glob returns matches for the given pattern.
func (OSFS) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// MountedFS serves an fs.FS, such as fstest.MapFS, as if it were mounted at Root.
// Absolute paths outside Root are passed through unchanged and fail to resolve.
type MountedFS struct {
	FS   fs.FS
	Root string
}

// NewMountedFS mounts fsys at root.
func NewMountedFS(root string, fsys fs.FS) *MountedFS {
	return &MountedFS{FS: fsys, Root: filepath.Clean(root)}
}

// Stat returns file info for the given path.
func (m *MountedFS) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.rel(path))
}

// ReadFile reads the entire file at path.
func (m *MountedFS) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.rel(path))
}

// Glob returns matches for the given pattern as absolute paths below Root.
func (m *MountedFS) Glob(pattern string) ([]string, error) {
	matches, err := fs.Glob(m.FS, filepath.ToSlash(m.rel(pattern)))
	if err != nil {
		return nil, err
	}
	for i, match := range matches {
		matches[i] = filepath.Join(m.Root, filepath.FromSlash(match))
	}
	return matches, nil
}

func (m *MountedFS) rel(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	if path == m.Root {
		return "."
	}
	if m.Root == string(filepath.Separator) {
		return strings.TrimPrefix(path, m.Root)
	}
	if rest, ok := strings.CutPrefix(path, m.Root+string(filepath.Separator)); ok {
		return rest
	}
	return path
}
