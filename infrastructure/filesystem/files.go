package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"projection-video-3d/application/projection"
)

// Files implements projection.FileSystem using the os package
type Files struct{}

// NewFiles creates a new filesystem adapter
func NewFiles() *Files {
	return &Files{}
}

// Exists returns true if the file exists
func (f *Files) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes path, ignoring a file that is already gone
func (f *Files) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// EnsureParentDir creates the directory that will contain path
func (f *Files) EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Move renames src to dst, replacing dst. Falls back to copy and delete
// when the two paths are on different devices.
func (f *Files) Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Ensure Files implements projection.FileSystem
var _ projection.FileSystem = (*Files)(nil)
