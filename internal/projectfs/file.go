package projectfs

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/Project-Sylos/Studio/internal/types"
)

var errIsDir = errors.New("is a directory")

// projectFile implements fs.File for regular files
type projectFile struct {
	node    *types.Node
	modTime time.Time
	reader  *strings.Reader
}

// projectDir implements fs.ReadDirFile for folders
type projectDir struct {
	node    *types.Node
	modTime time.Time
	entries []fs.DirEntry
	offset  int
}

// Stat returns the FileInfo structure describing file
func (f *projectFile) Stat() (fs.FileInfo, error) {
	return NewFileInfo(f.node, f.modTime), nil
}

// Read reads up to len(b) bytes from the file content
func (f *projectFile) Read(b []byte) (int, error) {
	return f.reader.Read(b)
}

// Close closes the file
func (f *projectFile) Close() error {
	return nil
}

// Stat returns the FileInfo structure describing dir
func (d *projectDir) Stat() (fs.FileInfo, error) {
	return NewFileInfo(d.node, d.modTime), nil
}

// Read always fails for directories
func (d *projectDir) Read(b []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.node.Path, Err: errIsDir}
}

// ReadDir reads the contents of the directory and returns
// a slice of up to n DirEntry values in children order
func (d *projectDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := d.entries[d.offset:]

	if n <= 0 {
		result := make([]fs.DirEntry, len(remaining))
		copy(result, remaining)
		d.offset = len(d.entries)
		return result, nil
	}

	if len(remaining) == 0 {
		return nil, io.EOF
	}

	count := n
	if count > len(remaining) {
		count = len(remaining)
	}

	result := make([]fs.DirEntry, count)
	copy(result, remaining[:count])
	d.offset += count
	return result, nil
}

// Close closes the directory
func (d *projectDir) Close() error {
	return nil
}
