package projectfs

import (
	"io/fs"
	"time"

	"github.com/Project-Sylos/Studio/internal/types"
)

// nodeFileInfo wraps a types.Node to implement fs.FileInfo
type nodeFileInfo struct {
	node    *types.Node
	modTime time.Time
}

// NewFileInfo creates a new fs.FileInfo from a types.Node
func NewFileInfo(node *types.Node, modTime time.Time) fs.FileInfo {
	return &nodeFileInfo{node: node, modTime: modTime}
}

// Name returns the base name of the file
func (fi *nodeFileInfo) Name() string {
	return fi.node.Name
}

// Size returns the content length in bytes for files; 0 for folders
func (fi *nodeFileInfo) Size() int64 {
	if fi.node.IsFolder() {
		return 0
	}
	return int64(len(fi.node.Content))
}

// Mode returns the file mode bits
func (fi *nodeFileInfo) Mode() fs.FileMode {
	if fi.node.IsFolder() {
		return fs.ModeDir | 0755
	}
	return 0644
}

// ModTime returns the modification time
func (fi *nodeFileInfo) ModTime() time.Time {
	return fi.modTime
}

// IsDir reports whether the file describes a directory
func (fi *nodeFileInfo) IsDir() bool {
	return fi.node.IsFolder()
}

// Sys returns the underlying node
func (fi *nodeFileInfo) Sys() any {
	return fi.node
}
