package projectfs

import (
	"io/fs"
	"time"

	"github.com/Project-Sylos/Studio/internal/types"
)

// nodeDirEntry wraps a types.Node to implement fs.DirEntry
type nodeDirEntry struct {
	node    *types.Node
	modTime time.Time
}

// NewDirEntry creates a new fs.DirEntry from a types.Node
func NewDirEntry(node *types.Node, modTime time.Time) fs.DirEntry {
	return &nodeDirEntry{node: node, modTime: modTime}
}

// Name returns the name of the file (or subdirectory) described by the entry
func (de *nodeDirEntry) Name() string {
	return de.node.Name
}

// IsDir reports whether the entry describes a directory
func (de *nodeDirEntry) IsDir() bool {
	return de.node.IsFolder()
}

// Type returns the type bits for the entry
func (de *nodeDirEntry) Type() fs.FileMode {
	if de.node.IsFolder() {
		return fs.ModeDir
	}
	return 0
}

// Info returns the FileInfo for the file or subdirectory described by the entry
func (de *nodeDirEntry) Info() (fs.FileInfo, error) {
	return NewFileInfo(de.node, de.modTime), nil
}
