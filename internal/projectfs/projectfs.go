// Package projectfs exposes a project tree as a read-only io/fs.FS.
// Paths are relative to the project root folder, which is ".".
package projectfs

import (
	"io/fs"
	"strings"
	"time"

	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/utils"
)

// FS is an fs.FS bound to one version of a project tree
type FS struct {
	root    *types.Node
	modTime time.Time
}

// New returns an fs.FS over root. All entries report modTime as their
// modification time.
func New(root *types.Node, modTime time.Time) *FS {
	return &FS{root: root, modTime: modTime}
}

// Root returns the tree this FS is bound to
func (f *FS) Root() *types.Node {
	return f.root
}

// Open implements fs.FS
func (f *FS) Open(name string) (fs.File, error) {
	node, err := f.lookup("open", name)
	if err != nil {
		return nil, err
	}

	if node.IsFolder() {
		entries := make([]fs.DirEntry, 0, len(node.Children))
		for _, child := range node.Children {
			entries = append(entries, NewDirEntry(child, f.modTime))
		}
		return &projectDir{node: node, modTime: f.modTime, entries: entries}, nil
	}

	return &projectFile{
		node:    node,
		modTime: f.modTime,
		reader:  strings.NewReader(node.Content),
	}, nil
}

// ReadFile implements fs.ReadFileFS
func (f *FS) ReadFile(name string) ([]byte, error) {
	node, err := f.lookup("read", name)
	if err != nil {
		return nil, err
	}
	if !node.IsFile() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errIsDir}
	}
	return []byte(node.Content), nil
}

// Stat implements fs.StatFS
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	node, err := f.lookup("stat", name)
	if err != nil {
		return nil, err
	}
	return NewFileInfo(node, f.modTime), nil
}

func (f *FS) lookup(op, name string) (*types.Node, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	if f.root == nil {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	if name == "." {
		return f.root, nil
	}

	node, ok := tree.FindByID(f.root, utils.JoinPath(f.root.Path, name))
	if !ok {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return node, nil
}
