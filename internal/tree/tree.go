// Package tree implements the pure transformations over a project tree:
// lookup by id, file content updates, file insertion and batched updates.
//
// None of the functions mutate their input. Edits return a new root that
// shares every subtree off the edited path with the previous version.
package tree

import (
	"errors"
	"fmt"

	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/utils"
)

var (
	// ErrNotFound is returned when no node carries the requested id
	ErrNotFound = errors.New("node not found")
	// ErrInvalidPath is returned for empty or malformed paths
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotAFile is returned when a content edit targets a folder
	ErrNotAFile = errors.New("node is not a file")
	// ErrPathConflict is returned when a path runs through an existing file
	ErrPathConflict = errors.New("path conflicts with an existing file")
	// ErrExists is returned when inserting at a path that is already taken
	ErrExists = errors.New("node already exists")
)

// FindByID returns the first node, file or folder, whose id equals id.
// The search is depth-first in children order.
func FindByID(root *types.Node, id string) (*types.Node, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID == id {
		return root, true
	}
	for _, child := range root.Children {
		if found, ok := FindByID(child, id); ok {
			return found, true
		}
	}
	return nil, false
}

// FindFile is FindByID narrowed to files
func FindFile(root *types.Node, id string) (*types.Node, bool) {
	node, ok := FindByID(root, id)
	if !ok || !node.IsFile() {
		return nil, false
	}
	return node, true
}

// UpdateFileContent returns a new tree in which the file with the given id
// has its content replaced. Every folder between the root and the file is
// rebuilt; all other nodes are shared with root.
//
// A missing id yields ErrNotFound together with the unchanged root.
func UpdateFileContent(root *types.Node, id, content string) (*types.Node, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated, found, err := update(root, id, content)
	if err != nil {
		return root, err
	}
	if !found {
		return root, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return updated, nil
}

func update(node *types.Node, id, content string) (*types.Node, bool, error) {
	if node.ID == id {
		if !node.IsFile() {
			return nil, false, fmt.Errorf("%w: %s", ErrNotAFile, id)
		}
		next := *node
		next.Content = content
		return &next, true, nil
	}

	for i, child := range node.Children {
		updated, found, err := update(child, id, content)
		if err != nil {
			return nil, false, err
		}
		if found {
			return withChild(node, i, updated), true, nil
		}
	}
	return node, false, nil
}

// InsertFile returns a new tree with a file added at fullPath. Missing
// intermediate folders are created (id = path so far, empty children) and
// the file is appended as the last child of the deepest folder.
//
// fullPath is resolved with CanonicalPath. Inserting where a node already
// exists fails with ErrExists; walking through a file fails with
// ErrPathConflict.
func InsertFile(root *types.Node, fullPath, content string) (*types.Node, error) {
	if !root.IsFolder() {
		return nil, fmt.Errorf("%w: root must be a folder", ErrInvalidPath)
	}

	canonical, err := CanonicalPath(root, fullPath)
	if err != nil {
		return nil, err
	}

	segments := utils.SplitPath(canonical)
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: %q names the project root", ErrInvalidPath, fullPath)
	}

	return insertInto(root, segments[1:], content)
}

func insertInto(folder *types.Node, rest []string, content string) (*types.Node, error) {
	name := rest[0]
	childPath := utils.JoinPath(folder.Path, name)
	idx := childIndex(folder, name)

	if len(rest) == 1 {
		if idx >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrExists, childPath)
		}
		return appendChild(folder, types.NewFile(childPath, name, content)), nil
	}

	if idx < 0 {
		sub, err := insertInto(types.NewFolder(childPath, name), rest[1:], content)
		if err != nil {
			return nil, err
		}
		return appendChild(folder, sub), nil
	}

	child := folder.Children[idx]
	if !child.IsFolder() {
		return nil, fmt.Errorf("%w: %s", ErrPathConflict, childPath)
	}
	sub, err := insertInto(child, rest[1:], content)
	if err != nil {
		return nil, err
	}
	return withChild(folder, idx, sub), nil
}

// CanonicalPath cleans fullPath and roots it at the project root. Empty and
// "." segments are dropped; ".." is rejected. A path that does not start with
// the root folder name is taken as relative to the root.
func CanonicalPath(root *types.Node, fullPath string) (string, error) {
	segments := utils.SplitPath(fullPath)
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, fullPath)
	}
	for _, s := range segments {
		if s == ".." {
			return "", fmt.Errorf("%w: %q escapes the project", ErrInvalidPath, fullPath)
		}
	}

	if root != nil && segments[0] != root.Name {
		segments = append([]string{root.Name}, segments...)
	}
	return utils.JoinPath(segments...), nil
}

// Rebase returns a copy of node whose id and path are path, with every
// descendant's id and path recomputed below it.
func Rebase(node *types.Node, path string) *types.Node {
	next := *node
	next.ID = path
	next.Path = path
	if node.IsFolder() {
		next.Children = make([]*types.Node, len(node.Children))
		for i, child := range node.Children {
			next.Children[i] = Rebase(child, utils.JoinPath(path, child.Name))
		}
	}
	return &next
}

func childIndex(folder *types.Node, name string) int {
	for i, child := range folder.Children {
		if child.Name == name {
			return i
		}
	}
	return -1
}

// withChild copies folder with children[i] replaced
func withChild(folder *types.Node, i int, child *types.Node) *types.Node {
	next := *folder
	next.Children = make([]*types.Node, len(folder.Children))
	copy(next.Children, folder.Children)
	next.Children[i] = child
	return &next
}

// appendChild copies folder with child added last
func appendChild(folder *types.Node, child *types.Node) *types.Node {
	next := *folder
	next.Children = make([]*types.Node, len(folder.Children), len(folder.Children)+1)
	copy(next.Children, folder.Children)
	next.Children = append(next.Children, child)
	return &next
}
