package tree

import (
	"errors"
	"strings"

	"github.com/Project-Sylos/Studio/internal/types"
)

// ErrSkipFolder can be returned by a WalkFunc to skip a folder's children
var ErrSkipFolder = errors.New("skip folder")

// WalkFunc is called for every node visited by Walk
type WalkFunc func(node *types.Node) error

// Walk visits root and its descendants depth-first, parents before children
func Walk(root *types.Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		if errors.Is(err, ErrSkipFolder) {
			return nil
		}
		return err
	}
	for _, child := range root.Children {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// CountNodes counts all nodes in a tree
func CountNodes(root *types.Node) int {
	count := 0
	_ = Walk(root, func(*types.Node) error {
		count++
		return nil
	})
	return count
}

// FilePaths returns the paths of all files in depth-first order
func FilePaths(root *types.Node) []string {
	var paths []string
	_ = Walk(root, func(n *types.Node) error {
		if n.IsFile() {
			paths = append(paths, n.Path)
		}
		return nil
	})
	return paths
}

// FirstFileWithSuffix returns the id of the first file, depth-first, whose
// name ends with suffix
func FirstFileWithSuffix(root *types.Node, suffix string) (string, bool) {
	if root == nil {
		return "", false
	}
	for _, child := range root.Children {
		if child.IsFile() && strings.HasSuffix(child.Name, suffix) {
			return child.ID, true
		}
		if child.IsFolder() {
			if id, ok := FirstFileWithSuffix(child, suffix); ok {
				return id, true
			}
		}
	}
	return "", false
}
