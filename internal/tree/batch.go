package tree

import (
	"fmt"

	"github.com/Project-Sylos/Studio/internal/types"
)

// BatchResult is the outcome of ApplyBatch
type BatchResult struct {
	Root *types.Node
	// ActiveFileID is the canonical path of the last change, empty for an empty batch
	ActiveFileID string
	Created      []string
	Updated      []string
}

// ApplyBatch applies changes in order as one logical operation. Each change
// updates the file at its path or inserts it when missing, and the result of
// one step feeds the next, so duplicate paths resolve last-write-wins.
//
// On any failure the whole batch is rejected and root is left as it was.
func ApplyBatch(root *types.Node, changes []types.FileChange) (*BatchResult, error) {
	result := &BatchResult{Root: root}
	if len(changes) == 0 {
		return result, nil
	}

	created := make(map[string]bool)
	current := root
	for i, change := range changes {
		path, err := CanonicalPath(current, change.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to apply change %d (%s): %w", i, change.Path, err)
		}

		existing, ok := FindByID(current, path)
		switch {
		case ok && existing.IsFile():
			current, err = UpdateFileContent(current, path, change.Content)
			if err == nil && !created[path] {
				result.Updated = appendOnce(result.Updated, path)
			}
		case ok:
			err = fmt.Errorf("%w: %s is a folder", ErrPathConflict, path)
		default:
			current, err = InsertFile(current, path, change.Content)
			if err == nil {
				created[path] = true
				result.Created = append(result.Created, path)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply change %d (%s): %w", i, change.Path, err)
		}

		result.ActiveFileID = path
	}

	result.Root = current
	return result, nil
}

func appendOnce(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
