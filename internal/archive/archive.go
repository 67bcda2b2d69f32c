// Package archive converts project trees to and from zip archives.
package archive

import (
	"errors"

	"github.com/Project-Sylos/Studio/internal/types"
)

var (
	// ErrEmptyArchive is returned when an archive holds no file entries
	ErrEmptyArchive = errors.New("archive contains no files")
	// ErrCorruptArchive is returned when an archive cannot be decoded
	ErrCorruptArchive = errors.New("archive could not be decoded")
)

// FallbackRootName names the project when entries do not share a top-level folder
const FallbackRootName = "unzipped-project"

// maxEntrySize bounds the decompressed size of a single entry
const maxEntrySize = 16 << 20

// FileName returns the download name for a project
func FileName(root *types.Node) string {
	return root.Name + ".zip"
}

// Result is a project reconstructed from an archive
type Result struct {
	Root *types.Node
	// Paths lists the archive's file entries in archive order
	Paths []string
}
