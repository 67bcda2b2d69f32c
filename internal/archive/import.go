package archive

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/utils"
)

// Import reconstructs a project tree from zip bytes.
//
// Directory entries are ignored; folders are derived from file paths. The
// root is named after the top-level folder shared by all entries, or
// FallbackRootName. When the rebuilt root holds exactly one child and that
// child is a folder, the wrapper is dropped and the child becomes the root.
// A project whose root deliberately has a single folder child is therefore
// always unwrapped.
func Import(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, ErrEmptyArchive
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Name)
	}
	rootName := rootNameFor(paths)

	changes := make([]types.FileChange, 0, len(files))
	for _, f := range files {
		content, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		changes = append(changes, types.FileChange{
			Path:    utils.JoinPath(rootName, f.Name),
			Content: content,
		})
	}

	built, err := tree.ApplyBatch(types.NewFolder(rootName, rootName), changes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	root := built.Root
	if len(root.Children) == 1 && root.Children[0].IsFolder() {
		inner := root.Children[0]
		root = tree.Rebase(inner, inner.Name)
	}

	return &Result{Root: root, Paths: paths}, nil
}

// rootNameFor returns the top-level folder shared by every path, or
// FallbackRootName
func rootNameFor(paths []string) string {
	shared := ""
	for _, p := range paths {
		segments := utils.SplitPath(p)
		if len(segments) < 2 {
			return FallbackRootName
		}
		if shared == "" {
			shared = segments[0]
			continue
		}
		if segments[0] != shared {
			return FallbackRootName
		}
	}
	if shared == "" {
		return FallbackRootName
	}
	return shared
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorruptArchive, f.Name, err)
	}
	if len(data) > maxEntrySize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrCorruptArchive, f.Name, maxEntrySize)
	}
	return string(data), nil
}
