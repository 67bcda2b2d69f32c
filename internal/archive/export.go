package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/Project-Sylos/Studio/internal/projectfs"
	"github.com/Project-Sylos/Studio/internal/types"
)

// Export writes root as a zip archive to w. The root folder's name becomes the
// archive's top-level directory; every folder gets a directory entry and every
// file an entry holding its content.
func Export(w io.Writer, root *types.Node, modTime time.Time) error {
	if !root.IsFolder() {
		return fmt.Errorf("failed to export project: root must be a folder")
	}

	zw := zip.NewWriter(w)
	fsys := projectfs.New(root, modTime)

	if err := writeDir(zw, fsys, ".", root.Name, modTime); err != nil {
		zw.Close()
		return fmt.Errorf("failed to export project %s: %w", root.Name, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// ExportBytes is Export into memory
func ExportBytes(root *types.Node, modTime time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, root, modTime); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeDir writes the folder at name (relative to fsys) under archiveDir,
// keeping the folder's own children order.
func writeDir(zw *zip.Writer, fsys fs.FS, name, archiveDir string, modTime time.Time) error {
	if _, err := zw.CreateHeader(&zip.FileHeader{
		Name:     archiveDir + "/",
		Method:   zip.Store,
		Modified: modTime,
	}); err != nil {
		return fmt.Errorf("failed to create directory entry %s: %w", archiveDir, err)
	}

	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	dir, ok := f.(fs.ReadDirFile)
	if !ok {
		return fmt.Errorf("%s is not a directory", name)
	}
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", name, err)
	}

	for _, entry := range entries {
		childName := path.Join(name, entry.Name())
		childArchive := archiveDir + "/" + entry.Name()

		if entry.IsDir() {
			if err := writeDir(zw, fsys, childName, childArchive, modTime); err != nil {
				return err
			}
			continue
		}
		if err := writeFile(zw, fsys, childName, childArchive, modTime); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(zw *zip.Writer, fsys fs.FS, name, archiveName string, modTime time.Time) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := zw.CreateHeader(&zip.FileHeader{
		Name:     archiveName,
		Method:   zip.Deflate,
		Modified: modTime,
	})
	if err != nil {
		return fmt.Errorf("failed to create file entry %s: %w", archiveName, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write file entry %s: %w", archiveName, err)
	}
	return nil
}
