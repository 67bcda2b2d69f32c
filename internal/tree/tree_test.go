package tree

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Project-Sylos/Studio/internal/types"
)

// sampleTree builds:
//
//	root/
//	  src/
//	    App.js
//	    components/
//	      Header.js
//	  package.json
func sampleTree() *types.Node {
	return types.NewFolder("root", "root",
		types.NewFolder("root/src", "src",
			types.NewFile("root/src/App.js", "App.js", "app"),
			types.NewFolder("root/src/components", "components",
				types.NewFile("root/src/components/Header.js", "Header.js", "header"),
			),
		),
		types.NewFile("root/package.json", "package.json", "{}"),
	)
}

// TestFindByID tests lookups of files and folders
func TestFindByID(t *testing.T) {
	root := sampleTree()

	tests := []struct {
		name     string
		id       string
		found    bool
		nodeType string
	}{
		{name: "root folder", id: "root", found: true, nodeType: types.NodeTypeFolder},
		{name: "nested folder", id: "root/src/components", found: true, nodeType: types.NodeTypeFolder},
		{name: "nested file", id: "root/src/components/Header.js", found: true, nodeType: types.NodeTypeFile},
		{name: "top level file", id: "root/package.json", found: true, nodeType: types.NodeTypeFile},
		{name: "missing", id: "root/src/Missing.js", found: false},
		{name: "name is not an id", id: "App.js", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := FindByID(root, tt.id)
			if ok != tt.found {
				t.Fatalf("Expected found=%t, got %t", tt.found, ok)
			}
			if !ok {
				return
			}
			if node.ID != tt.id {
				t.Errorf("Expected id %s, got %s", tt.id, node.ID)
			}
			if node.Type != tt.nodeType {
				t.Errorf("Expected type %s, got %s", tt.nodeType, node.Type)
			}
		})
	}
}

// TestFindFile tests that folder ids are not returned as files
func TestFindFile(t *testing.T) {
	root := sampleTree()

	if _, ok := FindFile(root, "root/src"); ok {
		t.Errorf("Expected folder id to be rejected by FindFile")
	}
	file, ok := FindFile(root, "root/src/App.js")
	if !ok {
		t.Fatalf("Expected file to be found")
	}
	if file.Content != "app" {
		t.Errorf("Expected content 'app', got %q", file.Content)
	}
}

// TestUpdateFileContent tests the functional content update
func TestUpdateFileContent(t *testing.T) {
	t.Run("updated content is visible", func(t *testing.T) {
		root := sampleTree()
		updated, err := UpdateFileContent(root, "root/src/components/Header.js", "new header")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		file, ok := FindFile(updated, "root/src/components/Header.js")
		if !ok || file.Content != "new header" {
			t.Errorf("Expected updated content, got %+v", file)
		}
	})

	t.Run("input tree is not mutated", func(t *testing.T) {
		root := sampleTree()
		before := sampleTree()
		if _, err := UpdateFileContent(root, "root/src/App.js", "changed"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !reflect.DeepEqual(root, before) {
			t.Errorf("Expected original tree to be unchanged")
		}
	})

	t.Run("only the edited path is rebuilt", func(t *testing.T) {
		root := sampleTree()
		updated, err := UpdateFileContent(root, "root/src/components/Header.js", "x")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if updated == root {
			t.Errorf("Expected a new root")
		}
		if updated.Children[0] == root.Children[0] {
			t.Errorf("Expected src folder to be rebuilt")
		}
		if updated.Children[1] != root.Children[1] {
			t.Errorf("Expected package.json to be shared")
		}
		if updated.Children[0].Children[0] != root.Children[0].Children[0] {
			t.Errorf("Expected App.js to be shared")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		root := sampleTree()
		updated, err := UpdateFileContent(root, "root/nope.js", "x")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
		if updated != root {
			t.Errorf("Expected the unchanged root back")
		}
	})

	t.Run("folder id", func(t *testing.T) {
		root := sampleTree()
		if _, err := UpdateFileContent(root, "root/src", "x"); !errors.Is(err, ErrNotAFile) {
			t.Errorf("Expected ErrNotAFile, got %v", err)
		}
	})
}

// TestInsertFile tests insertion with intermediate folder creation
func TestInsertFile(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectError error
		wantID      string
		wantFolders []string
	}{
		{
			name:        "creates intermediate folders",
			path:        "root/x/y/z.txt",
			wantID:      "root/x/y/z.txt",
			wantFolders: []string{"root/x", "root/x/y"},
		},
		{
			name:   "into existing folder",
			path:   "root/src/components/Footer.js",
			wantID: "root/src/components/Footer.js",
		},
		{
			name:   "relative path is rooted",
			path:   "src/index.js",
			wantID: "root/src/index.js",
		},
		{
			name:   "separator artifacts are discarded",
			path:   "/root//src/./util.js/",
			wantID: "root/src/util.js",
		},
		{name: "empty path", path: "", expectError: ErrInvalidPath},
		{name: "only separators", path: "///", expectError: ErrInvalidPath},
		{name: "parent segments", path: "root/../etc/passwd", expectError: ErrInvalidPath},
		{name: "root itself", path: "root", expectError: ErrInvalidPath},
		{name: "existing file", path: "root/src/App.js", expectError: ErrExists},
		{name: "through a file", path: "root/package.json/inner.txt", expectError: ErrPathConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := sampleTree()
			updated, err := InsertFile(root, tt.path, "hi")
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("Expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			file, ok := FindFile(updated, tt.wantID)
			if !ok {
				t.Fatalf("Expected file %s to exist", tt.wantID)
			}
			if file.Content != "hi" || file.Path != tt.wantID {
				t.Errorf("Unexpected file node: %+v", file)
			}
			for _, folderID := range tt.wantFolders {
				folder, ok := FindByID(updated, folderID)
				if !ok || !folder.IsFolder() {
					t.Errorf("Expected folder %s to exist", folderID)
				}
			}
			if _, ok := FindByID(root, tt.wantID); ok {
				t.Errorf("Expected original tree to be unchanged")
			}
		})
	}
}

// TestInsertFileAppendsLast tests that new files become the last child
func TestInsertFileAppendsLast(t *testing.T) {
	updated, err := InsertFile(sampleTree(), "root/src/zzz.js", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	src := updated.Children[0]
	last := src.Children[len(src.Children)-1]
	if last.ID != "root/src/zzz.js" {
		t.Errorf("Expected new file to be last child, got %s", last.ID)
	}
	if src.Children[0].ID != "root/src/App.js" {
		t.Errorf("Expected sibling order to be preserved")
	}
}

// TestRebase tests recomputation of ids below a new path
func TestRebase(t *testing.T) {
	rebased := Rebase(sampleTree().Children[0], "proj")

	if rebased.ID != "proj" || rebased.Path != "proj" {
		t.Errorf("Expected rebased root id proj, got %s", rebased.ID)
	}
	if _, ok := FindFile(rebased, "proj/components/Header.js"); !ok {
		t.Errorf("Expected descendants to be rebased")
	}
}

// TestWalkHelpers tests counting and file helpers
func TestWalkHelpers(t *testing.T) {
	root := sampleTree()

	if got := CountNodes(root); got != 6 {
		t.Errorf("Expected 6 nodes, got %d", got)
	}

	want := []string{"root/src/App.js", "root/src/components/Header.js", "root/package.json"}
	if got := FilePaths(root); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if id, ok := FirstFileWithSuffix(root, ".js"); !ok || id != "root/src/App.js" {
		t.Errorf("Expected first js file root/src/App.js, got %q", id)
	}
	if _, ok := FirstFileWithSuffix(root, ".java"); ok {
		t.Errorf("Expected no java file")
	}
}

// TestComputeChecksum tests checksum determinism
func TestComputeChecksum(t *testing.T) {
	a := ComputeChecksum("hello")
	if a != ComputeChecksum("hello") {
		t.Errorf("Expected checksum to be deterministic")
	}
	if a == ComputeChecksum("hello!") {
		t.Errorf("Expected different content to yield a different checksum")
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a))
	}
}
