package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("studio %s failed: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

// TestExportThenInspect tests the offline archive commands
func TestExportThenInspect(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "react.zip")

	out := run(t, "export", "--variant", "react", "--out", zipPath)
	if !strings.Contains(out, "Wrote "+zipPath) {
		t.Errorf("Unexpected export output: %s", out)
	}
	if info, err := os.Stat(zipPath); err != nil || info.Size() == 0 {
		t.Fatalf("Expected archive at %s: %v", zipPath, err)
	}

	out = run(t, "inspect", zipPath)
	if !strings.HasPrefix(out, "MyReactProject/\n") {
		t.Errorf("Expected tree to start with the project root, got:\n%s", out)
	}
	if !strings.Contains(out, "    App.js (") {
		t.Errorf("Expected App.js under src, got:\n%s", out)
	}
	if !strings.Contains(out, "download name MyReactProject.zip") {
		t.Errorf("Expected download name, got:\n%s", out)
	}
}

// TestVariants tests the variants command
func TestVariants(t *testing.T) {
	out := run(t, "variants")
	if !strings.Contains(out, "portlet  my-react-portlet") || !strings.Contains(out, "react    MyReactProject") {
		t.Errorf("Unexpected variants output:\n%s", out)
	}
}
