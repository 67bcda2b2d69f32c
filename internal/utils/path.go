package utils

import (
	"strings"
)

// JoinPath joins path parts using forward slashes regardless of host OS.
// It strips leading/trailing slashes from each component and drops empty ones.
// Project paths carry no leading slash; the root folder name is the first segment:
//   - Root path = "{root}"
//   - Child of root = "{root}/{child}"
//   - Children of that = "{root}/{child}/{grandchild}" etc.
func JoinPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, "/")
}

// SplitPath splits a slash-delimited path into its segments, discarding
// empty segments and "." artifacts ("a//b/./c/" -> [a b c]).
func SplitPath(p string) []string {
	raw := strings.Split(strings.ReplaceAll(p, "\\", "/"), "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// BaseName returns the last segment of a slash-delimited path
func BaseName(p string) string {
	segments := SplitPath(p)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
