package tree

import (
	"crypto/sha256"
	"fmt"
)

// ComputeChecksum computes a SHA256 checksum for file content
func ComputeChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}
