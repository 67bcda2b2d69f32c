// Package transcript persists chat transcripts per session and storage key.
package transcript

import (
	"github.com/Project-Sylos/Studio/internal/types"
)

// Key identifies one transcript. StorageKey separates the studio variants.
type Key struct {
	SessionID  string
	StorageKey string
}

// Store loads and saves transcripts. Loading a key that was never saved
// returns an empty transcript and no error.
type Store interface {
	Load(key Key) ([]types.ChatMessage, error)
	Save(key Key, messages []types.ChatMessage) error
	Clear(key Key) error
	Close() error
}

// Open returns a DuckDB store for a non-empty path and a memory store otherwise
func Open(dbPath string) (Store, error) {
	if dbPath == "" {
		return NewMemory(), nil
	}
	return NewDuckDB(dbPath)
}

func clone(messages []types.ChatMessage) []types.ChatMessage {
	if messages == nil {
		return nil
	}
	out := make([]types.ChatMessage, len(messages))
	copy(out, messages)
	return out
}
