package transcript

import (
	"sync"

	"github.com/Project-Sylos/Studio/internal/types"
)

// Memory keeps transcripts in process memory
type Memory struct {
	mu          sync.RWMutex
	transcripts map[Key][]types.ChatMessage
}

// NewMemory creates an empty memory store
func NewMemory() *Memory {
	return &Memory{transcripts: make(map[Key][]types.ChatMessage)}
}

func (m *Memory) Load(key Key) ([]types.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.transcripts[key]), nil
}

func (m *Memory) Save(key Key, messages []types.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[key] = clone(messages)
	return nil
}

func (m *Memory) Clear(key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transcripts, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
