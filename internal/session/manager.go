package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Project-Sylos/Studio/internal/assistant"
	"github.com/Project-Sylos/Studio/internal/metrics"
	"github.com/Project-Sylos/Studio/internal/scaffold"
	"github.com/Project-Sylos/Studio/internal/transcript"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options are the collaborators shared by every session
type Options struct {
	Assistant      assistant.Assistant
	Store          transcript.Store
	Logger         *zap.Logger
	DefaultVariant string
	MaxUploadBytes int64
}

// Summary describes an open session
type Summary struct {
	ID        string    `json:"id"`
	Variant   string    `json:"variant"`
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Manager owns the open sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
}

// NewManager creates a session manager. Missing collaborators default to
// the static assistant and an in-memory transcript store.
func NewManager(opts Options) *Manager {
	if opts.Assistant == nil {
		opts.Assistant = assistant.NewStatic()
	}
	if opts.Store == nil {
		opts.Store = transcript.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultVariant == "" {
		opts.DefaultVariant = scaffold.VariantPortlet
	}
	return &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Create opens a new session of the given variant ("" for the default)
func (m *Manager) Create(variantName string) (*Session, error) {
	return m.Open(uuid.NewString(), variantName)
}

// Open returns the session with the given id, creating it when it is not
// open yet. A reopened id picks up its stored transcript.
func (m *Manager) Open(id, variantName string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", id, err)
	}
	if variantName == "" {
		variantName = m.opts.DefaultVariant
	}
	variant, err := scaffold.Lookup(variantName)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		if s.variant.Name != variant.Name {
			return nil, fmt.Errorf("session %s is a %s session", id, s.variant.Name)
		}
		return s, nil
	}

	s, err := newSession(id, variant, m.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	m.sessions[id] = s
	metrics.SetSessionsActive(len(m.sessions))

	m.opts.Logger.Info("session opened", zap.String("session_id", id), zap.String("variant", variant.Name))
	return s, nil
}

// Get returns an open session
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close drops a session from memory. Its transcript stays in the store.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	metrics.SetSessionsActive(len(m.sessions))
	return nil
}

// List returns the open sessions ordered by creation time
func (m *Manager) List() []Summary {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		v := s.View()
		out = append(out, Summary{
			ID:        v.ID,
			Variant:   v.Variant,
			Project:   v.Root.Name,
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of open sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
