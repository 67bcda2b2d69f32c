// Package session holds the per-user studio state: the project tree, the
// active file, the chat transcript and the propose/apply workflow.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Project-Sylos/Studio/internal/archive"
	"github.com/Project-Sylos/Studio/internal/assistant"
	"github.com/Project-Sylos/Studio/internal/metrics"
	"github.com/Project-Sylos/Studio/internal/scaffold"
	"github.com/Project-Sylos/Studio/internal/transcript"
	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/internal/workflow"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned for an unknown session id
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmptyPrompt is returned for a blank chat message
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrNoActiveFile is returned when editing with no file selected
	ErrNoActiveFile = errors.New("no active file")
)

// Outcome reports what a chat or upload action did
type Outcome struct {
	Reply        *types.ChatMessage `json:"reply,omitempty"`
	Notice       *types.Notice      `json:"notice,omitempty"`
	State        workflow.State     `json:"state"`
	TreeChanged  bool               `json:"treeChanged"`
	ActiveFileID string             `json:"activeFileId,omitempty"`
	// Err is the underlying failure, already converted into Reply and Notice
	Err error `json:"-"`
}

// Failed reports whether the action ended in a failure
func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// View is a consistent snapshot of a session
type View struct {
	ID           string              `json:"id"`
	Variant      string              `json:"variant"`
	Root         *types.Node         `json:"project"`
	ActiveFileID string              `json:"activeFileId,omitempty"`
	Messages     []types.ChatMessage `json:"messages"`
	State        workflow.State      `json:"state"`
	Pending      []types.FileChange  `json:"pending,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// Session is one user's studio. The tree is only ever replaced, never
// mutated, so a root handed out by Root stays valid after later edits.
type Session struct {
	ID      string
	variant *scaffold.Variant

	mu           sync.Mutex
	root         *types.Node
	activeFileID string
	messages     []types.ChatMessage
	createdAt    time.Time
	updatedAt    time.Time

	machine        *workflow.Machine
	assistant      assistant.Assistant
	store          transcript.Store
	logger         *zap.Logger
	maxUploadBytes int64
}

func newSession(id string, variant *scaffold.Variant, deps Options) (*Session, error) {
	root, err := variant.Build()
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	now := time.Now()
	s := &Session{
		ID:             id,
		variant:        variant,
		root:           root,
		activeFileID:   variant.ActiveFile,
		createdAt:      now,
		updatedAt:      now,
		machine:        workflow.NewMachine(),
		assistant:      deps.Assistant,
		store:          deps.Store,
		logger:         logger.With(zap.String("session_id", id), zap.String("variant", variant.Name)),
		maxUploadBytes: deps.MaxUploadBytes,
	}

	messages, err := s.store.Load(s.transcriptKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	if len(messages) == 0 {
		messages = []types.ChatMessage{variant.GreetingMessage()}
	}
	s.messages = messages

	return s, nil
}

func (s *Session) transcriptKey() transcript.Key {
	return transcript.Key{SessionID: s.ID, StorageKey: s.variant.StorageKey}
}

// Variant returns the session's studio variant
func (s *Session) Variant() *scaffold.Variant {
	return s.variant
}

// Root returns the current project tree
func (s *Session) Root() *types.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// View returns a snapshot of the session
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		ID:           s.ID,
		Variant:      s.variant.Name,
		Root:         s.root,
		ActiveFileID: s.activeFileID,
		Messages:     append([]types.ChatMessage(nil), s.messages...),
		State:        s.machine.State(),
		Pending:      s.machine.Pending(),
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
}

// Messages returns a copy of the transcript
func (s *Session) Messages() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ChatMessage(nil), s.messages...)
}

// ActiveFile returns the focused file, if any
func (s *Session) ActiveFile() (*types.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeFileID == "" {
		return nil, false
	}
	return tree.FindFile(s.root, s.activeFileID)
}

// File returns the file with the given id
func (s *Session) File(id string) (*types.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := tree.FindByID(s.root, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tree.ErrNotFound, id)
	}
	if !node.IsFile() {
		return nil, fmt.Errorf("%w: %s", tree.ErrNotAFile, id)
	}
	return node, nil
}

// SelectFile focuses a file
func (s *Session) SelectFile(id string) error {
	if _, err := s.File(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeFileID = id
	return nil
}

// EditFile replaces one file's content
func (s *Session) EditFile(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := tree.UpdateFileContent(s.root, id, content)
	if err != nil {
		return err
	}
	s.root = root
	s.touch()
	metrics.RecordFileEdit()
	return nil
}

// EditActive replaces the content of the focused file
func (s *Session) EditActive(content string) error {
	s.mu.Lock()
	id := s.activeFileID
	s.mu.Unlock()

	if id == "" {
		return ErrNoActiveFile
	}
	return s.EditFile(id, content)
}

// Export returns the archive name and zip bytes of the current project
func (s *Session) Export() (string, []byte, error) {
	root := s.Root()

	data, err := archive.ExportBytes(root, time.Now())
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		return "", nil, fmt.Errorf("failed to export project: %w", err)
	}
	metrics.RecordArchiveExport(len(data))
	return archive.FileName(root), data, nil
}

// ClearChat resets the transcript to the greeting. The tree is untouched.
func (s *Session) ClearChat() error {
	if err := s.store.Clear(s.transcriptKey()); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}

	s.mu.Lock()
	s.messages = []types.ChatMessage{s.variant.GreetingMessage()}
	messages := append([]types.ChatMessage(nil), s.messages...)
	s.touch()
	s.mu.Unlock()

	s.saveTranscript(messages)
	return nil
}

// ResetProject replaces the tree with the variant's starting project
func (s *Session) ResetProject() error {
	root, err := s.variant.Build()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	s.activeFileID = s.variant.ActiveFile
	s.touch()
	return nil
}

// touch must be called with mu held
func (s *Session) touch() {
	s.updatedAt = time.Now()
}

func (s *Session) saveTranscript(messages []types.ChatMessage) {
	if err := s.store.Save(s.transcriptKey(), messages); err != nil {
		s.logger.Warn("failed to save transcript", zap.Error(err))
	}
}

// appendMessages adds messages to the transcript and persists it
func (s *Session) appendMessages(msgs ...types.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msgs...)
	snapshot := append([]types.ChatMessage(nil), s.messages...)
	s.touch()
	s.mu.Unlock()

	s.saveTranscript(snapshot)
}
