package sdk

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/Project-Sylos/Studio/internal/archive"
	"github.com/Project-Sylos/Studio/internal/assistant"
	"github.com/Project-Sylos/Studio/internal/config"
	"github.com/Project-Sylos/Studio/internal/logging"
	"github.com/Project-Sylos/Studio/internal/projectfs"
	"github.com/Project-Sylos/Studio/internal/scaffold"
	"github.com/Project-Sylos/Studio/internal/session"
	"github.com/Project-Sylos/Studio/internal/transcript"
	"github.com/Project-Sylos/Studio/internal/types"
	"go.uber.org/zap"
)

// Studio is the public SDK entry point. It wires configuration, logging,
// the transcript store and the assistant into a session manager.
type Studio struct {
	cfg       *types.Config
	store     transcript.Store
	assistant assistant.Assistant
	sessions  *session.Manager
}

// New creates a Studio using the specified config file
func New(configPath string) (*Studio, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithDefaults creates a Studio using the bundled default configuration
func NewWithDefaults() (*Studio, error) {
	return New("configs/default.json")
}

// NewWithConfig creates a Studio from an already loaded configuration
func NewWithConfig(cfg *types.Config) (*Studio, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	store, err := transcript.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript store: %w", err)
	}

	asst, err := assistant.New(cfg.Assistant)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}

	logging.L().Info("studio initialized",
		zap.String("assistant", cfg.Assistant.Provider),
		zap.String("store", storeKind(cfg.Store.DBPath)),
		zap.String("default_variant", cfg.Studio.DefaultVariant),
	)

	return &Studio{
		cfg:       cfg,
		store:     store,
		assistant: asst,
		sessions: session.NewManager(session.Options{
			Assistant:      asst,
			Store:          store,
			Logger:         logging.L(),
			DefaultVariant: cfg.Studio.DefaultVariant,
			MaxUploadBytes: cfg.Studio.MaxUploadBytes,
		}),
	}, nil
}

func storeKind(dbPath string) string {
	if dbPath == "" {
		return "memory"
	}
	return "duckdb"
}

// CreateSession opens a new session of the given variant ("" for the default)
func (s *Studio) CreateSession(variant string) (*Session, error) {
	return s.sessions.Create(variant)
}

// OpenSession resumes a session by id, creating it if it is not open
func (s *Studio) OpenSession(id, variant string) (*Session, error) {
	return s.sessions.Open(id, variant)
}

// Session returns an open session
func (s *Studio) Session(id string) (*Session, error) {
	return s.sessions.Get(id)
}

// CloseSession drops an open session. Its transcript is kept.
func (s *Studio) CloseSession(id string) error {
	return s.sessions.Close(id)
}

// Sessions lists the open sessions
func (s *Studio) Sessions() []SessionSummary {
	return s.sessions.List()
}

// Variants returns the available studio variants
func (s *Studio) Variants() []string {
	return scaffold.Names()
}

// GetConfig returns the current configuration
func (s *Studio) GetConfig() *types.Config {
	return s.cfg
}

// AsFS returns a read-only fs.FS over a session's current project
func (s *Studio) AsFS(sessionID string) (fs.FS, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return projectfs.New(sess.Root(), time.Now()), nil
}

// Close flushes logs and closes the transcript store.
// Always call this method during graceful shutdown.
func (s *Studio) Close() error {
	logging.Sync()
	return s.store.Close()
}

// Scaffold builds the starting project of a variant
func Scaffold(variant string) (*Node, error) {
	v, err := scaffold.Lookup(variant)
	if err != nil {
		return nil, err
	}
	return v.Build()
}

// WriteArchive writes a project as a zip archive
func WriteArchive(w io.Writer, root *Node) error {
	return archive.Export(w, root, time.Now())
}

// ReadArchive rebuilds a project from zip bytes
func ReadArchive(data []byte) (*ArchiveResult, error) {
	return archive.Import(data)
}

// ArchiveName returns the download file name of a project
func ArchiveName(root *Node) string {
	return archive.FileName(root)
}

// Re-export types for convenience
type (
	Config         = types.Config
	Node           = types.Node
	FileChange     = types.FileChange
	Suggestion     = types.Suggestion
	ChatMessage    = types.ChatMessage
	Notice         = types.Notice
	APIResponse    = types.APIResponse
	Session        = session.Session
	SessionView    = session.View
	SessionSummary = session.Summary
	Outcome        = session.Outcome
	ArchiveResult  = archive.Result
)

// Re-export constants
const (
	NodeTypeFolder = types.NodeTypeFolder
	NodeTypeFile   = types.NodeTypeFile

	VariantPortlet = scaffold.VariantPortlet
	VariantReact   = scaffold.VariantReact
)
