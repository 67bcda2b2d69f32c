package types

import (
	"github.com/goccy/go-json"
)

// Config represents the complete configuration for Studio
type Config struct {
	API       APIConfig       `json:"api" yaml:"api"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Studio    StudioConfig    `json:"studio" yaml:"studio"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
}

// StoreConfig represents the transcript store configuration.
// An empty DBPath keeps transcripts in memory only.
type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// AssistantConfig selects and configures the code-suggestion provider
type AssistantConfig struct {
	Provider    string  `json:"provider" yaml:"provider"` // "openai" or "static"
	Model       string  `json:"model" yaml:"model"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIKeyEnv   string  `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level      string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format     string `json:"format" yaml:"format"` // json, console
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
}

// StudioConfig holds session-level settings
type StudioConfig struct {
	DefaultVariant string `json:"default_variant" yaml:"default_variant"`
	MaxUploadBytes int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// NodeType constants
const (
	NodeTypeFolder = "folder"
	NodeTypeFile   = "file"
)

// Node is a File or a Folder in a project tree. ID and Path are always equal.
// Content applies to files only, Children to folders only.
//
// Nodes are treated as immutable once they are part of a tree: every edit
// builds new nodes along the changed path and shares the rest.
type Node struct {
	ID       string
	Name     string
	Path     string
	Type     string
	Content  string
	Children []*Node
}

// NewFile creates a file node whose id is its path
func NewFile(path, name, content string) *Node {
	return &Node{
		ID:      path,
		Name:    name,
		Path:    path,
		Type:    NodeTypeFile,
		Content: content,
	}
}

// NewFolder creates a folder node whose id is its path
func NewFolder(path, name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{
		ID:       path,
		Name:     name,
		Path:     path,
		Type:     NodeTypeFolder,
		Children: children,
	}
}

// IsFile reports whether the node is a file
func (n *Node) IsFile() bool {
	return n != nil && n.Type == NodeTypeFile
}

// IsFolder reports whether the node is a folder
func (n *Node) IsFolder() bool {
	return n != nil && n.Type == NodeTypeFolder
}

type fileJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

type folderJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Path     string  `json:"path"`
	Children []*Node `json:"children"`
}

// MarshalJSON emits only the fields that belong to the node's variant
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.Type == NodeTypeFile {
		return json.Marshal(fileJSON{ID: n.ID, Name: n.Name, Type: n.Type, Path: n.Path, Content: n.Content})
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(folderJSON{ID: n.ID, Name: n.Name, Type: n.Type, Path: n.Path, Children: children})
}

// UnmarshalJSON decodes either variant
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Type     string  `json:"type"`
		Path     string  `json:"path"`
		Content  string  `json:"content"`
		Children []*Node `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node{ID: raw.ID, Name: raw.Name, Type: raw.Type, Path: raw.Path}
	switch raw.Type {
	case NodeTypeFile:
		n.Content = raw.Content
	case NodeTypeFolder:
		n.Children = raw.Children
		if n.Children == nil {
			n.Children = []*Node{}
		}
	default:
		return &UnknownNodeTypeError{Type: raw.Type}
	}
	return nil
}

// UnknownNodeTypeError is returned when decoding a node with an unsupported type
type UnknownNodeTypeError struct {
	Type string
}

func (e *UnknownNodeTypeError) Error() string {
	return "unknown node type: " + e.Type
}

// FileChange is one {path, content} entry proposed for a batch update
type FileChange struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// SuggestionRequest is the input to the code-suggestion provider.
// At least one of FileDataURI and Prompt must be set. History carries the
// preceding transcript so a confirmation can refer back to a proposal.
type SuggestionRequest struct {
	FileDataURI string        `json:"fileDataUri,omitempty"`
	Prompt      string        `json:"prompt,omitempty"`
	History     []ChatMessage `json:"history,omitempty"`
}

// Suggestion is the output of the code-suggestion provider
type Suggestion struct {
	Success            bool         `json:"success"`
	Message            string       `json:"message"`
	Files              []FileChange `json:"files,omitempty"`
	ShouldApplyChanges bool         `json:"shouldApplyChanges,omitempty"`
}

// Sender constants for chat messages
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry of a persisted chat transcript
type ChatMessage struct {
	Sender  string       `json:"sender"`
	Content string       `json:"content"`
	Files   []FileChange `json:"files,omitempty"`
}

// Notice is a transient notification raised by a session action
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive,omitempty"`
}

// APIResponse represents a generic API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
