// Package scaffold holds the starting projects a studio session opens with.
package scaffold

import (
	"fmt"
	"sort"

	"github.com/Project-Sylos/Studio/internal/tree"
	"github.com/Project-Sylos/Studio/internal/types"
)

// Variant constants
const (
	VariantPortlet = "portlet"
	VariantReact   = "react"
)

// Variant describes one flavour of the studio: its starting project, the key
// its chat transcript is stored under and the assistant's opening message.
type Variant struct {
	Name       string
	RootName   string
	StorageKey string
	Greeting   string
	// ActiveFile is the file focused when a session starts
	ActiveFile string
	files      []types.FileChange
}

var variants = map[string]*Variant{
	VariantPortlet: {
		Name:       VariantPortlet,
		RootName:   "my-react-portlet",
		StorageKey: "sasha-chat-history-portlet",
		Greeting: "Hi! I'm Sasha, your AI assistant for Liferay React Portlets. I can help you build and modify " +
			"your portlet project, from a single component to a complete application.\n\nWhat can we build today?",
		ActiveFile: "my-react-portlet/src/main/resources/META-INF/resources/js/App.js",
		files:      portletFiles,
	},
	VariantReact: {
		Name:       VariantReact,
		RootName:   "MyReactProject",
		StorageKey: "sasha-chat-history-react",
		Greeting: "Hi! I'm Sasha, your AI assistant for React projects. Tell me what you'd like to build, " +
			"or upload a screenshot, a source file or a zipped project to get started.",
		ActiveFile: "MyReactProject/src/App.js",
		files:      reactFiles,
	},
}

// Lookup returns the variant with the given name
func Lookup(name string) (*Variant, error) {
	v, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown studio variant: %s", name)
	}
	return v, nil
}

// Names returns all variant names in sorted order
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns a fresh copy of the variant's starting project
func (v *Variant) Build() (*types.Node, error) {
	result, err := tree.ApplyBatch(types.NewFolder(v.RootName, v.RootName), v.files)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s scaffold: %w", v.Name, err)
	}
	return result.Root, nil
}

// GreetingMessage returns the first message of a new transcript
func (v *Variant) GreetingMessage() types.ChatMessage {
	return types.ChatMessage{Sender: types.SenderBot, Content: v.Greeting}
}
