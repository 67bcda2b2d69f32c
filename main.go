package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Project-Sylos/Studio/sdk"
	"github.com/spf13/cobra"
)

var configPath string

var demoCmd = &cobra.Command{
	Use:   "studio-demo",
	Short: "Walk through a studio session using the SDK",
	Long: "Runs a short scripted session: opens a portlet project, edits the\n" +
		"active file, chats with the configured assistant and exports a zip.\n" +
		"For the API server, run: go run ./cmd/studio serve",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.Context(), configPath)
	},
}

func main() {
	demoCmd.Flags().StringVarP(&configPath, "config", "c", "configs/default.json", "Configuration file path")
	if err := demoCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(ctx context.Context, configPath string) error {
	fmt.Println("Studio - SDK Demo")
	fmt.Println("=================")
	fmt.Printf("Loading configuration from: %s\n", configPath)

	studio, err := sdk.New(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize studio: %w", err)
	}
	defer studio.Close()

	sess, err := studio.CreateSession(sdk.VariantPortlet)
	if err != nil {
		return err
	}
	view := sess.View()
	fmt.Printf("\nSession %s opened on %s\n", view.ID, view.Root.Name)
	fmt.Printf("Active file: %s\n", view.ActiveFileID)
	fmt.Printf("Sasha: %s\n", view.Messages[0].Content)

	// 1. Edit the active file
	if err := sess.EditActive("export default function App() {\n  return <h1>Hello from the demo</h1>;\n}\n"); err != nil {
		return err
	}
	fmt.Println("\nEdited the active file")

	// 2. Chat with the assistant
	out, err := sess.SendPrompt(ctx, "Add a contact form to the portlet")
	if err != nil {
		return err
	}
	fmt.Printf("\nYou: Add a contact form to the portlet\nSasha (%s): %s\n", out.State, out.Reply.Content)
	for _, f := range out.Reply.Files {
		fmt.Printf("  proposed %s (%d bytes)\n", f.Path, len(f.Content))
	}

	// 3. Export the project
	name, data, err := sess.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	fmt.Printf("\nExported %s (%d bytes)\n", name, len(data))

	return nil
}
