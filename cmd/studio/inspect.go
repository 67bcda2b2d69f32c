package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Project-Sylos/Studio/sdk"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>",
	Short: "Show the project tree a zip archive imports as",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		result, err := sdk.ReadArchive(data)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		printTree(w, result.Root, 0)
		fmt.Fprintf(w, "\n%d files, download name %s\n", len(result.Paths), sdk.ArchiveName(result.Root))
		return nil
	},
}

func printTree(w io.Writer, node *sdk.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.IsFolder() {
		fmt.Fprintf(w, "%s%s/\n", indent, node.Name)
		for _, child := range node.Children {
			printTree(w, child, depth+1)
		}
		return
	}
	fmt.Fprintf(w, "%s%s (%d bytes)\n", indent, node.Name, len(node.Content))
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List studio variants",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range []string{sdk.VariantPortlet, sdk.VariantReact} {
			root, err := sdk.Scaffold(name)
			if err != nil {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, root.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(variantsCmd)
}
