package main

import (
	"fmt"
	"os"

	"github.com/Project-Sylos/Studio/sdk"
	"github.com/spf13/cobra"
)

var (
	exportVariant string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a variant's starting project as a zip archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := sdk.Scaffold(exportVariant)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = sdk.ArchiveName(root)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := sdk.WriteArchive(f, root); err != nil {
			f.Close()
			return fmt.Errorf("failed to write archive: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportVariant, "variant", "v", sdk.VariantPortlet, "Studio variant (portlet or react)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default <project>.zip)")
	rootCmd.AddCommand(exportCmd)
}
