// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/psalm-parallels/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the relationship index to YAML or JSON",
	Long: `Export writes the flattened relationship index to export.yaml or
export.json in the cache directory, one entry per reference, sorted.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	snap, err := loadSnapshot(cmd, false, os.Stderr)
	if err != nil {
		return err
	}

	dir := cacheConfig(cmd).CacheDir

	var path string
	switch format {
	case "yaml", "":
		path, err = export.WriteYAML(snap.Index, dir)
	case "json":
		path, err = export.WriteJSON(snap.Index, dir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("exported to", path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(exportCmd)
}
