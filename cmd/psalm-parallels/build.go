// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch the source table and build the relationship snapshot",
	Long: `Build fetches the parallel-Psalms table, extracts the paired citation
groups, builds the bidirectional relationship index, and saves all three
structures to the snapshot cache. Subsequent commands reuse the cached
snapshot; pass --refresh to refetch and rebuild.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")

	snap, err := loadSnapshot(cmd, refresh, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("parsed %d scripture groups\n", snap.Groups())
	fmt.Printf("index contains %d unique scripture references\n", snap.References())
	return nil
}

func init() {
	buildCmd.Flags().Bool("refresh", false, "refetch the source even when a cached snapshot exists")

	rootCmd.AddCommand(buildCmd)
}
