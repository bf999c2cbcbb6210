// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/psalm-parallels/internal/relation"
	"github.com/pdiddy/psalm-parallels/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <reference>",
	Short: "Look up scriptures related to a reference",
	Long: `Lookup normalizes a free-form scripture reference and returns every
reference related to it. When no exact match exists the lookup degrades
to a chapter-level match and says so.

Two strategies answer the same question: "index" (the default) consults
the flattened bidirectional index; "scan" walks the original scraped
groups row by row. Both return equivalent result sets.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	ref, err := relation.Normalize(args[0])
	if err != nil {
		var fe *relation.FormatError
		if errors.As(err, &fe) {
			return fmt.Errorf("cannot parse reference: %w", err)
		}
		return err
	}

	snap, err := loadSnapshot(cmd, false, os.Stderr)
	if err != nil {
		return err
	}

	res := relation.Lookup(ref, snap, lookupMethod(cmd))

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printResult(ref, res)
	return nil
}

// printResult writes a lookup result in the interactive format.
func printResult(ref string, res types.LookupResult) {
	if res.Degraded {
		fmt.Printf("showing results for %s\n", res.ChapterKey)
	}
	if len(res.References) == 0 {
		fmt.Printf("no relationships found for %s\n", ref)
		return
	}
	fmt.Printf("%s relates to %d reference(s):\n", ref, len(res.References))
	for _, r := range res.References {
		fmt.Printf("  %s\n", r)
	}
}

// lookupMethod resolves the strategy from the flag, then config, then the
// index default.
func lookupMethod(cmd *cobra.Command) types.Method {
	method, _ := cmd.Flags().GetString("method")
	if method == "" {
		method = viper.GetString("lookup.method")
	}
	if method == string(types.MethodScan) {
		return types.MethodScan
	}
	return types.MethodIndex
}

func init() {
	lookupCmd.Flags().String("method", "", "lookup strategy: index or scan (default index)")
	lookupCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(lookupCmd)
}
