// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/psalm-parallels/internal/relation"
	"github.com/pdiddy/psalm-parallels/pkg/types"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Look up references in a prompt loop",
	Long: `Interactive reads references from stdin one at a time and prints their
relations using the index strategy. A reference that fails to parse is
reported and the prompt continues. Type "quit" to exit.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(cmd, false, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("loaded %d scripture groups, %d references\n", snap.Groups(), snap.References())
	fmt.Println(`enter a scripture reference (e.g. "Psa 2"), or "quit" to exit`)

	return promptLoop(os.Stdin, os.Stdout, snap)
}

// promptLoop runs the read-normalize-lookup cycle until EOF or "quit".
// Format errors are recoverable: they are reported and the loop continues.
func promptLoop(in io.Reader, out io.Writer, snap types.Snapshot) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			return nil
		}

		ref, err := relation.Normalize(line)
		if err != nil {
			var fe *relation.FormatError
			if errors.As(err, &fe) {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			return err
		}

		res := relation.LookupIndex(ref, snap.Index)
		if res.Degraded {
			fmt.Fprintf(out, "showing results for %s\n", res.ChapterKey)
		}
		if len(res.References) == 0 {
			fmt.Fprintf(out, "no relationships found for %s\n", ref)
			continue
		}
		fmt.Fprintf(out, "%s relates to %d reference(s):\n", ref, len(res.References))
		for _, r := range res.References {
			fmt.Fprintf(out, "  %s\n", r)
		}
	}
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
