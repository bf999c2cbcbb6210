// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/psalm-parallels/internal/relation"
	"github.com/pdiddy/psalm-parallels/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check the index and scan lookup strategies",
	Long: `Verify runs both lookup strategies for every reference in the snapshot
and reports any reference whose result sets differ. The two strategies
answer the same logical relation, so a mismatch means the snapshot is
corrupt or a strategy is broken.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(cmd, false, os.Stderr)
	if err != nil {
		return err
	}

	mismatches := verifySnapshot(snap, os.Stdout)
	if mismatches > 0 {
		return fmt.Errorf("%d reference(s) returned different result sets", mismatches)
	}

	fmt.Printf("verified %d references: both strategies agree\n", snap.References())
	return nil
}

// verifySnapshot compares the two strategies reference by reference and
// returns the mismatch count.
func verifySnapshot(snap types.Snapshot, w io.Writer) int {
	refs := make([]string, 0, len(snap.Index))
	for ref := range snap.Index {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	mismatches := 0
	for _, ref := range refs {
		idxRes := relation.LookupIndex(ref, snap.Index)
		scanRes := relation.LookupScan(ref, snap.Psalms, snap.Related)

		if !sameSet(idxRes.References, scanRes.References) {
			mismatches++
			fmt.Fprintf(w, "mismatch %s: index %v, scan %v\n",
				ref, idxRes.References, scanRes.References)
		}
	}
	return mismatches
}

// sameSet compares two reference lists ignoring order and multiplicity.
func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, s := range a {
		as[s] = true
	}
	bs := make(map[string]bool, len(b))
	for _, s := range b {
		bs[s] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if !bs[s] {
			return false
		}
	}
	return true
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
