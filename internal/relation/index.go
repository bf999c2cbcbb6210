// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relation

import (
	"sort"

	"github.com/pdiddy/psalm-parallels/pkg/types"
)

// Build flattens the two group pairs into a single bidirectional index in
// one pass over the shared row indices, ascending. Every reference in a
// row's psalm group gains that row's related group, and vice versa.
// Per prd002-relations R2.1-R2.4.
//
// A key seen for the first time receives a fresh copy of the other group's
// slice; sharing the backing array between two keys would let a later
// append to one key silently rewrite the other. Repeat appearances append
// without de-duplication: repeats across rows carry meaning.
func Build(psalms, related types.GroupPair) types.RelationshipIndex {
	rows := make([]int, 0, len(psalms))
	for i := range psalms {
		if _, ok := related[i]; ok {
			rows = append(rows, i)
		}
	}
	sort.Ints(rows)

	idx := make(types.RelationshipIndex)
	for _, i := range rows {
		for _, psa := range psalms[i] {
			if _, ok := idx[psa]; ok {
				idx[psa] = append(idx[psa], related[i]...)
			} else {
				idx[psa] = append([]string(nil), related[i]...)
			}
		}
		for _, rel := range related[i] {
			if _, ok := idx[rel]; ok {
				idx[rel] = append(idx[rel], psalms[i]...)
			} else {
				idx[rel] = append([]string(nil), psalms[i]...)
			}
		}
	}
	return idx
}

// BuildSnapshot runs Extract and Build over scraped cells and bundles the
// result. Per prd002-relations R3.1.
func BuildSnapshot(psalmCells, relatedCells [][]string) types.Snapshot {
	psalms, related := Extract(psalmCells, relatedCells)
	return types.Snapshot{
		Psalms:  psalms,
		Related: related,
		Index:   Build(psalms, related),
	}
}
