// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relation

import (
	"sort"
	"strings"

	"github.com/pdiddy/psalm-parallels/pkg/types"
)

// ChapterKey strips the verse suffix from a canonical reference, leaving
// the chapter-level form: "Dan 7:28" → "Dan 7". References without a verse
// pass through unchanged.
func ChapterKey(ref string) string {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// LookupIndex answers a query against the flattened index. An exact key
// match wins; failing that, the result is the union of value lists for
// every key whose chapter-level form matches the query's, flagged as
// degraded. No match at either granularity yields an empty, unflagged
// result — never an error. Per prd003-lookup R2.1-R2.4.
//
// The input must already be canonical; LookupIndex does not normalize.
func LookupIndex(ref string, idx types.RelationshipIndex) types.LookupResult {
	if refs, ok := idx[ref]; ok {
		return types.LookupResult{References: append([]string(nil), refs...)}
	}

	base := ChapterKey(ref)
	keys := make([]string, 0)
	for key := range idx {
		if ChapterKey(key) == base {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return types.LookupResult{}
	}
	sort.Strings(keys)

	var refs []string
	for _, key := range keys {
		refs = append(refs, idx[key]...)
	}
	return types.LookupResult{References: refs, Degraded: true, ChapterKey: base}
}

// LookupScan answers the same query by scanning every row of the original
// group pairs. A row matches when the query appears literally in either of
// its groups. Only when no row matches exactly — in either group — does
// the scan repeat at chapter granularity; the fallback is coupled across
// both groups, not applied per group. Per prd003-lookup R3.1-R3.4.
//
// Psalm-side matches contribute their row's related group; related-side
// matches contribute their row's psalm group. Rows are visited in
// ascending index order and duplicates are preserved.
func LookupScan(ref string, psalms, related types.GroupPair) types.LookupResult {
	psalmRows := matchRows(psalms, ref, exactMatch)
	relatedRows := matchRows(related, ref, exactMatch)

	degraded := false
	base := ""
	if len(psalmRows) == 0 && len(relatedRows) == 0 {
		base = ChapterKey(ref)
		psalmRows = matchRows(psalms, base, chapterMatch)
		relatedRows = matchRows(related, base, chapterMatch)
		degraded = len(psalmRows) > 0 || len(relatedRows) > 0
	}

	var refs []string
	for _, i := range psalmRows {
		refs = append(refs, related[i]...)
	}
	for _, i := range relatedRows {
		refs = append(refs, psalms[i]...)
	}

	if !degraded {
		return types.LookupResult{References: refs}
	}
	return types.LookupResult{References: refs, Degraded: true, ChapterKey: base}
}

// exactMatch reports whether want appears literally in the group.
func exactMatch(group []string, want string) bool {
	for _, ref := range group {
		if ref == want {
			return true
		}
	}
	return false
}

// chapterMatch reports whether any group member matches want at chapter
// granularity. want is already verse-stripped.
func chapterMatch(group []string, want string) bool {
	for _, ref := range group {
		if ChapterKey(ref) == want {
			return true
		}
	}
	return false
}

// matchRows returns the row indices whose group satisfies the predicate,
// in ascending order.
func matchRows(pair types.GroupPair, want string, match func([]string, string) bool) []int {
	var rows []int
	for i, group := range pair {
		if match(group, want) {
			rows = append(rows, i)
		}
	}
	sort.Ints(rows)
	return rows
}

// Lookup dispatches to the strategy named by method. Unknown methods fall
// back to the index path.
func Lookup(ref string, snap types.Snapshot, method types.Method) types.LookupResult {
	if method == types.MethodScan {
		return LookupScan(ref, snap.Psalms, snap.Related)
	}
	return LookupIndex(ref, snap.Index)
}
