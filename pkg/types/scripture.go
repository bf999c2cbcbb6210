// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for psalm-parallels.
package types

// GroupPair maps a table row index to the citation group scraped from one
// cell of that row. The same index in the psalm-side and related-side
// GroupPair denotes two co-occurring groups: every reference in one group
// is related to every reference in the other. Per prd002-relations R1.2.
type GroupPair map[int][]string

// RelationshipIndex maps a canonical scripture reference to every reference
// it co-occurs with, in either direction. Value lists accumulate additively:
// a reference appearing in several table rows repeats its relations, and
// duplicates are meaningful. Per prd002-relations R2.1-R2.4.
//
// Each key owns an independent value slice. Two keys never alias the same
// backing array, so extending one key's relations cannot change another's.
type RelationshipIndex map[string][]string

// Method selects a lookup strategy. Per prd003-lookup R1.1.
type Method string

const (
	// MethodIndex answers queries against the flattened RelationshipIndex.
	MethodIndex Method = "index"

	// MethodScan answers queries by scanning the original group pairs.
	MethodScan Method = "scan"
)

// Snapshot bundles the three structures produced by one build pass:
// the two group pairs in their original row-grouped form, and the
// flattened bidirectional index derived from them. A Snapshot is
// immutable once built; lookups treat all three structures as read-only.
// Per prd002-relations R3.1, prd004-cache R1.1.
type Snapshot struct {
	// Psalms holds the psalm-side citation groups, one entry per table row.
	Psalms GroupPair `json:"psalms" yaml:"psalms"`

	// Related holds the related-scripture groups, parallel to Psalms.
	Related GroupPair `json:"related" yaml:"related"`

	// Index is the flattened bidirectional relationship index.
	Index RelationshipIndex `json:"index" yaml:"index"`
}

// Groups returns the number of table rows captured in the snapshot.
func (s Snapshot) Groups() int {
	return len(s.Psalms)
}

// References returns the number of distinct canonical references in the index.
func (s Snapshot) References() int {
	return len(s.Index)
}

// LookupResult holds the outcome of one lookup, by either method.
// Per prd003-lookup R2.4.
type LookupResult struct {
	// References lists the related references found, duplicates preserved.
	// Empty means no relationship exists at any granularity; that is a
	// valid result, not an error.
	References []string `json:"references" yaml:"references"`

	// Degraded reports that no exact match existed and the result came
	// from a chapter-level fallback match.
	Degraded bool `json:"degraded" yaml:"degraded"`

	// ChapterKey is the verse-stripped form used for the fallback when
	// Degraded is true.
	ChapterKey string `json:"chapter_key,omitempty" yaml:"chapter_key,omitempty"`
}
