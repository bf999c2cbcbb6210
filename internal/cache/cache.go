// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists built snapshots so many lookups can reuse one
// scrape. Implements: prd004-cache (R1-R3);
//
//	docs/ARCHITECTURE § Snapshot Cache.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/psalm-parallels/pkg/types"
)

const dbFile = "parallels.db"

// Sides label the two group-pair tables inside the snapshot (R1.4).
const (
	sidePsalms  = "psalms"
	sideRelated = "related"
)

// Store manages the snapshot SQLite database.
type Store struct {
	db       *sql.DB
	cacheDir string
}

// NewStore opens or creates the snapshot database at cacheDir/parallels.db,
// creating the schema if needed (R1.1-R1.3).
func NewStore(cfg types.CacheConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CacheDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, cacheDir: cfg.CacheDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the cache directory the store was opened in.
func (s *Store) Dir() string {
	return s.cacheDir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS groups (
			side TEXT NOT NULL,
			group_idx INTEGER NOT NULL,
			position INTEGER NOT NULL,
			reference TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_groups_side_idx ON groups(side, group_idx)`,
		`CREATE TABLE IF NOT EXISTS relations (
			reference TEXT NOT NULL,
			position INTEGER NOT NULL,
			related TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_relations_reference ON relations(reference)`,
		`CREATE TABLE IF NOT EXISTS snapshot_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces any stored snapshot with snap in one transaction (R2.1).
// Row positions record source order so Load reproduces every slice
// exactly. Meta rows record the source URL and fetch time.
func (s *Store) Save(ctx context.Context, snap types.Snapshot, sourceURL string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"groups", "relations", "snapshot_meta"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertGroups(ctx, tx, sidePsalms, snap.Psalms); err != nil {
		return err
	}
	if err := insertGroups(ctx, tx, sideRelated, snap.Related); err != nil {
		return err
	}

	relStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO relations (reference, position, related) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing relations insert: %w", err)
	}
	defer relStmt.Close()

	refs := make([]string, 0, len(snap.Index))
	for ref := range snap.Index {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	for _, ref := range refs {
		for pos, related := range snap.Index[ref] {
			if _, err := relStmt.ExecContext(ctx, ref, pos, related); err != nil {
				return fmt.Errorf("inserting relation for %s: %w", ref, err)
			}
		}
	}

	for key, value := range map[string]string{
		"source_url": sourceURL,
		"fetched_at": time.Now().UTC().Format(time.RFC3339),
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("inserting meta %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func insertGroups(ctx context.Context, tx *sql.Tx, side string, pair types.GroupPair) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO groups (side, group_idx, position, reference) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing groups insert: %w", err)
	}
	defer stmt.Close()

	rows := make([]int, 0, len(pair))
	for i := range pair {
		rows = append(rows, i)
	}
	sort.Ints(rows)

	for _, i := range rows {
		for pos, ref := range pair[i] {
			if _, err := stmt.ExecContext(ctx, side, i, pos, ref); err != nil {
				return fmt.Errorf("inserting %s group %d: %w", side, i, err)
			}
		}
	}
	return nil
}

// Load reads the stored snapshot back, preserving slice order via the
// recorded positions (R2.2). The second return value is false when the
// store holds no snapshot; that is not an error.
func (s *Store) Load(ctx context.Context) (types.Snapshot, bool, error) {
	snap := types.Snapshot{
		Psalms:  make(types.GroupPair),
		Related: make(types.GroupPair),
		Index:   make(types.RelationshipIndex),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT side, group_idx, reference FROM groups ORDER BY side, group_idx, position`)
	if err != nil {
		return types.Snapshot{}, false, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var groupRows int
	for rows.Next() {
		var side, ref string
		var idx int
		if err := rows.Scan(&side, &idx, &ref); err != nil {
			return types.Snapshot{}, false, fmt.Errorf("scanning group row: %w", err)
		}
		groupRows++
		switch side {
		case sidePsalms:
			snap.Psalms[idx] = append(snap.Psalms[idx], ref)
		case sideRelated:
			snap.Related[idx] = append(snap.Related[idx], ref)
		}
	}
	if err := rows.Err(); err != nil {
		return types.Snapshot{}, false, fmt.Errorf("reading groups: %w", err)
	}
	if groupRows == 0 {
		return types.Snapshot{}, false, nil
	}

	relRows, err := s.db.QueryContext(ctx,
		`SELECT reference, related FROM relations ORDER BY reference, position`)
	if err != nil {
		return types.Snapshot{}, false, fmt.Errorf("querying relations: %w", err)
	}
	defer relRows.Close()

	for relRows.Next() {
		var ref, related string
		if err := relRows.Scan(&ref, &related); err != nil {
			return types.Snapshot{}, false, fmt.Errorf("scanning relation row: %w", err)
		}
		snap.Index[ref] = append(snap.Index[ref], related)
	}
	if err := relRows.Err(); err != nil {
		return types.Snapshot{}, false, fmt.Errorf("reading relations: %w", err)
	}

	return snap, true, nil
}

// Meta returns the stored source URL and fetch timestamp, empty strings
// when no snapshot exists.
func (s *Store) Meta(ctx context.Context) (sourceURL, fetchedAt string, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM snapshot_meta`)
	if err != nil {
		return "", "", fmt.Errorf("querying meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return "", "", fmt.Errorf("scanning meta row: %w", err)
		}
		switch key {
		case "source_url":
			sourceURL = value
		case "fetched_at":
			fetchedAt = value
		}
	}
	return sourceURL, fetchedAt, rows.Err()
}

// Builder produces a fresh snapshot from the source, reporting the URL it
// fetched. Used by BuildOrLoad when the cache is empty or bypassed.
type Builder func(ctx context.Context) (types.Snapshot, string, error)

// BuildOrLoad returns the cached snapshot when one exists, otherwise runs
// build and saves its result (R3.1-R3.3). refresh forces a rebuild. A
// build failure leaves any previously saved snapshot untouched; no partial
// snapshot is ever stored or returned.
func BuildOrLoad(ctx context.Context, store *Store, refresh bool, build Builder, w io.Writer) (types.Snapshot, error) {
	if !refresh {
		snap, ok, err := store.Load(ctx)
		if err != nil {
			return types.Snapshot{}, err
		}
		if ok {
			fmt.Fprintln(w, "loading snapshot from cache")
			return snap, nil
		}
	}

	fmt.Fprintln(w, "building snapshot from source")
	snap, sourceURL, err := build(ctx)
	if err != nil {
		return types.Snapshot{}, err
	}

	if err := store.Save(ctx, snap, sourceURL); err != nil {
		return types.Snapshot{}, fmt.Errorf("saving snapshot: %w", err)
	}
	return snap, nil
}
