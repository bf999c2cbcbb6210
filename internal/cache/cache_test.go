// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/psalm-parallels/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CacheConfig{CacheDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot() types.Snapshot {
	return types.Snapshot{
		Psalms: types.GroupPair{
			0: {"Psa 2"},
			1: {"Psa 105", "Psa 106"},
		},
		Related: types.GroupPair{
			0: {"Dan 7:28"},
			1: {"1Ch 16:7"},
		},
		Index: types.RelationshipIndex{
			"Psa 2":    {"Dan 7:28"},
			"Dan 7:28": {"Psa 2"},
			"Psa 105":  {"1Ch 16:7"},
			"Psa 106":  {"1Ch 16:7"},
			"1Ch 16:7": {"Psa 105", "Psa 106"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot(), "http://example.test/table"))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, sampleSnapshot(), got)

	url, fetchedAt, err := store.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/table", url)
	assert.NotEmpty(t, fetchedAt)
}

func TestLoadEmptyStore(t *testing.T) {
	store := testStore(t)

	_, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "empty store must report no snapshot, not an error")
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot(), "http://example.test/v1"))

	second := types.Snapshot{
		Psalms:  types.GroupPair{0: {"Psa 23"}},
		Related: types.GroupPair{0: {"2Sa 7:1"}},
		Index: types.RelationshipIndex{
			"Psa 23":  {"2Sa 7:1"},
			"2Sa 7:1": {"Psa 23"},
		},
	}
	require.NoError(t, store.Save(ctx, second, "http://example.test/v2"))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)

	url, _, err := store.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/v2", url)
}

func TestBuildOrLoadBuildsWhenEmpty(t *testing.T) {
	store := testStore(t)
	var out bytes.Buffer
	builds := 0

	build := func(context.Context) (types.Snapshot, string, error) {
		builds++
		return sampleSnapshot(), "http://example.test/table", nil
	}

	snap, err := BuildOrLoad(context.Background(), store, false, build, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, builds)
	assert.Equal(t, sampleSnapshot(), snap)
	assert.Contains(t, out.String(), "building snapshot from source")

	// Second call hits the cache.
	snap, err = BuildOrLoad(context.Background(), store, false, build, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, builds, "cached snapshot should be reused")
	assert.Equal(t, sampleSnapshot(), snap)
	assert.Contains(t, out.String(), "loading snapshot from cache")
}

func TestBuildOrLoadRefreshBypassesCache(t *testing.T) {
	store := testStore(t)
	var out bytes.Buffer
	builds := 0

	build := func(context.Context) (types.Snapshot, string, error) {
		builds++
		return sampleSnapshot(), "http://example.test/table", nil
	}

	_, err := BuildOrLoad(context.Background(), store, false, build, &out)
	require.NoError(t, err)
	_, err = BuildOrLoad(context.Background(), store, true, build, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestBuildOrLoadBuildFailureKeepsCache(t *testing.T) {
	store := testStore(t)
	var out bytes.Buffer
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot(), "http://example.test/table"))

	failing := func(context.Context) (types.Snapshot, string, error) {
		return types.Snapshot{}, "", fmt.Errorf("fetch failed")
	}

	_, err := BuildOrLoad(ctx, store, true, failing, &out)
	require.Error(t, err)

	// The previously stored snapshot survives the failed rebuild.
	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot(), got)
}
