// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/psalm-parallels/internal/cache"
	"github.com/pdiddy/psalm-parallels/internal/relation"
	"github.com/pdiddy/psalm-parallels/internal/scrape"
	"github.com/pdiddy/psalm-parallels/pkg/types"
)

// scrapeConfig resolves the scrape settings from flags, config file, and
// defaults, in that order.
func scrapeConfig(cmd *cobra.Command) types.ScrapeConfig {
	sourceURL, _ := cmd.Flags().GetString("source-url")
	if sourceURL == "" {
		sourceURL = viper.GetString("scrape.source_url")
	}
	if sourceURL == "" {
		sourceURL = types.DefaultSourceURL
	}

	userAgent := viper.GetString("scrape.user_agent")
	if userAgent == "" {
		userAgent = "psalm-parallels/" + version
	}

	timeout := viper.GetDuration("scrape.timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent},
		SourceURL:  sourceURL,
	}
}

// cacheConfig resolves the cache directory from flags, config file, and
// defaults, in that order.
func cacheConfig(cmd *cobra.Command) types.CacheConfig {
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = viper.GetString("cache.cache_dir")
	}
	if cacheDir == "" {
		cacheDir = "cache"
	}
	return types.CacheConfig{CacheDir: cacheDir}
}

// snapshotBuilder returns a cache.Builder that runs the full
// fetch → parse → extract → build pipeline.
func snapshotBuilder(cfg types.ScrapeConfig) cache.Builder {
	return func(ctx context.Context) (types.Snapshot, string, error) {
		client := &http.Client{Timeout: cfg.Timeout}

		content, err := scrape.Fetch(ctx, client, cfg)
		if err != nil {
			return types.Snapshot{}, "", err
		}

		psalmCells, relatedCells, err := scrape.ParseTable(content)
		if err != nil {
			return types.Snapshot{}, "", err
		}

		return relation.BuildSnapshot(psalmCells, relatedCells), cfg.SourceURL, nil
	}
}

// loadSnapshot opens the cache store and returns the cached snapshot,
// building one first when the cache is empty or refresh is set.
func loadSnapshot(cmd *cobra.Command, refresh bool, w io.Writer) (types.Snapshot, error) {
	store, err := cache.NewStore(cacheConfig(cmd))
	if err != nil {
		return types.Snapshot{}, err
	}
	defer store.Close()

	build := snapshotBuilder(scrapeConfig(cmd))
	return cache.BuildOrLoad(cmd.Context(), store, refresh, build, w)
}
