// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape fetches the parallel-Psalms page and extracts its
// citation table. Implements: prd001-scrape (R1-R4);
//
//	docs/ARCHITECTURE § Scraping.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/psalm-parallels/internal/httputil"
	"github.com/pdiddy/psalm-parallels/pkg/types"
)

// Fetch downloads the source page and returns its body as text (R1.1-R1.3).
// Transport and non-200 failures are returned unchanged; the caller owns
// retry-or-abort policy beyond the 429 backoff the HTTP helper applies.
func Fetch(ctx context.Context, client *http.Client, cfg types.ScrapeConfig) (string, error) {
	url := cfg.SourceURL
	if url == "" {
		url = types.DefaultSourceURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}
