package types

import "time"

// DefaultSourceURL is the Blue Letter Bible parallel-Psalms table the
// scraper reads when no override is configured.
const DefaultSourceURL = "https://www.blueletterbible.org/study/parallel/paral18.cfm"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "psalm-parallels/0.1"). Per prd001-scrape R4.1.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the scrape stage.
// Per prd001-scrape R1.1, R4.1-R4.2.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// SourceURL is the page carrying the parallel-Psalms table.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// CacheConfig holds settings for the snapshot cache.
// Per prd004-cache R1.2.
type CacheConfig struct {
	// CacheDir is the directory holding the snapshot database and exports.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`
}

// LookupConfig holds settings for the lookup surface.
type LookupConfig struct {
	// Method is the default lookup strategy: index or scan.
	Method Method `json:"method" yaml:"method"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Scrape ScrapeConfig `json:"scrape" yaml:"scrape"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Lookup LookupConfig `json:"lookup" yaml:"lookup"`
}
