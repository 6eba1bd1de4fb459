package types

import "time"

// HTTPConfig holds HTTP settings used by the notebook fetcher.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Token is an optional GitHub token sent as a bearer Authorization header.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// ScrapeConfig holds settings for the fetch-and-extract batch.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the directory URL notebook identifiers are resolved against.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Notebooks is the ordered list of notebook identifiers to process.
	// Empty means the built-in tutorial list.
	Notebooks []string `json:"notebooks,omitempty" yaml:"notebooks,omitempty"`

	// Delay is the pause between consecutive fetches (default 500ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// OutputConfig holds settings for writing extracted lessons.
type OutputConfig struct {
	// Dir is the directory output files are written to (default ".").
	Dir string `json:"dir" yaml:"dir"`

	// Mode selects individual or combined output. Empty means ask.
	Mode OutputMode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Format selects markdown or html output (default markdown).
	Format OutputFormat `json:"format" yaml:"format"`

	// CombinedTitle is the top-level heading of the combined file.
	CombinedTitle string `json:"combined_title" yaml:"combined_title"`
}

// CatalogConfig holds settings for the lesson catalog.
type CatalogConfig struct {
	// Dir is the directory containing lessons.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all settings for the lesson-scraper CLI.
type Config struct {
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
