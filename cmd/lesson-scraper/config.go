// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/lesson-scraper/internal/fetch"
	"github.com/pdiddy/lesson-scraper/internal/output"
	"github.com/pdiddy/lesson-scraper/internal/scrape"
	"github.com/pdiddy/lesson-scraper/internal/secrets"
	"github.com/pdiddy/lesson-scraper/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultCatalogDir = "catalog"
)

// Viper keys. Nested keys map to LESSON_SCRAPER_<SECTION>_<KEY> in the
// environment.
const (
	keyBaseURL       = "scrape.base_url"
	keyNotebooks     = "scrape.notebooks"
	keyDelay         = "scrape.delay"
	keyTimeout       = "scrape.timeout"
	keyUserAgent     = "scrape.user_agent"
	keyToken         = "scrape.token"
	keyOutputDir     = "output.dir"
	keyOutputMode    = "output.mode"
	keyOutputFormat  = "output.format"
	keyCombinedTitle = "output.combined_title"
	keyCatalogDir    = "catalog.dir"
	keyMaxResults    = "catalog.max_results"
)

func setDefaults() {
	viper.SetDefault(keyBaseURL, fetch.DefaultBaseURL)
	viper.SetDefault(keyDelay, scrape.DefaultDelay)
	viper.SetDefault(keyTimeout, defaultTimeout)
	viper.SetDefault(keyUserAgent, fetch.DefaultUserAgent)
	viper.SetDefault(keyOutputDir, ".")
	viper.SetDefault(keyOutputFormat, string(types.FormatMarkdown))
	viper.SetDefault(keyCombinedTitle, output.DefaultCombinedTitle)
	viper.SetDefault(keyCatalogDir, defaultCatalogDir)
	viper.SetDefault(keyMaxResults, 20)
}

// loadConfig assembles the configuration from viper (flags, environment,
// config file, defaults) and the secrets directory.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Scrape: types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration(keyTimeout),
				UserAgent: viper.GetString(keyUserAgent),
				Token:     loadedSecrets.Get(secrets.GitHubToken, viper.GetString(keyToken)),
			},
			BaseURL:   viper.GetString(keyBaseURL),
			Notebooks: viper.GetStringSlice(keyNotebooks),
			Delay:     viper.GetDuration(keyDelay),
		},
		Output: types.OutputConfig{
			Dir:           viper.GetString(keyOutputDir),
			Mode:          types.OutputMode(viper.GetString(keyOutputMode)),
			Format:        types.OutputFormat(viper.GetString(keyOutputFormat)),
			CombinedTitle: viper.GetString(keyCombinedTitle),
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString(keyCatalogDir),
			MaxResults: viper.GetInt(keyMaxResults),
		},
	}

	if cfg.Output.Mode != "" && !cfg.Output.Mode.Valid() {
		return cfg, fmt.Errorf("invalid output mode %q (want %q or %q)", cfg.Output.Mode, types.ModeIndividual, types.ModeCombined)
	}
	if !cfg.Output.Format.Valid() {
		return cfg, fmt.Errorf("invalid output format %q (want %q or %q)", cfg.Output.Format, types.FormatMarkdown, types.FormatHTML)
	}
	if cfg.Scrape.Delay < 0 {
		return cfg, fmt.Errorf("delay must not be negative: %v", cfg.Scrape.Delay)
	}
	return cfg, nil
}
