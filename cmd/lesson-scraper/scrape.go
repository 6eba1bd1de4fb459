// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lesson-scraper/internal/catalog"
	"github.com/pdiddy/lesson-scraper/internal/fetch"
	"github.com/pdiddy/lesson-scraper/internal/output"
	"github.com/pdiddy/lesson-scraper/internal/prompt"
	"github.com/pdiddy/lesson-scraper/internal/scrape"
	"github.com/pdiddy/lesson-scraper/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [notebooks...]",
	Short: "Fetch the tutorial notebooks and write their lessons",
	Long: `Scrape fetches each notebook in order, extracts its "Lesson" section and
writes the results either as one Markdown file per lesson or as a single
combined file. Notebooks that fail to download or parse are reported and
skipped. Without arguments the built-in tutorial list (or scrape.notebooks
from the config file) is used.

When --mode is not given, scrape asks which output mode to use.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Duration("delay", 0, "pause between consecutive fetches (default 500ms)")
	scrapeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	scrapeCmd.Flags().String("base-url", "", "URL of the directory holding the notebooks")
	scrapeCmd.Flags().String("from-dir", "", "read notebooks from a local directory instead of fetching")
	scrapeCmd.Flags().String("output-dir", "", "directory for output files (default .)")
	scrapeCmd.Flags().String("mode", "", "output mode: individual or combined (default: ask)")
	scrapeCmd.Flags().String("format", "", "output format: markdown or html (default markdown)")
	scrapeCmd.Flags().Bool("index", false, "also store extracted lessons in the catalog")
	scrapeCmd.Flags().String("catalog-dir", "", "catalog directory (default catalog)")

	viper.BindPFlag(keyDelay, scrapeCmd.Flags().Lookup("delay"))
	viper.BindPFlag(keyTimeout, scrapeCmd.Flags().Lookup("timeout"))
	viper.BindPFlag(keyBaseURL, scrapeCmd.Flags().Lookup("base-url"))
	viper.BindPFlag(keyOutputDir, scrapeCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag(keyOutputMode, scrapeCmd.Flags().Lookup("mode"))
	viper.BindPFlag(keyOutputFormat, scrapeCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Catalog = catalogConfig(cmd, cfg.Catalog)

	ids := args
	if len(ids) == 0 {
		ids = cfg.Scrape.Notebooks
	}
	if len(ids) == 0 {
		ids = scrape.DefaultNotebooks
	}

	var f fetch.Fetcher
	if dir, _ := cmd.Flags().GetString("from-dir"); dir != "" {
		f = fetch.DirFetcher{Dir: dir}
	} else {
		client := &http.Client{Timeout: cfg.Scrape.Timeout}
		f = fetch.NewHTTPFetcher(client, cfg.Scrape)
	}
	slog.Debug("starting batch", "notebooks", len(ids), "delay", cfg.Scrape.Delay)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lesson-scraper %s: extracting lessons from %d notebooks\n\n", version, len(ids))

	result := scrape.ScrapeBatch(cmd.Context(), f, ids, cfg.Scrape.Delay, out)
	if result.Empty() {
		printNoLessons(out)
		return nil
	}

	fmt.Fprintf(out, "\nExtracted %d lessons:\n", len(result.Lessons))
	for i, l := range result.Lessons {
		fmt.Fprintf(out, "  %d. %s\n", i+1, l.Title)
	}

	if index, _ := cmd.Flags().GetBool("index"); index {
		if err := indexLessons(cmd, cfg.Catalog, result.Lessons, out); err != nil {
			fmt.Fprintf(out, "warning: catalog indexing failed: %v\n", err)
		}
	}

	mode := cfg.Output.Mode
	if mode == "" {
		mode, err = prompt.ChooseMode(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	written, err := output.Write(output.DirSink{Dir: cfg.Output.Dir}, result.Lessons, output.Options{
		Mode:          mode,
		Format:        cfg.Output.Format,
		CombinedTitle: cfg.Output.CombinedTitle,
	}, out)
	if err != nil {
		return err
	}
	if written.HasFailures() {
		return fmt.Errorf("%d output file(s) could not be written", len(written.Errors))
	}

	fmt.Fprintln(out, "\nScraping complete. Your lesson files are ready to study.")
	return nil
}

func indexLessons(cmd *cobra.Command, cfg types.CatalogConfig, lessons []types.Lesson, out io.Writer) error {
	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintln(out)
	_, err = store.Index(cmd.Context(), lessons, out)
	return err
}

func printNoLessons(w io.Writer) {
	fmt.Fprintln(w, "\nNo lessons found!")
	fmt.Fprintln(w, "\nThis might be due to:")
	fmt.Fprintln(w, "  - network connectivity issues")
	fmt.Fprintln(w, "  - changes to the tutorial repository layout")
	fmt.Fprintln(w, "  - notebooks without a \"## Lesson\" heading")
}
