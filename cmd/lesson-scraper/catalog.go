// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdiddy/lesson-scraper/internal/catalog"
	"github.com/pdiddy/lesson-scraper/internal/output"
	"github.com/pdiddy/lesson-scraper/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons stored in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search catalog lessons by title and body",
	Long: `Search finds lessons whose title or body contains the query, ignoring
case. Lessons with a matching title are listed first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var showCmd = &cobra.Command{
	Use:   "show <notebook>",
	Short: "Render one catalog lesson in the terminal",
	Long: `Show prints a stored lesson rendered for the terminal. The notebook may be
given with or without its .ipynb suffix. Use --raw for plain Markdown.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, searchCmd, showCmd, exportCmd} {
		c.Flags().String("catalog-dir", "", "catalog directory (default catalog)")
		rootCmd.AddCommand(c)
	}
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	showCmd.Flags().Bool("raw", false, "print Markdown without terminal rendering")
	showCmd.Flags().Int("width", 80, "word wrap width for terminal rendering")
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
}

// catalogConfig applies the --catalog-dir flag of cmd on top of cfg.
func catalogConfig(cmd *cobra.Command, cfg types.CatalogConfig) types.CatalogConfig {
	if dir, _ := cmd.Flags().GetString("catalog-dir"); dir != "" {
		cfg.Dir = dir
	}
	return cfg
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(catalogConfig(cmd, cfg.Catalog))
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	lessons, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty; run \"lesson-scraper scrape --index\" first")
		return nil
	}
	printTable(cmd.OutOrStdout(), lessons)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	lessons, err := store.Search(cmd.Context(), strings.Join(args, " "), maxResults)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if lessons == nil {
			lessons = []types.Lesson{}
		}
		return enc.Encode(lessons)
	}
	if len(lessons) == 0 {
		fmt.Fprintln(out, "no matches")
		return nil
	}
	printTable(out, lessons)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	l, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	doc := output.RenderLesson(l)

	out := cmd.OutOrStdout()
	raw, _ := cmd.Flags().GetBool("raw")
	if raw || !isTerminal(out) {
		fmt.Fprintln(out, doc)
		return nil
	}

	width, _ := cmd.Flags().GetInt("width")
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering lesson: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	var path string
	switch format {
	case "yaml":
		path, err = store.ExportYAML(cmd.Context())
	case "json":
		path, err = store.ExportJSON(cmd.Context())
	default:
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", path)
	return nil
}

func printTable(w io.Writer, lessons []types.Lesson) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NOTEBOOK\tTITLE")
	for _, l := range lessons {
		fmt.Fprintf(tw, "%s\t%s\n", output.Stem(l.ID), l.Title)
	}
	tw.Flush()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
