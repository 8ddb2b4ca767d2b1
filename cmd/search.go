package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/extract"
	"github.com/kamusis/skilldex/internal/search"
)

var flagSearchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query> [type]",
	Short: "Search the collection by title or keyword",
	Long: `Print every entry whose title or one of whose keywords contains the
query, ignoring case. The optional type (skill or document) restricts the
results. The query is matched as one substring, so quote multi-word queries.

Example:
  skilldex search 天气查询
  skilldex search github skill`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSearch,
}

var listCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List the entries in the collection",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "print results as JSON")
	listCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "print entries as JSON")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
}

// openEngine loads the configured collection. Load failures are reported
// but never fatal; the engine then answers with empty results.
func openEngine(cmd *cobra.Command) (*search.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := search.Open(cmd.Context(), cfg.Output)
	if e.Err() != nil && !flagSearchJSON {
		printWarn("", fmt.Sprintf("collection not loaded (%v); run 'skilldex build'", e.Err()))
	}
	return e, nil
}

func typeArg(args []string, i int) string {
	if len(args) <= i {
		return ""
	}
	t := args[i]
	if _, ok := extract.ParseKind(t); !ok && !flagSearchJSON {
		printWarn("", fmt.Sprintf("unknown type %q — expected skill or document", t))
	}
	return t
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd)
	if err != nil {
		return err
	}
	query := args[0]
	results := e.Search(query, typeArg(args, 1))

	if flagSearchJSON {
		return printJSON(results)
	}
	printSearchResults(query, results)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd)
	if err != nil {
		return err
	}
	items := e.List(typeArg(args, 0))

	if flagSearchJSON {
		return printJSON(items)
	}
	printListItems(items)
	return nil
}

func printSearchResults(query string, results []search.Result) {
	if len(results) == 0 {
		printMiss("", fmt.Sprintf("no results for %q", query))
		return
	}
	fmt.Fprintf(stdout, "\nskilldex search %q\n\n", query)
	fmt.Fprintf(stdout, "Results (%d found):\n", len(results))
	for i, r := range results {
		fmt.Fprintf(stdout, "\n  %d. %s\n", i+1, bold(r.Title))
		fmt.Fprintf(stdout, "     key: %s | type: %s | category: %s\n", r.Key, r.Type, r.Category)
		fmt.Fprintf(stdout, "     path: %s\n", r.Path)
		fmt.Fprintf(stdout, "     keywords: %s\n", strings.Join(r.Keywords, ", "))
	}
}

func printListItems(items []search.Item) {
	if len(items) == 0 {
		printMiss("", "no entries")
		return
	}
	fmt.Fprintf(stdout, "\nEntries (%d):\n", len(items))
	for i, it := range items {
		fmt.Fprintf(stdout, "\n  %d. %s\n", i+1, bold(it.Title))
		fmt.Fprintf(stdout, "     key: %s | type: %s | category: %s\n", it.Key, it.Type, it.Category)
		fmt.Fprintf(stdout, "     path: %s\n", it.Path)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
