package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/preview"
	"github.com/kamusis/skilldex/internal/search/index"
)

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show one collection entry and the outline of its source file",
	Long: `Display the stored fields of a collection entry, followed by the header
fields and heading outline of the Markdown file it was extracted from.

Keys are printed by 'skilldex list' and 'skilldex search'.

Example:
  skilldex show local_skill_0003`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	col, err := index.Load(cfg.Output)
	if err != nil {
		return fmt.Errorf("%w\nRun 'skilldex build' first.", err)
	}

	key := args[0]
	e, ok := col.Get(key)
	if !ok {
		printMiss("", fmt.Sprintf("no entry with key %q", key))
		return fmt.Errorf("entry not found: %s", key)
	}

	printSection(e.Title)
	fmt.Fprintf(stdout, "  Key:         %s\n", key)
	fmt.Fprintf(stdout, "  Type:        %s\n", e.Type)
	fmt.Fprintf(stdout, "  Category:    %s\n", e.Category)
	fmt.Fprintf(stdout, "  Path:        %s\n", e.Path)
	fmt.Fprintf(stdout, "  Keywords:    %s\n", strings.Join(e.Keywords, ", "))
	fmt.Fprintf(stdout, "  Description: %s\n", e.Description)

	p, err := preview.File(e.Path)
	if err != nil {
		fmt.Fprintln(stdout)
		printWarn("", fmt.Sprintf("source unavailable: %v", err))
		return nil
	}
	printPreview(p)
	return nil
}

func printPreview(p *preview.Preview) {
	if p.HeaderErr != nil {
		fmt.Fprintln(stdout)
		printWarn("", p.HeaderErr.Error())
	}
	if len(p.Fields) > 0 {
		printBullet("Header:")
		for _, f := range p.Fields {
			fmt.Fprintf(stdout, "  %s: %s\n", f.Key, f.Value)
		}
	}
	printBullet("Outline:")
	outline := p.Outline()
	if len(outline) == 0 {
		printSkip("", "no headings")
		return
	}
	for _, line := range outline {
		fmt.Fprintf(stdout, "  %s\n", line)
	}
}
