package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kamusis/skilldex/internal/search/index"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show collection metadata and entry counts",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	col, err := index.Load(cfg.Output)
	if err != nil {
		return fmt.Errorf("%w\nRun 'skilldex build' first.", err)
	}

	printSection("Collection")
	fmt.Fprintf(stdout, "  Name:        %s\n", emptyAsNA(col.Metadata.Name))
	fmt.Fprintf(stdout, "  Version:     %s\n", emptyAsNA(col.Metadata.Version))
	fmt.Fprintf(stdout, "  Created:     %s\n", emptyAsNA(col.Metadata.Created))
	fmt.Fprintf(stdout, "  Total items: %d\n", col.Metadata.TotalItems)
	fmt.Fprintf(stdout, "  File:        %s\n", cfg.Output)
	if !col.Consistent() {
		printWarn("", fmt.Sprintf("total_items is %d but the index holds %d entries", col.Metadata.TotalItems, col.Len()))
	}

	byType, byCategory := countEntries(col)

	printBullet("By type:")
	for _, k := range sortedKeys(byType) {
		fmt.Fprintf(stdout, "  %-20s %d\n", k, byType[k])
	}
	printBullet("By category:")
	for _, k := range sortedKeys(byCategory) {
		fmt.Fprintf(stdout, "  %-20s %d\n", k, byCategory[k])
	}
	return nil
}

func countEntries(col *index.Collection) (byType, byCategory map[string]int) {
	byType = make(map[string]int)
	byCategory = make(map[string]int)
	col.Range(func(_ string, e index.Entry) bool {
		byType[e.Type]++
		byCategory[e.Category]++
		return true
	})
	return byType, byCategory
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
