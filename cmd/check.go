package cmd

import (
	"fmt"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/catalog"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/deck"
	"github.com/Famito-GH/11.SestaveniIlustrace/internal/merge"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run: validate the catalog and report slide matches",
	Long: `Check loads the catalog and the template without rendering anything
and reports which models match a template slide, which rows would be
dropped, and whether the dataset schema is complete.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := requireTemplate(); err != nil {
		return err
	}
	source, err := resolveSource(dataPath)
	if err != nil {
		return err
	}

	table, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	template, err := deck.Open(templatePath)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}

	groups, stats, err := catalog.ValidateAndGroup(table, catalog.RequiredColumns(), nil, decimalComma)
	if err != nil {
		return err
	}

	fmt.Printf("Dataset:  %s (%d rows, %d dropped as incomplete)\n", source.Path(), stats.Total, stats.Dropped)
	fmt.Printf("Template: %s (%d slides)\n\n", templatePath, len(template.Slides()))

	matched := 0
	for _, group := range groups {
		if idx, ok := merge.FindSlide(template, group.Key, decimalComma); ok {
			fmt.Printf("  model %-16s -> slide %d (%d rows)\n", group.Key, idx+1, len(group.Rows))
			matched++
		} else {
			fmt.Printf("  model %-16s -> NO MATCHING SLIDE (%d rows would be skipped)\n", group.Key, len(group.Rows))
		}
	}
	if len(groups) == 0 {
		fmt.Println("  no exportable rows")
	}
	fmt.Printf("\n%d of %d models matched.\n", matched, len(groups))
	return nil
}
