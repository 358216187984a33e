package cmd

import (
	"fmt"
	"strings"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/batch"

	"github.com/spf13/cobra"
)

var codesFlag string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the batch export",
	Long: `Run the full batch: every valid catalog row is bound to its template
slide and exported as an image. Use --codes to export only a subset of
product codes.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&codesFlag, "codes", "c", "", "comma-separated product codes to export (default: all)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireTemplate(); err != nil {
		return err
	}
	source, err := resolveSource(dataPath)
	if err != nil {
		return err
	}
	logger, logPath, closeLog, err := newLogger(outputDir, true)
	if err != nil {
		return err
	}
	defer closeLog()

	newEngine, imageExt, err := engineFactory(logger)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Logger:    logger,
		NewEngine: newEngine,
		ImageExt:  imageExt,
	}
	summary, err := runner.Run(cmd.Context(), batch.Request{
		Source:       source,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Codes:        splitCodes(codesFlag),
		DecimalComma: decimalComma,
	})
	if err != nil {
		return err
	}

	if summary.Exported == 0 {
		fmt.Println("Nothing to export.")
	} else {
		fmt.Printf("Exported %d of %d images to %s\n", summary.Exported, summary.TotalRows, summary.OutputDir)
	}
	if summary.SkippedRows > 0 || summary.SkippedGroups > 0 {
		fmt.Printf("Skipped %d rows (%d whole models); see %s\n", summary.SkippedRows, summary.SkippedGroups, logPath)
	}
	return nil
}

func splitCodes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
