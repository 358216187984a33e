package cmd

import (
	"log"

	"github.com/Famito-GH/11.SestaveniIlustrace/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive interface (same as default)",
	Long: `Start the interactive terminal interface: pick between exporting the
whole catalog or a hand-selected subset of products, then watch the
batch run.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	source, err := resolveSource(dataPath)
	if err != nil {
		return err
	}
	if err := requireTemplate(); err != nil {
		return err
	}
	logger, logPath, closeLog, err := newLogger(outputDir, false)
	if err != nil {
		return err
	}
	defer closeLog()

	newEngine, imageExt, err := engineFactory(logger)
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Config{
		Source:       source,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		DecimalComma: decimalComma,
		Logger:       logger,
		LogPath:      logPath,
		NewEngine:    newEngine,
		ImageExt:     imageExt,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running TUI: %v", err)
	}
	return nil
}
