package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dataPath     string
	templatePath string
	outputDir    string
	engineName   string
	sofficePath  string
	decimalComma bool
)

var rootCmd = &cobra.Command{
	Use:   "illustrator",
	Short: "Mass-produce catalog illustrations from a slide template",
	Long: `Illustrator merges a product catalog spreadsheet into a PPTX slide
template and exports one image per product. Each row is matched to the
template slide whose model-number placeholder equals the row's model,
the measurement placeholders are filled in with unit-formatted values,
and the populated slide is rendered to an image named after the
product code.

Running without a subcommand starts the interactive interface.`,
	RunE: runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", ".", "catalog .xlsx/.csv file, or a folder holding one")
	rootCmd.PersistentFlags().StringVarP(&templatePath, "template", "t", "", "template .pptx file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "./exported_slides", "output directory for images")
	rootCmd.PersistentFlags().StringVarP(&engineName, "engine", "e", "soffice", "rendering engine: soffice or goppt")
	rootCmd.PersistentFlags().StringVar(&sofficePath, "soffice", "", "explicit path to the soffice binary")
	rootCmd.PersistentFlags().BoolVar(&decimalComma, "decimal-comma", false, "treat a comma as the decimal separator when matching model numbers")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tuiCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	if v := os.Getenv("ILLUSTRATOR_DATA_DIR"); v != "" {
		dataPath = v
	}
	if v := os.Getenv("ILLUSTRATOR_TEMPLATE"); v != "" {
		templatePath = v
	}
	if v := os.Getenv("ILLUSTRATOR_OUTPUT_DIR"); v != "" {
		outputDir = v
	}
	if v := os.Getenv("ILLUSTRATOR_ENGINE"); v != "" {
		engineName = v
	}
	if v := os.Getenv("ILLUSTRATOR_SOFFICE"); v != "" {
		sofficePath = v
	}
	if os.Getenv("ILLUSTRATOR_DECIMAL_COMMA") == "1" {
		decimalComma = true
	}
}
