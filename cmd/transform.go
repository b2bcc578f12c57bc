/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/issuetools/youtrack-to-linear/migration"
)

// transformCmd represents the transform command
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Convert a raw snapshot into Linear import files",
	Long: `The transform command reads a raw JSON snapshot produced by the export
command, maps every issue onto the Linear import schema and writes the
result as CSV, JSON or both.

Issues without a usable title are skipped and reported. Wiki markup in
descriptions is converted to Markdown.

Examples:
  # Convert the default snapshot to CSV
  youtrack-to-linear transform

  # Write CSV and JSON files
  youtrack-to-linear transform --format both

  # Inspect the first 5 converted issues without writing files
  youtrack-to-linear transform --preview 5`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		inputFile, _ := cmd.Flags().GetString("inputFile")
		csvFile, _ := cmd.Flags().GetString("csvFile")
		jsonFile, _ := cmd.Flags().GetString("jsonFile")
		rawFormat, _ := cmd.Flags().GetString("format")
		preview, _ := cmd.Flags().GetInt("preview")

		format, err := migration.ParseFormat(rawFormat)
		if err != nil {
			log.Fatalf("Invalid format: %v", err)
		}

		cfg := loadConfig()
		migrationClient := newMigrationClient(cfg)

		if _, err := migrationClient.Transform(inputFile, csvFile, jsonFile, format, preview); err != nil {
			log.Fatalf("Transform failed: %v", err)
		}
		if preview == 0 && cfg.TeamKey != "" {
			log.Infof("Upload the generated files to Linear team %s", cfg.TeamKey)
		}
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringP("inputFile", "i", "", "Raw snapshot to read (default is <outputDir>/youtrack_issues.json)")
	transformCmd.Flags().String("csvFile", "", "CSV output file (default is <outputDir>/linear_issues.csv)")
	transformCmd.Flags().String("jsonFile", "", "JSON output file (default is <outputDir>/linear_issues.json)")
	transformCmd.Flags().StringP("format", "f", "csv", "Output format: csv, json or both")
	transformCmd.Flags().IntP("preview", "p", 0, "Print the first N converted issues instead of writing files")
}
