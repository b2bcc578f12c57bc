/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/issuetools/youtrack-to-linear/migration"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run export and transform in one go",
	Long: `The migrate command runs the full pipeline: it exports issues from
YouTrack into a raw snapshot and immediately converts the snapshot into
Linear import files.

Examples:
  # Full migration of the configured project to CSV
  youtrack-to-linear migrate

  # Migrate resolved issues only, writing CSV and JSON
  youtrack-to-linear migrate --query "state: Resolved" --format both`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")
		rawFile, _ := cmd.Flags().GetString("rawFile")
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

		stats, err := migrationClient.Run(context.Background(), query, limit, rawFile, csvFile, jsonFile, format, preview)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Infof("Migration finished: %d issues in, %d converted, %d skipped", stats.Input, stats.Emitted, stats.Skipped)
		if preview == 0 && cfg.TeamKey != "" {
			log.Infof("Upload the generated files to Linear team %s", cfg.TeamKey)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringP("query", "q", "", "YouTrack query to filter issues")
	migrateCmd.Flags().IntP("limit", "l", 0, "Maximum number of issues to export (0 exports everything)")
	migrateCmd.Flags().String("rawFile", "", "File for the raw snapshot (default is <outputDir>/youtrack_issues.json)")
	migrateCmd.Flags().String("csvFile", "", "CSV output file (default is <outputDir>/linear_issues.csv)")
	migrateCmd.Flags().String("jsonFile", "", "JSON output file (default is <outputDir>/linear_issues.json)")
	migrateCmd.Flags().StringP("format", "f", "csv", "Output format: csv, json or both")
	migrateCmd.Flags().IntP("preview", "p", 0, "Print the first N converted issues instead of writing files")
}
