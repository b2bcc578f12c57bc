/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export issues from YouTrack to a raw JSON snapshot",
	Long: `The export command fetches issues from YouTrack in batches and stores
them unchanged as one JSON array. The snapshot is the input of the
transform command.

Issues are scoped to the configured project key when one is set and can
be narrowed further with a YouTrack query.

Examples:
  # Export every issue of the configured project
  youtrack-to-linear export

  # Export open issues only
  youtrack-to-linear export --query "state: Open"

  # Export a sample of 50 issues to a custom file
  youtrack-to-linear export --limit 50 --outputFile ./sample.json`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")
		outputFile, _ := cmd.Flags().GetString("outputFile")

		cfg := loadConfig()
		migrationClient := newMigrationClient(cfg)

		if _, err := migrationClient.Export(context.Background(), query, limit, outputFile); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Info("Run 'youtrack-to-linear transform' to convert the snapshot")
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("query", "q", "", "YouTrack query to filter issues")
	exportCmd.Flags().IntP("limit", "l", 0, "Maximum number of issues to export (0 exports everything)")
	exportCmd.Flags().StringP("outputFile", "o", "", "File for the raw snapshot (default is <outputDir>/youtrack_issues.json)")
}
