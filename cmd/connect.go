/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Verify the connection to the YouTrack server",
	Long: `The connect command validates the configured URL and token by calling
the YouTrack API, and checks that the configured project exists when a
project key is set.

Examples:
  # Verify credentials from .env or environment variables
  youtrack-to-linear connect

  # Verify against an explicit config file
  youtrack-to-linear connect --config ./youtrack-to-linear.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)

		cfg := loadConfig()
		client := newYouTrackClient(cfg)
		ctx := context.Background()

		name, err := client.CheckConnection(ctx)
		if err != nil {
			log.Fatalf("Error connecting to %s: %v", cfg.URL, err)
		}
		if name != "" {
			log.Infof("Connected to %s as %s", cfg.URL, name)
		} else {
			log.Infof("Connected to %s", cfg.URL)
		}

		if cfg.ProjectKey != "" {
			project, err := client.Project(ctx, cfg.ProjectKey)
			if err != nil {
				log.Fatalf("Error looking up project %s: %v", cfg.ProjectKey, err)
			}
			log.Infof("Found project %s (%s)", project.Name, project.ShortName)
		}
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
