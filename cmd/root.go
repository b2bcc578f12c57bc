/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/issuetools/youtrack-to-linear/backoff"
	"github.com/issuetools/youtrack-to-linear/config"
	"github.com/issuetools/youtrack-to-linear/csv"
	"github.com/issuetools/youtrack-to-linear/json"
	"github.com/issuetools/youtrack-to-linear/migration"
	"github.com/issuetools/youtrack-to-linear/transform"
	"github.com/issuetools/youtrack-to-linear/youtrack"
)

var log = logrus.New()

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "youtrack-to-linear",
	Short: "Export YouTrack issues and convert them for Linear import",
	Long: `youtrack-to-linear exports issues from a YouTrack server and converts
them into files the Linear importer understands.

The tool runs in two steps that can also be combined:

1. export    fetches issues over the YouTrack REST API and stores them
             as a raw JSON snapshot
2. transform converts a raw snapshot into Linear import files (CSV,
             JSON or both)

Connection settings come from flags, a config file or environment
variables. A .env file in the working directory is picked up
automatically.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./youtrack-to-linear.yaml)")
	rootCmd.PersistentFlags().String("verbosity", "info", "Log verbosity level (trace, debug, info, warn, error)")
	viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
	rootCmd.PersistentFlags().Bool("structuredLogs", false, "Emit logs as JSON")
	viper.BindPFlag("structuredLogs", rootCmd.PersistentFlags().Lookup("structuredLogs"))
	rootCmd.PersistentFlags().StringP("outputDir", "d", "", "Directory for generated files")
	viper.BindPFlag("outputDir", rootCmd.PersistentFlags().Lookup("outputDir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env file")
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("youtrack-to-linear")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func setupLogging(cmd *cobra.Command) {
	logVerbosity, _ := cmd.Flags().GetString("verbosity")
	logLevel, err := logrus.ParseLevel(logVerbosity)
	if err != nil {
		log.Fatalf("Invalid log level: %s", logVerbosity)
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{})
	if viper.GetBool("structuredLogs") {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	for key, value := range viper.GetViper().AllSettings() {
		if key == "token" {
			continue
		}
		log.Debugf("Command Flag: %s = %v", key, value)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	return cfg
}

func newYouTrackClient(cfg *config.Config) *youtrack.YouTrackClient {
	policy := backoff.NewPolicy(cfg.MaxRetries, cfg.RetryDelay, backoff.DefaultMaxDelay, youtrack.IsRetryable)

	client := youtrack.NewYouTrackClient(
		cfg.URL,
		cfg.Token,
		cfg.ProjectKey,
		cfg.BatchSize,
		cfg.Fields,
		policy,
		json.NewJsonClient(log),
		log,
	)
	client.Progress = func(fetched int, total int) {
		if total >= 0 {
			log.Infof("Fetched %d/%d issues", fetched, total)
			return
		}
		log.Infof("Fetched %d issues", fetched)
	}
	return client
}

func newMigrationClient(cfg *config.Config) *migration.MigrationClient {
	transformer := transform.NewTransformer(
		cfg.FieldMapping,
		cfg.DefaultState,
		cfg.StateMapping,
		cfg.PriorityMapping,
		log,
	)

	return migration.NewMigrationClient(
		cfg.OutputDir,
		newYouTrackClient(cfg),
		transformer,
		csv.NewCsvClient(log),
		json.NewJsonClient(log),
		log,
	)
}
