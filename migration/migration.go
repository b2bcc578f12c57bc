package migration

import (
	"context"
	jsonencoder "encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/issuetools/youtrack-to-linear/csv"
	"github.com/issuetools/youtrack-to-linear/json"
	"github.com/issuetools/youtrack-to-linear/transform"
	"github.com/issuetools/youtrack-to-linear/types"
	"github.com/issuetools/youtrack-to-linear/youtrack"
)

// Default file names used under the configured output directory when no
// explicit path override is given.
const (
	DefaultRawFileName  = "youtrack_issues.json"
	DefaultCsvFileName  = "linear_issues.csv"
	DefaultJsonFileName = "linear_issues.json"
)

// Format selects which transformed output files are written.
type Format string

const (
	FormatCsv  Format = "csv"
	FormatJson Format = "json"
	FormatBoth Format = "both"
)

// ParseFormat reads a format flag value. The empty string means csv.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCsv:
		return FormatCsv, nil
	case FormatJson:
		return FormatJson, nil
	case FormatBoth:
		return FormatBoth, nil
	}
	return "", fmt.Errorf("unknown output format %q, expected csv, json or both", raw)
}

type MigrationClient struct {
	OutputDir      string
	YouTrackClient youtrack.IYouTrackClient
	Transformer    transform.ITransformer
	CsvClient      csv.ICsvClient
	JsonClient     json.IJsonClient
	Logger         *logrus.Logger
}

func NewMigrationClient(outputDir string, youTrackClient youtrack.IYouTrackClient, transformer transform.ITransformer, csvClient csv.ICsvClient, jsonClient json.IJsonClient, logger *logrus.Logger) *MigrationClient {
	return &MigrationClient{
		OutputDir:      outputDir,
		YouTrackClient: youTrackClient,
		Transformer:    transformer,
		CsvClient:      csvClient,
		JsonClient:     jsonClient,
		Logger:         logger,
	}
}

// Export fetches issues from YouTrack and writes the raw snapshot to
// outputPath. An empty outputPath falls back to the default file under
// OutputDir.
func (migrationClient *MigrationClient) Export(ctx context.Context, query string, limit int, outputPath string) (int, error) {
	if outputPath == "" {
		outputPath = filepath.Join(migrationClient.OutputDir, DefaultRawFileName)
	}

	count, err := migrationClient.YouTrackClient.ExportToFile(ctx, query, limit, outputPath)
	if err != nil {
		return 0, err
	}

	migrationClient.Logger.Infof("Exported %d issues to %s", count, outputPath)
	return count, nil
}

// Transform reads a raw snapshot, converts it and writes the output files
// selected by format. When preview is positive the first preview records are
// printed instead and nothing is written.
func (migrationClient *MigrationClient) Transform(inputPath string, csvPath string, jsonPath string, format Format, preview int) (types.TransformStats, error) {
	if inputPath == "" {
		inputPath = filepath.Join(migrationClient.OutputDir, DefaultRawFileName)
	}

	items, err := migrationClient.JsonClient.ImportItems(inputPath)
	if err != nil {
		return types.TransformStats{}, err
	}
	migrationClient.Logger.Infof("Loaded %d issues from %s", len(items), inputPath)

	targets, stats := migrationClient.Transformer.TransformAll(items)
	migrationClient.logSkips(stats)
	migrationClient.Logger.Infof("Transformed %d of %d issues", stats.Emitted, stats.Input)

	if preview > 0 {
		return stats, migrationClient.printPreview(targets, preview)
	}

	if format == FormatCsv || format == FormatBoth {
		if csvPath == "" {
			csvPath = filepath.Join(migrationClient.OutputDir, DefaultCsvFileName)
		}
		if err := migrationClient.CsvClient.Export(targets, csvPath); err != nil {
			return stats, err
		}
	}

	if format == FormatJson || format == FormatBoth {
		if jsonPath == "" {
			jsonPath = filepath.Join(migrationClient.OutputDir, DefaultJsonFileName)
		}
		if err := migrationClient.JsonClient.Export(targets, jsonPath); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// Run performs the full pipeline, fetching from YouTrack and transforming the
// snapshot in one go. The raw file written by the export step is the input of
// the transform step.
func (migrationClient *MigrationClient) Run(ctx context.Context, query string, limit int, rawPath string, csvPath string, jsonPath string, format Format, preview int) (types.TransformStats, error) {
	if rawPath == "" {
		rawPath = filepath.Join(migrationClient.OutputDir, DefaultRawFileName)
	}

	if _, err := migrationClient.Export(ctx, query, limit, rawPath); err != nil {
		return types.TransformStats{}, err
	}

	return migrationClient.Transform(rawPath, csvPath, jsonPath, format, preview)
}

func (migrationClient *MigrationClient) logSkips(stats types.TransformStats) {
	if stats.Skipped == 0 {
		return
	}

	migrationClient.Logger.Warnf("Skipped %d of %d issues during transformation", stats.Skipped, stats.Input)
	for _, diagnostic := range stats.Diagnostics {
		identifier := diagnostic.Identifier
		if identifier == "" {
			identifier = "(no id)"
		}
		migrationClient.Logger.Warnf("Skipped %s: %s", identifier, diagnostic.Reason)
	}
	if stats.Skipped > len(stats.Diagnostics) {
		migrationClient.Logger.Warnf("%d more skipped issues not shown", stats.Skipped-len(stats.Diagnostics))
	}
}

func (migrationClient *MigrationClient) printPreview(targets []types.TargetItem, preview int) error {
	if preview > len(targets) {
		preview = len(targets)
	}

	for _, target := range targets[:preview] {
		rendered, err := jsonencoder.MarshalIndent(target, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		fmt.Println(string(rendered))
	}

	migrationClient.Logger.Infof("Previewed %d of %d issues, no files written", preview, len(targets))
	return nil
}
