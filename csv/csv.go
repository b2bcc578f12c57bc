package csv

import (
	csvwriter "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/issuetools/youtrack-to-linear/types"
)

type ICsvClient interface {
	Export(items []types.TargetItem, path string) error
}

type CsvClient struct {
	Header []string
	Logger *logrus.Logger
}

// NewCsvClient returns a writer for the destination tracker's import CSV.
// The header is the column order its importer expects; every row carries all
// ten columns, empty when a field was not populated.
func NewCsvClient(logger *logrus.Logger) *CsvClient {
	return &CsvClient{
		Header: []string{"Title", "Description", "Created At", "Updated At", "Identifier", "Creator Email", "Assignee Email", "Priority", "State", "Labels"},
		Logger: logger,
	}
}

func (csvClient *CsvClient) Export(items []types.TargetItem, path string) error {
	csvData := [][]string{csvClient.Header}
	for _, item := range items {
		csvData = append(csvData, []string{
			item.Title,
			item.Description,
			item.CreatedAt,
			item.UpdatedAt,
			item.Identifier,
			item.CreatorEmail,
			item.AssigneeEmail,
			item.Priority,
			item.State,
			strings.Join(item.Labels, ","),
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	csvFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer csvFile.Close()

	writer := csvwriter.NewWriter(csvFile)
	defer writer.Flush()
	if err := writer.WriteAll(csvData); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	csvClient.Logger.Infof("Wrote %d rows to %s", len(items), path)
	return nil
}
