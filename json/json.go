package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/issuetools/youtrack-to-linear/types"
)

type IJsonClient interface {
	Export(payload any, path string) error
	ImportItems(path string) ([]types.RawItem, error)
}

type JsonClient struct {
	Logger *logrus.Logger
}

func NewJsonClient(logger *logrus.Logger) *JsonClient {
	return &JsonClient{
		Logger: logger,
	}
}

// Export writes payload as indented JSON. The data goes to a temporary file
// first and is renamed into place, so a reader never observes a partial file
// at path.
func (jsonClient *JsonClient) Export(payload any, path string) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	jsonClient.Logger.Debugf("Wrote %s", path)
	return nil
}

func (jsonClient *JsonClient) ImportItems(path string) ([]types.RawItem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	items, err := types.ParseItems(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	jsonClient.Logger.Debugf("Read %d items from %s", len(items), path)
	return items, nil
}
