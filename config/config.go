package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/issuetools/youtrack-to-linear/types"
)

// DefaultFields is the field selection requested for every issue fetch. It
// covers everything the default field mapping can consume.
const DefaultFields = "idReadable,summary,description,created,updated,resolved,reporter(name,email),assignee(name,email),priority(name),state(name),tags(name),customFields(name,value)"

// Config carries every tunable the pipeline needs. It is built once at
// startup, validated, and passed explicitly into the clients; nothing reads
// configuration after that point.
type Config struct {
	URL        string
	Token      string
	ProjectKey string
	BatchSize  int
	Fields     string

	TeamKey      string
	DefaultState string

	OutputDir  string
	MaxRetries int
	RetryDelay time.Duration

	FieldMapping    types.FieldMapping
	StateMapping    map[string]string
	PriorityMapping map[string]string
}

// Load reads flags, environment and the optional config file through viper
// and validates the result. The URL is normalized without a trailing slash.
func Load() (*Config, error) {
	bindEnv()
	setDefaults()

	cfg := &Config{
		URL:             strings.TrimSpace(viper.GetString("url")),
		Token:           viper.GetString("token"),
		ProjectKey:      viper.GetString("projectKey"),
		BatchSize:       viper.GetInt("batchSize"),
		Fields:          viper.GetString("fields"),
		TeamKey:         viper.GetString("teamKey"),
		DefaultState:    viper.GetString("defaultState"),
		OutputDir:       viper.GetString("outputDir"),
		MaxRetries:      viper.GetInt("maxRetries"),
		RetryDelay:      time.Duration(viper.GetFloat64("retryDelay") * float64(time.Second)),
		StateMapping:    viper.GetStringMapString("stateMapping"),
		PriorityMapping: viper.GetStringMapString("priorityMapping"),
	}

	cfg.FieldMapping = types.DefaultFieldMapping()
	if err := viper.UnmarshalKey("fieldMapping", &cfg.FieldMapping); err != nil {
		return nil, fmt.Errorf("invalid fieldMapping: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("YOUTRACK_URL is required")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("YOUTRACK_URL must be an http(s) URL, got %q", cfg.URL)
	}
	if cfg.Token == "" {
		return fmt.Errorf("YOUTRACK_TOKEN is required")
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("YOUTRACK_BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}
	if cfg.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be at least 1, got %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay <= 0 {
		return fmt.Errorf("RETRY_DELAY must be positive")
	}
	return nil
}

func bindEnv() {
	viper.BindEnv("url", "YOUTRACK_URL")
	viper.BindEnv("token", "YOUTRACK_TOKEN")
	viper.BindEnv("projectKey", "YOUTRACK_PROJECT_KEY")
	viper.BindEnv("batchSize", "YOUTRACK_BATCH_SIZE")
	viper.BindEnv("fields", "YOUTRACK_FIELDS")
	viper.BindEnv("teamKey", "LINEAR_TEAM_KEY")
	viper.BindEnv("defaultState", "LINEAR_DEFAULT_STATE")
	viper.BindEnv("outputDir", "OUTPUT_DIR")
	viper.BindEnv("maxRetries", "MAX_RETRIES")
	viper.BindEnv("retryDelay", "RETRY_DELAY")
}

func setDefaults() {
	viper.SetDefault("batchSize", 100)
	viper.SetDefault("fields", DefaultFields)
	viper.SetDefault("outputDir", "./output")
	viper.SetDefault("maxRetries", 3)
	viper.SetDefault("retryDelay", 1.0)
}
