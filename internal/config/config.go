package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config represents the complete configuration for heliotrack.
type Config struct {
	// Upstream API
	APIKey  string `yaml:"api_key" json:"api_key"`
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Date window: explicit start/end dates (YYYY-MM-DD, inclusive) or a
	// rolling window ending now.
	StartDate  string `yaml:"start_date" json:"start_date"`
	EndDate    string `yaml:"end_date" json:"end_date"`
	WindowDays int    `yaml:"window_days" json:"window_days"`

	// Output
	Format    string `yaml:"format" json:"format"`
	OutPath   string `yaml:"out_path" json:"out_path"`
	ChartPath string `yaml:"chart_path" json:"chart_path"`
	NoChart   bool   `yaml:"no_chart" json:"no_chart"`

	// Fetch behavior
	Retries     int     `yaml:"retries" json:"retries"`
	RateLimit   float64 `yaml:"rate_limit" json:"rate_limit"`
	Burst       int     `yaml:"burst" json:"burst"`
	CacheTTLMin int     `yaml:"cache_ttl_min" json:"cache_ttl_min"`

	// Observability
	MetricsAddr  string `yaml:"metrics_addr" json:"metrics_addr"`
	OTELEndpoint string `yaml:"otel_endpoint" json:"otel_endpoint"`
	OTELInsecure bool   `yaml:"otel_insecure" json:"otel_insecure"`
	OTELService  string `yaml:"otel_service" json:"otel_service"`

	// Redis (optional cross-run fetch cache)
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`
}

// SetDefaults sets default values for the configuration.
func (c *Config) SetDefaults() {
	if c.APIKey == "" {
		c.APIKey = "DEMO_KEY"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.nasa.gov/DONKI"
	}
	if c.WindowDays == 0 {
		c.WindowDays = 30
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.ChartPath == "" {
		c.ChartPath = "space_weather_timeline.png"
	}
	if c.Retries == 0 {
		c.Retries = 3
	}
	if c.RateLimit == 0 {
		c.RateLimit = 0.5
	}
	if c.Burst == 0 {
		c.Burst = 3
	}
	if c.CacheTTLMin == 0 {
		c.CacheTTLMin = 30
	}
	if c.OTELService == "" {
		c.OTELService = "heliotrack"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "text", "json", "jsonl", "csv":
	default:
		return fmt.Errorf("format must be one of text, json, jsonl, csv (got %q)", c.Format)
	}
	if c.WindowDays < 1 {
		return fmt.Errorf("window_days must be at least 1")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1")
	}
	if (c.StartDate == "") != (c.EndDate == "") {
		return fmt.Errorf("start_date and end_date must be set together")
	}
	if c.StartDate != "" {
		start, err := time.Parse(dateLayout, c.StartDate)
		if err != nil {
			return fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := time.Parse(dateLayout, c.EndDate)
		if err != nil {
			return fmt.Errorf("invalid end_date: %w", err)
		}
		if end.Before(start) {
			return fmt.Errorf("end_date precedes start_date")
		}
	}
	return nil
}

// DateRange resolves the fetch window: explicit dates when configured,
// otherwise a rolling WindowDays window ending at now.
func (c *Config) DateRange(now time.Time) (time.Time, time.Time, error) {
	if c.StartDate != "" {
		start, err := time.Parse(dateLayout, c.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := time.Parse(dateLayout, c.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
		}
		return start.UTC(), end.UTC(), nil
	}
	end := now.UTC()
	return end.AddDate(0, 0, -c.WindowDays), end, nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	config.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadFromEnv loads credentials and addresses from environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("NASA_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("DONKI_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
}

// MergeWithFlags merges command-line flags with file configuration.
// Command-line flags take precedence over file configuration.
func (c *Config) MergeWithFlags(flags map[string]interface{}) {
	if v, ok := flags["api_key"].(string); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := flags["base_url"].(string); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := flags["start"].(string); ok && v != "" {
		c.StartDate = v
	}
	if v, ok := flags["end"].(string); ok && v != "" {
		c.EndDate = v
	}
	if v, ok := flags["days"].(int); ok && v > 0 {
		c.WindowDays = v
	}
	if v, ok := flags["format"].(string); ok && v != "" {
		c.Format = v
	}
	if v, ok := flags["out"].(string); ok && v != "" {
		c.OutPath = v
	}
	if v, ok := flags["chart"].(string); ok && v != "" {
		c.ChartPath = v
	}
	if v, ok := flags["no_chart"].(bool); ok && v {
		c.NoChart = true
	}
	if v, ok := flags["retries"].(int); ok && v >= 0 {
		c.Retries = v
	}
	if v, ok := flags["rate_limit"].(float64); ok && v > 0 {
		c.RateLimit = v
	}
	if v, ok := flags["burst"].(int); ok && v > 0 {
		c.Burst = v
	}
	if v, ok := flags["cache_ttl_min"].(int); ok && v > 0 {
		c.CacheTTLMin = v
	}
	if v, ok := flags["metrics_addr"].(string); ok && v != "" {
		c.MetricsAddr = v
	}
	if v, ok := flags["otel_endpoint"].(string); ok && v != "" {
		c.OTELEndpoint = v
	}
	if v, ok := flags["otel_insecure"].(bool); ok {
		c.OTELInsecure = v
	}
	if v, ok := flags["otel_service"].(string); ok && v != "" {
		c.OTELService = v
	}
	if v, ok := flags["redis_addr"].(string); ok && v != "" {
		c.RedisAddr = v
	}
}
