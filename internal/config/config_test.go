package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFile_YAML(t *testing.T) {
	yamlContent := `
api_key: file-key
window_days: 7
format: jsonl
chart_path: charts/out.png
rate_limit: 2.5
metrics_addr: ":9090"
`

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configFile, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("failed to load YAML config: %v", err)
	}

	if cfg.APIKey != "file-key" {
		t.Errorf("expected api_key 'file-key', got %s", cfg.APIKey)
	}
	if cfg.WindowDays != 7 {
		t.Errorf("expected window_days 7, got %d", cfg.WindowDays)
	}
	if cfg.Format != "jsonl" {
		t.Errorf("expected format 'jsonl', got %s", cfg.Format)
	}
	if cfg.ChartPath != "charts/out.png" {
		t.Errorf("expected chart_path 'charts/out.png', got %s", cfg.ChartPath)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("expected rate_limit 2.5, got %v", cfg.RateLimit)
	}
	// Defaults still fill untouched fields.
	if cfg.BaseURL != "https://api.nasa.gov/DONKI" {
		t.Errorf("expected default base_url, got %s", cfg.BaseURL)
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	jsonContent := `{
		"api_key": "json-key",
		"start_date": "2024-01-01",
		"end_date": "2024-01-31",
		"format": "csv"
	}`

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configFile, []byte(jsonContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("failed to load JSON config: %v", err)
	}
	if cfg.APIKey != "json-key" || cfg.Format != "csv" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromFile_UnsupportedExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configFile, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(configFile); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	if cfg.APIKey != "DEMO_KEY" {
		t.Errorf("expected DEMO_KEY default, got %s", cfg.APIKey)
	}
	if cfg.WindowDays != 30 {
		t.Errorf("expected 30-day window default, got %d", cfg.WindowDays)
	}
	if cfg.Format != "text" {
		t.Errorf("expected text format default, got %s", cfg.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"zero window", func(c *Config) { c.WindowDays = -1 }},
		{"start without end", func(c *Config) { c.StartDate = "2024-01-01" }},
		{"unparseable date", func(c *Config) { c.StartDate = "01/02/2024"; c.EndDate = "2024-02-01" }},
		{"inverted range", func(c *Config) { c.StartDate = "2024-02-01"; c.EndDate = "2024-01-01" }},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.SetDefaults()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDateRange_Rolling(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	start, end, err := cfg.DateRange(now)
	if err != nil {
		t.Fatal(err)
	}
	if !end.Equal(now) {
		t.Errorf("end = %v, want %v", end, now)
	}
	if !start.Equal(now.AddDate(0, 0, -30)) {
		t.Errorf("start = %v, want 30 days before now", start)
	}
}

func TestDateRange_Explicit(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	cfg.StartDate = "2024-01-01"
	cfg.EndDate = "2024-01-31"

	start, end, err := cfg.DateRange(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if start.Format("2006-01-02") != "2024-01-01" || end.Format("2006-01-02") != "2024-01-31" {
		t.Errorf("range = %v..%v", start, end)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NASA_API_KEY", "env-key")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	var cfg Config
	cfg.SetDefaults()
	cfg.LoadFromEnv()

	if cfg.APIKey != "env-key" {
		t.Errorf("expected env api key, got %s", cfg.APIKey)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected env redis addr, got %s", cfg.RedisAddr)
	}
}

func TestMergeWithFlags_Precedence(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	cfg.APIKey = "file-key"
	cfg.WindowDays = 7

	cfg.MergeWithFlags(map[string]interface{}{
		"api_key": "flag-key",
		"days":    14,
		"format":  "json",
	})

	if cfg.APIKey != "flag-key" {
		t.Errorf("flag should win over file: %s", cfg.APIKey)
	}
	if cfg.WindowDays != 14 {
		t.Errorf("expected days 14, got %d", cfg.WindowDays)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format json, got %s", cfg.Format)
	}
	// Untouched fields keep their values.
	if cfg.BaseURL != "https://api.nasa.gov/DONKI" {
		t.Errorf("base_url should be untouched, got %s", cfg.BaseURL)
	}
}
