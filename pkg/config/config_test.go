package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	content := `
llm:
  base_url: "https://api.example.com/v1"
  api_key: "sk-test"
  model: "test-model"
search:
  provider: "tavily"
  tavily:
    api_key: "tvly-test"
log:
  level: "debug"
concurrency:
  qps: 2
  rpm: 120
report:
  output_dir: "out"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LLM.Model != "test-model" || cfg.LLM.BaseURL != "https://api.example.com/v1" {
		t.Errorf("LLM config = %+v", cfg.LLM)
	}
	if cfg.Search.Provider != "tavily" || cfg.Search.Tavily.APIKey != "tvly-test" {
		t.Errorf("Search config = %+v", cfg.Search)
	}
	if cfg.Concurrency.QPS != 2 || cfg.Concurrency.RPM != 120 {
		t.Errorf("Concurrency config = %+v", cfg.Concurrency)
	}
	if cfg.Report.OutputDir != "out" {
		t.Errorf("Report config = %+v", cfg.Report)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() should fail for a missing file")
	}
}

func TestSearchAPIKey(t *testing.T) {
	cfg := &Config{}
	cfg.Search.Provider = "tavily"
	cfg.Search.Tavily.APIKey = "tvly-test"
	if got := cfg.SearchAPIKey(); got != "tvly-test" {
		t.Errorf("SearchAPIKey() = %q", got)
	}

	cfg.Search.Provider = "searxng"
	cfg.Search.SearXNG.BaseURL = "http://localhost:8080"
	if got := cfg.SearchAPIKey(); got != "http://localhost:8080" {
		t.Errorf("SearchAPIKey() = %q", got)
	}
}
