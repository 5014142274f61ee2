// Package config resolves runtime configuration from flags, environment
// variables and the optional config file.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultCloudModels lists the model names and name patterns that are served
// by the cloud chat-completion API. Anything else is routed to the local
// model server. A trailing '*' makes an entry a prefix pattern.
var DefaultCloudModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"gpt-4.1-mini",
	"o3-mini",
	"gpt-*",
}

// Config is the fully resolved configuration consumed by the engine. It is
// built once at process start and read-only afterwards.
type Config struct {
	// Cloud chat-completion API
	OpenAIKey     string
	OpenAIBaseURL string // optional override, empty means the SDK default
	CloudModels   []string

	// Local model server
	OllamaHost string

	// Report corpus
	ReportsFile   string
	StudyIDColumn string
	ReportColumn  string

	// Output
	OutputDir string

	// Provider call timeout
	Timeout time.Duration
}

// Load builds a Config from the current viper state. Defaults are applied
// here so callers always receive usable column names and patterns.
func Load() Config {
	cfg := Config{
		OpenAIKey:     viper.GetString("open_ai_key"),
		OpenAIBaseURL: viper.GetString("openai_base_url"),
		CloudModels:   viper.GetStringSlice("cloud_models"),
		OllamaHost:    viper.GetString("ollama_host"),
		ReportsFile:   viper.GetString("reports_file"),
		StudyIDColumn: viper.GetString("study_id_column"),
		ReportColumn:  viper.GetString("report_column"),
		OutputDir:     viper.GetString("output_dir"),
		Timeout:       viper.GetDuration("timeout"),
	}

	if len(cfg.CloudModels) == 0 {
		cfg.CloudModels = DefaultCloudModels
	}
	if cfg.StudyIDColumn == "" {
		cfg.StudyIDColumn = "study_id"
	}
	if cfg.ReportColumn == "" {
		cfg.ReportColumn = "report"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return cfg
}
