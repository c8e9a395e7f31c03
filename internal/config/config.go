// Package config contains the loaders for notionsync runtime configuration:
// credentials from the environment, the branch-prefix page mapping, and the
// synthesis settings file.
package config

import (
	"fmt"
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/trm-labs/notionsync/internal/faults"
)

// Config carries the credentials and paths a sync run needs. Values come from
// the process environment; flags may override the paths afterwards.
type Config struct {
	// NotionAPIKey is the Notion integration token from NOTION_API_KEY.
	NotionAPIKey string `env:"NOTION_API_KEY"`
	// OpenAIAPIKey is the OpenAI API key from OPENAI_API_KEY.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// EventPath is the GitHub event payload path from GITHUB_EVENT_PATH.
	EventPath string `env:"GITHUB_EVENT_PATH"`
	// TrackingDatabaseID is the optional Notion database for processed PRs,
	// from NOTION_PR_DATABASE_ID. Tracking is skipped when empty.
	TrackingDatabaseID string `env:"NOTION_PR_DATABASE_ID"`
	// MappingPath is the page mapping file path from NOTIONSYNC_MAPPING.
	MappingPath string `env:"NOTIONSYNC_MAPPING"`
	// SettingsPath is the optional synthesis settings file path from
	// NOTIONSYNC_SETTINGS.
	SettingsPath string `env:"NOTIONSYNC_SETTINGS"`
	// NotionBaseURL overrides the Notion API endpoint, for tests.
	NotionBaseURL string `env:"NOTIONSYNC_NOTION_BASE_URL"`
	// OpenAIBaseURL overrides the OpenAI API endpoint, for tests.
	OpenAIBaseURL string `env:"NOTIONSYNC_OPENAI_BASE_URL"`
}

// FromEnv parses Config from the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envparse.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that every credential and path a sync run requires is set.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.NotionAPIKey) == "" {
		missing = append(missing, "NOTION_API_KEY")
	}
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.EventPath) == "" {
		missing = append(missing, "GITHUB_EVENT_PATH")
	}
	if len(missing) > 0 {
		return &faults.ConfigurationError{
			Reason: "missing required environment: " + strings.Join(missing, ", "),
		}
	}
	return nil
}

// Mapping is the branch-prefix to page-identifier routing table. Keys are
// lowercase prefixes; the reserved key "default" names the fallback page.
type Mapping map[string]string

// LoadMapping reads the page mapping file. The file is parsed as YAML, which
// also accepts the JSON form the mapping historically used.
func LoadMapping(path string) (Mapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page mapping %q: %w", path, err)
	}

	var m Mapping
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse page mapping %q: %w", path, err)
	}
	if len(m) == 0 {
		return nil, &faults.ConfigurationError{
			Reason: fmt.Sprintf("page mapping %q contains no entries", path),
		}
	}
	return m, nil
}

// Synthesis holds the generation parameters for the merge call.
type Synthesis struct {
	// Model is the OpenAI model identifier.
	Model string `yaml:"model"`
	// SystemPrompt frames the assistant role for the merge.
	SystemPrompt string `yaml:"system_prompt"`
	// Temperature is the sampling temperature.
	Temperature float32 `yaml:"temperature"`
	// MaxTokens bounds the generated completion length.
	MaxTokens int `yaml:"max_tokens"`
	// NotionVersion is the Notion-Version header value.
	NotionVersion string `yaml:"notion_version"`
}

// LoadSynthesis reads the synthesis settings file when path is non-empty and
// fills defaults for anything left unset.
func LoadSynthesis(path string) (Synthesis, error) {
	var s Synthesis
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Synthesis{}, fmt.Errorf("read synthesis settings %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return Synthesis{}, fmt.Errorf("parse synthesis settings %q: %w", path, err)
		}
	}

	if s.Model == "" {
		s.Model = "gpt-4o"
	}
	if s.Temperature == 0 {
		s.Temperature = 0.7
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = 4000
	}
	if s.SystemPrompt == "" {
		s.SystemPrompt = "You are a technical documentation assistant that helps maintain specification documents."
	}
	if s.NotionVersion == "" {
		s.NotionVersion = "2022-06-28"
	}
	return s, nil
}
