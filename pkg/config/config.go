// Package config loads API keys, model selection, and scraping limits
// from the environment and an optional config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default tunables. File and environment values override these.
const (
	DefaultMaxURLsToMap             = 5000
	DefaultMaxURLsToScrape          = 15
	DefaultMaxURLsForPrioritization = 200
)

// Config holds the application configuration.
type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	DeepSeekAPIKey  string
	FirecrawlAPIKey string

	DefaultAdapter  string
	DefaultModel    string
	FastModel       string
	ExtractionModel string

	MaxURLsToMap             int
	MaxURLsToScrape          int
	MaxURLsForPrioritization int

	ConfigDir string
}

// FileConfig represents the structure of ~/.dealbook/config.yaml
type FileConfig struct {
	APIKeys        APIKeysConfig `yaml:"api_keys"`
	Models         ModelsConfig  `yaml:"models"`
	Limits         LimitsConfig  `yaml:"limits"`
	DefaultAdapter string        `yaml:"default_adapter"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	Anthropic string `yaml:"anthropic"`
	OpenAI    string `yaml:"openai"`
	Google    string `yaml:"google"`
	DeepSeek  string `yaml:"deepseek"`
	Firecrawl string `yaml:"firecrawl"`
}

// ModelsConfig selects models per agent class.
type ModelsConfig struct {
	Default    string `yaml:"default"`
	Fast       string `yaml:"fast"`
	Extraction string `yaml:"extraction"`
}

// LimitsConfig bounds the scraping stages.
type LimitsConfig struct {
	MaxURLsToMap             int `yaml:"max_urls_to_map"`
	MaxURLsToScrape          int `yaml:"max_urls_to_scrape"`
	MaxURLsForPrioritization int `yaml:"max_urls_for_prioritization"`
}

// Load reads configuration from a local .env file, the config file, and
// environment variables. Environment variables take precedence over
// file configuration.
func Load() (*Config, error) {
	// A local .env is a convenience for development runs; absence is fine.
	_ = godotenv.Load()

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	fileConfig := loadFileConfig(filepath.Join(configDir, "config.yaml"))

	cfg := &Config{
		AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI),
		GoogleAPIKey:    getEnvOrDefault("GOOGLE_API_KEY", fileConfig.APIKeys.Google),
		DeepSeekAPIKey:  getEnvOrDefault("DEEPSEEK_API_KEY", fileConfig.APIKeys.DeepSeek),
		FirecrawlAPIKey: getEnvOrDefault("FIRECRAWL_API_KEY", fileConfig.APIKeys.Firecrawl),

		DefaultAdapter:  nonEmpty(fileConfig.DefaultAdapter, "openai"),
		DefaultModel:    nonEmpty(fileConfig.Models.Default, "gpt-4o"),
		FastModel:       nonEmpty(fileConfig.Models.Fast, "gpt-4o-mini"),
		ExtractionModel: nonEmpty(fileConfig.Models.Extraction, "gpt-4o-mini"),

		MaxURLsToMap:             positiveOr(fileConfig.Limits.MaxURLsToMap, DefaultMaxURLsToMap),
		MaxURLsToScrape:          positiveOr(fileConfig.Limits.MaxURLsToScrape, DefaultMaxURLsToScrape),
		MaxURLsForPrioritization: positiveOr(fileConfig.Limits.MaxURLsForPrioritization, DefaultMaxURLsForPrioritization),

		ConfigDir: configDir,
	}

	if v := os.Getenv("DEALBOOK_MAX_URLS_TO_MAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxURLsToMap = n
		}
	}
	if v := os.Getenv("DEALBOOK_MAX_URLS_TO_SCRAPE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxURLsToScrape = n
		}
	}

	return cfg, nil
}

// HasAdapter returns true if the API key for the given adapter is configured.
func (c *Config) HasAdapter(name string) bool {
	switch name {
	case "anthropic":
		return c.AnthropicAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	case "google":
		return c.GoogleAPIKey != ""
	case "deepseek":
		return c.DeepSeekAPIKey != ""
	default:
		return false
	}
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg // Return empty config if file doesn't exist
	}

	_ = yaml.Unmarshal(data, cfg) // Ignore parse errors, use defaults
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func nonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".dealbook")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
