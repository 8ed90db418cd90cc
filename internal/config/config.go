// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the application configuration. All fields are optional; missing
// values use defaults or environment variables.
type Config struct {
	// Server
	Port           int    `json:"port,omitempty"`
	AllowedOrigins string `json:"allowed_origins,omitempty"`

	// Collaborators
	APIKey          string `json:"api_key,omitempty"`           // Gemini API key
	DatabaseURL     string `json:"database_url,omitempty"`      // PostgreSQL connection URL
	RedisAddr       string `json:"redis_addr,omitempty"`        // host:port; empty means in-memory cache
	RedisPassword   string `json:"redis_password,omitempty"`
	ChatWebhookURL  string `json:"chat_webhook_url,omitempty"`  // WhatsApp-style chat webhook
	EmailWebhookURL string `json:"email_webhook_url,omitempty"` // email-send API endpoint
	EmailTo         string `json:"email_to,omitempty"`

	// Search defaults
	Keywords   string `json:"keywords,omitempty"`
	Location   string `json:"location,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`

	// Scheduler
	CronSpec string `json:"cron_spec,omitempty"` // empty disables scheduled runs

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // headless browser fallback for bot-walled boards
	Verbose    bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a config from environment variables. Used when no config
// file is given; godotenv loads .env before this runs.
func FromEnv() *Config {
	port := 0
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		port = p
	}
	maxAge := 0
	if d, err := strconv.Atoi(os.Getenv("MAX_AGE_DAYS")); err == nil {
		maxAge = d
	}

	return &Config{
		Port:            port,
		AllowedOrigins:  os.Getenv("ALLOWED_ORIGINS"),
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ChatWebhookURL:  os.Getenv("CHAT_WEBHOOK_URL"),
		EmailWebhookURL: os.Getenv("EMAIL_WEBHOOK_URL"),
		EmailTo:         os.Getenv("EMAIL_TO"),
		Keywords:        os.Getenv("SEARCH_KEYWORDS"),
		Location:        os.Getenv("SEARCH_LOCATION"),
		MaxAgeDays:      maxAge,
		CronSpec:        os.Getenv("CRON_SPEC"),
		UseBrowser:      os.Getenv("USE_BROWSER") == "true",
		Verbose:         os.Getenv("VERBOSE") == "true",
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxAgeDays < 0 {
		return fmt.Errorf("config error: 'max_age_days' must be non-negative")
	}
	if c.EmailWebhookURL != "" && c.EmailTo == "" {
		return fmt.Errorf("config error: 'email_to' is required when 'email_webhook_url' is set")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from
// defaults. Bool fields are not merged; flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AllowedOrigins == "" {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.ChatWebhookURL == "" {
		result.ChatWebhookURL = defaults.ChatWebhookURL
	}
	if result.EmailWebhookURL == "" {
		result.EmailWebhookURL = defaults.EmailWebhookURL
	}
	if result.EmailTo == "" {
		result.EmailTo = defaults.EmailTo
	}
	if result.Keywords == "" {
		result.Keywords = defaults.Keywords
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.MaxAgeDays == 0 {
		result.MaxAgeDays = defaults.MaxAgeDays
	}
	if result.CronSpec == "" {
		result.CronSpec = defaults.CronSpec
	}

	return result
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Port:       8080,
		Keywords:   "product owner OR business analyst",
		Location:   "Singapore",
		MaxAgeDays: 30,
	}
}
