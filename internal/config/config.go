package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Channels searched, in order
	Channels          []string
	ResultsPerChannel int
	TimeFilter        string
	SortOrder         string
	RequestTimeout    time.Duration
	UseMockData       bool

	// Reddit endpoints and optional app credentials
	RedditBaseURL      string
	RedditOAuthBaseURL string
	RedditTokenURL     string
	RedditPermalink    string
	RedditClientID     string
	RedditClientSecret string
	UserAgent          string

	// Generative model
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Digest configuration
	DigestSchedule string
	DigestKeywords []string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

var validTimeFilters = []string{"hour", "day", "week", "month", "year", "all"}

var validSortOrders = []string{"relevance", "hot", "top", "new", "comments"}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "5000"),
		Debug: getBoolEnv("DEBUG", false),

		Channels:          getSliceEnv("CHANNELS", []string{"SaaS", "startups", "Entrepreneur"}),
		ResultsPerChannel: getIntEnv("RESULTS_PER_CHANNEL", 20),
		TimeFilter:        getEnv("TIME_FILTER", "month"),
		SortOrder:         getEnv("SORT_ORDER", "top"),
		RequestTimeout:    time.Duration(getIntEnv("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		UseMockData:       getBoolEnv("USE_MOCK_DATA", false),

		RedditBaseURL:      getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
		RedditOAuthBaseURL: getEnv("REDDIT_OAUTH_BASE_URL", "https://oauth.reddit.com"),
		RedditTokenURL:     getEnv("REDDIT_TOKEN_URL", "https://www.reddit.com/api/v1/access_token"),
		RedditPermalink:    getEnv("REDDIT_PERMALINK_BASE", "https://reddit.com"),
		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		UserAgent:          getEnv("REDDIT_USER_AGENT", "ValidateMe/1.0"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),

		DigestSchedule: getEnv("DIGEST_SCHEDULE", ""),
		DigestKeywords: getSliceEnv("DIGEST_KEYWORDS", nil),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("CHANNELS must name at least one channel")
	}

	if c.ResultsPerChannel < 1 || c.ResultsPerChannel > 100 {
		return fmt.Errorf("RESULTS_PER_CHANNEL must be between 1 and 100")
	}

	if !contains(validTimeFilters, c.TimeFilter) {
		return fmt.Errorf("TIME_FILTER must be one of %s", strings.Join(validTimeFilters, ", "))
	}

	if !contains(validSortOrders, c.SortOrder) {
		return fmt.Errorf("SORT_ORDER must be one of %s", strings.Join(validSortOrders, ", "))
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}

	if (c.RedditClientID == "") != (c.RedditClientSecret == "") {
		return fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET must be set together")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if c.DigestSchedule != "" {
		if len(c.DigestKeywords) == 0 {
			return fmt.Errorf("DIGEST_KEYWORDS is required when DIGEST_SCHEDULE is set")
		}
		if !c.NotificationsEnabled() {
			return fmt.Errorf("at least one notification method must be configured for the digest (TEAMS_WEBHOOK_URL or NOTIFICATION_EMAIL)")
		}
	}

	return nil
}

// OAuthEnabled reports whether Reddit app credentials were supplied
func (c *Config) OAuthEnabled() bool {
	return c.RedditClientID != "" && c.RedditClientSecret != ""
}

// NotificationsEnabled reports whether any digest delivery channel is configured
func (c *Config) NotificationsEnabled() bool {
	return c.TeamsWebhookURL != "" || c.NotificationEmail != ""
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return defaultValue
}
