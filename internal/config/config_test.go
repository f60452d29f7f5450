package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CHANNELS", "RESULTS_PER_CHANNEL", "TIME_FILTER", "SORT_ORDER", "PORT",
		"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "DIGEST_SCHEDULE", "NOTIFICATION_EMAIL", "OPENAI_MODEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"SaaS", "startups", "Entrepreneur"}, cfg.Channels)
	assert.Equal(t, 20, cfg.ResultsPerChannel)
	assert.Equal(t, "month", cfg.TimeFilter)
	assert.Equal(t, "top", cfg.SortOrder)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "ValidateMe/1.0", cfg.UserAgent)
	assert.Equal(t, "gpt-4", cfg.OpenAIModel)
	assert.Equal(t, "5000", cfg.Port)
	assert.False(t, cfg.OAuthEnabled())
}

func TestLoad_ChannelList(t *testing.T) {
	t.Setenv("CHANNELS", " golang, devops ,,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "devops"}, cfg.Channels)
}

func TestConfig_validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Channels:          []string{"SaaS"},
			ResultsPerChannel: 20,
			TimeFilter:        "month",
			SortOrder:         "top",
			RequestTimeout:    10 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "Valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "No channels",
			mutate:  func(c *Config) { c.Channels = nil },
			wantErr: "CHANNELS",
		},
		{
			name:    "Limit too large",
			mutate:  func(c *Config) { c.ResultsPerChannel = 500 },
			wantErr: "RESULTS_PER_CHANNEL",
		},
		{
			name:    "Unknown time filter",
			mutate:  func(c *Config) { c.TimeFilter = "decade" },
			wantErr: "TIME_FILTER",
		},
		{
			name:    "Unknown sort order",
			mutate:  func(c *Config) { c.SortOrder = "random" },
			wantErr: "SORT_ORDER",
		},
		{
			name:    "Half of the Reddit credentials",
			mutate:  func(c *Config) { c.RedditClientID = "id" },
			wantErr: "REDDIT_CLIENT_ID",
		},
		{
			name:    "Email without SMTP",
			mutate:  func(c *Config) { c.NotificationEmail = "me@example.com" },
			wantErr: "SMTP configuration",
		},
		{
			name:    "Digest without keywords",
			mutate:  func(c *Config) { c.DigestSchedule = "0 0 9 * * *"; c.TeamsWebhookURL = "https://teams" },
			wantErr: "DIGEST_KEYWORDS",
		},
		{
			name: "Digest without notifications",
			mutate: func(c *Config) {
				c.DigestSchedule = "0 0 9 * * *"
				c.DigestKeywords = []string{"validation"}
			},
			wantErr: "notification method",
		},
		{
			name: "Digest with Teams",
			mutate: func(c *Config) {
				c.DigestSchedule = "0 0 9 * * *"
				c.DigestKeywords = []string{"validation"}
				c.TeamsWebhookURL = "https://teams"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
