package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "bad site code",
			mutate:  func(c *Config) { c.Rules.ExactCodes = []string{"ST-5"} },
			wantErr: "rules.exact_codes",
		},
		{
			name:    "bad prefix",
			mutate:  func(c *Config) { c.Rules.Prefixes = []string{"M O"} },
			wantErr: "rules.prefixes",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Detection.MaxRetries = -1 },
			wantErr: "detection.max_retries",
		},
		{
			name:   "zero retries allowed",
			mutate: func(c *Config) { c.Detection.MaxRetries = 0 },
		},
		{
			name:    "empty marker",
			mutate:  func(c *Config) { c.Page.UnassignedMarker = "" },
			wantErr: "page.unassigned_marker",
		},
		{
			name: "no location heuristics",
			mutate: func(c *Config) {
				c.Page.LocationSelectors = nil
				c.Page.LocationLabels = nil
				c.Page.DataAttributes = nil
			},
			wantErr: "at least one of",
		},
		{
			name: "detail page without markers",
			mutate: func(c *Config) {
				c.Page.RequireDetailPage = true
				c.Page.DetailMarkers = nil
			},
			wantErr: "page.detail_markers",
		},
		{
			name:    "enabled comment without text",
			mutate:  func(c *Config) { c.Comment.Text = "" },
			wantErr: "comment.text",
		},
		{
			name: "disabled comment without text",
			mutate: func(c *Config) {
				c.Comment.Enabled = false
				c.Comment.Text = ""
			},
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name: "file log without dir",
			mutate: func(c *Config) {
				c.Logging.EnableFileLog = true
				c.Logging.LogDir = ""
			},
			wantErr: "logging.log_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules.Prefixes = []string{" cle ", "CLE", "mco"}
	cfg.Page.LocationLabels = []string{" Location ", "", "  "}
	cfg.Logging.Level = " INFO "
	cfg.Logging.Format = "text"

	normalizeConfig(cfg)

	assert.Equal(t, []string{"CLE", "MCO"}, cfg.Rules.Prefixes)
	assert.Equal(t, []string{"Location"}, cfg.Page.LocationLabels)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}
