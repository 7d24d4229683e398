package config

import (
	"time"

	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
	"github.com/bnema/sitealert/internal/logging"
)

// RuleSet builds the immutable rule set for one detection run.
func (c *Config) RuleSet() *entity.RuleSet {
	return entity.NewRuleSet(c.Rules.ExactCodes, c.Rules.Prefixes)
}

// DetectionOptions builds the detector options. onGaveUp may be nil.
func (c *Config) DetectionOptions(onGaveUp usecase.GaveUpFunc) usecase.DetectionOptions {
	return usecase.DetectionOptions{
		Rules:         c.RuleSet(),
		CheckInterval: time.Duration(c.Detection.CheckIntervalMs) * time.Millisecond,
		MaxRetries:    c.Detection.MaxRetries,
		OnGaveUp:      onGaveUp,
	}
}

// PageOptions builds the HTML adapter heuristics.
func (c *Config) PageOptions() htmlpage.Options {
	return htmlpage.Options{
		UnassignedMarker:  c.Page.UnassignedMarker,
		Strategies:        htmlpage.BuildStrategies(c.Page.DataAttributes, c.Page.LocationLabels, c.Page.LocationSelectors),
		DetailMarkers:     c.Page.DetailMarkers,
		DetailSelectors:   c.Page.DetailSelectors,
		DetailPaths:       c.Page.DetailPaths,
		RequireDetailPage: c.Page.RequireDetailPage,
	}
}

// RefreshInterval is the polling interval for HTTP sources.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Page.RefreshIntervalMs) * time.Millisecond
}

// RotatorConfig builds the file log settings.
func (c *Config) RotatorConfig() logging.RotatorConfig {
	return logging.RotatorConfig{
		Dir:        c.Logging.LogDir,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}
