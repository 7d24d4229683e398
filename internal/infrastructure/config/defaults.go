package config

import (
	"time"

	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
)

// Default configuration constants
const (
	defaultCheckIntervalMs   = int(usecase.DefaultCheckInterval / time.Millisecond)
	defaultMaxRetries        = usecase.DefaultMaxRetries
	defaultRefreshIntervalMs = 2000

	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 7
)

// DefaultUrgentSites are the sites flagged by the logistics team.
var DefaultUrgentSites = []string{"STL5", "KCVG", "SAV4", "YVR2", "RFD2", "DFW7", "LGA9", "PSP1", "CLEA"}

// DefaultUrgentPrefixes make whole site families urgent.
var DefaultUrgentPrefixes = []string{"MCO", "CLE"}

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			ExactCodes: append([]string(nil), DefaultUrgentSites...),
			Prefixes:   append([]string(nil), DefaultUrgentPrefixes...),
		},
		Detection: DetectionConfig{
			CheckIntervalMs: defaultCheckIntervalMs,
			MaxRetries:      defaultMaxRetries,
		},
		Page: PageConfig{
			UnassignedMarker:  htmlpage.DefaultUnassignedMarker,
			LocationSelectors: append([]string(nil), htmlpage.DefaultSelectors...),
			LocationLabels:    append([]string(nil), htmlpage.DefaultLocationLabels...),
			DataAttributes:    append([]string(nil), htmlpage.DefaultDataAttributes...),
			DetailMarkers:     append([]string(nil), htmlpage.DefaultDetailMarkers...),
			DetailSelectors:   append([]string(nil), htmlpage.DefaultDetailSelectors...),
			DetailPaths:       append([]string(nil), htmlpage.DefaultDetailPaths...),
			RequireDetailPage: false,
			RefreshIntervalMs: defaultRefreshIntervalMs,
		},
		Comment: CommentConfig{
			Enabled: true,
			Text:    usecase.DefaultUrgentComment,
		},
		Desktop: DesktopConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: false,
			LogDir:        getDefaultLogDir(),
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAgeDays:    defaultLogMaxAgeDays,
			Compress:      true,
		},
	}
}
