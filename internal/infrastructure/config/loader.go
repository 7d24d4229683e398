package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager. An empty configFile
// searches the XDG config directory and the working directory; an explicit
// path must exist.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config") // Name without extension
		v.SetConfigType("toml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".") // Current directory for development
	}

	// SITEALERT_DETECTION_MAX_RETRIES overrides detection.max_retries, etc.
	v.SetEnvPrefix("SITEALERT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names for the logging section.
	if err := v.BindEnv("logging.level", "SITEALERT_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SITEALERT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SITEALERT_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SITEALERT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A missing
// config file in the search path is not an error: defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil
		}
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.Clone()
}

// GetConfigFile returns the path to the configuration file being used, or an
// empty string when running on defaults.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setRulesDefaults(defaults)
	m.setDetectionDefaults(defaults)
	m.setPageDefaults(defaults)
	m.setCommentDefaults(defaults)
	m.viper.SetDefault("desktop.enabled", defaults.Desktop.Enabled)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setRulesDefaults(defaults *Config) {
	m.viper.SetDefault("rules.exact_codes", defaults.Rules.ExactCodes)
	m.viper.SetDefault("rules.prefixes", defaults.Rules.Prefixes)
}

func (m *Manager) setDetectionDefaults(defaults *Config) {
	m.viper.SetDefault("detection.check_interval_ms", defaults.Detection.CheckIntervalMs)
	m.viper.SetDefault("detection.max_retries", defaults.Detection.MaxRetries)
}

func (m *Manager) setPageDefaults(defaults *Config) {
	m.viper.SetDefault("page.unassigned_marker", defaults.Page.UnassignedMarker)
	m.viper.SetDefault("page.location_selectors", defaults.Page.LocationSelectors)
	m.viper.SetDefault("page.location_labels", defaults.Page.LocationLabels)
	m.viper.SetDefault("page.data_attributes", defaults.Page.DataAttributes)
	m.viper.SetDefault("page.detail_markers", defaults.Page.DetailMarkers)
	m.viper.SetDefault("page.detail_selectors", defaults.Page.DetailSelectors)
	m.viper.SetDefault("page.detail_paths", defaults.Page.DetailPaths)
	m.viper.SetDefault("page.require_detail_page", defaults.Page.RequireDetailPage)
	m.viper.SetDefault("page.refresh_interval_ms", defaults.Page.RefreshIntervalMs)
}

func (m *Manager) setCommentDefaults(defaults *Config) {
	m.viper.SetDefault("comment.enabled", defaults.Comment.Enabled)
	m.viper.SetDefault("comment.text", defaults.Comment.Text)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Rules.ExactCodes = cloneStrings(c.Rules.ExactCodes)
	out.Rules.Prefixes = cloneStrings(c.Rules.Prefixes)
	out.Page.LocationSelectors = cloneStrings(c.Page.LocationSelectors)
	out.Page.LocationLabels = cloneStrings(c.Page.LocationLabels)
	out.Page.DataAttributes = cloneStrings(c.Page.DataAttributes)
	out.Page.DetailMarkers = cloneStrings(c.Page.DetailMarkers)
	out.Page.DetailSelectors = cloneStrings(c.Page.DetailSelectors)
	out.Page.DetailPaths = cloneStrings(c.Page.DetailPaths)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func normalizeConfig(config *Config) {
	config.Rules.ExactCodes = normalizeCodes(config.Rules.ExactCodes)
	config.Rules.Prefixes = normalizeCodes(config.Rules.Prefixes)

	config.Page.UnassignedMarker = strings.TrimSpace(config.Page.UnassignedMarker)
	config.Page.LocationSelectors = compactStrings(config.Page.LocationSelectors)
	config.Page.LocationLabels = compactStrings(config.Page.LocationLabels)
	config.Page.DataAttributes = compactStrings(config.Page.DataAttributes)
	config.Page.DetailMarkers = compactStrings(config.Page.DetailMarkers)
	config.Page.DetailSelectors = compactStrings(config.Page.DetailSelectors)
	config.Page.DetailPaths = compactStrings(config.Page.DetailPaths)

	config.Comment.Text = strings.TrimSpace(config.Comment.Text)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(strings.TrimSpace(config.Logging.Format)) {
	case "", "text", "console":
		config.Logging.Format = "console"
	case "json":
		config.Logging.Format = "json"
	}
	config.Logging.LogDir = strings.TrimSpace(config.Logging.LogDir)
}

// normalizeCodes upper-cases, trims and dedups site codes, keeping order.
func normalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
