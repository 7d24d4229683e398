package config

// Config represents the complete configuration for sitealert.
type Config struct {
	// Rules decide which site codes are urgent.
	Rules RulesConfig `mapstructure:"rules" toml:"rules" json:"rules"`
	// Detection tunes the polling loop.
	Detection DetectionConfig `mapstructure:"detection" toml:"detection" json:"detection"`
	// Page holds the heuristics used to read the work order page.
	Page PageConfig `mapstructure:"page" toml:"page" json:"page"`
	// Comment controls the comment copied to the clipboard on detection.
	Comment CommentConfig `mapstructure:"comment" toml:"comment" json:"comment"`
	Desktop DesktopConfig `mapstructure:"desktop" toml:"desktop" json:"desktop"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
}

// RulesConfig lists the urgent sites.
type RulesConfig struct {
	// ExactCodes are site codes that are urgent on an exact match.
	ExactCodes []string `mapstructure:"exact_codes" toml:"exact_codes" json:"exact_codes" jsonschema:"description=Site codes that are urgent on exact match"`
	// Prefixes make every site code starting with them urgent.
	Prefixes []string `mapstructure:"prefixes" toml:"prefixes" json:"prefixes" jsonschema:"description=Site code prefixes that are always urgent"`
}

// DetectionConfig tunes the detection loop.
type DetectionConfig struct {
	CheckIntervalMs int `mapstructure:"check_interval_ms" toml:"check_interval_ms" json:"check_interval_ms" jsonschema:"minimum=1,description=Delay between polling ticks in milliseconds"`
	// MaxRetries is how many ticks without a location are tolerated before giving up.
	MaxRetries int `mapstructure:"max_retries" toml:"max_retries" json:"max_retries" jsonschema:"minimum=0"`
}

// PageConfig holds the page heuristics.
type PageConfig struct {
	// UnassignedMarker is the exact span text shown for unassigned work orders.
	UnassignedMarker string `mapstructure:"unassigned_marker" toml:"unassigned_marker" json:"unassigned_marker"`
	// LocationSelectors are CSS selectors tried after data attributes and labels.
	LocationSelectors []string `mapstructure:"location_selectors" toml:"location_selectors" json:"location_selectors"`
	// LocationLabels are field labels whose next sibling holds the location.
	LocationLabels []string `mapstructure:"location_labels" toml:"location_labels" json:"location_labels"`
	// DataAttributes are read first, in order.
	DataAttributes []string `mapstructure:"data_attributes" toml:"data_attributes" json:"data_attributes"`
	// DetailMarkers identify a work order detail page by title or heading.
	DetailMarkers []string `mapstructure:"detail_markers" toml:"detail_markers" json:"detail_markers"`
	// DetailSelectors identify a detail page by an element only it renders.
	DetailSelectors []string `mapstructure:"detail_selectors" toml:"detail_selectors" json:"detail_selectors"`
	// DetailPaths identify a detail page by a fragment of its URL.
	DetailPaths []string `mapstructure:"detail_paths" toml:"detail_paths" json:"detail_paths"`
	// RequireDetailPage ignores unassigned markers outside detail pages.
	RequireDetailPage bool `mapstructure:"require_detail_page" toml:"require_detail_page" json:"require_detail_page"`
	// RefreshIntervalMs is the polling interval for pages fetched over HTTP.
	RefreshIntervalMs int `mapstructure:"refresh_interval_ms" toml:"refresh_interval_ms" json:"refresh_interval_ms" jsonschema:"minimum=1"`
}

// CommentConfig controls the urgent comment auto-fill.
type CommentConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// Text is copied to the clipboard. "{site}" is replaced by the site code.
	Text string `mapstructure:"text" toml:"text" json:"text"`
}

// DesktopConfig controls freedesktop notifications.
type DesktopConfig struct {
	// Enabled sends a notify-send notification on detection when notify-send is installed.
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// EnableFileLog also writes JSON logs to a rotating file in LogDir.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=0"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}
