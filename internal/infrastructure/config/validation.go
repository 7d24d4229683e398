package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var siteCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateRules(config)...)
	validationErrors = append(validationErrors, validateDetection(config)...)
	validationErrors = append(validationErrors, validatePage(config)...)
	validationErrors = append(validationErrors, validateComment(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateRules(config *Config) []string {
	var validationErrors []string
	for _, code := range config.Rules.ExactCodes {
		if !siteCodePattern.MatchString(code) {
			validationErrors = append(validationErrors, fmt.Sprintf("rules.exact_codes: %q must be letters and digits only", code))
		}
	}
	for _, prefix := range config.Rules.Prefixes {
		if !siteCodePattern.MatchString(prefix) {
			validationErrors = append(validationErrors, fmt.Sprintf("rules.prefixes: %q must be letters and digits only", prefix))
		}
	}
	return validationErrors
}

func validateDetection(config *Config) []string {
	var validationErrors []string
	if config.Detection.CheckIntervalMs <= 0 {
		validationErrors = append(validationErrors, "detection.check_interval_ms must be positive")
	}
	if config.Detection.MaxRetries < 0 {
		validationErrors = append(validationErrors, "detection.max_retries must be non-negative")
	}
	return validationErrors
}

func validatePage(config *Config) []string {
	var validationErrors []string
	if config.Page.UnassignedMarker == "" {
		validationErrors = append(validationErrors, "page.unassigned_marker cannot be empty")
	}
	if config.Page.RefreshIntervalMs <= 0 {
		validationErrors = append(validationErrors, "page.refresh_interval_ms must be positive")
	}
	if len(config.Page.LocationSelectors) == 0 &&
		len(config.Page.LocationLabels) == 0 &&
		len(config.Page.DataAttributes) == 0 {
		validationErrors = append(validationErrors,
			"page: at least one of location_selectors, location_labels or data_attributes is required")
	}
	if config.Page.RequireDetailPage && len(config.Page.DetailMarkers) == 0 {
		validationErrors = append(validationErrors, "page.detail_markers cannot be empty when require_detail_page is set")
	}
	return validationErrors
}

func validateComment(config *Config) []string {
	if config.Comment.Enabled && config.Comment.Text == "" {
		return []string{"comment.text cannot be empty when comment.enabled is set"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "json", "console":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: json, console (got: %s)",
			config.Logging.Format,
		))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		validationErrors = append(validationErrors, "logging.log_dir cannot be empty when enable_file_log is set")
	}
	return validationErrors
}
