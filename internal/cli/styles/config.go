package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file in use. An empty path means defaults.
func (r *ConfigRenderer) RenderConfigInfo(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	if path == "" {
		return fmt.Sprintf("\n  %s Config %s\n",
			iconStyle.Render(IconConfig),
			r.theme.Subtle.Render("(none found, using defaults)"),
		)
	}
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderRules renders the active urgent sites and prefixes.
func (r *ConfigRenderer) RenderRules(codes, prefixes []string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s Urgent sites: %s\n", iconStyle.Render(IconMarker), r.theme.Highlight.Render(strings.Join(codes, " ")))
	fmt.Fprintf(&sb, "  %s Prefixes:     %s\n", iconStyle.Render(IconMarker), r.theme.Highlight.Render(strings.Join(prefixes, " ")))
	return sb.String()
}

// RenderWritten renders the message shown after writing a file.
func (r *ConfigRenderer) RenderWritten(what, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Wrote %s %s\n", iconStyle.Render(IconCheck), what, r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
