package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/domain/entity"
)

// ResultRenderer renders match, check and watch status lines.
type ResultRenderer struct {
	theme *Theme
}

// NewResultRenderer creates a new result renderer with the given theme.
func NewResultRenderer(theme *Theme) *ResultRenderer {
	return &ResultRenderer{theme: theme}
}

// RenderMatch renders one line of `sitealert match`.
func (r *ResultRenderer) RenderMatch(input string, code entity.SiteCode, found, urgent bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	if !found {
		return fmt.Sprintf("  %s %s %s",
			lipgloss.NewStyle().Foreground(r.theme.Muted).Render(IconX),
			r.theme.Normal.Render(input),
			r.theme.Subtle.Render("no site code"),
		)
	}
	if urgent {
		return fmt.Sprintf("  %s %s %s",
			iconStyle.Render(IconWarning),
			r.theme.Highlight.Render(code.String()),
			r.theme.BadgeUrgent.Render("URGENT"),
		)
	}
	return fmt.Sprintf("  %s %s %s",
		lipgloss.NewStyle().Foreground(r.theme.Success).Render(IconCheck),
		r.theme.Normal.Render(code.String()),
		r.theme.Subtle.Render("not urgent"),
	)
}

// RenderCheck renders the result of `sitealert check`.
func (r *ResultRenderer) RenderCheck(source string, out usecase.CheckPageOutput) string {
	key := r.theme.Subtle
	val := r.theme.Normal

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  %s %s\n\n", lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconFile), key.Render(source))
	if out.Identity != "" {
		fmt.Fprintf(&sb, "  %s %s\n", key.Render("Page:      "), val.Render(out.Identity))
	}
	fmt.Fprintf(&sb, "  %s %s\n", key.Render("Unassigned:"), val.Render(yesNo(out.Unassigned)))

	if out.Unassigned {
		location := "not found"
		if out.HasLocation {
			location = out.Location
		}
		fmt.Fprintf(&sb, "  %s %s\n", key.Render("Location:  "), val.Render(location))

		code := "none"
		if out.HasSiteCode {
			code = out.SiteCode.String()
		}
		fmt.Fprintf(&sb, "  %s %s\n", key.Render("Site code: "), r.theme.Highlight.Render(code))
	}

	if len(out.PageCodes) > 0 {
		codes := make([]string, len(out.PageCodes))
		for i, c := range out.PageCodes {
			codes[i] = c.String()
		}
		fmt.Fprintf(&sb, "  %s %s\n", key.Render("On page:   "), val.Render(strings.Join(codes, ", ")))
	}
	if out.HasUrgentElsewhere && !out.Urgent {
		fmt.Fprintf(&sb, "  %s %s\n",
			lipgloss.NewStyle().Foreground(r.theme.Warning).Render(IconWarning),
			r.theme.Subtle.Render(fmt.Sprintf("urgent code %s appears on the page outside the location", out.UrgentElsewhere)),
		)
	}

	sb.WriteString("\n  ")
	if out.Urgent {
		sb.WriteString(r.theme.BadgeUrgent.Render("URGENT: this page would raise an alert"))
	} else {
		sb.WriteString(r.theme.BadgeMuted.Render("no alert"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// RenderWatching renders the start-of-watch line.
func (r *ResultRenderer) RenderWatching(source string, rules *entity.RuleSet, interval time.Duration) string {
	return fmt.Sprintf("\n  %s Watching %s %s\n",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconGlobe),
		r.theme.Highlight.Render(source),
		r.theme.Subtle.Render(fmt.Sprintf("(%d sites, prefixes %s, every %s)",
			len(rules.ExactCodes()), strings.Join(rules.Prefixes(), "/"), interval)),
	)
}

// RenderGaveUp renders the line shown when a run stops polling.
func (r *ResultRenderer) RenderGaveUp(retries int) string {
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Foreground(r.theme.Warning).Render(IconInfo),
		r.theme.Subtle.Render(fmt.Sprintf("No location after %d checks; waiting for the page to change.", retries)),
	)
}

// RenderReloaded renders the line shown after a config reload restarts detection.
func (r *ResultRenderer) RenderReloaded(rules *entity.RuleSet) string {
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Foreground(r.theme.Success).Render(IconConfig),
		r.theme.Subtle.Render(fmt.Sprintf("Config reloaded: %d sites, prefixes %s",
			len(rules.ExactCodes()), strings.Join(rules.Prefixes(), "/"))),
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
