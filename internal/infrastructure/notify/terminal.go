package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/logging"
)

// MinorRepairs lists the repairs that qualify for urgent handling.
var MinorRepairs = []string{"Tires", "Mudflaps", "Lights", "Any repair taking ~2 hours or less"}

// BannerStyle holds the lipgloss styles of the alert banner.
type BannerStyle struct {
	Box     lipgloss.Style
	Title   lipgloss.Style
	Code    lipgloss.Style
	Text    lipgloss.Style
	Item    lipgloss.Style
	Warning lipgloss.Style
	Comment lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultBannerStyle returns the orange-on-dark alert palette.
func DefaultBannerStyle() BannerStyle {
	orange := lipgloss.Color("#ff9800")
	red := lipgloss.Color("#d32f2f")
	blue := lipgloss.Color("#2196f3")
	muted := lipgloss.Color("#909090")

	return BannerStyle{
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(orange).
			Padding(1, 3),
		Title:   lipgloss.NewStyle().Foreground(orange).Bold(true),
		Code:    lipgloss.NewStyle().Foreground(orange).Bold(true).Underline(true),
		Text:    lipgloss.NewStyle().Bold(true),
		Item:    lipgloss.NewStyle().PaddingLeft(2),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(red).Bold(true).Padding(0, 1),
		Comment: lipgloss.NewStyle().Foreground(blue),
		Muted:   lipgloss.NewStyle().Foreground(muted),
	}
}

// Terminal prints an alert banner when an urgent site is detected and a
// withdrawal line when the alert is retracted.
type Terminal struct {
	out     io.Writer
	style   BannerStyle
	comment string

	mu     sync.Mutex
	active string
}

var _ port.Notifier = (*Terminal)(nil)

// NewTerminal creates a terminal notifier writing to out. comment is shown as
// the text to paste into the work order, with "{site}" replaced by the site
// code; empty hides that section.
func NewTerminal(out io.Writer, style BannerStyle, comment string) *Terminal {
	return &Terminal{out: out, style: style, comment: comment}
}

// Render builds the banner for siteCode.
func (t *Terminal) Render(siteCode string) string {
	s := t.style

	var b strings.Builder
	b.WriteString(s.Title.Render("URGENT SITE ALERT"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n\n", s.Text.Render("Site Code:"), s.Code.Render(siteCode))
	b.WriteString(s.Text.Render("This work order is from a HIGH PRIORITY site!"))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render("Is this a MINOR REPAIR?"))
	b.WriteString("\n")
	for _, item := range MinorRepairs {
		b.WriteString(s.Item.Render("✓ " + item))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Warning.Render("MINOR REPAIRS FROM THIS SITE REQUIRE URGENT HANDLING TODAY!"))
	if t.comment != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render("Copy to comments:"))
		b.WriteString("\n")
		b.WriteString(s.Comment.Render(strings.ReplaceAll(t.comment, "{site}", siteCode)))
	}

	return s.Box.Render(b.String())
}

// Notify implements port.Notifier.
func (t *Terminal) Notify(ctx context.Context, siteCode string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := fmt.Fprintln(t.out, t.Render(siteCode)); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to print alert")
	}
	t.active = siteCode
}

// Retract implements port.Notifier. Only an active alert is withdrawn.
func (t *Terminal) Retract(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == "" {
		return
	}
	line := t.style.Muted.Render(fmt.Sprintf("Alert for %s withdrawn: work order is no longer unassigned.", t.active))
	if _, err := fmt.Fprintln(t.out, line); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to print withdrawal")
	}
	t.active = ""
}

// Active returns the site code of the alert currently shown.
func (t *Terminal) Active() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, t.active != ""
}
