// Package desktop raises urgent site alerts as freedesktop notifications.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/logging"
)

const (
	appName       = "sitealert"
	notifySend    = "notify-send"
	retractExpire = 5000
)

// ErrUnavailable is returned when notify-send is not installed.
var ErrUnavailable = errors.New("notify-send not found")

// runFunc executes a command and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Notifier implements port.Notifier with notify-send.
type Notifier struct {
	sendPath string
	run      runFunc

	mu     sync.Mutex
	id     string
	active string
}

var _ port.Notifier = (*Notifier)(nil)

// New creates a notifier. Detection of notify-send happens once.
func New() *Notifier {
	n := &Notifier{run: runCommand}

	// Detect notify-send (libnotify)
	if path, err := exec.LookPath(notifySend); err == nil {
		n.sendPath = path
	}
	return n
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Available reports whether notify-send was found.
func (n *Notifier) Available() bool {
	return n.sendPath != ""
}

// Notify shows a critical notification for siteCode.
func (n *Notifier) Notify(ctx context.Context, siteCode string) {
	log := logging.FromContext(ctx)

	out, err := n.send(ctx, []string{
		"--app-name=" + appName,
		"--urgency=critical",
		"--print-id",
		"Urgent site alert",
		fmt.Sprintf("%s: minor repairs from this site require urgent handling today.", siteCode),
	})
	if err != nil {
		log.Warn().Err(err).Str("site", siteCode).Msg("desktop notification failed")
		return
	}

	n.mu.Lock()
	n.active = siteCode
	n.id = parseID(out)
	n.mu.Unlock()
	log.Debug().Str("site", siteCode).Msg("desktop notification sent")
}

// Retract replaces the active notification with a short-lived withdrawal.
func (n *Notifier) Retract(ctx context.Context) {
	n.mu.Lock()
	site, id := n.active, n.id
	n.active, n.id = "", ""
	n.mu.Unlock()

	if site == "" {
		return
	}

	args := []string{
		"--app-name=" + appName,
		"--urgency=low",
		"--expire-time=" + strconv.Itoa(retractExpire),
	}
	if id != "" {
		args = append(args, "--replace-id="+id)
	}
	args = append(args, "Alert withdrawn", site+" is no longer an unassigned urgent work order.")

	if _, err := n.send(ctx, args); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("site", site).Msg("desktop notification failed")
	}
}

func (n *Notifier) send(ctx context.Context, args []string) ([]byte, error) {
	if !n.Available() {
		return nil, ErrUnavailable
	}
	out, err := n.run(ctx, n.sendPath, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", notifySend, err)
	}
	return out, nil
}

// parseID returns the notification ID printed by --print-id, if any.
func parseID(out []byte) string {
	id := strings.TrimSpace(string(out))
	if _, err := strconv.ParseUint(id, 10, 32); err != nil {
		return ""
	}
	return id
}
