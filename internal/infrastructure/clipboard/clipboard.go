// Package clipboard provides a clipboard adapter backed by the system clipboard
// (xclip/xsel/wl-clipboard on Linux, pbcopy on macOS, the Win32 API on Windows).
package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/logging"
)

// ErrUnsupported is returned when no clipboard backend is available.
var ErrUnsupported = errors.New("no clipboard tool available (install wl-clipboard or xclip)")

// Adapter implements port.Clipboard.
type Adapter struct {
	unsupported bool
	write       func(string) error
	read        func() (string, error)
}

var _ port.Clipboard = (*Adapter)(nil)

// New creates a new clipboard adapter using the system clipboard.
func New() *Adapter {
	return &Adapter{
		unsupported: clipboard.Unsupported,
		write:       clipboard.WriteAll,
		read:        clipboard.ReadAll,
	}
}

// Available reports whether a clipboard backend was found.
func (a *Adapter) Available() bool {
	return !a.unsupported
}

// WriteText copies text to the clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)

	if a.unsupported {
		log.Error().Err(ErrUnsupported).Msg("clipboard write failed")
		return ErrUnsupported
	}

	if err := a.write(text); err != nil {
		log.Error().Err(err).Msg("clipboard write failed")
		return err
	}

	log.Debug().Int("len", len(text)).Msg("clipboard write success")
	return nil
}

// ReadText reads text from the clipboard.
func (a *Adapter) ReadText(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	if a.unsupported {
		log.Error().Err(ErrUnsupported).Msg("clipboard read failed")
		return "", ErrUnsupported
	}

	out, err := a.read()
	if err != nil {
		log.Debug().Err(err).Msg("clipboard read failed (may be empty)")
		return "", err
	}

	log.Debug().Int("len", len(out)).Msg("clipboard read success")
	return out, nil
}
