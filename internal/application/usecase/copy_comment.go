package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/logging"
)

// DefaultUrgentComment is the comment pasted into urgent work orders.
const DefaultUrgentComment = "Assigning URGENT as this issue is one that can quickly be fixed."

var (
	// ErrEmptyComment is returned when there is nothing to copy.
	ErrEmptyComment = errors.New("empty comment")
	// ErrNoClipboard is returned when no clipboard backend is wired.
	ErrNoClipboard = errors.New("clipboard not available")
)

// CopyCommentUseCase puts the urgent-handling comment on the clipboard so it
// can be pasted into the work order's comment field.
type CopyCommentUseCase struct {
	clipboard port.Clipboard
	template  string
}

// NewCopyCommentUseCase creates a new CopyCommentUseCase. An empty template
// falls back to DefaultUrgentComment.
func NewCopyCommentUseCase(clipboard port.Clipboard, template string) *CopyCommentUseCase {
	if strings.TrimSpace(template) == "" {
		template = DefaultUrgentComment
	}
	return &CopyCommentUseCase{
		clipboard: clipboard,
		template:  template,
	}
}

// Comment renders the comment for siteCode. A "{site}" placeholder in the
// template is replaced by the code.
func (uc *CopyCommentUseCase) Comment(siteCode string) string {
	return strings.ReplaceAll(uc.template, "{site}", siteCode)
}

// Copy writes the comment for siteCode to the clipboard.
func (uc *CopyCommentUseCase) Copy(ctx context.Context, siteCode string) error {
	log := logging.FromContext(ctx)

	comment := strings.TrimSpace(uc.Comment(siteCode))
	if comment == "" {
		log.Debug().Msg("copy comment: empty comment")
		return ErrEmptyComment
	}

	if uc.clipboard == nil {
		log.Warn().Msg("copy comment: clipboard is nil")
		return ErrNoClipboard
	}

	if err := uc.clipboard.WriteText(ctx, comment); err != nil {
		log.Error().Err(err).Str("site", siteCode).Msg("copy comment: clipboard write failed")
		return fmt.Errorf("clipboard write failed: %w", err)
	}

	log.Debug().Str("site", siteCode).Msg("urgent comment copied to clipboard")
	return nil
}
