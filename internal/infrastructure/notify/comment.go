package notify

import (
	"context"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/logging"
)

// CommentCopier puts the urgent-handling comment on the clipboard when an
// urgent site is detected. Clipboard failures are logged, not propagated.
type CommentCopier struct {
	copier *usecase.CopyCommentUseCase
}

var _ port.Notifier = (*CommentCopier)(nil)

// NewCommentCopier creates a CommentCopier.
func NewCommentCopier(copier *usecase.CopyCommentUseCase) *CommentCopier {
	return &CommentCopier{copier: copier}
}

// Notify implements port.Notifier.
func (c *CommentCopier) Notify(ctx context.Context, siteCode string) {
	if err := c.copier.Copy(ctx, siteCode); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("site", siteCode).Msg("urgent comment not copied")
	}
}

// Retract implements port.Notifier. The clipboard is left untouched.
func (*CommentCopier) Retract(context.Context) {}
