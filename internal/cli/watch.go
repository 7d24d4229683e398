package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/cli/styles"
	"github.com/bnema/sitealert/internal/infrastructure/clipboard"
	"github.com/bnema/sitealert/internal/infrastructure/config"
	"github.com/bnema/sitealert/internal/infrastructure/desktop"
	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
	"github.com/bnema/sitealert/internal/infrastructure/notify"
	"github.com/bnema/sitealert/internal/logging"
)

// feeder pushes page changes into an adapter until ctx is cancelled.
type feeder interface {
	Run(ctx context.Context) error
}

// Watch loads the page, then runs the page feeder and the detection loop
// until ctx is cancelled. A config file change restarts detection with the
// new rules.
func (a *App) Watch(ctx context.Context, opts SourceOptions) error {
	src, err := NewSource(opts)
	if err != nil {
		return err
	}
	ctx = logging.WithPage(logging.WithComponent(ctx, "watch"), src.Location())

	adapter := htmlpage.NewAdapter(src, a.Config.PageOptions())
	if _, _, err := adapter.Refresh(ctx); err != nil {
		return fmt.Errorf("load page: %w", err)
	}

	var pageFeeder feeder
	if opts.File != "" {
		pageFeeder = htmlpage.NewFileWatcher(adapter, opts.File)
	} else {
		pageFeeder = htmlpage.NewPoller(adapter, a.Config.RefreshInterval())
	}

	results := styles.NewResultRenderer(a.Theme)
	fmt.Fprintln(a.Out, results.RenderWatching(src.Location(), a.Config.RuleSet(),
		a.Config.DetectionOptions(nil).CheckInterval))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pageFeeder.Run(gctx)
	})
	g.Go(func() error {
		return a.runDetection(gctx, adapter, a.NewNotifier(gctx), results)
	})
	return g.Wait()
}

// NewNotifier builds the notifier chain: terminal banner and log events,
// plus the desktop notification and clipboard comment when enabled and available.
func (a *App) NewNotifier(ctx context.Context) port.Notifier {
	log := logging.FromContext(ctx)

	comment := ""
	if a.Config.Comment.Enabled {
		comment = a.Config.Comment.Text
	}
	notifiers := []port.Notifier{
		notify.NewTerminal(a.Out, a.Theme.Banner(), comment),
		notify.NewLog(),
	}

	if a.Config.Desktop.Enabled {
		desk := desktop.New()
		if desk.Available() {
			notifiers = append(notifiers, desk)
		} else {
			log.Debug().Msg("notify-send not found, desktop notifications disabled")
		}
	}

	if a.Config.Comment.Enabled {
		clip := clipboard.New()
		if clip.Available() {
			notifiers = append(notifiers, notify.NewCommentCopier(usecase.NewCopyCommentUseCase(clip, a.Config.Comment.Text)))
		} else {
			log.Debug().Msg("no clipboard backend, comment auto-fill disabled")
		}
	}
	return notify.NewMulti(notifiers...)
}

// runDetection runs one DetectionLoop per configuration. Each run gets a
// fresh rule set and detection state.
func (a *App) runDetection(
	ctx context.Context,
	page port.PageAdapter,
	notifier port.Notifier,
	results *styles.ResultRenderer,
) error {
	log := logging.FromContext(ctx)
	reloads := a.watchConfig(ctx)

	onGaveUp := func(_ context.Context, retries int) {
		fmt.Fprintln(a.Out, results.RenderGaveUp(retries))
	}

	cfg := a.Config
	for run := 1; ; run++ {
		runCtx := logging.WithRun(ctx, run)
		loop := usecase.NewDetectionLoop(page, notifier, cfg.DetectionOptions(onGaveUp))
		if err := loop.Start(runCtx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			loop.Stop()
			return nil
		case next := <-reloads:
			loop.Stop()
			notifier.Retract(runCtx)
			cfg = next
			log.Info().Int("run", run+1).Msg("restarting detection with reloaded config")
			fmt.Fprintln(a.Out, results.RenderReloaded(cfg.RuleSet()))
		}
	}
}

// watchConfig delivers reloaded configurations, keeping only the latest.
// It returns a nil channel when there is no config file to watch.
func (a *App) watchConfig(ctx context.Context) <-chan *config.Config {
	if a.Manager == nil || a.Manager.GetConfigFile() == "" {
		return nil
	}

	reloads := make(chan *config.Config, 1)
	a.Manager.OnConfigChange(func(cfg *config.Config) {
		select {
		case <-reloads:
		default:
		}
		select {
		case reloads <- cfg:
		default:
		}
	})
	if err := a.Manager.Watch(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("config hot reload disabled")
	}
	return reloads
}
