// Package usecase contains application business logic.
package usecase

import (
	"context"
	"time"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/logging"
)

// Detection defaults, as observed on the logistics application.
const (
	DefaultCheckInterval = 500 * time.Millisecond
	DefaultMaxRetries    = 20
)

// GaveUpFunc is invoked once when a run exhausts its retry budget.
type GaveUpFunc func(ctx context.Context, retries int)

// DetectionOptions configures a detection run.
type DetectionOptions struct {
	Rules *entity.RuleSet
	// CheckInterval is the delay between polling ticks. Zero means DefaultCheckInterval.
	CheckInterval time.Duration
	// MaxRetries is the number of ticks tolerated without location text.
	MaxRetries int
	// OnGaveUp is optional.
	OnGaveUp GaveUpFunc
}

// DefaultDetectionOptions returns options with the default interval and retry budget.
func DefaultDetectionOptions(rules *entity.RuleSet) DetectionOptions {
	return DetectionOptions{
		Rules:         rules,
		CheckInterval: DefaultCheckInterval,
		MaxRetries:    DefaultMaxRetries,
	}
}

// DetectUrgentSiteUseCase evaluates one page view tick by tick and fires the
// notifier at most once per qualifying page state.
//
// It is not safe for concurrent use; DetectionLoop serializes access.
type DetectUrgentSiteUseCase struct {
	page     port.PageAdapter
	notifier port.Notifier
	opts     DetectionOptions
	state    entity.DetectionState
}

// NewDetectUrgentSiteUseCase creates a new DetectUrgentSiteUseCase.
func NewDetectUrgentSiteUseCase(
	page port.PageAdapter,
	notifier port.Notifier,
	opts DetectionOptions,
) *DetectUrgentSiteUseCase {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Rules == nil {
		opts.Rules = entity.NewRuleSet(nil, nil)
	}
	return &DetectUrgentSiteUseCase{
		page:     page,
		notifier: notifier,
		opts:     opts,
		state:    entity.NewDetectionState(),
	}
}

// State returns a copy of the current detection state.
func (uc *DetectUrgentSiteUseCase) State() entity.DetectionState {
	return uc.state
}

// Options returns the normalized options.
func (uc *DetectUrgentSiteUseCase) Options() DetectionOptions {
	return uc.opts
}

// Tick performs one observation of the page and returns the resulting phase.
// Callers keep polling while the phase is not entity.PhaseGaveUp.
func (uc *DetectUrgentSiteUseCase) Tick(ctx context.Context) entity.DetectionPhase {
	log := logging.FromContext(ctx)

	if !uc.page.IsUnassigned(ctx) {
		if uc.state.Triggered() {
			log.Info().
				Str("site", uc.state.NotifiedCode.String()).
				Msg("work order no longer unassigned, retracting alert")
			uc.state.Withdraw()
			uc.notifier.Retract(ctx)
		}
		return uc.state.Phase
	}

	if uc.state.Phase != entity.PhaseIdle {
		return uc.state.Phase
	}

	text, ok := uc.page.LocationText(ctx)
	if !ok {
		if uc.state.RecordMissingLocation(uc.opts.MaxRetries) {
			log.Warn().
				Int("retries", uc.state.RetryCount).
				Msg("location never rendered, giving up until page changes")
			if uc.opts.OnGaveUp != nil {
				uc.opts.OnGaveUp(ctx, uc.state.RetryCount)
			}
		} else {
			log.Debug().Int("retry", uc.state.RetryCount).Msg("location not rendered yet")
		}
		return uc.state.Phase
	}

	if !uc.state.ObserveLocation(text) {
		return uc.state.Phase
	}

	code, ok := entity.ExtractSiteCode(text)
	if !ok {
		log.Debug().Str("location", text).Msg("no site code in location")
		return uc.state.Phase
	}

	if !uc.opts.Rules.IsUrgent(code) {
		log.Debug().Str("site", code.String()).Msg("site is not urgent")
		return uc.state.Phase
	}

	log.Info().Str("site", code.String()).Str("location", text).Msg("urgent site detected")
	uc.state.Trigger(code)
	uc.notifier.Notify(ctx, code.String())
	return uc.state.Phase
}

// Reset handles a structural page change: the state returns to idle, the
// observed location is forgotten and any active notification is retracted.
func (uc *DetectUrgentSiteUseCase) Reset(ctx context.Context) {
	logging.FromContext(ctx).Debug().
		Str("from", uc.state.Phase.String()).
		Int("retries", uc.state.RetryCount).
		Msg("detection state reset")
	uc.state.Reset()
	uc.notifier.Retract(ctx)
}
