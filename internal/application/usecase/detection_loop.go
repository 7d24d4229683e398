package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/logging"
)

var (
	// ErrLoopStarted is returned when Start is called twice on the same loop.
	ErrLoopStarted = errors.New("detection loop already started")
	// ErrLoopStopped is returned when Start is called after Stop.
	ErrLoopStopped = errors.New("detection loop stopped")
)

// DetectionLoop drives a DetectUrgentSiteUseCase from two tick sources: a
// polling timer and the page's change notifications.
//
// Every tick, reset and stop runs under one mutex, so the detection state is
// only ever touched by one caller at a time and a reset triggered by a
// structural change is applied before any later tick observes the state.
type DetectionLoop struct {
	page     port.PageAdapter
	detector *DetectUrgentSiteUseCase
	interval time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	timer   *time.Timer
	timerID uint64
	sub     port.SubscriptionID
	hasSub  bool
	started bool
	stopped bool
	done    chan struct{}
}

// NewDetectionLoop creates a loop for one page with its own detection state.
func NewDetectionLoop(page port.PageAdapter, notifier port.Notifier, opts DetectionOptions) *DetectionLoop {
	detector := NewDetectUrgentSiteUseCase(page, notifier, opts)
	return &DetectionLoop{
		page:     page,
		detector: detector,
		interval: detector.Options().CheckInterval,
		done:     make(chan struct{}),
	}
}

// Start subscribes to page changes and runs the first tick immediately.
// Cancelling ctx has the same effect as Stop.
func (l *DetectionLoop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrLoopStopped
	}
	if l.started {
		l.mu.Unlock()
		return ErrLoopStarted
	}
	l.started = true
	l.ctx, l.cancel = context.WithCancel(ctx)
	runCtx := l.ctx
	l.mu.Unlock()

	sub := l.page.SubscribeToChanges(l.handleChange)

	l.mu.Lock()
	if l.stopped {
		// Stop raced with Start before the subscription was recorded.
		l.mu.Unlock()
		l.page.Unsubscribe(sub)
		return nil
	}
	l.sub = sub
	l.hasSub = true
	logging.FromContext(runCtx).Debug().
		Dur("interval", l.interval).
		Int("max_retries", l.detector.Options().MaxRetries).
		Msg("detection loop started")
	l.tickLocked()
	l.mu.Unlock()

	go func() {
		<-runCtx.Done()
		l.Stop()
	}()
	return nil
}

// Stop cancels the pending timer and unsubscribes from the page. Change
// notifications that arrive afterwards are ignored. Stop is idempotent.
func (l *DetectionLoop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.stopTimerLocked()
	cancel := l.cancel
	sub, hasSub := l.sub, l.hasSub
	ctx := l.ctx
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if hasSub {
		l.page.Unsubscribe(sub)
	}
	if ctx != nil {
		logging.FromContext(ctx).Debug().Msg("detection loop stopped")
	}
	close(l.done)
}

// Done is closed once the loop has stopped.
func (l *DetectionLoop) Done() <-chan struct{} {
	return l.done
}

// State returns a snapshot of the detection state.
func (l *DetectionLoop) State() entity.DetectionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.detector.State()
}

// Polling reports whether a timer tick is pending.
func (l *DetectionLoop) Polling() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timer != nil
}

func (l *DetectionLoop) handleChange(change entity.PageChange) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started || l.stopped {
		return
	}

	logging.FromContext(l.ctx).Debug().
		Str("kind", change.Kind.String()).
		Str("identity", change.Identity).
		Msg("page changed")

	if change.Structural() {
		l.detector.Reset(l.ctx)
	}
	l.tickLocked()
}

// tickLocked runs one detector tick and re-arms the timer unless the run gave up.
// Must be called with l.mu held.
func (l *DetectionLoop) tickLocked() {
	phase := l.detector.Tick(l.ctx)

	l.stopTimerLocked()
	if phase == entity.PhaseGaveUp {
		return
	}

	l.timerID++
	id := l.timerID
	l.timer = time.AfterFunc(l.interval, func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		// A newer tick already re-armed the timer, or the loop stopped.
		if l.stopped || id != l.timerID {
			return
		}
		l.timer = nil
		l.tickLocked()
	})
}

func (l *DetectionLoop) stopTimerLocked() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}
