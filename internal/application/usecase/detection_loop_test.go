package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/sitealert/internal/application/port/mocks"
	"github.com/bnema/sitealert/internal/application/usecase"
	"github.com/bnema/sitealert/internal/domain/entity"
)

const (
	eventuallyWait = 2 * time.Second
	eventuallyTick = 5 * time.Millisecond
)

func newLoop(page *fakePage, notifier *portmocks.MockNotifier, interval time.Duration, maxRetries int) *usecase.DetectionLoop {
	return usecase.NewDetectionLoop(page, notifier, usecase.DetectionOptions{
		Rules:         urgentRules(),
		CheckInterval: interval,
		MaxRetries:    maxRetries,
	})
}

func TestDetectionLoop_StartTicksImmediately(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	page.setLocation("MCO3 - X1")
	notifier := portmocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything, "MCO3").Return().Once()

	loop := newLoop(page, notifier, time.Hour, 5)
	require.NoError(t, loop.Start(testContext()))
	t.Cleanup(loop.Stop)

	assert.Equal(t, entity.PhaseTriggered, loop.State().Phase)
	assert.Equal(t, 1, page.subscribers())
	assert.True(t, loop.Polling())
}

func TestDetectionLoop_TimerGivesUpAndStopsPolling(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	notifier := portmocks.NewMockNotifier(t)

	loop := newLoop(page, notifier, time.Millisecond, 4)
	require.NoError(t, loop.Start(testContext()))
	t.Cleanup(loop.Stop)

	assert.Eventually(t, func() bool {
		return loop.State().Phase == entity.PhaseGaveUp
	}, eventuallyWait, eventuallyTick)

	assert.False(t, loop.Polling())
	assert.Equal(t, 4, page.LocationCalls())
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestDetectionLoop_TimerPicksUpLateLocation(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	notifier := portmocks.NewMockNotifier(t)
	notified := make(chan string, 1)
	notifier.EXPECT().Notify(mock.Anything, "STL5").
		Run(func(_ context.Context, siteCode string) { notified <- siteCode }).
		Return().Once()

	loop := newLoop(page, notifier, time.Millisecond, 1000)
	require.NoError(t, loop.Start(testContext()))
	t.Cleanup(loop.Stop)

	page.setLocation("STL5 - Dock 4")

	select {
	case code := <-notified:
		assert.Equal(t, "STL5", code)
	case <-time.After(eventuallyWait):
		t.Fatal("urgent site was never notified")
	}
}

func TestDetectionLoop_StructuralChangeResetsGaveUp(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	notifier := portmocks.NewMockNotifier(t)
	notifier.EXPECT().Retract(mock.Anything).Return().Once()
	notifier.EXPECT().Notify(mock.Anything, "KCVG").Return().Once()

	loop := newLoop(page, notifier, time.Hour, 0)
	require.NoError(t, loop.Start(testContext()))
	t.Cleanup(loop.Stop)
	require.Equal(t, entity.PhaseGaveUp, loop.State().Phase)
	require.False(t, loop.Polling())

	page.setLocation("KCVG - Lane 2")
	page.emit(entity.PageChange{Kind: entity.PageChangeNavigation, Identity: "/work-orders/42"})

	assert.Equal(t, entity.PhaseTriggered, loop.State().Phase)
	assert.True(t, loop.Polling())
}

func TestDetectionLoop_MutationRechecksWithoutReset(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	page.setLocation("RDU1 - PS552")
	notifier := portmocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything, "DFW7").Return().Once()

	loop := newLoop(page, notifier, time.Hour, 5)
	require.NoError(t, loop.Start(testContext()))
	t.Cleanup(loop.Stop)
	require.Equal(t, entity.PhaseIdle, loop.State().Phase)

	page.setLocation("DFW7 - Door 12")
	page.emit(entity.PageChange{Kind: entity.PageChangeMutation})

	assert.Equal(t, entity.PhaseTriggered, loop.State().Phase)
	notifier.AssertNotCalled(t, "Retract", mock.Anything)
}

func TestDetectionLoop_MutationDoesNotLeaveGaveUp(t *testing.T) {
	page := newFakePage()
	page.setUnassigned(true)
	notifier := portmocks.NewMockNotifier(t)

	loop := newLoop(page, notifier, time.Hour, 0)
	require.NoError(t, loop.Start(testContext()))
	t.Cleanup(loop.Stop)

	page.setLocation("KCVG - Lane 2")
	page.emit(entity.PageChange{Kind: entity.PageChangeMutation})

	assert.Equal(t, entity.PhaseGaveUp, loop.State().Phase)
}

func TestDetectionLoop_StopIgnoresLaterChanges(t *testing.T) {
	page := newFakePage()
	notifier := portmocks.NewMockNotifier(t)

	loop := newLoop(page, notifier, time.Millisecond, 5)
	require.NoError(t, loop.Start(testContext()))

	loop.Stop()
	loop.Stop()

	select {
	case <-loop.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
	assert.Zero(t, page.subscribers())
	assert.False(t, loop.Polling())

	page.setUnassigned(true)
	page.setLocation("STL5 - Dock 4")
	page.emit(entity.PageChange{Kind: entity.PageChangeNavigation})

	assert.Equal(t, entity.PhaseIdle, loop.State().Phase)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Retract", mock.Anything)
}

func TestDetectionLoop_ContextCancelStops(t *testing.T) {
	page := newFakePage()
	notifier := portmocks.NewMockNotifier(t)

	ctx, cancel := context.WithCancel(testContext())
	loop := newLoop(page, notifier, time.Millisecond, 5)
	require.NoError(t, loop.Start(ctx))

	cancel()

	select {
	case <-loop.Done():
	case <-time.After(eventuallyWait):
		t.Fatal("loop did not stop after context cancellation")
	}
	assert.Zero(t, page.subscribers())
}

func TestDetectionLoop_StartErrors(t *testing.T) {
	page := newFakePage()
	notifier := portmocks.NewMockNotifier(t)

	loop := newLoop(page, notifier, time.Hour, 5)
	require.NoError(t, loop.Start(testContext()))
	assert.ErrorIs(t, loop.Start(testContext()), usecase.ErrLoopStarted)
	loop.Stop()

	stopped := newLoop(page, notifier, time.Hour, 5)
	stopped.Stop()
	assert.ErrorIs(t, stopped.Start(testContext()), usecase.ErrLoopStopped)
}
