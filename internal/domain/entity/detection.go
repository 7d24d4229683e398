package entity

// DetectionPhase is the position of a detection run in its state machine.
type DetectionPhase int

const (
	// PhaseIdle means the run is polling for an urgent unassigned work order.
	PhaseIdle DetectionPhase = iota
	// PhaseTriggered means a notification was fired for the current page state.
	PhaseTriggered
	// PhaseGaveUp means the location never appeared within the retry budget.
	// Only a reset event leaves this phase.
	PhaseGaveUp
)

// String returns a human-readable representation of the phase.
func (p DetectionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTriggered:
		return "triggered"
	case PhaseGaveUp:
		return "gave_up"
	default:
		return "unknown"
	}
}

// DetectionState is the mutable state of a single detection run.
// It lives for one page view and is never persisted.
type DetectionState struct {
	Phase DetectionPhase

	// LastLocationText is the location seen on the previous observation.
	// HasLocation is false until a location has been observed.
	LastLocationText string
	HasLocation      bool

	// RetryCount counts consecutive ticks without location text.
	RetryCount int

	// NotifiedCode is the site code of the active notification, if any.
	NotifiedCode SiteCode
}

// NewDetectionState returns the initial idle state.
func NewDetectionState() DetectionState {
	return DetectionState{Phase: PhaseIdle}
}

// Triggered reports whether a notification is currently active.
func (s DetectionState) Triggered() bool {
	return s.Phase == PhaseTriggered
}

// Reset returns the state to idle and forgets the observed location.
func (s *DetectionState) Reset() {
	*s = NewDetectionState()
}

// RecordMissingLocation counts one tick without location text and moves the
// state to PhaseGaveUp once maxRetries is reached. It returns true when the
// run just gave up.
func (s *DetectionState) RecordMissingLocation(maxRetries int) bool {
	s.RetryCount++
	if s.RetryCount < maxRetries {
		return false
	}
	s.Phase = PhaseGaveUp
	return true
}

// ObserveLocation records text as the latest location. It returns false
// when text equals the previous observation.
func (s *DetectionState) ObserveLocation(text string) bool {
	if s.HasLocation && s.LastLocationText == text {
		return false
	}
	s.LastLocationText = text
	s.HasLocation = true
	s.RetryCount = 0
	return true
}

// Trigger marks code as notified.
func (s *DetectionState) Trigger(code SiteCode) {
	s.Phase = PhaseTriggered
	s.NotifiedCode = code
}

// Withdraw drops an active notification but keeps the dedup fields, so an
// unchanged location does not re-trigger once the work order is unassigned again.
func (s *DetectionState) Withdraw() {
	s.Phase = PhaseIdle
	s.NotifiedCode = ""
}
