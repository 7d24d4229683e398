package port

import "context"

// Notifier presents urgent site detections to the user.
// Implementations must not call back into the detector.
type Notifier interface {
	// Notify fires once per detection with the urgent site code.
	Notify(ctx context.Context, siteCode string)

	// Retract withdraws an active notification. It is a no-op when none is active.
	Retract(ctx context.Context)
}
