package workout

import (
	"errors"
	"fmt"
)

// Lifecycle and handoff failures. Every one is recoverable; nothing in this
// package panics on a bad call.
var (
	// ErrInvalidTransition reports a lifecycle action attempted from a
	// state that forbids it. The session is left untouched.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrSourceUnavailable reports that the sample source could not be
	// opened. The session stays NotStarted.
	ErrSourceUnavailable = errors.New("sample source unavailable")

	// ErrPersist reports a failed record handoff. The session stays Ended
	// and keeps the record, so the handoff can be retried.
	ErrPersist = errors.New("session record handoff failed")
)

func transitionErr(from State, action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, from)
}

// ApplyStatus reports what happened to one offered sample. Rejection is a
// normal outcome, not an error; the tracker keeps per-reason counts for
// diagnostics.
type ApplyStatus int

const (
	Applied ApplyStatus = iota
	RejectedNotRunning
	RejectedStale
	RejectedOtherDevice
	RejectedUnknownMetric
)

func (s ApplyStatus) String() string {
	switch s {
	case Applied:
		return "applied"
	case RejectedNotRunning:
		return "rejected_not_running"
	case RejectedStale:
		return "rejected_stale"
	case RejectedOtherDevice:
		return "rejected_other_device"
	case RejectedUnknownMetric:
		return "rejected_unknown_metric"
	default:
		return "unknown"
	}
}

// RejectCounts breaks down discarded samples by reason.
type RejectCounts struct {
	NotRunning    int
	Stale         int
	OtherDevice   int
	UnknownMetric int
}

// Total is the number of samples discarded for any reason.
func (r RejectCounts) Total() int {
	return r.NotRunning + r.Stale + r.OtherDevice + r.UnknownMetric
}
