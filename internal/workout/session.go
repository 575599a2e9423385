package workout

import (
	"fmt"
	"strings"
)

// ActivityKind identifies what a session tracks. Picked before start and
// immutable for the session's lifetime.
type ActivityKind string

const (
	ActivityCycling    ActivityKind = "cycling"
	ActivityRunning    ActivityKind = "running"
	ActivityWheelchair ActivityKind = "wheelchair"
)

// Activities lists the supported kinds in selection order.
var Activities = []ActivityKind{ActivityCycling, ActivityRunning, ActivityWheelchair}

// ParseActivity maps a user-supplied name to an ActivityKind. Accepts a few
// common aliases.
func ParseActivity(s string) (ActivityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cycling", "cycle", "bike", "ride":
		return ActivityCycling, nil
	case "running", "run":
		return ActivityRunning, nil
	case "wheelchair", "push":
		return ActivityWheelchair, nil
	}
	return "", fmt.Errorf("unknown activity %q (want cycling, running or wheelchair)", s)
}

// Label returns the kind capitalized for display.
func (a ActivityKind) Label() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}

// State is the lifecycle position of a session.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
