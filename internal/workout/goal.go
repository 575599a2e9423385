package workout

import (
	"fmt"
	"time"
)

// GoalKind says what a session goal targets.
type GoalKind int

const (
	GoalNone GoalKind = iota
	GoalDistance
	GoalEnergy
	GoalDuration
)

func (k GoalKind) String() string {
	switch k {
	case GoalDistance:
		return "distance"
	case GoalEnergy:
		return "energy"
	case GoalDuration:
		return "duration"
	default:
		return "none"
	}
}

// ParseGoalKind is the inverse of GoalKind.String; anything unrecognized is
// GoalNone.
func ParseGoalKind(s string) GoalKind {
	switch s {
	case "distance":
		return GoalDistance
	case "energy":
		return GoalEnergy
	case "duration":
		return GoalDuration
	default:
		return GoalNone
	}
}

// Goal is an optional session target. Target is meters for distance goals,
// kilocalories for energy goals and seconds for duration goals.
type Goal struct {
	Kind   GoalKind
	Target float64
}

// Progress reports completion in [0, 1] against the totals and the time
// spent running.
func (g Goal) Progress(t Totals, active time.Duration) float64 {
	if g.Target <= 0 {
		return 0
	}
	var done float64
	switch g.Kind {
	case GoalDistance:
		done = t.DistanceMeters / g.Target
	case GoalEnergy:
		done = t.EnergyKcal / g.Target
	case GoalDuration:
		done = active.Seconds() / g.Target
	default:
		return 0
	}
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}

func (g Goal) String() string {
	switch g.Kind {
	case GoalDistance:
		return fmt.Sprintf("%.2f km", g.Target/1000)
	case GoalEnergy:
		return fmt.Sprintf("%.0f kcal", g.Target)
	case GoalDuration:
		return (time.Duration(g.Target) * time.Second).String()
	default:
		return "none"
	}
}
