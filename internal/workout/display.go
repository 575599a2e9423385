package workout

import (
	"fmt"
	"math"
)

// DisplayMode selects which total the watch face shows.
type DisplayMode int

const (
	DisplayDistance DisplayMode = iota
	DisplayEnergy
	DisplayHeartRate
	displayModeCount
)

// Next returns the mode after m, wrapping back to distance.
func (m DisplayMode) Next() DisplayMode {
	return (m + 1) % displayModeCount
}

func (m DisplayMode) String() string {
	switch m {
	case DisplayDistance:
		return "distance"
	case DisplayEnergy:
		return "energy"
	case DisplayHeartRate:
		return "heart_rate"
	default:
		return "unknown"
	}
}

// Projection is one rendered reading: the value shown big on the face and
// the unit label under it.
type Projection struct {
	Value string
	Unit  string
}

// renderers holds one formatting rule per mode, indexed by DisplayMode.
var renderers = [displayModeCount]func(Totals) Projection{
	DisplayDistance: func(t Totals) Projection {
		return Projection{Value: fmt.Sprintf("%.2f", t.DistanceMeters/1000), Unit: "km"}
	},
	DisplayEnergy: func(t Totals) Projection {
		return Projection{Value: fmt.Sprintf("%d", int(math.Round(t.EnergyKcal))), Unit: "kcal"}
	},
	DisplayHeartRate: func(t Totals) Projection {
		return Projection{Value: fmt.Sprintf("%d", int(math.Round(t.HeartRateBPM))), Unit: "bpm"}
	},
}

// Render formats totals for one mode. Pure; out-of-range modes render as
// distance.
func Render(m DisplayMode, t Totals) Projection {
	if m < 0 || m >= displayModeCount {
		m = DisplayDistance
	}
	return renderers[m](t)
}
