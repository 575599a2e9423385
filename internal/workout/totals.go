package workout

import "github.com/ayazhan/wrkt/internal/sensors"

// Totals is the running aggregate for one session. Distance and energy sum
// incremental deltas; heart rate keeps the latest accepted reading.
type Totals struct {
	DistanceMeters float64
	EnergyKcal     float64
	HeartRateBPM   float64
}

// fold returns the totals with one sample applied.
func (t Totals) fold(s sensors.Sample) Totals {
	switch s.Metric {
	case sensors.MetricDistance:
		t.DistanceMeters += s.Value
	case sensors.MetricEnergy:
		t.EnergyKcal += s.Value
	case sensors.MetricHeartRate:
		t.HeartRateBPM = s.Value
	}
	return t
}
