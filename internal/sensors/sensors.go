package sensors

import (
	"errors"
	"time"
)

// Metric identifies one tracked quantity.
type Metric int

const (
	MetricDistance Metric = iota
	MetricEnergy
	MetricHeartRate
)

// Tracked lists every metric a session subscribes to.
var Tracked = []Metric{MetricDistance, MetricEnergy, MetricHeartRate}

// Valid reports whether m is one of the tracked metrics.
func (m Metric) Valid() bool {
	return m >= MetricDistance && m <= MetricHeartRate
}

// String returns the metric name used in logs and status output.
func (m Metric) String() string {
	switch m {
	case MetricDistance:
		return "distance"
	case MetricEnergy:
		return "energy"
	case MetricHeartRate:
		return "heart_rate"
	default:
		return "unknown"
	}
}

// Unit returns the canonical unit samples of this metric are delivered in.
func (m Metric) Unit() string {
	switch m {
	case MetricDistance:
		return "m"
	case MetricEnergy:
		return "kcal"
	case MetricHeartRate:
		return "bpm"
	default:
		return ""
	}
}

// Sample is one measurement event. Distance and energy samples carry
// incremental deltas in meters/kilocalories; heart rate samples carry the
// absolute reading in beats per minute. Samples are consumed once and never
// stored.
type Sample struct {
	Metric   Metric
	Value    float64
	Time     time.Time
	DeviceID string
}

// BatchFunc receives one delivered batch of samples. Batches may be empty,
// may contain duplicates, and may be out of order; they can arrive on any
// goroutine and must not block.
type BatchFunc func(batch []Sample)

// Subscription is a handle on one live metric stream. Stop is idempotent and
// advisory: a batch already in flight when Stop returns may still be
// delivered, so consumers have to stay safe against one late callback.
type Subscription interface {
	Stop()
}

// Source is the measurement service a session reads from. One subscription
// is opened per metric; the source filters out samples older than since or
// from a device other than deviceID, though consumers re-check both.
type Source interface {
	Available() bool
	Subscribe(metric Metric, since time.Time, deviceID string, fn BatchFunc) (Subscription, error)
}

// ErrUnavailable is returned by Subscribe when the source cannot deliver
// samples (not present, not authorized).
var ErrUnavailable = errors.New("sample source unavailable")
