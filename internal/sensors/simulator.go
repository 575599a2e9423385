package sensors

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// Profile shapes the readings the simulator fabricates for one activity.
type Profile struct {
	SpeedMPS   float64 // meters covered per second
	KcalPerMin float64 // energy burn per minute
	HRLow      int     // heart rate band, bpm
	HRHigh     int
}

// Simulator is a Source that fabricates plausible readings on a fixed
// interval. It stands in for the platform sensor service (BLE, watch
// hardware) so a session can run anywhere; distance and energy are emitted
// as per-interval deltas, heart rate as an absolute reading that wanders
// inside the profile band.
type Simulator struct {
	DeviceID string
	Profile  Profile
	Interval time.Duration // batch delivery interval, 1s when zero
	Seed     int64         // deterministic streams when non-zero
}

// NewSimulator returns a simulator delivering one batch per second.
func NewSimulator(deviceID string, profile Profile) *Simulator {
	return &Simulator{
		DeviceID: deviceID,
		Profile:  profile,
		Interval: time.Second,
	}
}

// Available reports whether the source can be opened. The simulator always
// can.
func (s *Simulator) Available() bool { return true }

// Subscribe starts delivering batches for one metric until Stop is called on
// the returned subscription. Each subscription runs its own goroutine and
// random stream. Samples are stamped with the simulator's device ID; a
// subscription filtered to some other device delivers nothing.
func (s *Simulator) Subscribe(metric Metric, since time.Time, deviceID string, fn BatchFunc) (Subscription, error) {
	if fn == nil {
		return nil, errors.New("sensors: nil batch callback")
	}
	sub := &simSubscription{stop: make(chan struct{})}
	go s.deliver(metric, since, deviceID, fn, sub.stop)
	return sub, nil
}

func (s *Simulator) deliver(metric Metric, since time.Time, deviceID string, fn BatchFunc, stop <-chan struct{}) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Offset per metric so the three streams don't march in lockstep.
	rng := rand.New(rand.NewSource(seed + int64(metric)))

	hr := (s.Profile.HRLow + s.Profile.HRHigh) / 2

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if deviceID != s.DeviceID || now.Before(since) {
				continue
			}
			sample := Sample{
				Metric:   metric,
				Time:     now,
				DeviceID: s.DeviceID,
			}
			switch metric {
			case MetricDistance:
				sample.Value = s.Profile.SpeedMPS * interval.Seconds() * jitter(rng)
			case MetricEnergy:
				sample.Value = s.Profile.KcalPerMin / 60 * interval.Seconds() * jitter(rng)
			case MetricHeartRate:
				hr = wander(rng, hr, s.Profile.HRLow, s.Profile.HRHigh)
				sample.Value = float64(hr)
			default:
				continue
			}
			fn([]Sample{sample})
		}
	}
}

// jitter returns a factor in [0.9, 1.1).
func jitter(rng *rand.Rand) float64 {
	return 0.9 + rng.Float64()*0.2
}

// wander moves a heart rate reading by up to ±3 bpm, clamped to the band.
func wander(rng *rand.Rand, hr, low, high int) int {
	hr += rng.Intn(7) - 3
	if hr < low {
		hr = low
	}
	if hr > high {
		hr = high
	}
	return hr
}

type simSubscription struct {
	once sync.Once
	stop chan struct{}
}

// Stop halts delivery. Safe to call more than once; a batch already being
// delivered may still land after Stop returns.
func (s *simSubscription) Stop() {
	s.once.Do(func() { close(s.stop) })
}
