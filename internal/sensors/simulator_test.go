package sensors

import (
	"testing"
	"time"
)

func collectBatches(t *testing.T, sim *Simulator, metric Metric, deviceID string, n int) []Sample {
	t.Helper()

	ch := make(chan Sample, 64)
	sub, err := sim.Subscribe(metric, time.Time{}, deviceID, func(batch []Sample) {
		for _, s := range batch {
			select {
			case ch <- s:
			default:
			}
		}
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Stop()

	var got []Sample
	deadline := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case s := <-ch:
			got = append(got, s)
		case <-deadline:
			t.Fatalf("collected %d samples, want %d", len(got), n)
		}
	}
	return got
}

func TestSimulatorDistanceDeltas(t *testing.T) {
	sim := NewSimulator("watch-1", Profile{SpeedMPS: 5, KcalPerMin: 10, HRLow: 110, HRHigh: 150})
	sim.Interval = 5 * time.Millisecond
	sim.Seed = 42

	perTick := 5 * sim.Interval.Seconds()
	for _, s := range collectBatches(t, sim, MetricDistance, "watch-1", 10) {
		if s.Metric != MetricDistance {
			t.Fatalf("metric = %v, want distance", s.Metric)
		}
		if s.DeviceID != "watch-1" {
			t.Fatalf("device = %q, want watch-1", s.DeviceID)
		}
		if s.Value < perTick*0.9 || s.Value > perTick*1.1 {
			t.Fatalf("delta %v outside jitter band around %v", s.Value, perTick)
		}
	}
}

func TestSimulatorHeartRateStaysInBand(t *testing.T) {
	sim := NewSimulator("watch-1", Profile{SpeedMPS: 5, KcalPerMin: 10, HRLow: 110, HRHigh: 150})
	sim.Interval = 5 * time.Millisecond
	sim.Seed = 7

	for _, s := range collectBatches(t, sim, MetricHeartRate, "watch-1", 20) {
		if s.Value < 110 || s.Value > 150 {
			t.Fatalf("heart rate %v outside [110, 150]", s.Value)
		}
	}
}

func TestSimulatorFiltersForeignDevice(t *testing.T) {
	sim := NewSimulator("watch-1", Profile{SpeedMPS: 5, KcalPerMin: 10, HRLow: 110, HRHigh: 150})
	sim.Interval = 5 * time.Millisecond

	delivered := make(chan struct{}, 1)
	sub, err := sim.Subscribe(MetricDistance, time.Time{}, "someone-else", func(batch []Sample) {
		select {
		case delivered <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Stop()

	select {
	case <-delivered:
		t.Fatal("got a batch for a foreign device filter")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSimulatorStopHaltsDelivery(t *testing.T) {
	sim := NewSimulator("watch-1", Profile{SpeedMPS: 5, KcalPerMin: 10, HRLow: 110, HRHigh: 150})
	sim.Interval = 5 * time.Millisecond

	ch := make(chan Sample, 64)
	sub, err := sim.Subscribe(MetricEnergy, time.Time{}, "watch-1", func(batch []Sample) {
		for _, s := range batch {
			select {
			case ch <- s:
			default:
			}
		}
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no batch before Stop")
	}

	sub.Stop()
	sub.Stop() // idempotent

	// Drain anything already in flight, then expect silence.
	time.Sleep(20 * time.Millisecond)
	for {
		select {
		case <-ch:
			continue
		default:
		}
		break
	}
	select {
	case <-ch:
		t.Fatal("batch delivered after Stop settled")
	case <-time.After(50 * time.Millisecond):
	}
}
