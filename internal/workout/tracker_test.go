package workout

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayazhan/wrkt/internal/sensors"
)

type fakeSub struct {
	stopped int
}

func (s *fakeSub) Stop() { s.stopped++ }

type fakeSource struct {
	available bool
	failOn    int // fail the nth Subscribe call, 0 means never
	calls     int
	subs      []*fakeSub
	byMetric  map[sensors.Metric]sensors.BatchFunc
}

func newFakeSource() *fakeSource {
	return &fakeSource{available: true, byMetric: map[sensors.Metric]sensors.BatchFunc{}}
}

func (f *fakeSource) Available() bool { return f.available }

func (f *fakeSource) Subscribe(m sensors.Metric, since time.Time, deviceID string, fn sensors.BatchFunc) (sensors.Subscription, error) {
	f.calls++
	if f.failOn > 0 && f.calls >= f.failOn {
		return nil, errors.New("stream denied")
	}
	f.byMetric[m] = fn
	sub := &fakeSub{}
	f.subs = append(f.subs, sub)
	return sub, nil
}

// testTracker returns a tracker with a frozen, advanceable clock and a fixed
// session ID.
func testTracker(activity ActivityKind, src sensors.Source) (*Tracker, *time.Time) {
	now := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
	tr := NewTracker(activity, "watch-1", src)
	tr.clock = func() time.Time { return now }
	tr.newID = func() string { return "sess-1" }
	return tr, &now
}

func sampleAt(m sensors.Metric, v float64, at time.Time) sensors.Sample {
	return sensors.Sample{Metric: m, Value: v, Time: at, DeviceID: "watch-1"}
}

func TestStartOpensOneSubscriptionPerMetric(t *testing.T) {
	src := newFakeSource()
	tr, _ := testTracker(ActivityCycling, src)

	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if tr.State() != StateRunning {
		t.Fatalf("state = %v, want running", tr.State())
	}
	if tr.SessionID() != "sess-1" {
		t.Fatalf("session id = %q", tr.SessionID())
	}
	if len(src.byMetric) != len(sensors.Tracked) {
		t.Fatalf("opened %d subscriptions, want %d", len(src.byMetric), len(sensors.Tracked))
	}
	for _, m := range sensors.Tracked {
		if src.byMetric[m] == nil {
			t.Fatalf("no subscription for %v", m)
		}
	}
}

func TestLifecycleRejectsForbiddenTransitions(t *testing.T) {
	cases := []struct {
		name  string
		setup func(tr *Tracker)
		act   func(tr *Tracker) error
	}{
		{"pause before start", func(tr *Tracker) {}, func(tr *Tracker) error { return tr.Pause() }},
		{"resume before start", func(tr *Tracker) {}, func(tr *Tracker) error { return tr.Resume() }},
		{"end before start", func(tr *Tracker) {}, func(tr *Tracker) error { _, err := tr.End(); return err }},
		{"start twice", func(tr *Tracker) { tr.Start() }, func(tr *Tracker) error { return tr.Start() }},
		{"resume while running", func(tr *Tracker) { tr.Start() }, func(tr *Tracker) error { return tr.Resume() }},
		{"pause while paused", func(tr *Tracker) { tr.Start(); tr.Pause() }, func(tr *Tracker) error { return tr.Pause() }},
		{"start after end", func(tr *Tracker) { tr.Start(); tr.End() }, func(tr *Tracker) error { return tr.Start() }},
		{"pause after end", func(tr *Tracker) { tr.Start(); tr.End() }, func(tr *Tracker) error { return tr.Pause() }},
		{"resume after end", func(tr *Tracker) { tr.Start(); tr.End() }, func(tr *Tracker) error { return tr.Resume() }},
		{"end twice", func(tr *Tracker) { tr.Start(); tr.End() }, func(tr *Tracker) error { _, err := tr.End(); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, _ := testTracker(ActivityRunning, newFakeSource())
			tc.setup(tr)
			before := tr.State()
			err := tc.act(tr)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if tr.State() != before {
				t.Fatalf("state changed from %v to %v on a rejected action", before, tr.State())
			}
		})
	}
}

func TestStartWithUnavailableSource(t *testing.T) {
	src := newFakeSource()
	src.available = false
	tr, _ := testTracker(ActivityCycling, src)

	if err := tr.Start(); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
	if tr.State() != StateNotStarted {
		t.Fatalf("state = %v, want not_started", tr.State())
	}
}

func TestStartStopsOpenedSubsWhenOneFails(t *testing.T) {
	src := newFakeSource()
	src.failOn = 3
	tr, _ := testTracker(ActivityCycling, src)

	if err := tr.Start(); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
	if tr.State() != StateNotStarted {
		t.Fatalf("state = %v, want not_started", tr.State())
	}
	if len(src.subs) != 2 {
		t.Fatalf("opened %d subs before the failure, want 2", len(src.subs))
	}
	for i, sub := range src.subs {
		if sub.stopped == 0 {
			t.Fatalf("sub %d left open after failed start", i)
		}
	}
}

func TestFullSessionScenario(t *testing.T) {
	src := newFakeSource()
	tr, clk := testTracker(ActivityCycling, src)

	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	started := *clk

	*clk = clk.Add(time.Minute)
	if got := tr.Apply(sampleAt(sensors.MetricDistance, 500, *clk)); got != Applied {
		t.Fatalf("distance apply = %v", got)
	}
	if got := tr.Apply(sampleAt(sensors.MetricEnergy, 50, *clk)); got != Applied {
		t.Fatalf("energy apply = %v", got)
	}
	if got := tr.Apply(sampleAt(sensors.MetricHeartRate, 130, *clk)); got != Applied {
		t.Fatalf("heart rate apply = %v", got)
	}

	snap := tr.Snapshot()
	if snap.DistanceMeters != 500 || snap.EnergyKcal != 50 || snap.HeartRateBPM != 130 {
		t.Fatalf("snapshot = %+v, want {500 50 130}", snap)
	}

	if err := tr.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	*clk = clk.Add(time.Minute)
	if got := tr.Apply(sampleAt(sensors.MetricDistance, 200, *clk)); got != RejectedNotRunning {
		t.Fatalf("paused apply = %v, want rejected_not_running", got)
	}
	if snap = tr.Snapshot(); snap.DistanceMeters != 500 {
		t.Fatalf("paused snapshot moved to %v m", snap.DistanceMeters)
	}

	if err := tr.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	*clk = clk.Add(time.Minute)
	if got := tr.Apply(sampleAt(sensors.MetricDistance, 100, *clk)); got != Applied {
		t.Fatalf("resumed apply = %v", got)
	}
	if snap = tr.Snapshot(); snap.DistanceMeters != 600 {
		t.Fatalf("distance = %v m, want 600", snap.DistanceMeters)
	}

	rec, err := tr.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if rec.DistanceMeters != 600 {
		t.Fatalf("record distance = %v, want 600", rec.DistanceMeters)
	}
	if rec.EnergyKcal != 50 {
		t.Fatalf("record energy = %v, want 50", rec.EnergyKcal)
	}
	if rec.StartedAt != started {
		t.Fatalf("record start = %v, want %v", rec.StartedAt, started)
	}
	if !rec.EndedAt.After(rec.StartedAt) {
		t.Fatalf("record end %v not after start %v", rec.EndedAt, rec.StartedAt)
	}
	if rec.Activity != ActivityCycling {
		t.Fatalf("record activity = %v", rec.Activity)
	}
	for i, sub := range src.subs {
		if sub.stopped == 0 {
			t.Fatalf("sub %d still open after end", i)
		}
	}
}

func TestStaleSampleRejectedWhileRunning(t *testing.T) {
	tr, clk := testTracker(ActivityRunning, newFakeSource())
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	stale := clk.Add(-time.Second)
	if got := tr.Apply(sampleAt(sensors.MetricDistance, 500, stale)); got != RejectedStale {
		t.Fatalf("apply = %v, want rejected_stale", got)
	}
	if snap := tr.Snapshot(); snap.DistanceMeters != 0 {
		t.Fatalf("stale sample moved distance to %v", snap.DistanceMeters)
	}
	if st := tr.Status(); st.Rejected.Stale != 1 {
		t.Fatalf("stale count = %d, want 1", st.Rejected.Stale)
	}
}

func TestForeignDeviceSampleRejected(t *testing.T) {
	tr, clk := testTracker(ActivityRunning, newFakeSource())
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	s := sensors.Sample{Metric: sensors.MetricEnergy, Value: 25, Time: *clk, DeviceID: "phone-7"}
	if got := tr.Apply(s); got != RejectedOtherDevice {
		t.Fatalf("apply = %v, want rejected_other_device", got)
	}
	if snap := tr.Snapshot(); snap.EnergyKcal != 0 {
		t.Fatalf("foreign sample moved energy to %v", snap.EnergyKcal)
	}
}

func TestHeartRateLatestWins(t *testing.T) {
	tr, clk := testTracker(ActivityCycling, newFakeSource())
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	tr.Apply(sampleAt(sensors.MetricHeartRate, 120, *clk))
	tr.Apply(sampleAt(sensors.MetricDistance, 40, *clk))
	tr.Apply(sampleAt(sensors.MetricHeartRate, 135, *clk))
	tr.Apply(sampleAt(sensors.MetricEnergy, 3, *clk))

	if snap := tr.Snapshot(); snap.HeartRateBPM != 135 {
		t.Fatalf("heart rate = %v, want the latest reading 135", snap.HeartRateBPM)
	}
}

func TestEndFreezesTotals(t *testing.T) {
	tr, clk := testTracker(ActivityCycling, newFakeSource())
	tr.Start()
	tr.Apply(sampleAt(sensors.MetricDistance, 250, *clk))
	if _, err := tr.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	if got := tr.Apply(sampleAt(sensors.MetricDistance, 99, *clk)); got != RejectedNotRunning {
		t.Fatalf("apply after end = %v, want rejected_not_running", got)
	}
	if snap := tr.Snapshot(); snap.DistanceMeters != 250 {
		t.Fatalf("totals moved after end: %v", snap.DistanceMeters)
	}
}

func TestDeliveryThroughSubscriptionCallback(t *testing.T) {
	src := newFakeSource()
	tr, clk := testTracker(ActivityCycling, src)
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	src.byMetric[sensors.MetricDistance]([]sensors.Sample{
		sampleAt(sensors.MetricDistance, 120, *clk),
		sampleAt(sensors.MetricDistance, 80, *clk),
	})
	src.byMetric[sensors.MetricHeartRate]([]sensors.Sample{
		sampleAt(sensors.MetricHeartRate, 141, *clk),
	})

	snap := tr.Snapshot()
	if snap.DistanceMeters != 200 {
		t.Fatalf("distance = %v, want 200", snap.DistanceMeters)
	}
	if snap.HeartRateBPM != 141 {
		t.Fatalf("heart rate = %v, want 141", snap.HeartRateBPM)
	}

	// A final in-flight batch after end must be ignorable.
	tr.End()
	src.byMetric[sensors.MetricDistance]([]sensors.Sample{sampleAt(sensors.MetricDistance, 999, *clk)})
	if snap = tr.Snapshot(); snap.DistanceMeters != 200 {
		t.Fatalf("late batch moved distance to %v", snap.DistanceMeters)
	}
}

func TestActiveTimeExcludesPauses(t *testing.T) {
	tr, clk := testTracker(ActivityRunning, newFakeSource())
	tr.Start()

	*clk = clk.Add(10 * time.Minute)
	tr.Pause()
	*clk = clk.Add(5 * time.Minute)
	tr.Resume()
	*clk = clk.Add(2 * time.Minute)
	rec, err := tr.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	if rec.Active != 12*time.Minute {
		t.Fatalf("active = %v, want 12m", rec.Active)
	}
	if rec.Elapsed != 17*time.Minute {
		t.Fatalf("elapsed = %v, want 17m", rec.Elapsed)
	}
}

func TestConcurrentApplySerialized(t *testing.T) {
	tr, clk := testTracker(ActivityCycling, newFakeSource())
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	at := *clk

	const workers = 4
	const perWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tr.ApplyBatch([]sensors.Sample{sampleAt(sensors.MetricDistance, 1, at)})
			}
		}()
	}
	wg.Wait()

	if snap := tr.Snapshot(); snap.DistanceMeters != workers*perWorker {
		t.Fatalf("distance = %v, want %d", snap.DistanceMeters, workers*perWorker)
	}
	if st := tr.Status(); st.Applied != workers*perWorker {
		t.Fatalf("applied count = %d, want %d", st.Applied, workers*perWorker)
	}
}

func TestStatusSnapshot(t *testing.T) {
	tr, clk := testTracker(ActivityCycling, newFakeSource())
	tr.SetGoal(Goal{Kind: GoalDistance, Target: 1000})
	tr.Start()
	*clk = clk.Add(30 * time.Second)
	tr.Apply(sampleAt(sensors.MetricDistance, 250, *clk))

	st := tr.Status()
	if st.State != StateRunning || st.Activity != ActivityCycling || st.DeviceID != "watch-1" {
		t.Fatalf("status header = %+v", st)
	}
	if st.Elapsed != 30*time.Second || st.Active != 30*time.Second {
		t.Fatalf("elapsed/active = %v/%v, want 30s/30s", st.Elapsed, st.Active)
	}
	if st.Display.Value != "0.25" || st.Display.Unit != "km" {
		t.Fatalf("display = %+v", st.Display)
	}
	if st.GoalDone != 0.25 {
		t.Fatalf("goal progress = %v, want 0.25", st.GoalDone)
	}
}
