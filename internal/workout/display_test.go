package workout

import (
	"testing"

	"github.com/ayazhan/wrkt/internal/sensors"
)

func TestCycleReturnsAfterThree(t *testing.T) {
	m := DisplayDistance
	seen := []DisplayMode{m.Next(), m.Next().Next(), m.Next().Next().Next()}
	want := []DisplayMode{DisplayEnergy, DisplayHeartRate, DisplayDistance}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle %d = %v, want %v", i+1, seen[i], want[i])
		}
	}
}

func TestRenderFormats(t *testing.T) {
	totals := Totals{DistanceMeters: 12412.3, EnergyKcal: 326.6, HeartRateBPM: 142.4}

	cases := []struct {
		mode  DisplayMode
		value string
		unit  string
	}{
		{DisplayDistance, "12.41", "km"},
		{DisplayEnergy, "327", "kcal"},
		{DisplayHeartRate, "142", "bpm"},
	}
	for _, tc := range cases {
		got := Render(tc.mode, totals)
		if got.Value != tc.value || got.Unit != tc.unit {
			t.Errorf("Render(%v) = %q %q, want %q %q", tc.mode, got.Value, got.Unit, tc.value, tc.unit)
		}
	}
}

func TestRenderZeroTotals(t *testing.T) {
	var totals Totals
	if got := Render(DisplayDistance, totals); got.Value != "0.00" {
		t.Fatalf("zero distance renders %q", got.Value)
	}
	if got := Render(DisplayEnergy, totals); got.Value != "0" {
		t.Fatalf("zero energy renders %q", got.Value)
	}
	if got := Render(DisplayHeartRate, totals); got.Value != "0" {
		t.Fatalf("zero heart rate renders %q", got.Value)
	}
}

func TestRenderIsPure(t *testing.T) {
	totals := Totals{DistanceMeters: 5000, EnergyKcal: 100, HeartRateBPM: 128}
	for i := 0; i < 3; i++ {
		if got := Render(DisplayHeartRate, totals); got.Value != "128" || got.Unit != "bpm" {
			t.Fatalf("call %d rendered %+v", i, got)
		}
	}
	if totals.HeartRateBPM != 128 {
		t.Fatal("Render mutated its input")
	}
}

func TestTrackerCycleDisplay(t *testing.T) {
	tr, clk := testTracker(ActivityCycling, newFakeSource())
	tr.Start()
	tr.Apply(sampleAt(sensors.MetricEnergy, 88.2, *clk))

	if got := tr.CycleDisplay(); got != DisplayEnergy {
		t.Fatalf("first cycle = %v, want energy", got)
	}
	if p := tr.Display(); p.Value != "88" || p.Unit != "kcal" {
		t.Fatalf("display = %+v", p)
	}
	tr.CycleDisplay()
	if got := tr.CycleDisplay(); got != DisplayDistance {
		t.Fatalf("three cycles land on %v, want distance", got)
	}
}
