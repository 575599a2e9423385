package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayazhan/wrkt/internal/workout"
)

var _ workout.RecordSink = RecordStore{}

func testDB(t *testing.T) {
	t.Helper()
	if err := Initialize(filepath.Join(t.TempDir(), "wrkt.db")); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func testRecord(sessionID string, startedAt time.Time) workout.Record {
	return workout.Record{
		SessionID:       sessionID,
		Activity:        workout.ActivityCycling,
		DeviceID:        "watch-1",
		StartedAt:       startedAt,
		EndedAt:         startedAt.Add(30 * time.Minute),
		Elapsed:         30 * time.Minute,
		Active:          28 * time.Minute,
		DistanceMeters:  12500,
		EnergyKcal:      340,
		AvgHeartRateBPM: 136.5,
		SamplesApplied:  1680,
		SamplesRejected: 12,
		Goal:            workout.Goal{Kind: workout.GoalDistance, Target: 15000},
	}
}

func TestSaveRecordRoundTrip(t *testing.T) {
	testDB(t)
	start := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)

	if err := SaveRecord(testRecord("sess-a", start)); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	workouts, err := ListWorkouts(0)
	if err != nil {
		t.Fatalf("ListWorkouts: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("stored %d workouts, want 1", len(workouts))
	}

	rec := RecordOf(workouts[0])
	want := testRecord("sess-a", start)
	if rec.SessionID != want.SessionID || rec.Activity != want.Activity {
		t.Fatalf("round trip header = %+v", rec)
	}
	if rec.DistanceMeters != want.DistanceMeters || rec.EnergyKcal != want.EnergyKcal {
		t.Fatalf("round trip totals = %+v", rec)
	}
	if rec.Active != want.Active || rec.Elapsed != want.Elapsed {
		t.Fatalf("round trip durations = %v/%v", rec.Active, rec.Elapsed)
	}
	if rec.Goal != want.Goal {
		t.Fatalf("round trip goal = %+v", rec.Goal)
	}
	if !rec.StartedAt.Equal(want.StartedAt) || !rec.EndedAt.Equal(want.EndedAt) {
		t.Fatalf("round trip times = %v..%v", rec.StartedAt, rec.EndedAt)
	}
}

func TestSaveRecordRetryDoesNotDuplicate(t *testing.T) {
	testDB(t)
	rec := testRecord("sess-b", time.Now())

	if err := SaveRecord(rec); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveRecord(rec); err != nil {
		t.Fatalf("retried save: %v", err)
	}

	workouts, err := ListWorkouts(0)
	if err != nil {
		t.Fatalf("ListWorkouts: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("stored %d workouts after retry, want 1", len(workouts))
	}
}

func TestListWorkoutsNewestFirst(t *testing.T) {
	testDB(t)
	base := time.Date(2026, 5, 2, 7, 0, 0, 0, time.UTC)

	for i, id := range []string{"sess-1", "sess-2", "sess-3"} {
		if err := SaveRecord(testRecord(id, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("SaveRecord %s: %v", id, err)
		}
	}

	workouts, err := ListWorkouts(2)
	if err != nil {
		t.Fatalf("ListWorkouts: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("got %d workouts, want 2", len(workouts))
	}
	if workouts[0].SessionID != "sess-3" || workouts[1].SessionID != "sess-2" {
		t.Fatalf("order = %s, %s", workouts[0].SessionID, workouts[1].SessionID)
	}
}

func TestGetWorkout(t *testing.T) {
	testDB(t)
	if err := SaveRecord(testRecord("sess-c", time.Now())); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	workouts, _ := ListWorkouts(1)

	w, err := GetWorkout(workouts[0].ID)
	if err != nil {
		t.Fatalf("GetWorkout: %v", err)
	}
	if w.SessionID != "sess-c" {
		t.Fatalf("got session %q", w.SessionID)
	}

	if _, err := GetWorkout(9999); err == nil {
		t.Fatal("GetWorkout(9999) found something")
	}
}

func TestMarkExported(t *testing.T) {
	testDB(t)
	if err := SaveRecord(testRecord("sess-d", time.Now())); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	workouts, _ := ListWorkouts(1)
	if workouts[0].ExportedAt != nil {
		t.Fatal("new workout already marked exported")
	}

	if err := MarkExported(workouts[0].ID); err != nil {
		t.Fatalf("MarkExported: %v", err)
	}
	w, err := GetWorkout(workouts[0].ID)
	if err != nil {
		t.Fatalf("GetWorkout: %v", err)
	}
	if w.ExportedAt == nil {
		t.Fatal("ExportedAt still unset")
	}
}
