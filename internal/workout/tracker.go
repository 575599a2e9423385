// Package workout owns the live session: its lifecycle, the running metric
// totals, the watch-face projection and the finalized record handed off when
// the session ends.
package workout

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayazhan/wrkt/internal/sensors"
)

// Tracker drives one session. Subscription callbacks and user actions all
// mutate it through the same mutex, so a read-modify-write on the totals can
// never interleave with another.
type Tracker struct {
	mu sync.Mutex

	activity ActivityKind
	deviceID string
	source   sensors.Source

	clock func() time.Time
	newID func() string

	state     State
	sessionID string
	startedAt time.Time
	endedAt   time.Time

	// runningSince is set while Running; activeFor accumulates finished
	// running stretches so pauses never count.
	runningSince time.Time
	activeFor    time.Duration

	totals  Totals
	hrSum   float64
	hrCount int

	applied  int
	rejected RejectCounts

	subs []sensors.Subscription

	mode DisplayMode
	goal Goal

	record   Record
	recorded bool
	saved    bool
}

// Status is a read-only snapshot of the whole tracker, taken atomically, for
// surfaces like the status API and the TUI.
type Status struct {
	SessionID string
	Activity  ActivityKind
	DeviceID  string
	State     State
	StartedAt time.Time
	Elapsed   time.Duration
	Active    time.Duration
	Totals    Totals
	Mode      DisplayMode
	Display   Projection
	Goal      Goal
	GoalDone  float64
	Applied   int
	Rejected  RejectCounts
}

// NewTracker prepares a session for one activity on one device. Nothing
// happens until Start.
func NewTracker(activity ActivityKind, deviceID string, source sensors.Source) *Tracker {
	return &Tracker{
		activity: activity,
		deviceID: deviceID,
		source:   source,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}

// Start opens one subscription per tracked metric and moves the session to
// Running. If the source is unavailable, or any subscription fails to open,
// the ones already opened are stopped and the session stays NotStarted.
func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateNotStarted {
		return transitionErr(t.state, "start")
	}
	if t.source == nil || !t.source.Available() {
		return ErrSourceUnavailable
	}

	now := t.clock()
	subs := make([]sensors.Subscription, 0, len(sensors.Tracked))
	for _, m := range sensors.Tracked {
		sub, err := t.source.Subscribe(m, now, t.deviceID, t.ApplyBatch)
		if err != nil {
			for _, opened := range subs {
				opened.Stop()
			}
			return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		subs = append(subs, sub)
	}

	t.subs = subs
	t.sessionID = t.newID()
	t.startedAt = now
	t.runningSince = now
	t.state = StateRunning
	return nil
}

// Pause closes the gate: subscriptions stay open but their samples are
// discarded until Resume.
func (t *Tracker) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return transitionErr(t.state, "pause")
	}
	t.activeFor += t.clock().Sub(t.runningSince)
	t.runningSince = time.Time{}
	t.state = StatePaused
	return nil
}

// Resume reopens the gate. No new subscriptions are created.
func (t *Tracker) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePaused {
		return transitionErr(t.state, "resume")
	}
	t.runningSince = t.clock()
	t.state = StateRunning
	return nil
}

// End freezes the totals, stops every subscription and produces the session
// record. The transition is irreversible; any later lifecycle call fails
// with ErrInvalidTransition. The record is retained for Finalize and
// Record.
func (t *Tracker) End() (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.endLocked()
}

func (t *Tracker) endLocked() (Record, error) {
	if t.state != StateRunning && t.state != StatePaused {
		return Record{}, transitionErr(t.state, "end")
	}

	now := t.clock()
	if t.state == StateRunning {
		t.activeFor += now.Sub(t.runningSince)
		t.runningSince = time.Time{}
	}
	t.endedAt = now
	t.state = StateEnded

	// A subscription may still deliver one in-flight batch after Stop;
	// the Ended gate rejects it.
	for _, sub := range t.subs {
		sub.Stop()
	}
	t.subs = nil

	t.record = t.buildRecordLocked()
	t.recorded = true
	return t.record, nil
}

// Apply offers one sample to the session and reports what happened to it.
// Samples with a zero time are taken as fresh.
func (t *Tracker) Apply(s sensors.Sample) ApplyStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applyLocked(s)
}

// ApplyBatch offers a batch of samples in order. This is the callback handed
// to the sample source on Start.
func (t *Tracker) ApplyBatch(batch []sensors.Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range batch {
		t.applyLocked(s)
	}
}

func (t *Tracker) applyLocked(s sensors.Sample) ApplyStatus {
	if t.state != StateRunning {
		t.rejected.NotRunning++
		return RejectedNotRunning
	}
	if s.DeviceID != "" && s.DeviceID != t.deviceID {
		t.rejected.OtherDevice++
		return RejectedOtherDevice
	}
	if !s.Time.IsZero() && s.Time.Before(t.startedAt) {
		t.rejected.Stale++
		return RejectedStale
	}
	if !s.Metric.Valid() {
		t.rejected.UnknownMetric++
		return RejectedUnknownMetric
	}

	t.totals = t.totals.fold(s)
	if s.Metric == sensors.MetricHeartRate {
		t.hrSum += s.Value
		t.hrCount++
	}
	t.applied++
	return Applied
}

// Snapshot returns a copy of the current totals.
func (t *Tracker) Snapshot() Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totals
}

// State reports the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SessionID returns the session's identifier, empty before Start.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// CycleDisplay advances the watch face to the next mode and returns it.
func (t *Tracker) CycleDisplay() DisplayMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = t.mode.Next()
	return t.mode
}

// Display renders the current mode from the current totals.
func (t *Tracker) Display() Projection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Render(t.mode, t.totals)
}

// SetGoal attaches a target to the session. Rejected once the session has
// ended.
func (t *Tracker) SetGoal(g Goal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateEnded {
		return transitionErr(t.state, "set a goal")
	}
	t.goal = g
	return nil
}

// Goal returns the session goal; Kind is GoalNone when unset.
func (t *Tracker) Goal() Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goal
}

// ActiveFor reports time spent Running, excluding pauses.
func (t *Tracker) ActiveFor() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeForLocked()
}

func (t *Tracker) activeForLocked() time.Duration {
	if t.state == StateRunning {
		return t.activeFor + t.clock().Sub(t.runningSince)
	}
	return t.activeFor
}

// Status gathers everything a read-only surface needs in one snapshot.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := Status{
		SessionID: t.sessionID,
		Activity:  t.activity,
		DeviceID:  t.deviceID,
		State:     t.state,
		StartedAt: t.startedAt,
		Active:    t.activeForLocked(),
		Totals:    t.totals,
		Mode:      t.mode,
		Display:   Render(t.mode, t.totals),
		Goal:      t.goal,
		Applied:   t.applied,
		Rejected:  t.rejected,
	}
	switch t.state {
	case StateNotStarted:
	case StateEnded:
		st.Elapsed = t.endedAt.Sub(t.startedAt)
	default:
		st.Elapsed = t.clock().Sub(t.startedAt)
	}
	if t.goal.Kind != GoalNone {
		st.GoalDone = t.goal.Progress(t.totals, st.Active)
	}
	return st
}
