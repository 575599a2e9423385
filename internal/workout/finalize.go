package workout

import (
	"fmt"
	"time"
)

// Record is the immutable summary produced once, when a session ends, for
// handoff to persistence.
type Record struct {
	SessionID       string
	Activity        ActivityKind
	DeviceID        string
	StartedAt       time.Time
	EndedAt         time.Time
	Elapsed         time.Duration
	Active          time.Duration
	DistanceMeters  float64
	EnergyKcal      float64
	AvgHeartRateBPM float64
	SamplesApplied  int
	SamplesRejected int
	Goal            Goal
}

// RecordSink receives finalized records. A sink may see the same record
// again after a failed save, so saves must be retry-safe.
type RecordSink interface {
	Save(Record) error
}

// Finalize ends the session if it is still live and hands the record to the
// sink. On a failed handoff the session stays Ended and keeps the record, so
// calling Finalize again retries with the same record; once a handoff
// succeeds, later calls return the record without saving it twice.
func (t *Tracker) Finalize(sink RecordSink) (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.recorded {
		if _, err := t.endLocked(); err != nil {
			return Record{}, err
		}
	}
	if t.saved {
		return t.record, nil
	}
	if err := sink.Save(t.record); err != nil {
		return t.record, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	t.saved = true
	return t.record, nil
}

// Record returns the finalized record, false until the session has ended.
func (t *Tracker) Record() (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record, t.recorded
}

func (t *Tracker) buildRecordLocked() Record {
	rec := Record{
		SessionID:       t.sessionID,
		Activity:        t.activity,
		DeviceID:        t.deviceID,
		StartedAt:       t.startedAt,
		EndedAt:         t.endedAt,
		Elapsed:         t.endedAt.Sub(t.startedAt),
		Active:          t.activeFor,
		DistanceMeters:  t.totals.DistanceMeters,
		EnergyKcal:      t.totals.EnergyKcal,
		SamplesApplied:  t.applied,
		SamplesRejected: t.rejected.Total(),
		Goal:            t.goal,
	}
	if t.hrCount > 0 {
		rec.AvgHeartRateBPM = t.hrSum / float64(t.hrCount)
	}
	return rec
}
