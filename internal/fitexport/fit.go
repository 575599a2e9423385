// Package fitexport writes finished sessions as FIT activity files so they
// can be imported by the usual training tools.
package fitexport

import (
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"os"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	"github.com/ayazhan/wrkt/internal/workout"
)

// Write encodes a finished session as a summary-only FIT activity: file id,
// a stop-all event, one lap and one session message. Per-second samples are
// not retained once a session ends, so no record messages are written.
func Write(w io.Writer, rec workout.Record) error {
	fit := proto.FIT{}

	fileIdMesg := mesgdef.FileId{
		Type:         typedef.FileActivity,
		Manufacturer: typedef.ManufacturerDevelopment,
		Product:      0,
		SerialNumber: deviceSerial(rec.DeviceID),
		TimeCreated:  rec.StartedAt,
	}
	fit.Messages = append(fit.Messages, fileIdMesg.ToMesg(nil))

	eventMesg := mesgdef.Event{
		Timestamp: rec.EndedAt,
		Event:     typedef.EventTimer,
		EventType: typedef.EventTypeStopAll,
	}
	fit.Messages = append(fit.Messages, eventMesg.ToMesg(nil))

	// TotalElapsedTime includes pauses, TotalTimerTime does not.
	lapMesg := mesgdef.Lap{
		Timestamp:        rec.EndedAt,
		StartTime:        rec.StartedAt,
		TotalElapsedTime: millis(rec.Elapsed),
		TotalTimerTime:   millis(rec.Active),
		TotalDistance:    uint32(rec.DistanceMeters * 100), // cm
		TotalCalories:    uint16(math.Round(rec.EnergyKcal)),
		AvgHeartRate:     uint8(math.Round(rec.AvgHeartRateBPM)),
		Event:            typedef.EventLap,
		EventType:        typedef.EventTypeStop,
	}
	fit.Messages = append(fit.Messages, lapMesg.ToMesg(nil))

	sessionMesg := mesgdef.Session{
		Timestamp:        rec.EndedAt,
		StartTime:        rec.StartedAt,
		TotalElapsedTime: millis(rec.Elapsed),
		TotalTimerTime:   millis(rec.Active),
		TotalDistance:    uint32(rec.DistanceMeters * 100), // cm
		TotalCalories:    uint16(math.Round(rec.EnergyKcal)),
		AvgHeartRate:     uint8(math.Round(rec.AvgHeartRateBPM)),
		Sport:            sportOf(rec.Activity),
		Event:            typedef.EventSession,
		EventType:        typedef.EventTypeStop,
		Trigger:          typedef.SessionTriggerActivityEnd,
	}
	fit.Messages = append(fit.Messages, sessionMesg.ToMesg(nil))

	enc := encoder.New(w)
	return enc.Encode(&fit)
}

// Save writes the session to a new file at path.
func Save(path string, rec workout.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Write(f, rec); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Filename is the default export name for a session, e.g.
// wrkt_20260502_180000_cycling.fit.
func Filename(rec workout.Record) string {
	return fmt.Sprintf("wrkt_%s_%s.fit", rec.StartedAt.Format("20060102_150405"), rec.Activity)
}

func sportOf(kind workout.ActivityKind) typedef.Sport {
	switch kind {
	case workout.ActivityCycling:
		return typedef.SportCycling
	case workout.ActivityRunning:
		return typedef.SportRunning
	default:
		// The FIT profile has no wheelchair sport.
		return typedef.SportGeneric
	}
}

func millis(d time.Duration) uint32 {
	return uint32(d.Milliseconds())
}

func deviceSerial(deviceID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(deviceID))
	return h.Sum32()
}
