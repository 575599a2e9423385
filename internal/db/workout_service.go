package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ayazhan/wrkt/internal/models"
	"github.com/ayazhan/wrkt/internal/workout"
)

// SaveRecord persists a finalized session record. Saving the same session a
// second time updates the existing row, so a retried handoff never produces
// duplicates.
func SaveRecord(rec workout.Record) error {
	row := rowFromRecord(rec)

	var existing models.Workout
	err := DB.Where("session_id = ?", rec.SessionID).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		row.ExportedAt = existing.ExportedAt
		return DB.Save(&row).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return DB.Create(&row).Error
	default:
		return err
	}
}

// RecordStore hands finalized records to SaveRecord. Its zero value is
// usable once Initialize has run.
type RecordStore struct{}

// Save implements workout.RecordSink.
func (RecordStore) Save(rec workout.Record) error {
	return SaveRecord(rec)
}

// ListWorkouts returns up to limit finished workouts, newest first. A limit
// of 0 or less returns all of them.
func ListWorkouts(limit int) ([]models.Workout, error) {
	var workouts []models.Workout

	q := DB.Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&workouts).Error; err != nil {
		return nil, err
	}

	return workouts, nil
}

// GetWorkout retrieves a workout by ID
func GetWorkout(id uint) (*models.Workout, error) {
	var w models.Workout

	if err := DB.First(&w, id).Error; err != nil {
		return nil, fmt.Errorf("workout #%d not found", id)
	}

	return &w, nil
}

// MarkExported stamps the workout with the time its FIT file was written
func MarkExported(id uint) error {
	now := time.Now()
	return DB.Model(&models.Workout{}).Where("id = ?", id).Update("exported_at", &now).Error
}

func rowFromRecord(rec workout.Record) models.Workout {
	return models.Workout{
		SessionID:       rec.SessionID,
		Activity:        string(rec.Activity),
		DeviceID:        rec.DeviceID,
		StartedAt:       rec.StartedAt,
		EndedAt:         rec.EndedAt,
		ElapsedSeconds:  int(rec.Elapsed.Seconds()),
		ActiveSeconds:   int(rec.Active.Seconds()),
		DistanceMeters:  rec.DistanceMeters,
		EnergyKcal:      rec.EnergyKcal,
		AvgHeartRate:    rec.AvgHeartRateBPM,
		SamplesApplied:  rec.SamplesApplied,
		SamplesRejected: rec.SamplesRejected,
		GoalKind:        rec.Goal.Kind.String(),
		GoalTarget:      rec.Goal.Target,
	}
}

// RecordOf rebuilds the in-memory record from a stored row, for surfaces
// that re-process finished workouts (FIT export, detail views).
func RecordOf(w models.Workout) workout.Record {
	return workout.Record{
		SessionID:       w.SessionID,
		Activity:        workout.ActivityKind(w.Activity),
		DeviceID:        w.DeviceID,
		StartedAt:       w.StartedAt,
		EndedAt:         w.EndedAt,
		Elapsed:         time.Duration(w.ElapsedSeconds) * time.Second,
		Active:          time.Duration(w.ActiveSeconds) * time.Second,
		DistanceMeters:  w.DistanceMeters,
		EnergyKcal:      w.EnergyKcal,
		AvgHeartRateBPM: w.AvgHeartRate,
		SamplesApplied:  w.SamplesApplied,
		SamplesRejected: w.SamplesRejected,
		Goal:            workout.Goal{Kind: workout.ParseGoalKind(w.GoalKind), Target: w.GoalTarget},
	}
}
