package models

import (
	"time"

	"gorm.io/gorm"
)

// Workout is one finished tracked session
type Workout struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SessionID string    `gorm:"uniqueIndex;not null" json:"session_id"`
	Activity  string    `gorm:"not null" json:"activity"` // cycling, running, wheelchair
	DeviceID  string    `json:"device_id"`
	StartedAt time.Time `gorm:"not null" json:"started_at"`
	EndedAt   time.Time `gorm:"not null" json:"ended_at"`

	ElapsedSeconds int     `json:"elapsed_seconds"`
	ActiveSeconds  int     `json:"active_seconds"` // excludes paused stretches
	DistanceMeters float64 `json:"distance_meters"`
	EnergyKcal     float64 `json:"energy_kcal"`
	AvgHeartRate   float64 `json:"avg_heart_rate_bpm"`

	SamplesApplied  int `json:"samples_applied"`
	SamplesRejected int `json:"samples_rejected"`

	// Optional goal metadata
	GoalKind   string  `json:"goal_kind"` // none, distance, energy, duration
	GoalTarget float64 `json:"goal_target"`

	// Set once the workout has been exported as a FIT file
	ExportedAt *time.Time `json:"exported_at"`
}
