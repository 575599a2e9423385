package statusapi

import "time"

// StatusResponse is the JSON shape of the live session state.
type StatusResponse struct {
	SessionID       string     `json:"session_id,omitempty"`
	Activity        string     `json:"activity,omitempty"`
	DeviceID        string     `json:"device_id"`
	State           string     `json:"state"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	ElapsedSeconds  float64    `json:"elapsed_seconds"`
	ActiveSeconds   float64    `json:"active_seconds"`
	DistanceMeters  float64    `json:"distance_meters"`
	EnergyKcal      float64    `json:"energy_kcal"`
	HeartRateBPM    float64    `json:"heart_rate_bpm"`
	Goal            string     `json:"goal,omitempty"`
	GoalProgress    float64    `json:"goal_progress"`
	SamplesApplied  int        `json:"samples_applied"`
	SamplesRejected int        `json:"samples_rejected"`

	Rejected RejectBreakdown `json:"rejected"`
}

// RejectBreakdown counts discarded samples by reason.
type RejectBreakdown struct {
	NotRunning    int `json:"not_running"`
	Stale         int `json:"stale"`
	OtherDevice   int `json:"other_device"`
	UnknownMetric int `json:"unknown_metric"`
}

// DisplayResponse is the current watch-face projection.
type DisplayResponse struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status string `json:"status"`
}
