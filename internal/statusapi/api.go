// Package statusapi serves a read-only view of the live session over HTTP,
// for shells, status bars and anything else that wants to peek at a running
// workout without touching it.
package statusapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ayazhan/wrkt/internal/workout"
)

// StatusSource exposes the live tracker to the API. Every handler takes one
// atomic snapshot per request and never mutates the session.
type StatusSource interface {
	Status() workout.Status
}

// NewRouter creates and configures the status router
func NewRouter(source StatusSource) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", GetStatus(source)).Methods("GET")
	api.HandleFunc("/display", GetDisplay(source)).Methods("GET")
	api.HandleFunc("/healthz", GetHealth).Methods("GET")

	return r
}

func GetStatus(source StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, statusResponse(source.Status()))
	}
}

func GetDisplay(source StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := source.Status()
		writeJSON(w, DisplayResponse{
			Mode:  st.Mode.String(),
			Value: st.Display.Value,
			Unit:  st.Display.Unit,
		})
	}
}

func GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

func statusResponse(st workout.Status) StatusResponse {
	resp := StatusResponse{
		SessionID:       st.SessionID,
		Activity:        string(st.Activity),
		DeviceID:        st.DeviceID,
		State:           st.State.String(),
		ElapsedSeconds:  st.Elapsed.Seconds(),
		ActiveSeconds:   st.Active.Seconds(),
		DistanceMeters:  st.Totals.DistanceMeters,
		EnergyKcal:      st.Totals.EnergyKcal,
		HeartRateBPM:    st.Totals.HeartRateBPM,
		GoalProgress:    st.GoalDone,
		SamplesApplied:  st.Applied,
		SamplesRejected: st.Rejected.Total(),
		Rejected: RejectBreakdown{
			NotRunning:    st.Rejected.NotRunning,
			Stale:         st.Rejected.Stale,
			OtherDevice:   st.Rejected.OtherDevice,
			UnknownMetric: st.Rejected.UnknownMetric,
		},
	}
	if !st.StartedAt.IsZero() {
		started := st.StartedAt
		resp.StartedAt = &started
	}
	if st.Goal.Kind != workout.GoalNone {
		resp.Goal = st.Goal.String()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
