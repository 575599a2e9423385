package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayazhan/wrkt/internal/db"
	"github.com/ayazhan/wrkt/internal/workout"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored workout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid workout ID '%s'\n", args[0])
			return
		}

		w, err := db.GetWorkout(uint(id))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		goal := workout.Goal{Kind: workout.ParseGoalKind(w.GoalKind), Target: w.GoalTarget}

		fmt.Printf("🏋️  Workout #%d: %s\n", w.ID, w.Activity)
		fmt.Printf("🗓  %s → %s\n",
			w.StartedAt.Format("2 Jan 2006 15:04:05"), w.EndedAt.Format("15:04:05"))
		fmt.Printf("📏 Distance: %.2f km\n", w.DistanceMeters/1000)
		fmt.Printf("🔥 Energy: %.0f kcal\n", w.EnergyKcal)
		if w.AvgHeartRate > 0 {
			fmt.Printf("💓 Avg heart rate: %.0f bpm\n", w.AvgHeartRate)
		}
		fmt.Printf("🕐 Duration: %s (moving %s)\n",
			formatDuration(time.Duration(w.ElapsedSeconds)*time.Second),
			formatDuration(time.Duration(w.ActiveSeconds)*time.Second))
		if goal.Kind != workout.GoalNone {
			fmt.Printf("🎯 Goal: %s\n", goal)
		}
		fmt.Printf("📶 Samples: %d applied · %d dropped\n", w.SamplesApplied, w.SamplesRejected)
		if w.DeviceID != "" {
			fmt.Printf("⌚ Device: %s\n", w.DeviceID)
		}
		fmt.Printf("🆔 Session: %s\n", w.SessionID)
		if w.ExportedAt != nil {
			fmt.Printf("📦 Exported: %s\n", w.ExportedAt.Format("2 Jan 2006 15:04"))
		}
	},
}
