package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayazhan/wrkt/internal/db"
	"github.com/ayazhan/wrkt/internal/models"
	"github.com/ayazhan/wrkt/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "Browse finished workouts",
	Long:    "Browse finished workouts in an interactive list, or print a plain table with --no-ui",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		limit, _ := cmd.Flags().GetInt("limit")
		workouts, err := db.ListWorkouts(limit)
		if err != nil {
			fmt.Printf("Error fetching workouts: %v\n", err)
			return
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts yet. Use 'wrkt start' to record your first session.")
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			printWorkoutTable(workouts)
			return
		}

		exporter := func(w models.Workout) (string, error) {
			return exportWorkout(w, "")
		}
		if err := tui.RunHistoryTUI(workouts, exporter); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "Only show the most recent N workouts")
	historyCmd.Flags().Bool("no-ui", false, "Print a plain table instead of the interactive list")
}

// printWorkoutTable prints the history as a plain table
func printWorkoutTable(workouts []models.Workout) {
	fmt.Printf("%-4s %-12s %-12s %-10s %-10s %-8s %s\n",
		"ID", "DATE", "ACTIVITY", "DISTANCE", "ENERGY", "TIME", "FIT")
	fmt.Println(strings.Repeat("-", 66))

	for _, w := range workouts {
		fit := "-"
		if w.ExportedAt != nil {
			fit = "yes"
		}

		fmt.Printf("%-4d %-12s %-12s %-10s %-10s %-8s %s\n",
			w.ID,
			w.StartedAt.Format("02/01 15:04"),
			w.Activity,
			fmt.Sprintf("%.2f km", w.DistanceMeters/1000),
			fmt.Sprintf("%.0f kcal", w.EnergyKcal),
			formatDuration(time.Duration(w.ElapsedSeconds)*time.Second),
			fit)
	}
}
