package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayazhan/wrkt/internal/db"
	"github.com/ayazhan/wrkt/internal/parser"
	"github.com/ayazhan/wrkt/internal/sensors"
	"github.com/ayazhan/wrkt/internal/statusapi"
	"github.com/ayazhan/wrkt/internal/tui"
	"github.com/ayazhan/wrkt/internal/workout"
)

var startCmd = &cobra.Command{
	Use:   "start [activity]",
	Short: "Start a workout session",
	Long: `Start a workout session. Opens the live session screen by default,
use --no-ui for a headless session that ends on Ctrl+C.

Examples:
  wrkt start                      # Interactive setup wizard
  wrkt start cycling              # Start a ride right away
  wrkt start running --goal 5km   # Run with a distance goal
  wrkt start cycling --no-ui --for 30m`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		goalText, _ := cmd.Flags().GetString("goal")
		noUI, _ := cmd.Flags().GetBool("no-ui")
		runFor, _ := cmd.Flags().GetDuration("for")
		serveAddr, _ := cmd.Flags().GetString("serve")

		var activity workout.ActivityKind
		var goal workout.Goal

		if len(args) == 1 {
			kind, err := workout.ParseActivity(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			activity = kind

			parsed, err := parser.ParseGoal(goalText)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			goal = parsed
		} else if noUI {
			fmt.Println("Error: --no-ui needs an activity, e.g. wrkt start cycling --no-ui")
			return
		} else {
			// No activity given, run the setup wizard
			chosen, chosenGoal, ok, err := tui.RunStartWizard(workout.ActivityCycling, goalText)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if !ok {
				return
			}
			activity = chosen
			goal = chosenGoal
		}

		source := sensors.NewSimulator(cfg.DeviceID, profileFor(activity))
		source.Interval = cfg.SampleInterval

		tracker := workout.NewTracker(activity, cfg.DeviceID, source)
		if goal.Kind != workout.GoalNone {
			if err := tracker.SetGoal(goal); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		if err := tracker.Start(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if addr := statusAddr(serveAddr); addr != "" {
			go serveStatus(addr, tracker)
		}

		if noUI {
			runHeadless(tracker, runFor)
			return
		}

		if err := tui.RunSessionTUI(tracker, db.RecordStore{}); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func init() {
	startCmd.Flags().String("goal", "", "Session goal, e.g. 7.5km, 300kcal, 45m")
	startCmd.Flags().Bool("no-ui", false, "Run the session without the interactive screen")
	startCmd.Flags().Duration("for", 0, "End the session automatically after this long")
	startCmd.Flags().String("serve", "", "Serve the status API on this address, e.g. 127.0.0.1:7755")
}

// profileFor maps an activity to the simulator's reading profile
func profileFor(kind workout.ActivityKind) sensors.Profile {
	switch kind {
	case workout.ActivityRunning:
		return sensors.Profile{SpeedMPS: 3.2, KcalPerMin: 11, HRLow: 140, HRHigh: 175}
	case workout.ActivityWheelchair:
		return sensors.Profile{SpeedMPS: 2.2, KcalPerMin: 7, HRLow: 115, HRHigh: 150}
	default: // cycling
		return sensors.Profile{SpeedMPS: 7.5, KcalPerMin: 9.5, HRLow: 120, HRHigh: 165}
	}
}

// statusAddr picks the status API address, flag over environment
func statusAddr(flagAddr string) string {
	if flagAddr != "" {
		return flagAddr
	}
	return cfg.StatusAddr
}

// serveStatus exposes the read-only session snapshot over HTTP until the
// process exits
func serveStatus(addr string, tracker *workout.Tracker) {
	log.Printf("Status API listening on http://%s/api/status", addr)
	if err := http.ListenAndServe(addr, statusapi.NewRouter(tracker)); err != nil {
		log.Printf("Status API stopped: %v", err)
	}
}

// runHeadless drives a session without the TUI: periodic status lines,
// ended by Ctrl+C, SIGTERM or the --for limit
func runHeadless(tracker *workout.Tracker, runFor time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := tracker.Status()
	fmt.Printf("▶️  Started %s session %s\n", st.Activity, st.SessionID)
	if st.Goal.Kind != workout.GoalNone {
		fmt.Printf("🎯 Goal: %s\n", st.Goal)
	}
	fmt.Println("Press Ctrl+C to end the session.")

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var limit <-chan time.Time
	if runFor > 0 {
		timer := time.NewTimer(runFor)
		defer timer.Stop()
		limit = timer.C
	}

	goalAnnounced := false
	for done := false; !done; {
		select {
		case <-ctx.Done():
			done = true
		case <-limit:
			log.Printf("reached the --for limit (%s), ending session", runFor)
			done = true
		case <-ticker.C:
			st := tracker.Status()
			log.Printf("%s | %.2f km | %.0f kcal | %.0f bpm | %s elapsed",
				st.State, st.Totals.DistanceMeters/1000, st.Totals.EnergyKcal,
				st.Totals.HeartRateBPM, formatDuration(st.Elapsed))
			if !goalAnnounced && st.Goal.Kind != workout.GoalNone && st.GoalDone >= 1 {
				log.Printf("goal reached: %s", st.Goal)
				goalAnnounced = true
			}
		}
	}

	finalizeWithRetry(tracker)
}

// finalizeWithRetry ends the session and hands the record off, retrying the
// handoff a few times before giving up. The tracker keeps the record across
// failed saves, so every retry hands off the same one.
func finalizeWithRetry(tracker *workout.Tracker) {
	sink := db.RecordStore{}

	var rec workout.Record
	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		rec, err = tracker.Finalize(sink)
		if err == nil {
			break
		}
		if !errors.Is(err, workout.ErrPersist) {
			fmt.Printf("Error: %v\n", err)
			return
		}
		log.Printf("save attempt %d failed: %v", attempt, err)
		time.Sleep(time.Second)
	}
	if err != nil {
		fmt.Println("❌ Workout could not be saved.")
		return
	}

	fmt.Printf("⏹️  Ended %s session\n", rec.Activity)
	fmt.Printf("📊 %.2f km · %.0f kcal · avg %.0f bpm\n",
		rec.DistanceMeters/1000, rec.EnergyKcal, rec.AvgHeartRateBPM)
	fmt.Printf("🕐 Duration: %s (moving %s)\n", formatDuration(rec.Elapsed), formatDuration(rec.Active))
	fmt.Println("💾 Saved to workout log")
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
