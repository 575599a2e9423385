package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for wrkt",
	Long:  `Display detailed help for all wrkt commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██╗    ██╗██████╗ ██╗  ██╗████████╗
██║    ██║██╔══██╗██║ ██╔╝╚══██╔══╝
██║ █╗ ██║██████╔╝█████╔╝    ██║
██║███╗██║██╔══██╗██╔═██╗    ██║
╚███╔███╔╝██║  ██║██║  ██╗   ██║
 ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝

wrkt - Terminal Workout Session Tracker

COMMANDS:

  start [activity]        Start a workout session
    --goal                Session goal: 7.5km, 300kcal, 45m
    --no-ui               Headless session, ends on Ctrl+C
    --for                 End automatically after a duration (30m, 1h)
    --serve               Serve the status API on an address

    Activities: cycling (bike, ride), running (run), wheelchair (push)
    No activity argument opens the interactive setup wizard.

    Session screen keys:
      space         Pause / resume
      tab           Cycle distance → energy → heart rate
      e             End the session and save it
      r             Retry a failed save
      q/esc         Discard the session

  history                 Browse finished workouts
    --limit               Only the most recent N workouts
    --no-ui               Plain table output

    Browser keys:
      ↑/↓           Navigate workouts
      ←/→           Page
      /             Filter by activity
      e             Export selection as FIT
      q/esc         Quit

  show <id>               Print one stored workout
  export <id>             Write a stored workout as a FIT file
    -o, --out             Output path

  version                 Show version information
  help                    Show this help

CONFIGURATION (environment or .env):

  WRKT_DEVICE_ID          Device name stamped on samples (default: hostname)
  WRKT_DB_PATH            Workout log location (default: ~/.wrkt/wrkt.db)
  WRKT_STATUS_ADDR        Always serve the status API on this address
  WRKT_SIM_INTERVAL_MS    Sensor batch interval in milliseconds (default: 1000)

`)
}
