package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ayazhan/wrkt/internal/workout"
)

var goalUnitRegex = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(km|kcal|cal)$`)

// ParseGoal parses a session goal
// Supported formats:
// - distance: "7.5km", "10 km"
// - energy: "300kcal", "250 cal"
// - duration: anything time.ParseDuration accepts (e.g., "45m", "1h30m")
// An empty input means no goal.
func ParseGoal(input string) (workout.Goal, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return workout.Goal{}, nil
	}

	if matches := goalUnitRegex.FindStringSubmatch(input); len(matches) == 3 {
		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return workout.Goal{}, fmt.Errorf("invalid number %q", matches[1])
		}
		switch matches[2] {
		case "km":
			if value <= 0 || value > 1000 {
				return workout.Goal{}, fmt.Errorf("distance goal must be between 0 and 1000 km")
			}
			return workout.Goal{Kind: workout.GoalDistance, Target: value * 1000}, nil
		case "kcal", "cal":
			if value <= 0 || value > 20000 {
				return workout.Goal{}, fmt.Errorf("energy goal must be between 0 and 20000 kcal")
			}
			return workout.Goal{Kind: workout.GoalEnergy, Target: value}, nil
		}
	}

	// Note: a bare "m" suffix is minutes here, not meters. Distance goals
	// use "km".
	if d, err := time.ParseDuration(input); err == nil {
		if d < time.Minute || d > 24*time.Hour {
			return workout.Goal{}, fmt.Errorf("duration goal must be between 1m and 24h")
		}
		return workout.Goal{Kind: workout.GoalDuration, Target: d.Seconds()}, nil
	}

	return workout.Goal{}, fmt.Errorf("invalid goal format. Use: 7.5km, 300kcal, or 45m")
}
