package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ayazhan/wrkt/internal/db"
	"github.com/ayazhan/wrkt/internal/fitexport"
	"github.com/ayazhan/wrkt/internal/models"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a stored workout as a FIT file",
	Long: `Export a stored workout as a FIT activity file for upload to
training platforms.

Examples:
  wrkt export 3
  wrkt export 3 --out ride.fit`,
	Args: cobra.ExactArgs(1),
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

		out, _ := cmd.Flags().GetString("out")
		path, err := exportWorkout(*w, out)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📦 Exported workout #%d to %s\n", w.ID, path)
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Output path (default wrkt_<date>_<activity>.fit)")
}

// exportWorkout writes one stored workout as a FIT file and marks it
// exported. An empty path picks the default filename.
func exportWorkout(w models.Workout, path string) (string, error) {
	rec := db.RecordOf(w)
	if path == "" {
		path = fitexport.Filename(rec)
	}
	if err := fitexport.Save(path, rec); err != nil {
		return "", err
	}
	if err := db.MarkExported(w.ID); err != nil {
		return "", err
	}
	return path, nil
}
