package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-stats/internal/report"
	"github.com/pable/go-nfl-stats/internal/storage"
)

var summarySeason int

// summaryCmd displays a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate information about the seeded stat tables: row
counts, covered seasons, and yardage leaderboards for the selected season.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summarySeason, "season", 0, "season for the leaderboards (default: latest seeded)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.PlayerRows == 0 {
		fmt.Fprintln(os.Stdout, "No stats stored yet. Run 'nflstats seed' to add a season.")
		return nil
	}
	report.PrintOverview(os.Stdout, ov)

	target := summarySeason
	if target == 0 {
		target = ov.LastSeason
	}
	for _, category := range []string{"passing", "rushing", "receiving"} {
		leaders, err := db.TopPlayersByYards(target, category, 10)
		if err != nil {
			return fmt.Errorf("get %s leaders: %w", category, err)
		}
		if len(leaders) == 0 {
			continue
		}
		report.PrintLeaders(os.Stdout, category, leaders)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
