package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-stats/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List seeded seasons",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	counts, err := db.SeasonCounts()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	if len(counts) == 0 {
		fmt.Fprintln(os.Stdout, "No stats stored yet. Run 'nflstats seed' to add a season.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %8s  %10s  %10s\n",
		"SEASON", "PLAYERS", "WEEK ROWS", "TEAM ROWS")
	fmt.Fprintf(os.Stdout, "%-8s  %8s  %10s  %10s\n",
		"────────", "────────", "──────────", "──────────")
	for _, c := range counts {
		fmt.Fprintf(os.Stdout, "%-8d  %8d  %10d  %10d\n",
			c.Season, c.Players, c.WeekRows, c.TeamRows)
	}
	return nil
}
