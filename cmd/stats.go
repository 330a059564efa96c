package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-stats/internal/model"
	"github.com/pable/go-nfl-stats/internal/report"
	"github.com/pable/go-nfl-stats/internal/stats"
)

// stats command flags.
var (
	statsLevel      string
	statsType       string
	statsSeasonType string
	statsCSV        string
)

var statsCmd = &cobra.Command{
	Use:   "stats [seasons...]",
	Short: "Compute a stat summary table",
	Long: `Compute aggregated statistics from play-by-play data.

Examples:
  # Player season stats for the most recent season
  nflstats stats

  # Weekly team stats for two seasons, exported as CSV
  nflstats stats 2022 2023 --level week --type team --csv out.csv`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsLevel, "level", "season", "summary level: season or week")
	statsCmd.Flags().StringVar(&statsType, "type", "player", "stat type: player or team")
	statsCmd.Flags().StringVar(&statsSeasonType, "season-type", "REG", "schedule slice: REG, POST or ALL")
	statsCmd.Flags().StringVar(&statsCSV, "csv", "", "write the full table to this CSV file instead of printing")
}

func runStats(cmd *cobra.Command, args []string) error {
	seasons, err := parseSeasons(args)
	if err != nil {
		return err
	}

	p := stats.Params{
		Seasons:    seasons,
		Level:      model.SummaryLevel(statsLevel),
		Type:       model.StatType(statsType),
		SeasonType: model.SeasonType(statsSeasonType),
	}
	rows, err := stats.Calculate(cmd.Context(), newClient(), p)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "No rows computed for the requested seasons.")
		return nil
	}

	if statsCSV != "" {
		f, err := os.Create(statsCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, rows, p.Level, p.Type); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Wrote %d rows to %s\n", len(rows), statsCSV)
		return nil
	}

	report.PrintStatTable(os.Stdout, rows, p.Level, p.Type)
	return nil
}
