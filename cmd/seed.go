package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-stats/internal/model"
	"github.com/pable/go-nfl-stats/internal/stats"
	"github.com/pable/go-nfl-stats/internal/storage"
)

var seedSeasonType string

var seedCmd = &cobra.Command{
	Use:   "seed [seasons...]",
	Short: "Compute and store stat tables for seasons",
	Long: `Compute weekly and season summaries for both players and teams and
upsert them into the SQLite database. Re-seeding a season replaces its rows.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedSeasonType, "season-type", "REG", "schedule slice for season summaries: REG, POST or ALL")
}

func runSeed(cmd *cobra.Command, args []string) error {
	seasons, err := parseSeasons(args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	client := newClient()
	grains := []struct {
		level model.SummaryLevel
		typ   model.StatType
	}{
		{model.SummarySeason, model.StatPlayer},
		{model.SummarySeason, model.StatTeam},
		{model.SummaryWeek, model.StatPlayer},
		{model.SummaryWeek, model.StatTeam},
	}

	for _, g := range grains {
		slog.Info("computing stats", "seasons", seasons, "level", g.level, "type", g.typ)
		rows, err := stats.Calculate(cmd.Context(), client, stats.Params{
			Seasons:    seasons,
			Level:      g.level,
			Type:       g.typ,
			SeasonType: model.SeasonType(seedSeasonType),
		})
		if err != nil {
			return fmt.Errorf("computing %s/%s stats: %w", g.level, g.typ, err)
		}

		if g.typ == model.StatPlayer {
			err = db.UpsertPlayerStats(g.level, rows)
		} else {
			err = db.UpsertTeamStats(g.level, rows)
		}
		if err != nil {
			return fmt.Errorf("storing %s/%s stats: %w", g.level, g.typ, err)
		}
		slog.Info("stored stats", "level", g.level, "type", g.typ, "rows", len(rows))
	}

	fmt.Fprintf(os.Stdout, "Seeded %d season(s) into %s\n", len(seasons), dbPath)
	return nil
}
