package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pable/go-nfl-stats/internal/cleaner"
	"github.com/pable/go-nfl-stats/internal/enrich"
	"github.com/pable/go-nfl-stats/internal/model"
)

// Source loads the raw per-season inputs. The production implementation
// fetches nflverse CSV assets; tests supply fixtures.
type Source interface {
	LoadPBP(ctx context.Context, seasons []int) ([]model.Row, error)
	LoadPlayStats(ctx context.Context, seasons []int) ([]model.StatEvent, error)
}

// Params selects the seasons and grain of a calculation run.
type Params struct {
	Seasons    []int
	Level      model.SummaryLevel
	Type       model.StatType
	SeasonType model.SeasonType
}

func (p Params) validate() error {
	if len(p.Seasons) == 0 {
		return fmt.Errorf("at least one season is required")
	}
	switch p.Level {
	case model.SummarySeason, model.SummaryWeek:
	default:
		return fmt.Errorf("summary level must be %q or %q, got %q", model.SummarySeason, model.SummaryWeek, p.Level)
	}
	switch p.Type {
	case model.StatPlayer, model.StatTeam:
	default:
		return fmt.Errorf("stat type must be %q or %q, got %q", model.StatPlayer, model.StatTeam, p.Type)
	}
	switch p.SeasonType {
	case model.SeasonREG, model.SeasonPOST, model.SeasonALL:
	default:
		return fmt.Errorf("season type must be %q, %q or %q, got %q", model.SeasonREG, model.SeasonPOST, model.SeasonALL, p.SeasonType)
	}
	return nil
}

// Calculate runs the full pipeline: load, clean, enrich, extract,
// aggregate. The season-type filter applies to season-level runs only;
// week-level rows always carry every schedule slice.
func Calculate(ctx context.Context, src Source, p Params) ([]model.StatRow, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	raw, err := src.LoadPBP(ctx, p.Seasons)
	if err != nil {
		return nil, fmt.Errorf("loading play-by-play: %w", err)
	}
	plays := cleaner.Clean(raw)

	if p.Level == model.SummarySeason && p.SeasonType != model.SeasonALL {
		plays = filterSeasonType(plays, string(p.SeasonType))
		if len(plays) == 0 {
			slog.Warn("season type filter left no plays",
				"seasons", p.Seasons, "season_type", p.SeasonType)
			return nil, nil
		}
	}

	events, err := src.LoadPlayStats(ctx, p.Seasons)
	if err != nil {
		return nil, fmt.Errorf("loading play stats: %w", err)
	}

	enriched := enrich.Enrich(plays, events)
	ext := ExtractAll(plays, p.Level, p.Type)
	return Aggregate(enriched, p.Level, p.Type, ext), nil
}

func filterSeasonType(plays []model.Play, seasonType string) []model.Play {
	out := plays[:0:0]
	for _, p := range plays {
		if p.SeasonType == seasonType {
			out = append(out, p)
		}
	}
	return out
}
