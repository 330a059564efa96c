package storage

import (
	"fmt"

	"github.com/pable/go-nfl-stats/internal/model"
)

// UpsertPlayerStats bulk-inserts player stat rows at the given summary
// level in a transaction. Uses INSERT OR REPLACE for idempotency, so
// re-seeding a season overwrites it.
func (db *DB) UpsertPlayerStats(level model.SummaryLevel, rows []model.StatRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_stats(
			summary_level, season, week, game_id, player_id, player_name,
			team, opponent_team, season_type, games,
			completions, attempts, passing_yards, passing_tds, interceptions,
			sacks, sack_yards, sack_fumbles, sack_fumbles_lost,
			passing_air_yards, passing_yards_after_catch, passing_first_downs,
			passing_epa, passing_cpoe, passing_success_rate, qb_adot, qb_targets,
			dropbacks, dropback_epa, dropback_success_rate, epa_per_dropback,
			scrambles, scramble_epa, epa_per_scramble, scramble_success_rate,
			passing_2pt_conversions, pacr,
			carries, rushing_yards, rushing_tds, rushing_fumbles,
			rushing_fumbles_lost, rushing_first_downs, rushing_epa,
			rushing_2pt_conversions,
			receptions, targets, receiving_yards, receiving_tds,
			receiving_fumbles, receiving_fumbles_lost, receiving_air_yards,
			receiving_yards_after_catch, receiving_first_downs, receiving_epa,
			receiving_2pt_conversions, racr, receiver_adot, target_share,
			air_yards_share, wopr,
			special_teams_tds
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,
		          ?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err = stmt.Exec(
			string(level), r.Season, r.Week, r.GameID, r.PlayerID, r.PlayerName,
			r.Team, r.OpponentTeam, r.SeasonType, r.Games,
			r.Completions, r.Attempts, r.PassingYards, r.PassingTDs, r.Interceptions,
			r.Sacks, r.SackYards, r.SackFumbles, r.SackFumblesLost,
			r.PassingAirYards, r.PassingYardsAfterCatch, r.PassingFirstDowns,
			r.PassingEPA, r.PassingCPOE, r.PassingSuccessRate, r.QBADOT, r.QBTargets,
			r.Dropbacks, r.DropbackEPA, r.DropbackSuccessRate, r.EPAPerDropback,
			r.Scrambles, r.ScrambleEPA, r.EPAPerScramble, r.ScrambleSuccessRate,
			r.Passing2PtConversions, r.PACR,
			r.Carries, r.RushingYards, r.RushingTDs, r.RushingFumbles,
			r.RushingFumblesLost, r.RushingFirstDowns, r.RushingEPA,
			r.Rushing2PtConversions,
			r.Receptions, r.Targets, r.ReceivingYards, r.ReceivingTDs,
			r.ReceivingFumbles, r.ReceivingFumblesLost, r.ReceivingAirYards,
			r.ReceivingYardsAfterCatch, r.ReceivingFirstDowns, r.ReceivingEPA,
			r.Receiving2PtConversions, r.RACR, r.ReceiverADOT, r.TargetShare,
			r.AirYardsShare, r.WOPR,
			r.SpecialTeamsTDs,
		)
		if err != nil {
			return fmt.Errorf("insert player_stats for %s: %w", r.PlayerID, err)
		}
	}
	return tx.Commit()
}

// UpsertTeamStats bulk-inserts team stat rows at the given summary level
// in a transaction.
func (db *DB) UpsertTeamStats(level model.SummaryLevel, rows []model.StatRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO team_stats(
			summary_level, season, week, game_id, team, opponent_team,
			season_type, games,
			completions, attempts, passing_yards, passing_tds, interceptions,
			sacks, sack_yards, sack_fumbles, sack_fumbles_lost,
			passing_air_yards, passing_yards_after_catch, passing_first_downs,
			passing_epa, passing_cpoe, passing_success_rate, qb_adot, qb_targets,
			dropbacks, dropback_epa, dropback_success_rate, epa_per_dropback,
			scrambles, scramble_epa, epa_per_scramble, scramble_success_rate,
			passing_2pt_conversions,
			carries, rushing_yards, rushing_tds, rushing_fumbles,
			rushing_fumbles_lost, rushing_first_downs, rushing_epa,
			rushing_2pt_conversions,
			receptions, targets, receiving_yards, receiving_tds,
			receiving_fumbles, receiving_fumbles_lost, receiving_air_yards,
			receiving_yards_after_catch, receiving_first_downs, receiving_epa,
			receiving_2pt_conversions,
			special_teams_tds
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,
		          ?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err = stmt.Exec(
			string(level), r.Season, r.Week, r.GameID, r.Team, r.OpponentTeam,
			r.SeasonType, r.Games,
			r.Completions, r.Attempts, r.PassingYards, r.PassingTDs, r.Interceptions,
			r.Sacks, r.SackYards, r.SackFumbles, r.SackFumblesLost,
			r.PassingAirYards, r.PassingYardsAfterCatch, r.PassingFirstDowns,
			r.PassingEPA, r.PassingCPOE, r.PassingSuccessRate, r.QBADOT, r.QBTargets,
			r.Dropbacks, r.DropbackEPA, r.DropbackSuccessRate, r.EPAPerDropback,
			r.Scrambles, r.ScrambleEPA, r.EPAPerScramble, r.ScrambleSuccessRate,
			r.Passing2PtConversions,
			r.Carries, r.RushingYards, r.RushingTDs, r.RushingFumbles,
			r.RushingFumblesLost, r.RushingFirstDowns, r.RushingEPA,
			r.Rushing2PtConversions,
			r.Receptions, r.Targets, r.ReceivingYards, r.ReceivingTDs,
			r.ReceivingFumbles, r.ReceivingFumblesLost, r.ReceivingAirYards,
			r.ReceivingYardsAfterCatch, r.ReceivingFirstDowns, r.ReceivingEPA,
			r.Receiving2PtConversions,
			r.SpecialTeamsTDs,
		)
		if err != nil {
			return fmt.Errorf("insert team_stats for %s: %w", r.Team, err)
		}
	}
	return tx.Commit()
}

// Overview summarizes what the store holds.
type Overview struct {
	PlayerRows      int
	TeamRows        int
	DistinctPlayers int
	FirstSeason     int
	LastSeason      int
}

// GetOverview returns store-wide row counts and the covered season range.
func (db *DB) GetOverview() (Overview, error) {
	var o Overview
	err := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(1) FROM player_stats),
			(SELECT COUNT(1) FROM team_stats),
			(SELECT COUNT(DISTINCT player_id) FROM player_stats),
			(SELECT COALESCE(MIN(season), 0) FROM player_stats),
			(SELECT COALESCE(MAX(season), 0) FROM player_stats)`).
		Scan(&o.PlayerRows, &o.TeamRows, &o.DistinctPlayers, &o.FirstSeason, &o.LastSeason)
	if err != nil {
		return Overview{}, err
	}
	return o, nil
}

// Leader is one row of a leaderboard query.
type Leader struct {
	PlayerID   string
	PlayerName string
	Team       string
	Value      int
}

var leaderColumns = map[string]string{
	"passing":   "passing_yards",
	"rushing":   "rushing_yards",
	"receiving": "receiving_yards",
}

// TopPlayersByYards returns the season-level yardage leaders for one of
// the categories "passing", "rushing", or "receiving".
func (db *DB) TopPlayersByYards(season int, category string, limit int) ([]Leader, error) {
	col, ok := leaderColumns[category]
	if !ok {
		return nil, fmt.Errorf("unknown leaderboard category %q", category)
	}
	rows, err := db.conn.Query(fmt.Sprintf(`
		SELECT player_id, COALESCE(player_name, ''), COALESCE(team, ''), %s
		FROM player_stats
		WHERE summary_level = 'season' AND season = ? AND player_id != 'TEAM'
		ORDER BY %s DESC LIMIT ?`, col, col), season, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Leader
	for rows.Next() {
		var l Leader
		if err := rows.Scan(&l.PlayerID, &l.PlayerName, &l.Team, &l.Value); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SeasonCount is one season's stored row counts.
type SeasonCount struct {
	Season   int
	Players  int
	WeekRows int
	TeamRows int
}

// SeasonCounts returns per-season row counts across the stat tables,
// ascending by season.
func (db *DB) SeasonCounts() ([]SeasonCount, error) {
	rows, err := db.conn.Query(`
		SELECT season,
		       SUM(CASE WHEN summary_level = 'season' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN summary_level = 'week' THEN 1 ELSE 0 END),
		       (SELECT COUNT(1) FROM team_stats t WHERE t.season = p.season)
		FROM player_stats p
		GROUP BY season ORDER BY season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeasonCount
	for rows.Next() {
		var c SeasonCount
		if err := rows.Scan(&c.Season, &c.Players, &c.WeekRows, &c.TeamRows); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SeededSeasons lists the seasons present at season-level, ascending.
func (db *DB) SeededSeasons() ([]int, error) {
	rows, err := db.conn.Query(`
		SELECT DISTINCT season FROM player_stats
		WHERE summary_level = 'season' ORDER BY season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
