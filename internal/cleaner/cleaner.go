// Package cleaner turns raw play-by-play feed rows into canonical plays.
// Every step is a pure function over the table, applied in a fixed order;
// bad rows are dropped, never surfaced as errors, because the upstream
// feed is known to carry sporadic noise.
package cleaner

import (
	"strconv"
	"strings"

	"github.com/pable/go-nfl-stats/internal/model"
)

// allowedColumns is the projection allow-list. Unknown feed columns are
// dropped; allow-listed columns missing from the feed are simply absent.
var allowedColumns = []string{
	// Core identifiers
	"play_id", "game_id", "season", "week", "season_type",
	// Teams
	"home_team", "away_team", "posteam", "defteam",
	// Game situation - timing
	"game_date", "qtr", "game_seconds_remaining", "half_seconds_remaining", "time_of_day",
	// Game situation - field position
	"down", "ydstogo", "yardline_100", "goal_to_go",
	// Game situation - score
	"score_differential", "posteam_score", "defteam_score", "total_home_score", "total_away_score",
	// Play classification
	"play_type", "shotgun", "no_huddle", "qb_dropback", "qb_scramble", "qb_kneel", "qb_spike",
	"pass_length", "pass_location", "run_location", "run_gap",
	// Performance metrics
	"epa", "qb_epa", "wp", "wpa", "air_yards", "yards_after_catch", "cpoe", "success", "xpass",
	// Outcome flags
	"first_down_rush", "first_down_pass", "first_down", "rush_attempt", "pass_attempt",
	"complete_pass", "incomplete_pass", "sack", "touchdown", "interception",
	"fumble", "fumble_lost", "pass_touchdown", "rush_touchdown",
	// Player data
	"passer_player_id", "passer_player_name", "passing_yards",
	"rusher_player_id", "rusher_player_name", "rushing_yards",
	"receiver_player_id", "receiver_player_name", "receiving_yards",
	// Game metadata
	"stadium", "roof", "surface", "temp", "wind", "div_game",
	// Special teams indicators
	"special", "special_teams_play",
}

// teamAbbrMap maps historical team codes to current ones.
var teamAbbrMap = map[string]string{
	"STL": "LA",
	"SD":  "LAC",
	"OAK": "LV",
	"JAC": "JAX",
	"SL":  "LA",
	"ARZ": "ARI",
	"BLT": "BAL",
	"CLV": "CLE",
	"HST": "HOU",
}

var teamColumns = []string{"home_team", "away_team", "posteam", "defteam"}

// flagColumns default to 0 when missing.
var flagColumns = []string{
	"touchdown", "interception", "sack", "fumble", "complete_pass",
	"incomplete_pass", "first_down", "first_down_rush", "first_down_pass",
	"rush_attempt", "pass_attempt", "qb_dropback", "qb_scramble", "qb_kneel",
	"qb_spike", "shotgun", "no_huddle", "fumble_lost", "pass_touchdown",
	"rush_touchdown", "success", "xpass", "special", "special_teams_play",
}

// validPlayTypes is the closed play classification set. A play with any
// other non-empty play_type is dropped during validation.
var validPlayTypes = map[string]bool{
	"pass": true, "run": true, "punt": true, "field_goal": true,
	"kickoff": true, "extra_point": true, "qb_kneel": true,
	"qb_spike": true, "no_play": true,
}

// Clean applies the full cleaning sequence and returns canonical plays.
// Invalid rows are silently filtered.
func Clean(raw []model.Row) []model.Play {
	plays := make([]model.Play, 0, len(raw))
	for _, row := range raw {
		r := projectColumns(row)
		normalizeTeams(r)
		fillDefaults(r)
		if !validRow(r) {
			continue
		}
		plays = append(plays, parsePlay(r))
	}
	return plays
}

// projectColumns keeps only allow-listed columns.
func projectColumns(row model.Row) model.Row {
	out := make(model.Row, len(allowedColumns))
	for _, col := range allowedColumns {
		if v, ok := row[col]; ok {
			out[col] = v
		}
	}
	return out
}

// normalizeTeams rewrites historical team abbreviations in place.
func normalizeTeams(row model.Row) {
	for _, col := range teamColumns {
		if v, ok := row[col]; ok {
			if cur, hit := teamAbbrMap[v]; hit {
				row[col] = cur
			}
		}
	}
}

// fillDefaults applies the missing-value policy: flags to 0,
// score_differential to 0, yardline_100 to midfield, ids to "".
func fillDefaults(row model.Row) {
	for _, col := range flagColumns {
		if v, ok := row[col]; ok && v == "" {
			row[col] = "0"
		}
	}
	if v, ok := row["score_differential"]; ok && v == "" {
		row["score_differential"] = "0"
	}
	if v, ok := row["yardline_100"]; ok && v == "" {
		row["yardline_100"] = "50"
	}
	for col, v := range row {
		if v == "" && strings.HasSuffix(col, "_id") {
			row[col] = ""
		}
	}
}

// validRow applies the validation filters: required identifiers present,
// numeric play_id, down in 1-4 when set, play_type in the closed set.
func validRow(row model.Row) bool {
	if row["play_id"] == "" || row["game_id"] == "" || row["season"] == "" {
		return false
	}
	if _, err := strconv.ParseFloat(row["play_id"], 64); err != nil {
		return false
	}
	if d := row["down"]; d != "" {
		n, err := strconv.ParseFloat(d, 64)
		if err != nil || n < 1 || n > 4 {
			return false
		}
	}
	if pt := row["play_type"]; pt != "" && !validPlayTypes[pt] {
		return false
	}
	return true
}

// parsePlay coerces the row into a typed Play and adds derived indicators.
func parsePlay(row model.Row) model.Play {
	p := model.Play{
		Season:     intOr0(row["season"]),
		Week:       intOr0(row["week"]),
		GameID:     row["game_id"],
		PlayID:     intOr0(row["play_id"]),
		SeasonType: row["season_type"],

		HomeTeam: row["home_team"],
		AwayTeam: row["away_team"],
		Posteam:  row["posteam"],
		Defteam:  row["defteam"],

		Ydstogo:           intOr0(row["ydstogo"]),
		Yardline100:       floatOr(row["yardline_100"], 50),
		Qtr:               intOr0(row["qtr"]),
		ScoreDifferential: floatOr(row["score_differential"], 0),

		PlayType:   row["play_type"],
		QBDropback: boolInt(row["qb_dropback"]),
		QBScramble: boolInt(row["qb_scramble"]),
		QBKneel:    boolInt(row["qb_kneel"]),
		QBSpike:    boolInt(row["qb_spike"]),
		Special:    boolInt(row["special"]),

		EPA:     nullableFloat(row["epa"]),
		QBEPA:   nullableFloat(row["qb_epa"]),
		CPOE:    nullableFloat(row["cpoe"]),
		Success: boolInt(row["success"]),
		WP:      nullableFloat(row["wp"]),
		WPA:     nullableFloat(row["wpa"]),
		Xpass:   nullableFloat(row["xpass"]),

		PasserID:   row["passer_player_id"],
		RusherID:   row["rusher_player_id"],
		ReceiverID: row["receiver_player_id"],
	}

	if d := row["down"]; d != "" {
		down := intOr0(d)
		p.Down = &down
	}

	// Derived indicators. A missing down counts as early; a missing xpass
	// counts as not-likely-pass, matching the fill policy.
	if p.ScoreDifferential < 0 {
		p.IsTrailing = 1
	}
	if p.ScoreDifferential > 0 {
		p.IsLeading = 1
	}
	if p.Yardline100 <= 20 {
		p.IsRedZone = 1
	}
	down := 0
	if p.Down != nil {
		down = *p.Down
	}
	if down <= 2 {
		p.IsEarlyDown = 1
	}
	if down >= 3 {
		p.IsLateDown = 1
	}
	if floatOr(row["xpass"], 0) >= 0.5 {
		p.IsLikelyPass = 1
	}
	p.IsDropback = p.QBDropback
	p.IsSuccess = p.Success

	return p
}

// intOr0 parses an integer-valued field, accepting float formatting
// ("1.0") and falling back to zero on anything unparseable.
func intOr0(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// floatOr parses a float field with an explicit fallback.
func floatOr(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// nullableFloat keeps nulls as nil rather than forcing a default.
func nullableFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// boolInt coerces a boolean-ish field to 0/1.
func boolInt(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == 0 {
		return 0
	}
	return 1
}
