package cleaner

import (
	"strconv"
	"testing"

	"github.com/pable/go-nfl-stats/internal/model"
)

// baseRow returns a minimal valid raw play row.
func baseRow() model.Row {
	return model.Row{
		"play_id":     "55",
		"game_id":     "2015_01_KC_HOU",
		"season":      "2015",
		"week":        "1",
		"season_type": "REG",
		"home_team":   "HOU",
		"away_team":   "KC",
		"posteam":     "KC",
		"defteam":     "HOU",
		"down":        "1",
		"play_type":   "pass",
		"qb_dropback": "1",
		"success":     "1",
		"epa":         "0.45",
		"qb_epa":      "0.45",
	}
}

func TestCleanProjectionDropsUnknownColumns(t *testing.T) {
	row := baseRow()
	row["totally_made_up"] = "x"
	row["drive"] = "3"

	projected := projectColumns(row)
	if _, ok := projected["totally_made_up"]; ok {
		t.Error("unknown column survived projection")
	}
	if _, ok := projected["drive"]; ok {
		t.Error("non-allow-listed column survived projection")
	}
	if projected["game_id"] != "2015_01_KC_HOU" {
		t.Error("allow-listed column lost during projection")
	}
}

func TestCleanTeamNormalization(t *testing.T) {
	row := baseRow()
	row["home_team"] = "SD"
	row["away_team"] = "OAK"
	row["posteam"] = "STL"
	row["defteam"] = "JAC"

	plays := Clean([]model.Row{row})
	if len(plays) != 1 {
		t.Fatalf("expected 1 play, got %d", len(plays))
	}
	p := plays[0]
	if p.HomeTeam != "LAC" || p.AwayTeam != "LV" || p.Posteam != "LA" || p.Defteam != "JAX" {
		t.Errorf("team normalization failed: %s %s %s %s", p.HomeTeam, p.AwayTeam, p.Posteam, p.Defteam)
	}
}

func TestCleanMissingValueDefaults(t *testing.T) {
	row := baseRow()
	row["score_differential"] = ""
	row["yardline_100"] = ""
	row["sack"] = ""
	row["passer_player_id"] = ""

	p := Clean([]model.Row{row})[0]
	if p.ScoreDifferential != 0 {
		t.Errorf("score_differential default: want 0, got %v", p.ScoreDifferential)
	}
	if p.Yardline100 != 50 {
		t.Errorf("yardline_100 default: want 50 (midfield), got %v", p.Yardline100)
	}
	if p.PasserID != "" {
		t.Errorf("missing id should be empty string, got %q", p.PasserID)
	}
}

func TestCleanDerivedIndicators(t *testing.T) {
	row := baseRow()
	row["score_differential"] = "-7"
	row["yardline_100"] = "18"
	row["down"] = "3"
	row["xpass"] = "0.81"

	p := Clean([]model.Row{row})[0]
	if p.IsTrailing != 1 || p.IsLeading != 0 {
		t.Error("trailing/leading indicators wrong for score_differential=-7")
	}
	if p.IsRedZone != 1 {
		t.Error("yardline 18 should be red zone")
	}
	if p.IsEarlyDown != 0 || p.IsLateDown != 1 {
		t.Error("down 3 should be late down only")
	}
	if p.IsLikelyPass != 1 {
		t.Error("xpass 0.81 should be likely pass")
	}
	if p.IsDropback != 1 || p.IsSuccess != 1 {
		t.Error("is_dropback/is_success should mirror source flags")
	}
}

func TestCleanValidationDrops(t *testing.T) {
	missingGame := baseRow()
	missingGame["game_id"] = ""

	badPlayID := baseRow()
	badPlayID["play_id"] = "abc"

	badDown := baseRow()
	badDown["down"] = "5"

	badPlayType := baseRow()
	badPlayType["play_type"] = "two_point_attempt"

	nullDown := baseRow()
	nullDown["down"] = "" // null down is allowed

	plays := Clean([]model.Row{missingGame, badPlayID, badDown, badPlayType, nullDown})
	if len(plays) != 1 {
		t.Fatalf("expected only the null-down row to survive, got %d rows", len(plays))
	}
	if plays[0].Down != nil {
		t.Error("null down should stay nil")
	}
}

func TestCleanNeverErrorsOnGarbage(t *testing.T) {
	garbage := model.Row{"play_id": "??", "game_id": "x", "season": "twenty"}
	plays := Clean([]model.Row{garbage, {}})
	if len(plays) != 0 {
		t.Errorf("garbage rows should be dropped, got %d plays", len(plays))
	}
}

// playToRow re-serializes a canonical play for the idempotence check.
func playToRow(p model.Play) model.Row {
	row := model.Row{
		"play_id":     strconv.Itoa(p.PlayID),
		"game_id":     p.GameID,
		"season":      strconv.Itoa(p.Season),
		"week":        strconv.Itoa(p.Week),
		"season_type": p.SeasonType,
		"home_team":   p.HomeTeam,
		"away_team":   p.AwayTeam,
		"posteam":     p.Posteam,
		"defteam":     p.Defteam,
		"play_type":   p.PlayType,
		"qb_dropback": strconv.Itoa(p.QBDropback),
		"qb_scramble": strconv.Itoa(p.QBScramble),
		"success":     strconv.Itoa(p.Success),
		"ydstogo":     strconv.Itoa(p.Ydstogo),
		"qtr":         strconv.Itoa(p.Qtr),

		"yardline_100":       strconv.FormatFloat(p.Yardline100, 'f', -1, 64),
		"score_differential": strconv.FormatFloat(p.ScoreDifferential, 'f', -1, 64),

		"passer_player_id":   p.PasserID,
		"rusher_player_id":   p.RusherID,
		"receiver_player_id": p.ReceiverID,
	}
	if p.Down != nil {
		row["down"] = strconv.Itoa(*p.Down)
	}
	for col, v := range map[string]*float64{
		"epa": p.EPA, "qb_epa": p.QBEPA, "cpoe": p.CPOE, "xpass": p.Xpass,
	} {
		if v != nil {
			row[col] = strconv.FormatFloat(*v, 'f', -1, 64)
		}
	}
	return row
}

func TestCleanIdempotent(t *testing.T) {
	rows := []model.Row{baseRow()}
	r2 := baseRow()
	r2["play_id"] = "88"
	r2["down"] = ""
	r2["xpass"] = "0.6"
	r2["score_differential"] = "3"
	rows = append(rows, r2)

	first := Clean(rows)
	second := Clean(func() []model.Row {
		out := make([]model.Row, len(first))
		for i, p := range first {
			out[i] = playToRow(p)
		}
		return out
	}())

	if len(first) != len(second) {
		t.Fatalf("row count changed on re-clean: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.GameID != b.GameID || a.PlayID != b.PlayID || a.Posteam != b.Posteam ||
			a.IsEarlyDown != b.IsEarlyDown || a.IsLikelyPass != b.IsLikelyPass ||
			a.Yardline100 != b.Yardline100 || a.ScoreDifferential != b.ScoreDifferential {
			t.Errorf("row %d changed on re-clean:\n  %+v\n  %+v", i, a, b)
		}
	}
}
