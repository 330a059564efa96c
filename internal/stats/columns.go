package stats

import (
	"strconv"

	"github.com/pable/go-nfl-stats/internal/model"
)

// Columns returns the output column order for a run. Identifier and
// descriptive columns vary with the grain; the stat columns are fixed.
func Columns(level model.SummaryLevel, statType model.StatType) []string {
	var cols []string
	cols = append(cols, "season")
	if level == model.SummaryWeek {
		cols = append(cols, "week", "game_id")
	}
	if statType == model.StatPlayer {
		cols = append(cols, "player_id", "player_name", "team")
	} else {
		cols = append(cols, "team")
	}
	if level == model.SummaryWeek {
		cols = append(cols, "opponent_team")
	} else {
		cols = append(cols, "games")
	}
	cols = append(cols, "season_type")

	cols = append(cols,
		"completions", "attempts", "passing_yards", "passing_tds",
		"interceptions", "sacks", "sack_yards", "sack_fumbles",
		"sack_fumbles_lost", "passing_air_yards", "passing_yards_after_catch",
		"passing_first_downs", "passing_epa", "passing_cpoe",
		"passing_success_rate", "qb_adot", "qb_targets",
		"dropbacks", "dropback_epa", "dropback_success_rate", "epa_per_dropback",
		"scrambles", "scramble_epa", "epa_per_scramble", "scramble_success_rate",
		"passing_2pt_conversions",
	)
	if statType == model.StatPlayer {
		cols = append(cols, "pacr")
	}
	cols = append(cols,
		"carries", "rushing_yards", "rushing_tds", "rushing_fumbles",
		"rushing_fumbles_lost", "rushing_first_downs", "rushing_epa",
		"rushing_2pt_conversions",
		"receptions", "targets", "receiving_yards", "receiving_tds",
		"receiving_fumbles", "receiving_fumbles_lost", "receiving_air_yards",
		"receiving_yards_after_catch", "receiving_first_downs", "receiving_epa",
		"receiving_2pt_conversions",
	)
	if statType == model.StatPlayer {
		cols = append(cols, "racr", "receiver_adot", "target_share", "air_yards_share", "wopr")
	}
	cols = append(cols, "special_teams_tds")
	return cols
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Cell renders one column of a stat row as a string. Null values render
// as the empty string.
func Cell(r model.StatRow, col string) string {
	switch col {
	case "season":
		return strconv.Itoa(r.Season)
	case "week":
		return strconv.Itoa(r.Week)
	case "game_id":
		return r.GameID
	case "player_id":
		return r.PlayerID
	case "player_name":
		return r.PlayerName
	case "team":
		return r.Team
	case "opponent_team":
		return r.OpponentTeam
	case "games":
		return strconv.Itoa(r.Games)
	case "season_type":
		return r.SeasonType

	case "completions":
		return strconv.Itoa(r.Completions)
	case "attempts":
		return strconv.Itoa(r.Attempts)
	case "passing_yards":
		return strconv.Itoa(r.PassingYards)
	case "passing_tds":
		return strconv.Itoa(r.PassingTDs)
	case "interceptions":
		return strconv.Itoa(r.Interceptions)
	case "sacks":
		return strconv.Itoa(r.Sacks)
	case "sack_yards":
		return strconv.Itoa(r.SackYards)
	case "sack_fumbles":
		return strconv.Itoa(r.SackFumbles)
	case "sack_fumbles_lost":
		return strconv.Itoa(r.SackFumblesLost)
	case "passing_air_yards":
		return strconv.Itoa(r.PassingAirYards)
	case "passing_yards_after_catch":
		return strconv.Itoa(r.PassingYardsAfterCatch)
	case "passing_first_downs":
		return strconv.Itoa(r.PassingFirstDowns)
	case "passing_epa":
		return fmtFloat(r.PassingEPA)
	case "passing_cpoe":
		return fmtFloat(r.PassingCPOE)
	case "passing_success_rate":
		return fmtFloat(r.PassingSuccessRate)
	case "qb_adot":
		return fmtFloat(r.QBADOT)
	case "qb_targets":
		return strconv.Itoa(r.QBTargets)
	case "dropbacks":
		return fmtIntPtr(r.Dropbacks)
	case "dropback_epa":
		return fmtFloat(r.DropbackEPA)
	case "dropback_success_rate":
		return fmtFloat(r.DropbackSuccessRate)
	case "epa_per_dropback":
		return fmtFloat(r.EPAPerDropback)
	case "scrambles":
		return fmtIntPtr(r.Scrambles)
	case "scramble_epa":
		return fmtFloat(r.ScrambleEPA)
	case "epa_per_scramble":
		return fmtFloat(r.EPAPerScramble)
	case "scramble_success_rate":
		return fmtFloat(r.ScrambleSuccessRate)
	case "passing_2pt_conversions":
		return strconv.Itoa(r.Passing2PtConversions)
	case "pacr":
		return fmtFloat(r.PACR)

	case "carries":
		return strconv.Itoa(r.Carries)
	case "rushing_yards":
		return strconv.Itoa(r.RushingYards)
	case "rushing_tds":
		return strconv.Itoa(r.RushingTDs)
	case "rushing_fumbles":
		return strconv.Itoa(r.RushingFumbles)
	case "rushing_fumbles_lost":
		return strconv.Itoa(r.RushingFumblesLost)
	case "rushing_first_downs":
		return strconv.Itoa(r.RushingFirstDowns)
	case "rushing_epa":
		return fmtFloat(r.RushingEPA)
	case "rushing_2pt_conversions":
		return strconv.Itoa(r.Rushing2PtConversions)

	case "receptions":
		return strconv.Itoa(r.Receptions)
	case "targets":
		return strconv.Itoa(r.Targets)
	case "receiving_yards":
		return strconv.Itoa(r.ReceivingYards)
	case "receiving_tds":
		return strconv.Itoa(r.ReceivingTDs)
	case "receiving_fumbles":
		return strconv.Itoa(r.ReceivingFumbles)
	case "receiving_fumbles_lost":
		return strconv.Itoa(r.ReceivingFumblesLost)
	case "receiving_air_yards":
		return strconv.Itoa(r.ReceivingAirYards)
	case "receiving_yards_after_catch":
		return strconv.Itoa(r.ReceivingYardsAfterCatch)
	case "receiving_first_downs":
		return strconv.Itoa(r.ReceivingFirstDowns)
	case "receiving_epa":
		return fmtFloat(r.ReceivingEPA)
	case "receiving_2pt_conversions":
		return strconv.Itoa(r.Receiving2PtConversions)
	case "racr":
		return fmtFloat(r.RACR)
	case "receiver_adot":
		return fmtFloat(r.ReceiverADOT)
	case "target_share":
		return fmtFloat(r.TargetShare)
	case "air_yards_share":
		return fmtFloat(r.AirYardsShare)
	case "wopr":
		return fmtFloat(r.WOPR)

	case "special_teams_tds":
		return strconv.Itoa(r.SpecialTeamsTDs)
	}
	return ""
}
