// Package stats turns enriched stat events and play-by-play extracts into
// the final aggregated stat table.
package stats

import (
	"sort"
	"strings"

	"github.com/pable/go-nfl-stats/internal/model"
	"github.com/pable/go-nfl-stats/internal/pbpstats"
)

// Extracts bundles the five play-by-play extractor outputs that get
// left-merged onto the event-based table.
type Extracts struct {
	Passing   map[model.StatKey]model.PassingPBP
	Rushing   map[model.StatKey]model.RushingPBP
	Receiving map[model.StatKey]model.ReceivingPBP
	Dropback  map[model.StatKey]model.DropbackPBP
	Scramble  map[model.StatKey]model.ScramblePBP
}

// ExtractAll runs every extractor over the canonical plays at the given
// grain.
func ExtractAll(plays []model.Play, level model.SummaryLevel, statType model.StatType) Extracts {
	spec := pbpstats.KeySpec{Level: level, Type: statType}
	return Extracts{
		Passing:   pbpstats.Passing(plays, spec),
		Rushing:   pbpstats.Rushing(plays, spec),
		Receiving: pbpstats.Receiving(plays, spec),
		Dropback:  pbpstats.Dropback(plays, spec),
		Scramble:  pbpstats.Scramble(plays, spec),
	}
}

// acc collects one group's running totals. Counts come from boolean
// flags, yardage from the partitioned columns, the rest from first/last
// row context.
type acc struct {
	key model.StatKey

	nameCounts map[string]int
	firstTeam  string
	lastTeam   string
	games      map[string]bool
	seasonSeen map[string]bool
	seasonOrd  []string
	opponent   string

	completions, attempts, passTDs, ints, sacks       int
	sackFumbles, sackFumblesLost                      int
	passFirstDowns, pass2Pt, qbTargets                int
	carries, rushTDs, rushFumbles, rushFumblesLost    int
	rushFirstDowns, rush2Pt                           int
	receptions, targets, recTDs                       int
	recFumbles, recFumblesLost, recFirstDowns, rec2Pt int
	specialTDs                                        int

	passYards, sackYards, airYards, airComplete int
	rushYards, recYards, yac, recvAirYards      int

	teamTargetsFirst, teamAirFirst int
	haveFirst                      bool
}

func keyFor(ev model.EnrichedEvent, level model.SummaryLevel, statType model.StatType) model.StatKey {
	k := model.StatKey{Season: ev.Season}
	if level == model.SummaryWeek {
		k.Week = ev.Week
		k.GameID = ev.GameID
	}
	if statType == model.StatPlayer {
		k.Player = ev.PlayerID
	} else {
		k.Team = ev.Team
	}
	return k
}

func boolSum(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Aggregate groups enriched events at the requested grain, computes the
// counting stats, yardage totals, and ratio metrics, and left-merges the
// extractor outputs. Rows come back sorted by group key.
func Aggregate(events []model.EnrichedEvent, level model.SummaryLevel, statType model.StatType, ext Extracts) []model.StatRow {
	accs := make(map[model.StatKey]*acc)
	order := make([]model.StatKey, 0)

	for _, ev := range events {
		k := keyFor(ev, level, statType)
		a := accs[k]
		if a == nil {
			a = &acc{
				key:        k,
				nameCounts: make(map[string]int),
				games:      make(map[string]bool),
				seasonSeen: make(map[string]bool),
			}
			accs[k] = a
			order = append(order, k)
		}

		if !a.haveFirst {
			a.haveFirst = true
			a.firstTeam = ev.Team
			a.teamTargetsFirst = ev.TeamGameTargets
			a.teamAirFirst = ev.TeamGameAirYards
			if ev.Team == ev.OffTeam {
				a.opponent = ev.DefTeam
			} else {
				a.opponent = ev.OffTeam
			}
		}
		a.lastTeam = ev.Team
		a.games[ev.GameID] = true
		if ev.PlayerName != "" {
			a.nameCounts[ev.PlayerName]++
		}
		if ev.SeasonType != "" && !a.seasonSeen[ev.SeasonType] {
			a.seasonSeen[ev.SeasonType] = true
			a.seasonOrd = append(a.seasonOrd, ev.SeasonType)
		}

		a.completions += boolSum(ev.IsComp)
		a.attempts += boolSum(ev.IsAtt)
		a.passTDs += boolSum(ev.IsPassTD)
		a.ints += boolSum(ev.IsInt)
		a.sacks += boolSum(ev.IsSack)
		a.sackFumbles += boolSum(ev.IsSackFumble)
		a.sackFumblesLost += boolSum(ev.IsSackFumbleLost)
		a.passFirstDowns += boolSum(ev.IsPassFirstDown)
		a.pass2Pt += boolSum(ev.IsPass2Pt)
		a.qbTargets += boolSum(ev.QBTarget)
		a.carries += boolSum(ev.IsCarry)
		a.rushTDs += boolSum(ev.IsRushTD)
		a.rushFumbles += boolSum(ev.IsRushFumble)
		a.rushFumblesLost += boolSum(ev.IsRushFumbleLost)
		a.rushFirstDowns += boolSum(ev.IsRushFirstDown)
		a.rush2Pt += boolSum(ev.IsRush2Pt)
		a.receptions += boolSum(ev.IsRec)
		a.targets += boolSum(ev.IsTarget)
		a.recTDs += boolSum(ev.IsRecTD)
		a.recFumbles += boolSum(ev.IsRecFumble)
		a.recFumblesLost += boolSum(ev.IsRecFumbleLost)
		a.recFirstDowns += boolSum(ev.IsRecFirstDown)
		a.rec2Pt += boolSum(ev.IsRec2Pt)
		a.specialTDs += boolSum(ev.IsSpecialTD)

		a.passYards += ev.PassYards
		a.sackYards += ev.SackYards
		a.airYards += ev.AirYards
		a.airComplete += ev.AirYardsComplete
		a.rushYards += ev.RushYards
		a.recYards += ev.RecYards
		a.yac += ev.YAC

		// Player receiving air yards credit the whole pass's air yards
		// to the targeted receiver; team rows just sum their own.
		if statType == model.StatPlayer {
			if ev.IsTarget {
				a.recvAirYards += ev.TeamPlayAirYards
			}
		} else {
			a.recvAirYards += ev.AirYards
		}
	}

	var shares map[model.StatKey]teamTotals
	if statType == model.StatPlayer && level == model.SummarySeason {
		shares = seasonTeamTotals(events, accs)
	}

	rows := make([]model.StatRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, buildRow(accs[k], level, statType, ext, shares))
	}
	sort.Slice(rows, func(i, j int) bool {
		return rowKey(rows[i], statType).Less(rowKey(rows[j], statType))
	})
	return rows
}

func rowKey(r model.StatRow, statType model.StatType) model.StatKey {
	k := model.StatKey{Season: r.Season, Week: r.Week, GameID: r.GameID}
	if statType == model.StatPlayer {
		k.Player = r.PlayerID
	} else {
		k.Team = r.Team
	}
	return k
}

// teamTotals is a player's summed team-game denominators across the
// distinct games they appeared in for their credited team.
type teamTotals struct {
	targets, airYards int
}

type playerTeamKey struct {
	season int
	player string
	team   string
}

type gameTeamKey struct {
	season int
	gameID string
	team   string
}

// seasonTeamTotals re-derives share denominators for season-level player
// rows: per player, sum the team-game targets and air yards over the
// distinct games played for the team credited on the aggregated row.
func seasonTeamTotals(events []model.EnrichedEvent, accs map[model.StatKey]*acc) map[model.StatKey]teamTotals {
	perGame := make(map[gameTeamKey]teamTotals)
	playerGames := make(map[playerTeamKey]map[string]bool)
	for _, ev := range events {
		perGame[gameTeamKey{ev.Season, ev.GameID, ev.Team}] = teamTotals{
			targets:  ev.TeamGameTargets,
			airYards: ev.TeamGameAirYards,
		}
		pk := playerTeamKey{ev.Season, ev.PlayerID, ev.Team}
		if playerGames[pk] == nil {
			playerGames[pk] = make(map[string]bool)
		}
		playerGames[pk][ev.GameID] = true
	}

	out := make(map[model.StatKey]teamTotals, len(accs))
	for k, a := range accs {
		var tot teamTotals
		for gameID := range playerGames[playerTeamKey{k.Season, k.Player, a.firstTeam}] {
			g := perGame[gameTeamKey{k.Season, gameID, a.firstTeam}]
			tot.targets += g.targets
			tot.airYards += g.airYards
		}
		out[k] = tot
	}
	return out
}

// modeName returns the most frequent name, breaking ties by the smaller
// string so the result is deterministic.
func modeName(counts map[string]int) string {
	best, bestN := "", 0
	for name, n := range counts {
		if n > bestN || (n == bestN && name < best) {
			best, bestN = name, n
		}
	}
	return best
}

func ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	return model.Float(num / den)
}

func buildRow(a *acc, level model.SummaryLevel, statType model.StatType, ext Extracts, shares map[model.StatKey]teamTotals) model.StatRow {
	r := model.StatRow{
		Season:   a.key.Season,
		Week:     a.key.Week,
		GameID:   a.key.GameID,
		PlayerID: a.key.Player,
		Team:     a.key.Team,

		Completions:            a.completions,
		Attempts:               a.attempts,
		PassingYards:           a.passYards,
		PassingTDs:             a.passTDs,
		Interceptions:          a.ints,
		Sacks:                  a.sacks,
		SackYards:              a.sackYards,
		SackFumbles:            a.sackFumbles,
		SackFumblesLost:        a.sackFumblesLost,
		PassingAirYards:        a.airYards,
		PassingYardsAfterCatch: a.passYards - a.airComplete,
		PassingFirstDowns:      a.passFirstDowns,
		Passing2PtConversions:  a.pass2Pt,
		QBTargets:              a.qbTargets,

		Carries:               a.carries,
		RushingYards:          a.rushYards,
		RushingTDs:            a.rushTDs,
		RushingFumbles:        a.rushFumbles,
		RushingFumblesLost:    a.rushFumblesLost,
		RushingFirstDowns:     a.rushFirstDowns,
		Rushing2PtConversions: a.rush2Pt,

		Receptions:               a.receptions,
		Targets:                  a.targets,
		ReceivingYards:           a.recYards,
		ReceivingTDs:             a.recTDs,
		ReceivingFumbles:         a.recFumbles,
		ReceivingFumblesLost:     a.recFumblesLost,
		ReceivingAirYards:        a.recvAirYards,
		ReceivingYardsAfterCatch: a.yac,
		ReceivingFirstDowns:      a.recFirstDowns,
		Receiving2PtConversions:  a.rec2Pt,

		SpecialTeamsTDs: a.specialTDs,
	}

	if statType == model.StatPlayer {
		r.PlayerName = modeName(a.nameCounts)
		if level == model.SummaryWeek {
			r.Team = a.lastTeam
		} else {
			r.Team = a.firstTeam
		}
	}
	if level == model.SummarySeason {
		r.Games = len(a.games)
		r.SeasonType = strings.Join(a.seasonOrd, "+")
	} else {
		if len(a.seasonOrd) > 0 {
			r.SeasonType = a.seasonOrd[0]
		}
		r.OpponentTeam = a.opponent
	}

	r.QBADOT = ratio(float64(a.airYards), float64(a.qbTargets))

	if statType == model.StatPlayer {
		r.PACR = ratio(float64(a.passYards), float64(a.airYards))
		r.RACR = ratio(float64(a.recYards), float64(a.recvAirYards))
		r.ReceiverADOT = ratio(float64(a.recvAirYards), float64(a.targets))

		targetsDen, airDen := a.teamTargetsFirst, a.teamAirFirst
		if level == model.SummarySeason {
			tot := shares[a.key]
			targetsDen, airDen = tot.targets, tot.airYards
		}
		r.TargetShare = ratio(float64(a.targets), float64(targetsDen))
		r.AirYardsShare = ratio(float64(a.recvAirYards), float64(airDen))
		if targetsDen > 0 && airDen > 0 {
			r.WOPR = model.Float(1.5**r.TargetShare + 0.7**r.AirYardsShare)
		}
	}

	mergeExtracts(&r, a.key, ext)
	return r
}

// mergeExtracts copies extractor values onto the row when a matching key
// exists; absent keys leave the columns nil, mirroring a left join.
func mergeExtracts(r *model.StatRow, k model.StatKey, ext Extracts) {
	if v, ok := ext.Passing[k]; ok {
		r.PassingEPA = model.Float(v.PassingEPA)
		r.PassingCPOE = v.PassingCPOE
		r.PassingSuccessRate = v.PassingSuccessRate
	}
	if v, ok := ext.Rushing[k]; ok {
		r.RushingEPA = model.Float(v.RushingEPA)
	}
	if v, ok := ext.Receiving[k]; ok {
		r.ReceivingEPA = model.Float(v.ReceivingEPA)
	}
	if v, ok := ext.Dropback[k]; ok {
		r.Dropbacks = model.Int(v.Dropbacks)
		r.DropbackEPA = model.Float(v.DropbackEPA)
		r.DropbackSuccessRate = v.DropbackSuccessRate
		r.EPAPerDropback = v.EPAPerDropback
	}
	if v, ok := ext.Scramble[k]; ok {
		r.Scrambles = model.Int(v.Scrambles)
		r.ScrambleEPA = model.Float(v.ScrambleEPA)
		r.EPAPerScramble = v.EPAPerScramble
		r.ScrambleSuccessRate = v.ScrambleSuccessRate
	}
}
