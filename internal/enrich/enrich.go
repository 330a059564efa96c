// Package enrich joins raw stat events to canonical plays and derives the
// per-event flags and rollups the aggregator consumes.
package enrich

import (
	"github.com/pable/go-nfl-stats/internal/model"
)

// Stat id codes. The numeric meanings come from the league's play stat
// coding and are stable except for the 2003-2008 target quirk below.
const (
	statPassTD        = 16
	statInterception  = 19
	statSack          = 20
	statYAC           = 113
	statAirComplete   = 111
	statPass2Pt       = 77
	statRush2Pt       = 75
	statRec2Pt        = 104
	statFumbleLost    = 106
	statRushFirstDown = 3
	statPassFirstDown = 4
	statTarget        = 115
)

var (
	compStats      = codeSet(15, 16)
	attStats       = codeSet(14, 15, 16, 19)
	airYardsStats  = codeSet(111, 112)
	carryStats     = codeSet(10, 11)
	rushYardsStats = codeSet(10, 11, 12, 13)
	rushTDStats    = codeSet(11, 13)
	recStats       = codeSet(21, 22)
	recYardsStats  = codeSet(21, 22, 23, 24)
	recTDStats     = codeSet(22, 24)
	tdStats        = codeSet(11, 13, 22, 24)
	fumbleStats    = codeSet(52, 53, 54)
	badEraTargets  = codeSet(21, 22, statTarget)
)

func codeSet(ids ...int) map[int]bool {
	s := make(map[int]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// BadSeason reports whether a season falls in the 2003-2008 range where
// the feed coded targets as {21, 22, 115} instead of just 115. This is a
// historical data-format discontinuity, not a defect; do not generalize.
func BadSeason(season int) bool {
	return season >= 2003 && season <= 2008
}

// TargetStat is the era-aware target predicate. It is the single source
// of truth for both the team/game rollup denominators and the per-event
// is_target flag, keeping share-metric numerators and denominators
// consistent.
func TargetStat(season, statID int) bool {
	if BadSeason(season) {
		return badEraTargets[statID]
	}
	return statID == statTarget
}

type playerPlayKey struct {
	season, week, playID int
	playerID             string
}

type teamPlayKey struct {
	season, week, playID int
	team                 string
}

type teamGameKey struct {
	season int
	gameID string
	team   string
}

type playKey struct {
	gameID string
	playID int
}

type dedupeKey struct {
	gameID   string
	playID   int
	playerID string
	statID   int
}

// playContext is the per-play information joined from the play table.
type playContext struct {
	off, def string
	special  int
}

// Enrich restricts events to plays surviving the cleaner, normalizes and
// de-duplicates them, computes the three rollups, joins play context, and
// derives all per-event flags and partitioned yardage.
func Enrich(plays []model.Play, events []model.StatEvent) []model.EnrichedEvent {
	games := make(map[string]bool, len(plays))
	for _, p := range plays {
		games[p.GameID] = true
	}

	// Restrict, normalize the TEAM sentinel, de-duplicate. Input order is
	// preserved so downstream first/last semantics stay deterministic.
	seen := make(map[dedupeKey]bool, len(events))
	kept := make([]model.StatEvent, 0, len(events))
	for _, ev := range events {
		if !games[ev.GameID] {
			continue
		}
		if ev.PlayerID == "" {
			ev.PlayerID = model.TeamPlayerID
		}
		dk := dedupeKey{ev.GameID, ev.PlayID, ev.PlayerID, ev.StatID}
		if seen[dk] {
			continue
		}
		seen[dk] = true
		kept = append(kept, ev)
	}

	// Rollups. The player-play and team-play code sets replace the
	// source feed's semicolon-joined stat lists; membership tests are
	// identical, minus the string parsing.
	playerCodes := make(map[playerPlayKey]map[int]bool)
	teamCodes := make(map[teamPlayKey]map[int]bool)
	teamPlayAir := make(map[teamPlayKey]int)
	gameTargets := make(map[teamGameKey]int)
	gameAir := make(map[teamGameKey]int)

	for _, ev := range kept {
		pk := playerPlayKey{ev.Season, ev.Week, ev.PlayID, ev.PlayerID}
		if playerCodes[pk] == nil {
			playerCodes[pk] = make(map[int]bool)
		}
		playerCodes[pk][ev.StatID] = true

		tk := teamPlayKey{ev.Season, ev.Week, ev.PlayID, ev.Team}
		if teamCodes[tk] == nil {
			teamCodes[tk] = make(map[int]bool)
		}
		teamCodes[tk][ev.StatID] = true
		if airYardsStats[ev.StatID] {
			teamPlayAir[tk] += ev.Yards
		}

		gk := teamGameKey{ev.Season, ev.GameID, ev.Team}
		if TargetStat(ev.Season, ev.StatID) {
			gameTargets[gk]++
		}
		if airYardsStats[ev.StatID] {
			gameAir[gk] += ev.Yards
		}
	}

	// Play context: first posteam/defteam per play, special if any play
	// row on the play is marked special; season_type per game.
	contexts := make(map[playKey]playContext)
	gameSeasonType := make(map[string]string)
	for _, p := range plays {
		k := playKey{p.GameID, p.PlayID}
		ctx, ok := contexts[k]
		if !ok {
			ctx = playContext{off: p.Posteam, def: p.Defteam}
		}
		if p.Special == 1 {
			ctx.special = 1
		}
		contexts[k] = ctx
		if _, ok := gameSeasonType[p.GameID]; !ok {
			gameSeasonType[p.GameID] = p.SeasonType
		}
	}

	out := make([]model.EnrichedEvent, 0, len(kept))
	for _, ev := range kept {
		e := model.EnrichedEvent{StatEvent: ev}

		ctx := contexts[playKey{ev.GameID, ev.PlayID}]
		e.OffTeam = ctx.off
		e.DefTeam = ctx.def
		e.Special = ctx.special
		e.SeasonType = gameSeasonType[ev.GameID]

		tk := teamPlayKey{ev.Season, ev.Week, ev.PlayID, ev.Team}
		gk := teamGameKey{ev.Season, ev.GameID, ev.Team}
		e.TeamPlayAirYards = teamPlayAir[tk]
		e.TeamGameTargets = gameTargets[gk]
		e.TeamGameAirYards = gameAir[gk]

		id := ev.StatID
		e.IsComp = compStats[id]
		e.IsAtt = attStats[id]
		e.IsPassTD = id == statPassTD
		e.IsInt = id == statInterception
		e.IsSack = id == statSack
		e.IsCarry = carryStats[id]
		e.IsRushTD = rushTDStats[id]
		e.IsRec = recStats[id]
		e.IsTarget = TargetStat(ev.Season, id)
		e.IsRecTD = recTDStats[id]
		e.IsYAC = id == statYAC
		e.IsPass2Pt = id == statPass2Pt
		e.IsRush2Pt = id == statRush2Pt
		e.IsRec2Pt = id == statRec2Pt

		mine := playerCodes[playerPlayKey{ev.Season, ev.Week, ev.PlayID, ev.PlayerID}]
		team := teamCodes[tk]

		// In the bad era a target event often carries no 115 code at
		// all, so any attempt counts as a QB target there.
		if BadSeason(ev.Season) {
			e.QBTarget = e.IsAtt
		} else {
			e.QBTarget = e.IsAtt && team[statTarget]
		}

		hasFumble := hasAny(mine, fumbleStats)
		hasFumbleLost := mine[statFumbleLost]
		e.IsSackFumble = e.IsSack && hasFumble
		e.IsSackFumbleLost = e.IsSack && hasFumbleLost
		e.IsRushFumble = e.IsCarry && hasFumble
		e.IsRushFumbleLost = e.IsCarry && hasFumbleLost
		e.IsRecFumble = e.IsRec && hasFumble
		e.IsRecFumbleLost = e.IsRec && hasFumbleLost
		e.IsRushFirstDown = e.IsCarry && team[statRushFirstDown]
		e.IsPassFirstDown = e.IsComp && team[statPassFirstDown]
		e.IsRecFirstDown = e.IsRec && team[statPassFirstDown]
		e.IsSpecialTD = ctx.special == 1 && tdStats[id]

		if e.IsComp {
			e.PassYards = ev.Yards
		}
		if e.IsSack {
			e.SackYards = -ev.Yards
		}
		if airYardsStats[id] {
			e.AirYards = ev.Yards
		}
		if id == statAirComplete {
			e.AirYardsComplete = ev.Yards
		}
		if rushYardsStats[id] {
			e.RushYards = ev.Yards
		}
		if recYardsStats[id] {
			e.RecYards = ev.Yards
		}
		if e.IsYAC {
			e.YAC = ev.Yards
		}

		out = append(out, e)
	}
	return out
}

// hasAny reports whether any code in want is present in have.
func hasAny(have, want map[int]bool) bool {
	for id := range want {
		if have[id] {
			return true
		}
	}
	return false
}
