package enrich

import (
	"testing"

	"github.com/pable/go-nfl-stats/internal/model"
)

func makePlay(gameID string, playID int, posteam, defteam string) model.Play {
	return model.Play{
		Season:     2015,
		Week:       1,
		GameID:     gameID,
		PlayID:     playID,
		SeasonType: "REG",
		Posteam:    posteam,
		Defteam:    defteam,
	}
}

func makeEvent(season int, gameID string, playID int, playerID, team string, statID, yards int) model.StatEvent {
	return model.StatEvent{
		Season:   season,
		Week:     1,
		GameID:   gameID,
		PlayID:   playID,
		PlayerID: playerID,
		Team:     team,
		StatID:   statID,
		Yards:    yards,
	}
}

func TestEnrichDropsEventsForDroppedGames(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU")}
	events := []model.StatEvent{
		makeEvent(2015, "g1", 1, "P1", "KC", 15, 10),
		makeEvent(2015, "g2", 1, "P1", "KC", 15, 10), // game not in plays
	}
	got := Enrich(plays, events)
	if len(got) != 1 {
		t.Fatalf("expected 1 enriched event, got %d", len(got))
	}
	if got[0].GameID != "g1" {
		t.Errorf("wrong event survived: %s", got[0].GameID)
	}
}

func TestEnrichTeamSentinelAndDedupe(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU")}
	ev := makeEvent(2015, "g1", 1, "", "KC", 15, 10)
	got := Enrich(plays, []model.StatEvent{ev, ev, ev})
	if len(got) != 1 {
		t.Fatalf("duplicates not collapsed: got %d rows", len(got))
	}
	if got[0].PlayerID != model.TeamPlayerID {
		t.Errorf("null player id should become %q, got %q", model.TeamPlayerID, got[0].PlayerID)
	}
}

func TestTargetStatEraPredicate(t *testing.T) {
	cases := []struct {
		season, statID int
		want           bool
	}{
		{2005, 21, true},
		{2005, 22, true},
		{2005, 115, true},
		{2005, 16, false},
		{2003, 22, true},
		{2008, 22, true},
		{2002, 22, false},
		{2009, 22, false},
		{2015, 115, true},
		{2015, 22, false},
	}
	for _, c := range cases {
		if got := TargetStat(c.season, c.statID); got != c.want {
			t.Errorf("TargetStat(%d, %d): want %v, got %v", c.season, c.statID, c.want, got)
		}
	}
}

// The rollup denominator and the per-row flag must agree under the era
// rule: the team-game target total equals the count of is_target rows.
func TestTargetRollupMatchesRowFlag(t *testing.T) {
	for _, season := range []int{2005, 2015} {
		plays := []model.Play{makePlay("g1", 1, "KC", "HOU"), makePlay("g1", 2, "KC", "HOU")}
		for i := range plays {
			plays[i].Season = season
		}
		events := []model.StatEvent{
			makeEvent(season, "g1", 1, "R1", "KC", 22, 12),
			makeEvent(season, "g1", 1, "R1", "KC", 115, 0),
			makeEvent(season, "g1", 2, "R2", "KC", 21, 5),
		}
		got := Enrich(plays, events)

		flagged := 0
		for _, e := range got {
			if e.IsTarget {
				flagged++
			}
		}
		for _, e := range got {
			if e.TeamGameTargets != flagged {
				t.Errorf("season %d: rollup targets=%d, flagged rows=%d", season, e.TeamGameTargets, flagged)
			}
		}
	}
}

func TestAttemptCompletionFlags(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU")}
	attIDs := map[int]bool{14: true, 15: true, 16: true, 19: true}
	compIDs := map[int]bool{15: true, 16: true}

	for id := 1; id <= 120; id++ {
		events := []model.StatEvent{makeEvent(2015, "g1", 1, "P1", "KC", id, 0)}
		e := Enrich(plays, events)[0]
		if e.IsAtt != attIDs[id] {
			t.Errorf("stat %d: IsAtt=%v, want %v", id, e.IsAtt, attIDs[id])
		}
		if e.IsComp != compIDs[id] {
			t.Errorf("stat %d: IsComp=%v, want %v", id, e.IsComp, compIDs[id])
		}
		if e.IsComp && !e.IsAtt {
			t.Errorf("stat %d: completion that is not an attempt", id)
		}
	}
}

func TestCompositeFumbleFlags(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU")}
	events := []model.StatEvent{
		makeEvent(2015, "g1", 1, "QB", "KC", 20, 7),  // sack
		makeEvent(2015, "g1", 1, "QB", "KC", 53, 0),  // fumble
		makeEvent(2015, "g1", 1, "QB", "KC", 106, 0), // fumble lost
	}
	got := Enrich(plays, events)

	var sack *model.EnrichedEvent
	for i := range got {
		if got[i].StatID == 20 {
			sack = &got[i]
		}
	}
	if sack == nil {
		t.Fatal("sack event missing")
	}
	if !sack.IsSackFumble || !sack.IsSackFumbleLost {
		t.Error("sack with co-occurring fumble codes should set both fumble flags")
	}
	if sack.SackYards != -7 {
		t.Errorf("sack yards should be negated: want -7, got %d", sack.SackYards)
	}
}

func TestFirstDownFlags(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU"), makePlay("g1", 2, "KC", "HOU")}
	events := []model.StatEvent{
		makeEvent(2015, "g1", 1, "RB", "KC", 10, 6), // carry
		makeEvent(2015, "g1", 1, "TEAM", "KC", 3, 0),
		makeEvent(2015, "g1", 2, "QB", "KC", 15, 9), // completion
		makeEvent(2015, "g1", 2, "WR", "KC", 21, 9), // reception
		makeEvent(2015, "g1", 2, "TEAM", "KC", 4, 0),
	}
	byStat := make(map[int]model.EnrichedEvent)
	for _, e := range Enrich(plays, events) {
		byStat[e.StatID] = e
	}
	if !byStat[10].IsRushFirstDown {
		t.Error("carry with team code 3 should be a rushing first down")
	}
	if !byStat[15].IsPassFirstDown {
		t.Error("completion with team code 4 should be a passing first down")
	}
	if !byStat[21].IsRecFirstDown {
		t.Error("reception with team code 4 should be a receiving first down")
	}
	if byStat[10].IsPassFirstDown || byStat[15].IsRushFirstDown {
		t.Error("first down flags crossed categories")
	}
}

func TestQBTargetCrossCheck(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU"), makePlay("g1", 2, "KC", "HOU")}

	// Attempt with a 115 somewhere on the team-play: QB target.
	events := []model.StatEvent{
		makeEvent(2015, "g1", 1, "QB", "KC", 16, 20),
		makeEvent(2015, "g1", 1, "WR", "KC", 115, 0),
		// Attempt with no 115 on the play: not a QB target.
		makeEvent(2015, "g1", 2, "QB", "KC", 14, 0),
	}
	byPlay := make(map[int]model.EnrichedEvent)
	for _, e := range Enrich(plays, events) {
		if e.IsAtt {
			byPlay[e.PlayID] = e
		}
	}
	if !byPlay[1].QBTarget {
		t.Error("attempt with team-play 115 should be a QB target")
	}
	if byPlay[2].QBTarget {
		t.Error("attempt without team-play 115 should not be a QB target")
	}

	// Bad era: every attempt counts.
	badPlays := []model.Play{makePlay("g2", 1, "KC", "HOU")}
	badPlays[0].Season = 2005
	badEvents := []model.StatEvent{makeEvent(2005, "g2", 1, "QB", "KC", 14, 0)}
	if e := Enrich(badPlays, badEvents)[0]; !e.QBTarget {
		t.Error("2005 attempt should be a QB target without a 115 code")
	}
}

func TestPlayContextJoin(t *testing.T) {
	p1 := makePlay("g1", 1, "KC", "HOU")
	p2 := makePlay("g1", 1, "KC", "HOU")
	p2.Special = 1 // any row on the play marked special flags the play
	plays := []model.Play{p1, p2}

	events := []model.StatEvent{makeEvent(2015, "g1", 1, "KR", "KC", 22, 30)}
	e := Enrich(plays, events)[0]
	if e.OffTeam != "KC" || e.DefTeam != "HOU" {
		t.Errorf("off/def join wrong: %s/%s", e.OffTeam, e.DefTeam)
	}
	if e.Special != 1 {
		t.Error("special flag should propagate from any play row")
	}
	if e.SeasonType != "REG" {
		t.Errorf("season_type join wrong: %q", e.SeasonType)
	}
	if !e.IsSpecialTD {
		t.Error("TD code on a special play should be a special teams TD")
	}
}

func TestYardagePartitioning(t *testing.T) {
	plays := []model.Play{makePlay("g1", 1, "KC", "HOU")}
	events := []model.StatEvent{
		makeEvent(2015, "g1", 1, "QB", "KC", 16, 25),  // completion -> pass yards
		makeEvent(2015, "g1", 1, "WR", "KC", 111, 18), // completed air yards
		makeEvent(2015, "g1", 1, "WR", "KC", 113, 7),  // yac
		makeEvent(2015, "g1", 1, "RB", "KC", 12, 4),   // rush yards, no carry
	}
	byStat := make(map[int]model.EnrichedEvent)
	for _, e := range Enrich(plays, events) {
		byStat[e.StatID] = e
	}
	if byStat[16].PassYards != 25 || byStat[16].RushYards != 0 {
		t.Error("completion yards should land in PassYards only")
	}
	if byStat[111].AirYards != 18 || byStat[111].AirYardsComplete != 18 {
		t.Error("stat 111 should count as both air yards and completed air yards")
	}
	if byStat[113].YAC != 7 {
		t.Error("stat 113 should fill YAC")
	}
	if byStat[12].RushYards != 4 || byStat[12].IsCarry {
		t.Error("stat 12 counts rushing yards but is not a carry")
	}
	// Team-play air yards rollup is shared across the play's events.
	if byStat[16].TeamPlayAirYards != 18 {
		t.Errorf("team-play air yards: want 18, got %d", byStat[16].TeamPlayAirYards)
	}
}
