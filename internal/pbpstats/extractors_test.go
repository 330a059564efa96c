package pbpstats

import (
	"testing"

	"github.com/pable/go-nfl-stats/internal/model"
)

func play(week int, gameID, playType, passer, rusher, receiver string) model.Play {
	return model.Play{
		Season:     2023,
		Week:       week,
		GameID:     gameID,
		Posteam:    "KC",
		PlayType:   playType,
		PasserID:   passer,
		RusherID:   rusher,
		ReceiverID: receiver,
	}
}

func withEPA(p model.Play, epa, qbEPA float64, success int) model.Play {
	p.EPA = model.Float(epa)
	p.QBEPA = model.Float(qbEPA)
	p.Success = success
	return p
}

var weekPlayer = KeySpec{Level: model.SummaryWeek, Type: model.StatPlayer}
var seasonPlayer = KeySpec{Level: model.SummarySeason, Type: model.StatPlayer}
var weekTeam = KeySpec{Level: model.SummaryWeek, Type: model.StatTeam}

func TestPassingSumsAndMeans(t *testing.T) {
	p1 := withEPA(play(1, "g1", "pass", "QB1", "", "WR1"), 0.5, 0.5, 1)
	p1.CPOE = model.Float(10)
	p2 := withEPA(play(1, "g1", "pass", "QB1", "", "WR2"), -0.25, -0.25, 0)
	p2.CPOE = model.Float(4)
	spike := withEPA(play(1, "g1", "qb_spike", "QB1", "", ""), -0.75, -0.75, 0)
	run := withEPA(play(1, "g1", "run", "", "RB1", ""), 2.0, 2.0, 1)

	got := Passing([]model.Play{p1, p2, spike, run}, weekPlayer)
	k := model.StatKey{Season: 2023, Week: 1, GameID: "g1", Player: "QB1"}
	r, ok := got[k]
	if !ok {
		t.Fatalf("missing key %+v", k)
	}
	if r.PassingEPA != -0.5 {
		t.Errorf("passing epa: got %v", r.PassingEPA)
	}
	// Spike has no cpoe; the mean skips it.
	if r.PassingCPOE == nil || *r.PassingCPOE != 7 {
		t.Errorf("cpoe mean: got %v", r.PassingCPOE)
	}
	if r.PassingSuccessRate == nil || *r.PassingSuccessRate != 1.0/3 {
		t.Errorf("success rate: got %v", r.PassingSuccessRate)
	}
	if len(got) != 1 {
		t.Errorf("run play leaked into passing groups: %d keys", len(got))
	}
}

func TestPassingSkipsEmptyPasserForPlayerGrain(t *testing.T) {
	anon := withEPA(play(1, "g1", "pass", "", "", ""), 0.5, 0.5, 1)
	if got := Passing([]model.Play{anon}, weekPlayer); len(got) != 0 {
		t.Errorf("empty passer id should not form a player group, got %d", len(got))
	}
	// Team grain keeps the play.
	got := Passing([]model.Play{anon}, weekTeam)
	k := model.StatKey{Season: 2023, Week: 1, GameID: "g1", Team: "KC"}
	if _, ok := got[k]; !ok {
		t.Error("team grain should keep passer-less pass plays")
	}
}

func TestSeasonKeyCollapsesWeeks(t *testing.T) {
	p1 := withEPA(play(1, "g1", "run", "", "RB1", ""), 1.0, 1.0, 1)
	p2 := withEPA(play(2, "g2", "run", "", "RB1", ""), 0.5, 0.5, 0)
	kneel := withEPA(play(2, "g2", "qb_kneel", "", "RB1", ""), -0.25, -0.25, 0)

	got := Rushing([]model.Play{p1, p2, kneel}, seasonPlayer)
	k := model.StatKey{Season: 2023, Player: "RB1"}
	r, ok := got[k]
	if !ok {
		t.Fatalf("season key missing, got %d keys", len(got))
	}
	if r.RushingEPA != 1.25 {
		t.Errorf("season rushing epa: got %v", r.RushingEPA)
	}
}

func TestReceivingGroupsByReceiver(t *testing.T) {
	p := withEPA(play(1, "g1", "pass", "QB1", "", "WR1"), 0.7, 0.7, 1)
	noTarget := withEPA(play(1, "g1", "pass", "QB1", "", ""), -0.1, -0.1, 0)

	got := Receiving([]model.Play{p, noTarget}, weekPlayer)
	k := model.StatKey{Season: 2023, Week: 1, GameID: "g1", Player: "WR1"}
	r, ok := got[k]
	if !ok || len(got) != 1 {
		t.Fatalf("expected exactly the WR1 group, got %d keys", len(got))
	}
	if r.ReceivingEPA != 0.7 {
		t.Errorf("receiving epa: got %v", r.ReceivingEPA)
	}
}

func TestDropbackCreditsScramblerAsRusher(t *testing.T) {
	pass := withEPA(play(1, "g1", "pass", "QB1", "", "WR1"), 0.5, 0.5, 1)
	pass.IsDropback = 1
	scramble := withEPA(play(1, "g1", "run", "", "QB1", ""), 0.75, 0.75, 1)
	scramble.IsDropback = 1
	scramble.QBScramble = 1
	plainRun := withEPA(play(1, "g1", "run", "", "RB1", ""), 0.2, 0.2, 1)

	got := Dropback([]model.Play{pass, scramble, plainRun}, weekPlayer)
	k := model.StatKey{Season: 2023, Week: 1, GameID: "g1", Player: "QB1"}
	r, ok := got[k]
	if !ok || len(got) != 1 {
		t.Fatalf("expected exactly the QB1 group, got %d keys", len(got))
	}
	if r.Dropbacks != 2 {
		t.Errorf("dropbacks: want 2, got %d", r.Dropbacks)
	}
	if r.DropbackEPA != 1.25 {
		t.Errorf("dropback epa: got %v", r.DropbackEPA)
	}
	if r.EPAPerDropback == nil || *r.EPAPerDropback != 0.625 {
		t.Errorf("epa per dropback: got %v", r.EPAPerDropback)
	}
	if r.DropbackSuccessRate == nil || *r.DropbackSuccessRate != 1 {
		t.Errorf("dropback success rate: got %v", r.DropbackSuccessRate)
	}
}

func TestScramblePerPlayMeanNullsOnAnyMissingEPA(t *testing.T) {
	s1 := withEPA(play(1, "g1", "run", "", "QB1", ""), 0.5, 0.5, 1)
	s1.QBScramble = 1
	s2 := play(1, "g1", "run", "", "QB1", "")
	s2.QBScramble = 1 // qb_epa left nil

	got := Scramble([]model.Play{s1, s2}, weekPlayer)
	k := model.StatKey{Season: 2023, Week: 1, GameID: "g1", Player: "QB1"}
	r := got[k]
	if r.Scrambles != 2 {
		t.Errorf("scrambles: want 2, got %d", r.Scrambles)
	}
	if r.ScrambleEPA != 0.5 {
		t.Errorf("scramble epa sum should skip the null: got %v", r.ScrambleEPA)
	}
	if r.EPAPerScramble != nil {
		t.Errorf("per-scramble mean must be null when any qb_epa is missing, got %v", *r.EPAPerScramble)
	}

	// With complete inputs the mean is defined.
	s2.QBEPA = model.Float(0.25)
	r = Scramble([]model.Play{s1, s2}, weekPlayer)[k]
	if r.EPAPerScramble == nil || *r.EPAPerScramble != 0.375 {
		t.Errorf("per-scramble mean: got %v", r.EPAPerScramble)
	}
}
