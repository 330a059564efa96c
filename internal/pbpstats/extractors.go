// Package pbpstats computes EPA/CPOE/success-rate aggregates straight
// from the canonical play table. Each extractor is an independent pure
// function; the aggregator left-merges their outputs onto the event-based
// stat table.
package pbpstats

import (
	"github.com/pable/go-nfl-stats/internal/model"
)

// KeySpec describes the grouping grain of a run. Week-level keys carry
// week and game id; player-type keys carry the participant id, team-type
// keys the offensive team.
type KeySpec struct {
	Level model.SummaryLevel
	Type  model.StatType
}

// Key builds the group key for a play given the participant resolved by
// the caller. Player-type runs group by participant, team-type runs by
// the play's offensive team.
func (s KeySpec) Key(p model.Play, participant string) model.StatKey {
	k := model.StatKey{Season: p.Season}
	if s.Level == model.SummaryWeek {
		k.Week = p.Week
		k.GameID = p.GameID
	}
	if s.Type == model.StatPlayer {
		k.Player = participant
	} else {
		k.Team = p.Posteam
	}
	return k
}

// meanAcc accumulates a null-skipping mean: nil result when no non-null
// value was seen.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v *float64) {
	if v != nil {
		m.sum += *v
		m.n++
	}
}

func (m *meanAcc) mean() *float64 {
	if m.n == 0 {
		return nil
	}
	return model.Float(m.sum / float64(m.n))
}

// sumSkip adds v to sum, skipping nulls, mirroring a skipna sum.
func sumSkip(sum float64, v *float64) float64 {
	if v == nil {
		return sum
	}
	return sum + *v
}

// Passing aggregates pass and spike plays: sum of qb_epa, mean cpoe,
// mean success.
func Passing(plays []model.Play, spec KeySpec) map[model.StatKey]model.PassingPBP {
	type acc struct {
		epa     float64
		cpoe    meanAcc
		success meanAcc
	}
	accs := make(map[model.StatKey]*acc)
	for _, p := range plays {
		if p.PlayType != "pass" && p.PlayType != "qb_spike" {
			continue
		}
		if spec.Type == model.StatPlayer && p.PasserID == "" {
			continue
		}
		k := spec.Key(p, p.PasserID)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.epa = sumSkip(a.epa, p.QBEPA)
		a.cpoe.add(p.CPOE)
		s := float64(p.Success)
		a.success.add(&s)
	}

	out := make(map[model.StatKey]model.PassingPBP, len(accs))
	for k, a := range accs {
		out[k] = model.PassingPBP{
			PassingEPA:         a.epa,
			PassingCPOE:        a.cpoe.mean(),
			PassingSuccessRate: a.success.mean(),
		}
	}
	return out
}

// Rushing aggregates run and kneel plays: sum of epa.
func Rushing(plays []model.Play, spec KeySpec) map[model.StatKey]model.RushingPBP {
	accs := make(map[model.StatKey]float64)
	seen := make(map[model.StatKey]bool)
	for _, p := range plays {
		if p.PlayType != "run" && p.PlayType != "qb_kneel" {
			continue
		}
		if spec.Type == model.StatPlayer && p.RusherID == "" {
			continue
		}
		k := spec.Key(p, p.RusherID)
		accs[k] = sumSkip(accs[k], p.EPA)
		seen[k] = true
	}
	out := make(map[model.StatKey]model.RushingPBP, len(seen))
	for k := range seen {
		out[k] = model.RushingPBP{RushingEPA: accs[k]}
	}
	return out
}

// Receiving aggregates plays with a targeted receiver: sum of epa.
func Receiving(plays []model.Play, spec KeySpec) map[model.StatKey]model.ReceivingPBP {
	accs := make(map[model.StatKey]float64)
	seen := make(map[model.StatKey]bool)
	for _, p := range plays {
		if p.ReceiverID == "" {
			continue
		}
		k := spec.Key(p, p.ReceiverID)
		accs[k] = sumSkip(accs[k], p.EPA)
		seen[k] = true
	}
	out := make(map[model.StatKey]model.ReceivingPBP, len(seen))
	for k := range seen {
		out[k] = model.ReceivingPBP{ReceivingEPA: accs[k]}
	}
	return out
}

// Dropback aggregates all dropbacks. On a scramble the credited player is
// the rusher, otherwise the passer.
func Dropback(plays []model.Play, spec KeySpec) map[model.StatKey]model.DropbackPBP {
	type acc struct {
		n       int
		epa     float64
		perPlay meanAcc
		success meanAcc
	}
	accs := make(map[model.StatKey]*acc)
	for _, p := range plays {
		if p.IsDropback != 1 {
			continue
		}
		player := p.PasserID
		if p.QBScramble == 1 {
			player = p.RusherID
		}
		if spec.Type == model.StatPlayer && player == "" {
			continue
		}
		k := spec.Key(p, player)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.n++
		a.epa = sumSkip(a.epa, p.QBEPA)
		a.perPlay.add(p.QBEPA)
		s := float64(p.Success)
		a.success.add(&s)
	}

	out := make(map[model.StatKey]model.DropbackPBP, len(accs))
	for k, a := range accs {
		out[k] = model.DropbackPBP{
			Dropbacks:           a.n,
			DropbackEPA:         a.epa,
			DropbackSuccessRate: a.success.mean(),
			EPAPerDropback:      a.perPlay.mean(),
		}
	}
	return out
}

// Scramble aggregates scramble plays. epa_per_scramble deliberately does
// NOT skip nulls: one missing qb_epa nulls the whole mean, unlike every
// sibling mean in this package.
func Scramble(plays []model.Play, spec KeySpec) map[model.StatKey]model.ScramblePBP {
	type acc struct {
		n       int
		epa     float64
		rawSum  float64
		anyNull bool
		success meanAcc
	}
	accs := make(map[model.StatKey]*acc)
	for _, p := range plays {
		if p.QBScramble != 1 {
			continue
		}
		if spec.Type == model.StatPlayer && p.RusherID == "" {
			continue
		}
		k := spec.Key(p, p.RusherID)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.n++
		a.epa = sumSkip(a.epa, p.QBEPA)
		if p.QBEPA == nil {
			a.anyNull = true
		} else {
			a.rawSum += *p.QBEPA
		}
		s := float64(p.Success)
		a.success.add(&s)
	}

	out := make(map[model.StatKey]model.ScramblePBP, len(accs))
	for k, a := range accs {
		sp := model.ScramblePBP{
			Scrambles:           a.n,
			ScrambleEPA:         a.epa,
			ScrambleSuccessRate: a.success.mean(),
		}
		if !a.anyNull && a.n > 0 {
			sp.EPAPerScramble = model.Float(a.rawSum / float64(a.n))
		}
		out[k] = sp
	}
	return out
}
