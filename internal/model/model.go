// Package model holds the value types that flow through the stat pipeline:
// raw feed rows, canonical plays, enriched stat events, and aggregated
// stat rows. All of them are immutable once produced; each stage returns
// new values instead of mutating its input.
package model

// Row is one raw feed record keyed by column name, as decoded from a
// nflverse CSV asset before cleaning.
type Row map[string]string

// SummaryLevel selects the grain of an aggregation run.
type SummaryLevel string

// StatType selects the grouping entity of an aggregation run.
type StatType string

// SeasonType filters season-level summaries to a slice of the schedule.
type SeasonType string

const (
	SummarySeason SummaryLevel = "season"
	SummaryWeek   SummaryLevel = "week"

	StatPlayer StatType = "player"
	StatTeam   StatType = "team"

	SeasonREG  SeasonType = "REG"
	SeasonPOST SeasonType = "POST"
	SeasonALL  SeasonType = "ALL"
)

// Play is one canonical play-by-play record after cleaning. Nullable
// numeric fields use pointers; a nil pointer means the upstream feed had
// no value and the cleaner's policy is to keep it that way.
type Play struct {
	Season     int
	Week       int
	GameID     string
	PlayID     int
	SeasonType string

	HomeTeam string
	AwayTeam string
	Posteam  string
	Defteam  string

	Down              *int
	Ydstogo           int
	Yardline100       float64
	Qtr               int
	ScoreDifferential float64

	PlayType   string // empty when the feed had none
	QBDropback int
	QBScramble int
	QBKneel    int
	QBSpike    int
	Special    int

	EPA     *float64
	QBEPA   *float64
	CPOE    *float64
	Success int
	WP      *float64
	WPA     *float64
	Xpass   *float64

	PasserID   string
	RusherID   string
	ReceiverID string

	// Indicators derived during cleaning.
	IsTrailing   int
	IsLeading    int
	IsRedZone    int
	IsEarlyDown  int
	IsLateDown   int
	IsLikelyPass int
	IsDropback   int
	IsSuccess    int
}

// TeamPlayerID is the sentinel player id for team-level stat events that
// are not tied to an individual.
const TeamPlayerID = "TEAM"

// StatEvent is one discrete recorded statistic on a play, pre-enrichment.
type StatEvent struct {
	Season     int
	Week       int
	GameID     string
	PlayID     int
	PlayerID   string // TeamPlayerID when the feed had no player
	PlayerName string
	Team       string
	StatID     int
	Yards      int
}

// EnrichedEvent is a StatEvent extended with per-event flags, joined
// play context, rollup denominators, and category-partitioned yardage.
type EnrichedEvent struct {
	StatEvent

	// Play context joined from the canonical play table.
	OffTeam    string
	DefTeam    string
	Special    int
	SeasonType string

	// Rollup values shared by every event on the same play.
	TeamPlayAirYards int
	TeamGameTargets  int
	TeamGameAirYards int

	// Flags derived from the event's own stat id.
	IsComp    bool
	IsAtt     bool
	IsPassTD  bool
	IsInt     bool
	IsSack    bool
	IsCarry   bool
	IsRushTD  bool
	IsRec     bool
	IsTarget  bool
	IsRecTD   bool
	IsYAC     bool
	IsPass2Pt bool
	IsRush2Pt bool
	IsRec2Pt  bool
	QBTarget  bool

	// Composite flags that also consult co-occurring codes on the play.
	IsSackFumble     bool
	IsSackFumbleLost bool
	IsRushFumble     bool
	IsRushFumbleLost bool
	IsRecFumble      bool
	IsRecFumbleLost  bool
	IsRushFirstDown  bool
	IsPassFirstDown  bool
	IsRecFirstDown   bool
	IsSpecialTD      bool

	// Yardage partitioned by owning flag; zero unless the flag is true.
	PassYards        int
	SackYards        int
	AirYards         int
	AirYardsComplete int
	RushYards        int
	RecYards         int
	YAC              int
}

// StatKey is the grouping key for aggregation. Fields that are not part
// of the requested grain stay at their zero value, so keys are comparable
// across rows of the same run.
type StatKey struct {
	Season int
	Week   int
	GameID string
	Player string
	Team   string
}

// Less orders keys by season, week, game, player, team ascending.
func (k StatKey) Less(o StatKey) bool {
	if k.Season != o.Season {
		return k.Season < o.Season
	}
	if k.Week != o.Week {
		return k.Week < o.Week
	}
	if k.GameID != o.GameID {
		return k.GameID < o.GameID
	}
	if k.Player != o.Player {
		return k.Player < o.Player
	}
	return k.Team < o.Team
}

// Extractor outputs, one struct per play-by-play derived-stat family.
// Mean-style fields are pointers: nil means no non-null input existed.

type PassingPBP struct {
	PassingEPA         float64
	PassingCPOE        *float64
	PassingSuccessRate *float64
}

type RushingPBP struct {
	RushingEPA float64
}

type ReceivingPBP struct {
	ReceivingEPA float64
}

type DropbackPBP struct {
	Dropbacks           int
	DropbackEPA         float64
	DropbackSuccessRate *float64
	EPAPerDropback      *float64
}

type ScramblePBP struct {
	Scrambles           int
	ScrambleEPA         float64
	EPAPerScramble      *float64
	ScrambleSuccessRate *float64
}

// StatRow is one row of the final aggregated stat table. Ratio metrics
// are pointers and stay nil when their denominator is zero; extractor
// columns are pointers and stay nil when no extractor row matched the key.
type StatRow struct {
	Season       int
	Week         int
	GameID       string
	PlayerID     string
	PlayerName   string
	Team         string
	OpponentTeam string
	SeasonType   string
	Games        int

	Completions            int
	Attempts               int
	PassingYards           int
	PassingTDs             int
	Interceptions          int
	Sacks                  int
	SackYards              int
	SackFumbles            int
	SackFumblesLost        int
	PassingAirYards        int
	PassingYardsAfterCatch int
	PassingFirstDowns      int
	Passing2PtConversions  int
	QBTargets              int
	QBADOT                 *float64
	PACR                   *float64

	PassingEPA          *float64
	PassingCPOE         *float64
	PassingSuccessRate  *float64
	Dropbacks           *int
	DropbackEPA         *float64
	DropbackSuccessRate *float64
	EPAPerDropback      *float64
	Scrambles           *int
	ScrambleEPA         *float64
	EPAPerScramble      *float64
	ScrambleSuccessRate *float64

	Carries               int
	RushingYards          int
	RushingTDs            int
	RushingFumbles        int
	RushingFumblesLost    int
	RushingFirstDowns     int
	Rushing2PtConversions int
	RushingEPA            *float64

	Receptions               int
	Targets                  int
	ReceivingYards           int
	ReceivingTDs             int
	ReceivingFumbles         int
	ReceivingFumblesLost     int
	ReceivingAirYards        int
	ReceivingYardsAfterCatch int
	ReceivingFirstDowns      int
	Receiving2PtConversions  int
	ReceivingEPA             *float64
	RACR                     *float64
	ReceiverADOT             *float64
	TargetShare              *float64
	AirYardsShare            *float64
	WOPR                     *float64

	SpecialTeamsTDs int
}

// Float returns a pointer to v, for building nullable columns in place.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
