package scoring

import "github.com/okian/dreamxi/internal/domain/model"

// Default multipliers.
const (
	DefaultCaptainMultiplier     = 2.0
	DefaultViceCaptainMultiplier = 1.5
	baseMultiplier               = 1.0
)

// DefaultGroupStageLastDay is the last day scored with group stage flags.
const DefaultGroupStageLastDay = 14

// PhaseForDay maps a match day to its scoring phase.
func PhaseForDay(day, groupStageLastDay int) model.Phase {
	if day <= groupStageLastDay {
		return model.GroupStage
	}
	return model.KnockoutStage
}

// Rule sets the multiplier when Match holds for a player on a day.
type Rule struct {
	Name       string
	Multiplier float64
	Match      func(p model.Player, day int, phase model.Phase) bool
}

// FlagMode selects which captain columns drive the multipliers.
type FlagMode string

const (
	// FlagModePhase uses the group/knockout captain flags.
	FlagModePhase FlagMode = "phase"
	// FlagModeDaily uses the legacy c_dayN / vc_dayN columns.
	FlagModeDaily FlagMode = "daily"
)

// PhaseRules returns the ordered rules for per-phase flags. Rules are
// applied in order and every match overwrites, so the captain rule wins
// over vice-captain on a row that sets both.
func PhaseRules(captain, viceCaptain float64) []Rule {
	return []Rule{
		{
			Name:       "vice_captain",
			Multiplier: viceCaptain,
			Match: func(p model.Player, _ int, phase model.Phase) bool {
				return p.FlagsFor(phase).ViceCaptain
			},
		},
		{
			Name:       "captain",
			Multiplier: captain,
			Match: func(p model.Player, _ int, phase model.Phase) bool {
				return p.FlagsFor(phase).Captain
			},
		},
	}
}

// DailyRules returns the ordered rules for the legacy per-day columns.
// The legacy sheet applied vice-captain last, so it wins on conflicts.
func DailyRules(captain, viceCaptain float64) []Rule {
	return []Rule{
		{
			Name:       "captain",
			Multiplier: captain,
			Match: func(p model.Player, day int, _ model.Phase) bool {
				return p.FlagsOn(day).Captain
			},
		},
		{
			Name:       "vice_captain",
			Multiplier: viceCaptain,
			Match: func(p model.Player, day int, _ model.Phase) bool {
				return p.FlagsOn(day).ViceCaptain
			},
		},
	}
}

// Multiplier applies rules in order; the last matching rule wins.
func Multiplier(rules []Rule, p model.Player, day int, phase model.Phase) float64 {
	m := baseMultiplier
	for _, r := range rules {
		if r.Match(p, day, phase) {
			m = r.Multiplier
		}
	}
	return m
}
