// Package scoring computes cumulative Dream XI points from a roster.
package scoring

import (
	"fmt"

	"github.com/okian/dreamxi/internal/domain/model"
)

// DayRangePolicy decides what happens to a day boundary outside the known days.
type DayRangePolicy string

const (
	// DayRangeClamp moves the boundary into [MinDay, MaxDay].
	DayRangeClamp DayRangePolicy = "clamp"
	// DayRangeReject fails with ErrInvalidDayRange.
	DayRangeReject DayRangePolicy = "reject"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithGroupStageLastDay overrides the last day scored with group stage flags.
func WithGroupStageLastDay(day int) Option {
	return func(e *Engine) {
		if day > 0 {
			e.groupStageLastDay = day
		}
	}
}

// WithMultipliers overrides the captain and vice-captain multipliers.
func WithMultipliers(captain, viceCaptain float64) Option {
	return func(e *Engine) {
		if captain > 0 {
			e.captain = captain
		}
		if viceCaptain > 0 {
			e.viceCaptain = viceCaptain
		}
	}
}

// WithFlagMode selects per-phase or legacy per-day captain flags.
func WithFlagMode(mode FlagMode) Option {
	return func(e *Engine) {
		if mode == FlagModePhase || mode == FlagModeDaily {
			e.mode = mode
		}
	}
}

// WithDayRangePolicy sets how out-of-range day boundaries are handled.
func WithDayRangePolicy(policy DayRangePolicy) Option {
	return func(e *Engine) {
		if policy == DayRangeClamp || policy == DayRangeReject {
			e.policy = policy
		}
	}
}

// WithRules replaces the ordered multiplier rules entirely.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		if len(rules) > 0 {
			e.rules = rules
		}
	}
}

// PlayerPoints is a player's cumulative points within a Snapshot.
type PlayerPoints struct {
	Player  string  `json:"player"`
	Owner   string  `json:"owner"`
	Country string  `json:"country"`
	Role    string  `json:"role"`
	Points  float64 `json:"points"`
}

// Snapshot maps every player to cumulative points up to Day.
type Snapshot struct {
	Day     int
	Entries []PlayerPoints
	index   map[string]int
}

// Points returns the cumulative points of a player, 0 when unknown.
func (s Snapshot) Points(player string) float64 {
	if i, ok := s.index[player]; ok {
		return s.Entries[i].Points
	}
	return 0
}

// Len returns the number of scored players.
func (s Snapshot) Len() int { return len(s.Entries) }

// Engine computes cumulative points. It holds no per-request state.
type Engine struct {
	groupStageLastDay int
	captain           float64
	viceCaptain       float64
	mode              FlagMode
	policy            DayRangePolicy
	rules             []Rule
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		groupStageLastDay: DefaultGroupStageLastDay,
		captain:           DefaultCaptainMultiplier,
		viceCaptain:       DefaultViceCaptainMultiplier,
		mode:              FlagModePhase,
		policy:            DayRangeClamp,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rules == nil {
		if e.mode == FlagModeDaily {
			e.rules = DailyRules(e.captain, e.viceCaptain)
		} else {
			e.rules = PhaseRules(e.captain, e.viceCaptain)
		}
	}
	return e
}

// GroupStageLastDay returns the configured phase threshold.
func (e *Engine) GroupStageLastDay() int { return e.groupStageLastDay }

// Phase returns the phase a day is scored in.
func (e *Engine) Phase(day int) model.Phase {
	return PhaseForDay(day, e.groupStageLastDay)
}

// ResolveDay applies the day-range policy to a requested boundary.
func (e *Engine) ResolveDay(r *model.Roster, uptoDay int) (int, error) {
	if r == nil || len(r.Days()) == 0 {
		return 0, fmt.Errorf("%w: roster has no days", ErrInvalidDayRange)
	}
	lo, hi := 1, r.MaxDay()
	if uptoDay >= lo && uptoDay <= hi {
		return uptoDay, nil
	}
	if e.policy == DayRangeReject {
		return 0, fmt.Errorf("%w: day %d outside [%d, %d]", ErrInvalidDayRange, uptoDay, lo, hi)
	}
	if uptoDay < lo {
		return lo, nil
	}
	return hi, nil
}

// Cumulative returns each player's points summed over days 1..uptoDay.
// Days without a score column are skipped; missing scores count as 0.
func (e *Engine) Cumulative(r *model.Roster, uptoDay int) (Snapshot, error) {
	day, err := e.ResolveDay(r, uptoDay)
	if err != nil {
		return Snapshot{}, err
	}

	players := r.Players()
	snap := Snapshot{
		Day:     day,
		Entries: make([]PlayerPoints, len(players)),
		index:   make(map[string]int, len(players)),
	}
	for i, p := range players {
		snap.Entries[i] = PlayerPoints{
			Player:  p.Name,
			Owner:   p.Owner,
			Country: p.Country,
			Role:    p.Role,
		}
		snap.index[p.Name] = i
	}

	for d := 1; d <= day; d++ {
		if !r.HasDay(d) {
			continue
		}
		phase := e.Phase(d)
		for i, p := range players {
			snap.Entries[i].Points += p.Score(d) * Multiplier(e.rules, p, d, phase)
		}
	}
	return snap, nil
}

// Empty returns a zero-point snapshot for every player, used as "before day 1".
func Empty(r *model.Roster) Snapshot {
	players := r.Players()
	snap := Snapshot{
		Entries: make([]PlayerPoints, len(players)),
		index:   make(map[string]int, len(players)),
	}
	for i, p := range players {
		snap.Entries[i] = PlayerPoints{Player: p.Name, Owner: p.Owner, Country: p.Country, Role: p.Role}
		snap.index[p.Name] = i
	}
	return snap
}
