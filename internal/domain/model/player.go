// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"
)

// Phase identifies the scoring regime a match day belongs to.
type Phase int

const (
	// GroupStage covers the opening days of the tournament.
	GroupStage Phase = iota
	// KnockoutStage covers the super stage and knockouts.
	KnockoutStage
)

// String returns the phase name used in logs and API payloads.
func (p Phase) String() string {
	switch p {
	case GroupStage:
		return "group"
	case KnockoutStage:
		return "knockout"
	default:
		return "unknown"
	}
}

// Flags holds the captain designations of a player for one phase or day.
type Flags struct {
	Captain     bool
	ViceCaptain bool
}

// Player is a single roster row.
type Player struct {
	Name      string
	Owner     string
	Country   string
	Role      string
	BidPrice  float64
	Available bool

	// Scores holds raw points per match day. Missing days are absent.
	Scores map[int]float64

	// PhaseFlags holds captain/VC designations per tournament phase.
	PhaseFlags map[Phase]Flags

	// DailyFlags holds the legacy per-day captain/VC columns (c_dayN, vc_dayN).
	DailyFlags map[int]Flags
}

// Score returns the raw score recorded for day, or 0 when none was recorded.
func (p Player) Score(day int) float64 {
	return p.Scores[day]
}

// FlagsFor returns the designations for phase.
func (p Player) FlagsFor(phase Phase) Flags {
	return p.PhaseFlags[phase]
}

// FlagsOn returns the legacy per-day designations for day.
func (p Player) FlagsOn(day int) Flags {
	return p.DailyFlags[day]
}

// CoerceScore converts a raw score cell to a number. Anything that does not
// parse as a finite number counts as 0.
func CoerceScore(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseFlag interprets a boolean cell. Accepts 1/true/yes/y/x, case-insensitive.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "1.0", "true", "yes", "y", "x":
		return true
	default:
		return false
	}
}
