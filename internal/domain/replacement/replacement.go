// Package replacement finds eligible mid-season replacements for a ruled-out player.
package replacement

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/internal/domain/scoring"
)

// Branch names the eligibility rule set applied to a request.
type Branch string

const (
	// BranchNormal applies the price step and points band.
	BranchNormal Branch = "normal"
	// BranchSoleRepresentative applies when the ruled-out player is the
	// owner's only player from that country.
	BranchSoleRepresentative Branch = "sole_representative"
)

// ReasonUnrankedCountry marks an empty result caused by a ruled-out
// country missing from the ranking table.
const ReasonUnrankedCountry = "unranked_country"

// Rules holds the replacement thresholds.
type Rules struct {
	// MinBidPrice is the lowest bid price that qualifies for a replacement.
	MinBidPrice float64
	// PriceStep is the minimum price increase in the normal branch.
	PriceStep float64
	// PointsBand is the width of the allowed points window in the normal branch.
	PointsBand float64
	// SoleRepresentativeRatio scales the price floor in the sole-representative branch.
	SoleRepresentativeRatio float64
	// PriceRounding is the unit the sole-representative floor is rounded to.
	PriceRounding float64
	// RequireAvailable drops unavailable players from the pool.
	RequireAvailable bool
}

// DefaultRules returns the league's standing thresholds.
func DefaultRules() Rules {
	return Rules{
		MinBidPrice:             500,
		PriceStep:               50,
		PointsBand:              50,
		SoleRepresentativeRatio: 0.5,
		PriceRounding:           10,
		RequireAvailable:        true,
	}
}

// Candidate is a replacement option annotated with its cumulative points.
type Candidate struct {
	Player   string  `json:"player"`
	Owner    string  `json:"owner"`
	Country  string  `json:"country"`
	Role     string  `json:"role"`
	BidPrice float64 `json:"bid_price"`
	Points   float64 `json:"points"`
}

// Result is the outcome of an eligibility lookup.
type Result struct {
	Branch     Branch    `json:"branch"`
	RuledOut   Candidate `json:"ruled_out"`
	PriceFloor float64   `json:"price_floor"`
	// PriceCeiling is set only in the sole-representative branch.
	PriceCeiling *float64 `json:"price_ceiling,omitempty"`
	// PointsFloor and PointsCeiling are set only in the normal branch.
	PointsFloor   *float64    `json:"points_floor,omitempty"`
	PointsCeiling *float64    `json:"points_ceiling,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Candidates    []Candidate `json:"candidates"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRules overrides the thresholds.
func WithRules(rules Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithCountryRanking sets the ranking table used by the sole-representative branch.
func WithCountryRanking(c CountryRanking) Option {
	return func(e *Engine) {
		e.countries = c
	}
}

// Engine evaluates replacement eligibility. It holds only immutable tables.
type Engine struct {
	rules     Rules
	countries CountryRanking
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:     DefaultRules(),
		countries: NewCountryRanking(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the active thresholds.
func (e *Engine) Rules() Rules { return e.rules }

// SoleRepresentativeFloor returns the lowest price admitted in the
// sole-representative branch. Half-way values round to even.
func (e *Engine) SoleRepresentativeFloor(price float64) float64 {
	unit := e.rules.PriceRounding
	if unit <= 0 {
		return price * e.rules.SoleRepresentativeRatio
	}
	return math.RoundToEven(price*e.rules.SoleRepresentativeRatio/unit) * unit
}

// Find lists the players owner may take in place of the ruled-out player.
// snap supplies cumulative points; players absent from it count as 0.
// An empty candidate list is a valid result.
func (e *Engine) Find(r *model.Roster, snap scoring.Snapshot, owner, player string) (Result, error) {
	ruled, ok := r.Player(player)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}
	if ruled.Owner != owner {
		return Result{}, fmt.Errorf("%w: %q belongs to %q", ErrNotOnRoster, ruled.Name, ruled.Owner)
	}
	if ruled.BidPrice < e.rules.MinBidPrice {
		return Result{}, fmt.Errorf("%w: %q bid %.0f below %.0f", ErrIneligible, ruled.Name, ruled.BidPrice, e.rules.MinBidPrice)
	}

	res := Result{
		RuledOut:   toCandidate(ruled, snap),
		Candidates: []Candidate{},
	}

	held := r.PlayersOf(owner)
	sameCountry := 0
	for _, p := range held {
		if strings.EqualFold(strings.TrimSpace(p.Country), strings.TrimSpace(ruled.Country)) {
			sameCountry++
		}
	}

	var admit func(c Candidate) bool
	if sameCountry == 1 {
		res.Branch = BranchSoleRepresentative
		floor, ceiling := e.SoleRepresentativeFloor(ruled.BidPrice), ruled.BidPrice
		res.PriceFloor, res.PriceCeiling = floor, &ceiling

		ruledRank, ranked := e.countries.Rank(ruled.Country)
		if !ranked {
			res.Reason = ReasonUnrankedCountry
			return res, nil
		}
		admit = func(c Candidate) bool {
			if c.BidPrice < floor || c.BidPrice > ceiling {
				return false
			}
			rank, ok := e.countries.Rank(c.Country)
			return ok && rank >= ruledRank
		}
	} else {
		res.Branch = BranchNormal
		floor := ruled.BidPrice + e.rules.PriceStep
		lo, hi := res.RuledOut.Points, res.RuledOut.Points+e.rules.PointsBand
		res.PriceFloor, res.PointsFloor, res.PointsCeiling = floor, &lo, &hi
		admit = func(c Candidate) bool {
			return c.BidPrice >= floor && c.Points >= lo && c.Points <= hi
		}
	}

	for _, p := range r.Players() {
		if p.Owner == owner {
			continue
		}
		if e.rules.RequireAvailable && !p.Available {
			continue
		}
		c := toCandidate(p, snap)
		if admit(c) {
			res.Candidates = append(res.Candidates, c)
		}
	}
	sort.Slice(res.Candidates, func(i, j int) bool {
		if res.Candidates[i].BidPrice != res.Candidates[j].BidPrice {
			return res.Candidates[i].BidPrice < res.Candidates[j].BidPrice
		}
		return res.Candidates[i].Player < res.Candidates[j].Player
	})
	return res, nil
}

func toCandidate(p model.Player, snap scoring.Snapshot) Candidate {
	return Candidate{
		Player:   p.Name,
		Owner:    p.Owner,
		Country:  p.Country,
		Role:     p.Role,
		BidPrice: p.BidPrice,
		Points:   snap.Points(p.Name),
	}
}
