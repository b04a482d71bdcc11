// Package trend builds per-owner cumulative point series across match days.
package trend

import (
	"sort"

	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/scoring"
)

// Point is an owner's cumulative total after a day.
type Point struct {
	Owner  string  `json:"owner"`
	Day    int     `json:"day"`
	Points float64 `json:"points"`
}

// Cumulator is the part of the scoring engine the builder needs.
type Cumulator interface {
	Cumulative(r *model.Roster, uptoDay int) (scoring.Snapshot, error)
}

// Build recomputes cumulative points from day 1 for every day in days and
// returns one row per (owner, day), ordered by day then owner. Each day is
// scored from scratch so the rows match a direct ranking of that day.
func Build(engine Cumulator, r *model.Roster, days []int) ([]Point, error) {
	ordered := append([]int(nil), days...)
	sort.Ints(ordered)

	owners := r.Owners()
	out := make([]Point, 0, len(owners)*len(ordered))
	for i, day := range ordered {
		if i > 0 && day == ordered[i-1] {
			continue
		}
		snap, err := engine.Cumulative(r, day)
		if err != nil {
			return nil, err
		}
		totals := ranking.OwnerTotals(snap)
		for _, owner := range owners {
			out = append(out, Point{Owner: owner, Day: day, Points: totals[owner]})
		}
	}
	return out, nil
}

// Series groups trend rows by owner, preserving day order.
func Series(points []Point) map[string][]Point {
	out := make(map[string][]Point)
	for _, p := range points {
		out[p.Owner] = append(out[p.Owner], p)
	}
	return out
}
