// Package ranking orders league owners by cumulative points.
package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/dreamxi/internal/domain/scoring"
)

// Standing is one owner's row in the league table.
type Standing struct {
	Rank        int     `json:"rank"`
	Owner       string  `json:"owner"`
	TotalPoints float64 `json:"total_points"`

	// NextRankDelta is the gap to the closest owner ranked above; nil at rank 1.
	NextRankDelta *float64 `json:"next_rank_delta"`
	// FirstRankDelta is the gap to the leader; nil for the leader row.
	FirstRankDelta *float64 `json:"first_rank_delta"`

	Movement      int    `json:"movement"`
	MovementLabel string `json:"movement_label"`

	Players []scoring.PlayerPoints `json:"players"`
}

// OwnerTotals sums each owner's player points.
func OwnerTotals(s scoring.Snapshot) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range s.Entries {
		totals[e.Owner] += e.Points
	}
	return totals
}

// Rank builds the standings for cur. prev is the snapshot one day earlier;
// pass nil on day 1, which leaves every movement at 0.
func Rank(cur scoring.Snapshot, prev *scoring.Snapshot) ([]Standing, error) {
	totals := OwnerTotals(cur)
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: snapshot for day %d has no players", ErrEmptyRoster, cur.Day)
	}

	players := make(map[string][]scoring.PlayerPoints, len(totals))
	for _, e := range cur.Entries {
		players[e.Owner] = append(players[e.Owner], e)
	}

	standings := make([]Standing, 0, len(totals))
	for owner, total := range totals {
		ps := players[owner]
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Points > ps[j].Points })
		standings = append(standings, Standing{Owner: owner, TotalPoints: total, Players: ps})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].Owner < standings[j].Owner
	})

	assignRanks(standings)
	assignDeltas(standings)

	var movement map[string]int
	if prev != nil {
		movement = Movement(OwnerTotals(*prev), totals)
	}
	for i := range standings {
		standings[i].Movement = movement[standings[i].Owner]
		standings[i].MovementLabel = MovementLabel(standings[i].Movement)
	}
	return standings, nil
}

// assignRanks applies competition ranking to rows sorted by total desc:
// tied owners share the lower-numbered rank and the next distinct total
// resumes at its position.
func assignRanks(rows []Standing) {
	for i := range rows {
		if i > 0 && rows[i].TotalPoints == rows[i-1].TotalPoints {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
}

func assignDeltas(rows []Standing) {
	top := rows[0].TotalPoints
	higher := -1 // index of the last row of the closest strictly-higher rank group
	for i := range rows {
		if i > 0 && rows[i].Rank != rows[i-1].Rank {
			higher = i - 1
		}
		if i > 0 {
			d := rows[i].TotalPoints - top
			rows[i].FirstRankDelta = &d
		}
		if higher >= 0 {
			d := rows[i].TotalPoints - rows[higher].TotalPoints
			rows[i].NextRankDelta = &d
		}
	}
}

// Movement counts completed overtakes between two days for every owner in
// cur: +1 for each owner it was behind in prev and is ahead of in cur, -1
// for each owner it was ahead of and is now behind. Owners absent from prev
// start at 0.
func Movement(prev, cur map[string]float64) map[string]int {
	out := make(map[string]int, len(cur))
	for a, aNow := range cur {
		score := 0
		for b, bNow := range cur {
			if a == b {
				continue
			}
			aThen, bThen := prev[a], prev[b]
			switch {
			case aThen < bThen && aNow > bNow:
				score++
			case aThen > bThen && aNow < bNow:
				score--
			}
		}
		out[a] = score
	}
	return out
}

// MovementLabel renders a movement score for display.
func MovementLabel(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("▲%d", n)
	case n < 0:
		return fmt.Sprintf("▼%d", -n)
	default:
		return "–"
	}
}
