package ranking_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// snapshotOf scores a roster where every owner holds one player with the
// given day-1 and day-2 points.
func snapshotOf(day int, owners map[string][2]float64) scoring.Snapshot {
	var players []model.Player
	for owner, pts := range owners {
		players = append(players, model.Player{
			Name:   owner + "-player",
			Owner:  owner,
			Role:   "Batter",
			Scores: map[int]float64{1: pts[0], 2: pts[1]},
		})
	}
	r, err := model.NewRoster(players, []int{1, 2})
	if err != nil {
		panic(err)
	}
	snap, err := scoring.NewEngine().Cumulative(r, day)
	if err != nil {
		panic(err)
	}
	return snap
}

func byOwner(rows []ranking.Standing) map[string]ranking.Standing {
	out := make(map[string]ranking.Standing, len(rows))
	for _, r := range rows {
		out[r.Owner] = r
	}
	return out
}

func TestRank_CompetitionRanking(t *testing.T) {
	Convey("Given owners with tied totals", t, func() {
		snap := snapshotOf(1, map[string][2]float64{
			"Asif":    {100, 0},
			"Lalit":   {100, 0},
			"Johnson": {80, 0},
			"Mahesh":  {80, 0},
			"Pritam":  {50, 0},
		})

		Convey("When ranking", func() {
			rows, err := ranking.Rank(snap, nil)
			So(err, ShouldBeNil)
			got := byOwner(rows)

			Convey("Then ties share the lower rank and the next rank skips", func() {
				So(got["Asif"].Rank, ShouldEqual, 1)
				So(got["Lalit"].Rank, ShouldEqual, 1)
				So(got["Johnson"].Rank, ShouldEqual, 3)
				So(got["Mahesh"].Rank, ShouldEqual, 3)
				So(got["Pritam"].Rank, ShouldEqual, 5)
			})

			Convey("And rows are ordered by rank then owner name", func() {
				So(rows[0].Owner, ShouldEqual, "Asif")
				So(rows[1].Owner, ShouldEqual, "Lalit")
				So(rows[2].Owner, ShouldEqual, "Johnson")
			})

			Convey("And rank order agrees with points for every pair", func() {
				for _, a := range rows {
					for _, b := range rows {
						if a.TotalPoints == b.TotalPoints {
							So(a.Rank, ShouldEqual, b.Rank)
						}
						if a.TotalPoints > b.TotalPoints {
							So(a.Rank, ShouldBeLessThan, b.Rank)
						}
					}
				}
			})

			Convey("And deltas follow the closest higher rank and the leader", func() {
				So(rows[0].NextRankDelta, ShouldBeNil)
				So(rows[0].FirstRankDelta, ShouldBeNil)
				So(got["Lalit"].NextRankDelta, ShouldBeNil)
				So(*got["Lalit"].FirstRankDelta, ShouldEqual, 0)
				So(*got["Johnson"].NextRankDelta, ShouldEqual, -20)
				So(*got["Mahesh"].NextRankDelta, ShouldEqual, -20)
				So(*got["Pritam"].NextRankDelta, ShouldEqual, -30)
				So(*got["Pritam"].FirstRankDelta, ShouldEqual, -50)
			})

			Convey("And day-1 movement is zero for everyone", func() {
				for _, r := range rows {
					So(r.Movement, ShouldEqual, 0)
					So(r.MovementLabel, ShouldEqual, "–")
				}
			})
		})
	})
}

func TestRank_Movement(t *testing.T) {
	Convey("Given standings on two consecutive days", t, func() {
		owners := map[string][2]float64{
			"Asif":    {50, 0},
			"Lalit":   {40, 30},
			"Johnson": {30, 5},
		}
		prev := snapshotOf(1, owners)
		cur := snapshotOf(2, owners)

		Convey("When ranking day 2 against day 1", func() {
			rows, err := ranking.Rank(cur, &prev)
			So(err, ShouldBeNil)
			got := byOwner(rows)

			Convey("Then an owner that passed the leader gains one", func() {
				So(got["Lalit"].Movement, ShouldEqual, 1)
				So(got["Lalit"].MovementLabel, ShouldEqual, "▲1")
			})

			Convey("And the overtaken owner loses one", func() {
				So(got["Asif"].Movement, ShouldEqual, -1)
				So(got["Asif"].MovementLabel, ShouldEqual, "▼1")
			})

			Convey("And an owner that kept its place is unchanged", func() {
				So(got["Johnson"].Movement, ShouldEqual, 0)
			})
		})
	})

	Convey("Given ties before or after a day", t, func() {
		prev := map[string]float64{"A": 10, "B": 10, "C": 5}
		cur := map[string]float64{"A": 20, "B": 15, "C": 15}

		Convey("Then ties are neither overtakes nor losses", func() {
			m := ranking.Movement(prev, cur)
			So(m["A"], ShouldEqual, 0)
			So(m["B"], ShouldEqual, 0)
			So(m["C"], ShouldEqual, 0)
		})
	})

	Convey("Movement sums to zero across the league", t, func() {
		prev := map[string]float64{"A": 1, "B": 2, "C": 3, "D": 4}
		cur := map[string]float64{"A": 9, "B": 3, "C": 8, "D": 5}
		total := 0
		for _, v := range ranking.Movement(prev, cur) {
			total += v
		}
		So(total, ShouldEqual, 0)
	})
}

func TestRank_Empty(t *testing.T) {
	Convey("Given an empty snapshot", t, func() {
		_, err := ranking.Rank(scoring.Snapshot{Day: 3}, nil)
		Convey("Then ranking reports an empty roster", func() {
			So(errors.Is(err, ranking.ErrEmptyRoster), ShouldBeTrue)
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a scored roster", t, func() {
		r, err := model.NewRoster([]model.Player{
			{Name: "Jos Buttler", Owner: "Willy", Role: "WK", Scores: map[int]float64{1: 60}},
			{Name: "Jasprit Bumrah", Owner: "Willy", Role: "Bowler", Scores: map[int]float64{1: 20}},
			{Name: "Rashid Khan", Owner: "Lalit", Role: "Bowler", Scores: map[int]float64{1: 40}},
		}, []int{1})
		So(err, ShouldBeNil)
		snap, err := scoring.NewEngine().Cumulative(r, 1)
		So(err, ShouldBeNil)
		rows, err := ranking.Rank(snap, nil)
		So(err, ShouldBeNil)

		Convey("When summarizing", func() {
			sum, err := ranking.Summarize(snap, rows)
			So(err, ShouldBeNil)

			Convey("Then headline numbers are derived from standings", func() {
				So(sum.TotalTeams, ShouldEqual, 2)
				So(sum.TopTeam, ShouldEqual, "Willy")
				So(sum.TotalPoints, ShouldEqual, 120)
				So(sum.MeanPoints, ShouldEqual, 60)
				So(math.Abs(sum.StdDevPoints-math.Sqrt(800)), ShouldBeLessThan, 1e-9)
			})

			Convey("And the top player and role breakdown are reported", func() {
				So(sum.TopPlayer.Player, ShouldEqual, "Jos Buttler")
				So(sum.TopPlayer.Points, ShouldEqual, 60)
				So(sum.ByRole[0], ShouldResemble, ranking.RoleContribution{Role: "Bowler", Points: 60})
				So(sum.ByRole[1], ShouldResemble, ranking.RoleContribution{Role: "WK", Points: 60})
			})

			Convey("And each owner's players are listed best first", func() {
				So(rows[0].Players[0].Player, ShouldEqual, "Jos Buttler")
				So(rows[0].Players[1].Player, ShouldEqual, "Jasprit Bumrah")
			})
		})

		Convey("When summarizing no standings", func() {
			_, err := ranking.Summarize(snap, nil)
			So(errors.Is(err, ranking.ErrEmptyRoster), ShouldBeTrue)
		})
	})
}
