package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/dreamxi/internal/domain/ranking"
	types "github.com/okian/dreamxi/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLeaderboard(t *testing.T) {
	Convey("Given a Leaderboard", t, func() {
		Convey("When it has no standings", func() {
			lb := types.Leaderboard{Day: 3}
			_, ok := lb.Leader()

			Convey("Then there is no leader", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When it has standings", func() {
			lb := types.Leaderboard{
				Day:   3,
				Phase: "group",
				Standings: []ranking.Standing{
					{Rank: 1, Owner: "Asif", TotalPoints: 120},
					{Rank: 2, Owner: "Lalit", TotalPoints: 80},
				},
			}
			leader, ok := lb.Leader()

			Convey("Then the first row leads", func() {
				So(ok, ShouldBeTrue)
				So(leader.Owner, ShouldEqual, "Asif")
			})

			Convey("Then it serializes with snake case keys", func() {
				b, err := json.Marshal(lb)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"day":3`)
				So(string(b), ShouldContainSubstring, `"total_points":120`)
				So(string(b), ShouldContainSubstring, `"next_rank_delta":null`)
			})
		})
	})
}

func TestCaptainPick(t *testing.T) {
	Convey("Given a CaptainPick", t, func() {
		p := types.CaptainPick{Captain: "Jos Buttler", ViceCaptain: "Jasprit Bumrah"}

		Convey("Then it serializes both names", func() {
			b, err := json.Marshal(p)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"captain":"Jos Buttler","vice_captain":"Jasprit Bumrah"}`)
		})
	})
}
