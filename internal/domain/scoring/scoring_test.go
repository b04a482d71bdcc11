package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/dreamxi/internal/domain/model"
	scoring "github.com/okian/dreamxi/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func allDays(n int) []int {
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func mustRoster(players []model.Player, days []int) *model.Roster {
	r, err := model.NewRoster(players, days)
	if err != nil {
		panic(err)
	}
	return r
}

func TestPhaseForDay(t *testing.T) {
	Convey("Given the default group stage threshold", t, func() {
		So(scoring.PhaseForDay(1, 14), ShouldEqual, model.GroupStage)
		So(scoring.PhaseForDay(14, 14), ShouldEqual, model.GroupStage)
		So(scoring.PhaseForDay(15, 14), ShouldEqual, model.KnockoutStage)
		So(scoring.PhaseForDay(10, 9), ShouldEqual, model.KnockoutStage)
	})
}

func TestMultiplier(t *testing.T) {
	Convey("Given the default phase rules", t, func() {
		rules := scoring.PhaseRules(2.0, 1.5)

		Convey("When a player carries no flags", func() {
			p := model.Player{Name: "A"}
			So(scoring.Multiplier(rules, p, 1, model.GroupStage), ShouldEqual, 1.0)
		})

		Convey("When a player is vice-captain", func() {
			p := model.Player{Name: "A", PhaseFlags: map[model.Phase]model.Flags{model.GroupStage: {ViceCaptain: true}}}
			So(scoring.Multiplier(rules, p, 1, model.GroupStage), ShouldEqual, 1.5)
		})

		Convey("When a malformed row flags both captain and vice-captain", func() {
			p := model.Player{Name: "A", PhaseFlags: map[model.Phase]model.Flags{model.GroupStage: {Captain: true, ViceCaptain: true}}}

			Convey("Then the captain rule, applied last, wins", func() {
				So(scoring.Multiplier(rules, p, 1, model.GroupStage), ShouldEqual, 2.0)
			})
		})

		Convey("When the legacy daily rules see both flags", func() {
			daily := scoring.DailyRules(2.0, 1.5)
			p := model.Player{Name: "A", DailyFlags: map[int]model.Flags{3: {Captain: true, ViceCaptain: true}}}

			Convey("Then vice-captain, applied last, wins", func() {
				So(scoring.Multiplier(daily, p, 3, model.GroupStage), ShouldEqual, 1.5)
				So(scoring.Multiplier(daily, p, 4, model.GroupStage), ShouldEqual, 1.0)
			})
		})
	})
}

func TestEngine_Cumulative(t *testing.T) {
	Convey("Given a roster of 16 days", t, func() {
		groupCaptain := model.Player{
			Name: "Abhishek Sharma", Owner: "Asif",
			Scores:     map[int]float64{1: 10},
			PhaseFlags: map[model.Phase]model.Flags{model.GroupStage: {Captain: true}},
		}
		koCaptain := model.Player{
			Name: "Mitchell Marsh", Owner: "Johnson",
			Scores:     map[int]float64{14: 10, 15: 10},
			PhaseFlags: map[model.Phase]model.Flags{model.KnockoutStage: {Captain: true}},
		}
		vice := model.Player{
			Name: "Rachin Ravindra", Owner: "Johnson",
			Scores:     map[int]float64{1: 4, 2: 6},
			PhaseFlags: map[model.Phase]model.Flags{model.GroupStage: {ViceCaptain: true}},
		}
		plain := model.Player{Name: "Tilak Varma", Owner: "Somansh", Scores: map[int]float64{2: 7}}
		r := mustRoster([]model.Player{groupCaptain, koCaptain, vice, plain}, allDays(16))
		engine := scoring.NewEngine()

		Convey("When scoring up to day 1", func() {
			snap, err := engine.Cumulative(r, 1)

			Convey("Then a group stage captain doubles the day-1 score", func() {
				So(err, ShouldBeNil)
				So(snap.Day, ShouldEqual, 1)
				So(snap.Points("Abhishek Sharma"), ShouldEqual, 20.0)
			})

			Convey("And players without a day-1 score have zero", func() {
				So(snap.Points("Tilak Varma"), ShouldEqual, 0)
			})
		})

		Convey("When crossing the day 14 -> 15 boundary without new scores", func() {
			d14, err := engine.Cumulative(r, 14)
			So(err, ShouldBeNil)
			d15, err := engine.Cumulative(r, 15)
			So(err, ShouldBeNil)

			Convey("Then the group captain total does not change", func() {
				So(d14.Points("Abhishek Sharma"), ShouldEqual, 20.0)
				So(d15.Points("Abhishek Sharma"), ShouldEqual, 20.0)
			})

			Convey("And a knockout-only captain is 1x on day 14 and 2x on day 15", func() {
				So(d14.Points("Mitchell Marsh"), ShouldEqual, 10.0)
				So(d15.Points("Mitchell Marsh"), ShouldEqual, 30.0)
			})
		})

		Convey("When a vice-captain scores on several group days", func() {
			snap, err := engine.Cumulative(r, 16)
			So(err, ShouldBeNil)
			So(snap.Points("Rachin Ravindra"), ShouldEqual, 15.0)
			So(snap.Points("Tilak Varma"), ShouldEqual, 7.0)
		})

		Convey("When the phase threshold is overridden", func() {
			early := scoring.NewEngine(scoring.WithGroupStageLastDay(10))
			snap, err := early.Cumulative(r, 14)

			Convey("Then day 14 already uses knockout flags", func() {
				So(err, ShouldBeNil)
				So(early.GroupStageLastDay(), ShouldEqual, 10)
				So(snap.Points("Mitchell Marsh"), ShouldEqual, 20.0)
			})
		})

		Convey("When multipliers are overridden", func() {
			custom := scoring.NewEngine(scoring.WithMultipliers(3, 2))
			snap, err := custom.Cumulative(r, 2)
			So(err, ShouldBeNil)
			So(snap.Points("Abhishek Sharma"), ShouldEqual, 30.0)
			So(snap.Points("Rachin Ravindra"), ShouldEqual, 20.0)
		})

		Convey("When the requested day is out of range with the clamp policy", func() {
			snap, err := engine.Cumulative(r, 40)
			So(err, ShouldBeNil)
			So(snap.Day, ShouldEqual, 16)

			low, err := engine.Cumulative(r, 0)
			So(err, ShouldBeNil)
			So(low.Day, ShouldEqual, 1)
		})

		Convey("When the requested day is out of range with the reject policy", func() {
			strict := scoring.NewEngine(scoring.WithDayRangePolicy(scoring.DayRangeReject))
			_, err := strict.Cumulative(r, 17)
			So(errors.Is(err, scoring.ErrInvalidDayRange), ShouldBeTrue)
			_, err = strict.Cumulative(r, 0)
			So(errors.Is(err, scoring.ErrInvalidDayRange), ShouldBeTrue)
		})

		Convey("When the roster is nil", func() {
			_, err := engine.Cumulative(nil, 1)
			So(errors.Is(err, scoring.ErrInvalidDayRange), ShouldBeTrue)
		})
	})
}

func TestEngine_Monotonic(t *testing.T) {
	Convey("Given only non-negative raw scores", t, func() {
		players := []model.Player{
			{Name: "A", Owner: "X", Scores: map[int]float64{1: 5, 3: 8, 5: 2},
				PhaseFlags: map[model.Phase]model.Flags{model.GroupStage: {Captain: true}}},
			{Name: "B", Owner: "Y", Scores: map[int]float64{2: 9, 4: 0, 5: 11}},
		}
		r := mustRoster(players, allDays(5))
		engine := scoring.NewEngine()

		Convey("Then cumulative points never decrease with the day boundary", func() {
			prev, err := engine.Cumulative(r, 1)
			So(err, ShouldBeNil)
			for d := 2; d <= 5; d++ {
				cur, err := engine.Cumulative(r, d)
				So(err, ShouldBeNil)
				for _, e := range cur.Entries {
					So(e.Points, ShouldBeGreaterThanOrEqualTo, prev.Points(e.Player))
				}
				prev = cur
			}
		})
	})
}

func TestEngine_Gaps(t *testing.T) {
	Convey("Given a roster missing a day column", t, func() {
		r := mustRoster([]model.Player{
			{Name: "A", Owner: "X", Scores: map[int]float64{1: 3, 3: 4}},
		}, []int{1, 3})

		Convey("Then the missing day is skipped, not an error", func() {
			snap, err := scoring.NewEngine().Cumulative(r, 3)
			So(err, ShouldBeNil)
			So(snap.Points("A"), ShouldEqual, 7.0)
		})
	})
}

func TestDailyFlagMode(t *testing.T) {
	Convey("Given legacy per-day captain columns", t, func() {
		r := mustRoster([]model.Player{
			{Name: "A", Owner: "X", Scores: map[int]float64{1: 10, 2: 10},
				DailyFlags: map[int]model.Flags{1: {Captain: true}, 2: {ViceCaptain: true}},
				PhaseFlags: map[model.Phase]model.Flags{model.GroupStage: {Captain: true}}},
		}, []int{1, 2})

		Convey("When scoring in daily mode", func() {
			snap, err := scoring.NewEngine(scoring.WithFlagMode(scoring.FlagModeDaily)).Cumulative(r, 2)
			Convey("Then per-day flags apply and phase flags are ignored", func() {
				So(err, ShouldBeNil)
				So(snap.Points("A"), ShouldEqual, 35.0)
			})
		})
	})
}

func TestEmpty(t *testing.T) {
	Convey("Given a roster", t, func() {
		r := mustRoster([]model.Player{{Name: "A", Owner: "X", Scores: map[int]float64{1: 3}}}, []int{1})
		snap := scoring.Empty(r)
		So(snap.Len(), ShouldEqual, 1)
		So(snap.Points("A"), ShouldEqual, 0)
		So(snap.Points("missing"), ShouldEqual, 0)
	})
}
