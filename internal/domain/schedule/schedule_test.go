package schedule_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCSV(t *testing.T) {
	Convey("Given a schedule table", t, func() {
		data := "Day,Countries\n1,\"India, Australia\"\nday2,England\n"

		Convey("When parsing", func() {
			s, err := schedule.ParseCSV(strings.NewReader(data))

			Convey("Then each day lists its countries", func() {
				So(err, ShouldBeNil)
				So(s.Countries(1), ShouldResemble, []string{"India", "Australia"})
				So(s.Countries(2), ShouldResemble, []string{"England"})
				So(s.Countries(3), ShouldBeNil)
				So(s.Days(), ShouldResemble, []int{1, 2})
			})
		})

		Convey("When the countries column is missing", func() {
			_, err := schedule.ParseCSV(strings.NewReader("day,venue\n1,Mumbai\n"))
			So(errors.Is(err, model.ErrDataShape), ShouldBeTrue)
		})

		Convey("When a day cell is not a number", func() {
			_, err := schedule.ParseCSV(strings.NewReader("day,countries\nfinal,India\n"))
			So(errors.Is(err, model.ErrDataShape), ShouldBeTrue)
		})
	})
}

func TestWatchlist(t *testing.T) {
	Convey("Given a roster and a schedule", t, func() {
		r, err := model.NewRoster([]model.Player{
			{Name: "Abhishek Sharma", Owner: "Asif", Country: "India"},
			{Name: "Quinton de Kock", Owner: "Asif", Country: "South Africa"},
			{Name: "Mitchell Marsh", Owner: "Johnson", Country: "Australia"},
			{Name: "Rashid Khan", Owner: "Lalit", Country: "Afghanistan"},
		}, []int{1})
		So(err, ShouldBeNil)
		s := schedule.New(map[int][]string{1: {"india", "Australia"}})

		Convey("When listing players in action on day 1", func() {
			list := s.Watchlist(r, 1)

			Convey("Then only owners with players from competing countries appear", func() {
				So(list, ShouldResemble, []schedule.WatchEntry{
					{Owner: "Asif", Players: []string{"Abhishek Sharma"}},
					{Owner: "Johnson", Players: []string{"Mitchell Marsh"}},
				})
			})
		})

		Convey("When the day has no fixtures", func() {
			So(s.Watchlist(r, 5), ShouldBeEmpty)
		})

		Convey("When there is no schedule at all", func() {
			var none *schedule.Schedule
			So(none.Watchlist(r, 1), ShouldBeEmpty)
		})
	})
}
