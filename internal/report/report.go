// Package report renders league read models as aligned plain-text tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/replacement"
	"github.com/okian/dreamxi/internal/domain/trend"
	"github.com/okian/dreamxi/internal/domain/types"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func delta(v *float64) string {
	if v == nil {
		return "-"
	}
	return points(*v)
}

// Leaderboard writes the standings table.
func Leaderboard(w io.Writer, lb types.Leaderboard) error {
	if _, err := fmt.Fprintf(w, "Day %d (%s stage)\n", lb.Day, lb.Phase); err != nil {
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tOWNER\tPOINTS\tTO NEXT\tTO FIRST\tMOVE")
	for _, s := range lb.Standings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.Rank, s.Owner, points(s.TotalPoints), delta(s.NextRankDelta), delta(s.FirstRankDelta), s.MovementLabel)
	}
	return tw.Flush()
}

// Summary writes the league headline numbers.
func Summary(w io.Writer, s ranking.Summary) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Day\t%d\n", s.Day)
	fmt.Fprintf(tw, "Teams\t%d\n", s.TotalTeams)
	fmt.Fprintf(tw, "Top team\t%s\n", s.TopTeam)
	fmt.Fprintf(tw, "Top player\t%s (%s) %s\n", s.TopPlayer.Player, s.TopPlayer.Owner, points(s.TopPlayer.Points))
	fmt.Fprintf(tw, "Mean\t%.1f\n", s.MeanPoints)
	fmt.Fprintf(tw, "Std dev\t%.1f\n", s.StdDevPoints)
	for _, r := range s.ByRole {
		fmt.Fprintf(tw, "Role %s\t%s\n", r.Role, points(r.Points))
	}
	return tw.Flush()
}

// Trend writes one row per owner and one column per day.
func Trend(w io.Writer, series map[string][]trend.Point) error {
	owners := make([]string, 0, len(series))
	daySet := make(map[int]struct{})
	for owner, pts := range series {
		owners = append(owners, owner)
		for _, p := range pts {
			daySet[p.Day] = struct{}{}
		}
	}
	sort.Strings(owners)
	days := make([]int, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Ints(days)

	tw := newTable(w)
	header := []string{"OWNER"}
	for _, d := range days {
		header = append(header, "D"+strconv.Itoa(d))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, owner := range owners {
		byDay := make(map[int]float64, len(series[owner]))
		for _, p := range series[owner] {
			byDay[p.Day] = p.Points
		}
		row := []string{owner}
		for _, d := range days {
			row = append(row, points(byDay[d]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Replacements writes the branch, bounds and candidate list.
func Replacements(w io.Writer, res replacement.Result) error {
	out := res.RuledOut
	fmt.Fprintf(w, "Ruled out: %s (%s, %s, bid %s, %s pts)\n",
		out.Player, out.Owner, out.Country, points(out.BidPrice), points(out.Points))
	switch res.Branch {
	case replacement.BranchSoleRepresentative:
		fmt.Fprintf(w, "Branch: sole representative, price %s..%s\n", points(res.PriceFloor), delta(res.PriceCeiling))
	default:
		fmt.Fprintf(w, "Branch: normal, price >= %s, points %s..%s\n",
			points(res.PriceFloor), delta(res.PointsFloor), delta(res.PointsCeiling))
	}
	if res.Reason != "" {
		fmt.Fprintf(w, "Note: %s\n", res.Reason)
	}
	if len(res.Candidates) == 0 {
		_, err := fmt.Fprintln(w, "No eligible replacements.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "PLAYER\tOWNER\tCOUNTRY\tROLE\tBID\tPOINTS")
	for _, c := range res.Candidates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Player, c.Owner, c.Country, c.Role, points(c.BidPrice), points(c.Points))
	}
	return tw.Flush()
}

// Watchlist writes the owners with players in action.
func Watchlist(w io.Writer, wl types.Watchlist) error {
	if len(wl.Countries) == 0 {
		_, err := fmt.Fprintf(w, "Day %d: no matches scheduled\n", wl.Day)
		return err
	}
	fmt.Fprintf(w, "Day %d: %s\n", wl.Day, strings.Join(wl.Countries, " v "))
	tw := newTable(w)
	for _, e := range wl.Entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Owner, strings.Join(e.Players, ", "))
	}
	return tw.Flush()
}
