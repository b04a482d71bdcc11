package ranking

import (
	"sort"

	"github.com/okian/dreamxi/internal/domain/scoring"
	"gonum.org/v1/gonum/stat"
)

// TopPlayer is the highest scoring player of a snapshot.
type TopPlayer struct {
	Player string  `json:"player"`
	Owner  string  `json:"owner"`
	Points float64 `json:"points"`
}

// RoleContribution is the league-wide points of a player role.
type RoleContribution struct {
	Role   string  `json:"role"`
	Points float64 `json:"points"`
}

// Summary is the league snapshot shown above the table.
type Summary struct {
	Day          int                `json:"day"`
	TotalTeams   int                `json:"total_teams"`
	TopTeam      string             `json:"top_team"`
	TotalPoints  float64            `json:"total_points"`
	MeanPoints   float64            `json:"mean_points"`
	StdDevPoints float64            `json:"stddev_points"`
	TopPlayer    TopPlayer          `json:"top_player"`
	ByRole       []RoleContribution `json:"by_role"`
}

// Summarize derives headline numbers from a snapshot and its standings.
func Summarize(s scoring.Snapshot, standings []Standing) (Summary, error) {
	if len(standings) == 0 {
		return Summary{}, ErrEmptyRoster
	}

	out := Summary{
		Day:        s.Day,
		TotalTeams: len(standings),
		TopTeam:    standings[0].Owner,
	}

	totals := make([]float64, len(standings))
	for i, st := range standings {
		totals[i] = st.TotalPoints
		out.TotalPoints += st.TotalPoints
	}
	out.MeanPoints = stat.Mean(totals, nil)
	if len(totals) > 1 {
		out.StdDevPoints = stat.StdDev(totals, nil)
	}

	byRole := make(map[string]float64)
	for i, e := range s.Entries {
		if i == 0 || e.Points > out.TopPlayer.Points ||
			(e.Points == out.TopPlayer.Points && e.Player < out.TopPlayer.Player) {
			out.TopPlayer = TopPlayer{Player: e.Player, Owner: e.Owner, Points: e.Points}
		}
		role := e.Role
		if role == "" {
			role = "unknown"
		}
		byRole[role] += e.Points
	}

	for role, pts := range byRole {
		out.ByRole = append(out.ByRole, RoleContribution{Role: role, Points: pts})
	}
	sort.Slice(out.ByRole, func(i, j int) bool {
		if out.ByRole[i].Points != out.ByRole[j].Points {
			return out.ByRole[i].Points > out.ByRole[j].Points
		}
		return out.ByRole[i].Role < out.ByRole[j].Role
	})
	return out, nil
}
