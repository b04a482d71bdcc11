// Package types contains read models shared by the service and its adapters
package types

import (
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/schedule"
)

// Leaderboard is the league table for a day
type Leaderboard struct {
	Day       int                `json:"day"`
	Phase     string             `json:"phase"`
	Standings []ranking.Standing `json:"standings"`
}

// Leader returns the first row, or false when the table is empty.
func (l Leaderboard) Leader() (ranking.Standing, bool) {
	if len(l.Standings) == 0 {
		return ranking.Standing{}, false
	}
	return l.Standings[0], true
}

// Watchlist lists the players in action on a day
type Watchlist struct {
	Day       int                   `json:"day"`
	Countries []string              `json:"countries"`
	Entries   []schedule.WatchEntry `json:"entries"`
}

// CaptainPick is an owner's displayed captain and vice-captain
type CaptainPick struct {
	Captain     string `json:"captain"`
	ViceCaptain string `json:"vice_captain"`
}
