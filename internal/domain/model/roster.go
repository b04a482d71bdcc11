package model

import (
	"fmt"
	"sort"
	"strings"
)

// Roster is an immutable snapshot of the league's player table.
type Roster struct {
	players []Player
	byName  map[string]int
	byOwner map[string][]int
	owners  []string
	days    []int
}

// NewRoster validates players and the known day numbers and builds a Roster.
// Player order is preserved; days are de-duplicated and sorted.
func NewRoster(players []Player, days []int) (*Roster, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no day columns", ErrDataShape)
	}

	r := &Roster{
		players: make([]Player, 0, len(players)),
		byName:  make(map[string]int, len(players)),
		byOwner: make(map[string][]int),
	}

	seenDay := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d < 1 {
			return nil, fmt.Errorf("%w: invalid day number %d", ErrDataShape, d)
		}
		if _, ok := seenDay[d]; ok {
			continue
		}
		seenDay[d] = struct{}{}
		r.days = append(r.days, d)
	}
	sort.Ints(r.days)

	for i, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		p.Owner = strings.TrimSpace(p.Owner)
		switch {
		case p.Name == "":
			return nil, fmt.Errorf("%w: row %d has no player name", ErrDataShape, i+1)
		case p.Owner == "":
			return nil, fmt.Errorf("%w: player %q has no owner", ErrDataShape, p.Name)
		case p.BidPrice < 0:
			return nil, fmt.Errorf("%w: player %q has negative bid price", ErrDataShape, p.Name)
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrDataShape, p.Name)
		}

		idx := len(r.players)
		r.players = append(r.players, p)
		r.byName[p.Name] = idx
		if _, ok := r.byOwner[p.Owner]; !ok {
			r.owners = append(r.owners, p.Owner)
		}
		r.byOwner[p.Owner] = append(r.byOwner[p.Owner], idx)
	}
	sort.Strings(r.owners)

	return r, nil
}

// Players returns all players in table order. The slice must not be modified.
func (r *Roster) Players() []Player { return r.players }

// Len returns the number of players.
func (r *Roster) Len() int { return len(r.players) }

// Player looks up a player by name.
func (r *Roster) Player(name string) (Player, bool) {
	idx, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return Player{}, false
	}
	return r.players[idx], true
}

// Owners returns owner names in ascending order.
func (r *Roster) Owners() []string { return r.owners }

// PlayersOf returns the players held by owner in table order.
func (r *Roster) PlayersOf(owner string) []Player {
	idx := r.byOwner[owner]
	out := make([]Player, len(idx))
	for i, j := range idx {
		out[i] = r.players[j]
	}
	return out
}

// Days returns the known day numbers in ascending order.
func (r *Roster) Days() []int { return r.days }

// MinDay returns the first known day.
func (r *Roster) MinDay() int { return r.days[0] }

// MaxDay returns the last known day.
func (r *Roster) MaxDay() int { return r.days[len(r.days)-1] }

// HasDay reports whether day has a score column.
func (r *Roster) HasDay(day int) bool {
	i := sort.SearchInts(r.days, day)
	return i < len(r.days) && r.days[i] == day
}
