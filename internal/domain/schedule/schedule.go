// Package schedule maps match days to competing countries.
package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/dreamxi/internal/domain/model"
)

// Schedule lists the countries playing on each match day.
type Schedule struct {
	days map[int][]string
}

// New builds a schedule from a day -> countries table.
func New(table map[int][]string) *Schedule {
	s := &Schedule{days: make(map[int][]string, len(table))}
	for day, countries := range table {
		s.days[day] = append([]string(nil), countries...)
	}
	return s
}

// ParseCSV reads a two-column table: day number and a comma-separated
// country list. Day cells may be written as "3" or "day3".
func ParseCSV(r io.Reader) (*Schedule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: schedule header: %v", model.ErrDataShape, err)
	}
	dayCol, countryCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", "")) {
		case "day":
			dayCol = i
		case "countries", "teams", "country":
			countryCol = i
		}
	}
	if dayCol < 0 || countryCol < 0 {
		return nil, fmt.Errorf("%w: schedule needs day and countries columns", model.ErrDataShape)
	}

	table := make(map[int][]string)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read schedule: %w", err)
		}
		if dayCol >= len(rec) || countryCol >= len(rec) {
			continue
		}
		cell := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(rec[dayCol])), "day")
		day, err := strconv.Atoi(cell)
		if err != nil {
			return nil, fmt.Errorf("%w: bad schedule day %q", model.ErrDataShape, rec[dayCol])
		}
		for _, c := range strings.Split(rec[countryCol], ",") {
			if c = strings.TrimSpace(c); c != "" {
				table[day] = append(table[day], c)
			}
		}
	}
	return &Schedule{days: table}, nil
}

// Countries returns the countries playing on day.
func (s *Schedule) Countries(day int) []string {
	if s == nil {
		return nil
	}
	return s.days[day]
}

// Days returns the scheduled days in ascending order.
func (s *Schedule) Days() []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// WatchEntry lists an owner's players in action on a day.
type WatchEntry struct {
	Owner   string   `json:"owner"`
	Players []string `json:"players"`
}

// Watchlist returns, per owner, the players whose country plays on day.
// Owners with nobody in action are omitted.
func (s *Schedule) Watchlist(r *model.Roster, day int) []WatchEntry {
	playing := make(map[string]struct{})
	for _, c := range s.Countries(day) {
		playing[strings.ToLower(c)] = struct{}{}
	}
	out := []WatchEntry{}
	if len(playing) == 0 {
		return out
	}
	for _, owner := range r.Owners() {
		var names []string
		for _, p := range r.PlayersOf(owner) {
			if _, ok := playing[strings.ToLower(strings.TrimSpace(p.Country))]; ok {
				names = append(names, p.Name)
			}
		}
		if len(names) > 0 {
			out = append(out, WatchEntry{Owner: owner, Players: names})
		}
	}
	return out
}
