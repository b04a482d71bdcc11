package repository

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/dreamxi/internal/domain/model"
)

var (
	dayColumn      = regexp.MustCompile(`^day(\d+)$`)
	captainDay     = regexp.MustCompile(`^c_day(\d+)$`)
	viceCaptainDay = regexp.MustCompile(`^vc_day(\d+)$`)
)

// Column aliases after normalization.
var aliases = map[string]string{
	"owner":        "owner_name",
	"owner_name":   "owner_name",
	"ownername":    "owner_name",
	"player":       "player_name",
	"player_name":  "player_name",
	"playername":   "player_name",
	"country":      "country",
	"role":         "role",
	"bid_price":    "bid_price",
	"price":        "bid_price",
	"bid":          "bid_price",
	"bidprice":     "bid_price",
	"available":    "available",
	"availability": "available",
	"c_group":      "c_group",
	"vc_group":     "vc_group",
	"c_knockout":   "c_knockout",
	"vc_knockout":  "vc_knockout",
	"c_super":      "c_knockout",
	"vc_super":     "vc_knockout",
}

// NormalizeColumn trims, lower-cases and drops spaces from a header cell.
// A leading UTF-8 byte order mark, as written by spreadsheet CSV exports, is
// removed too.
func NormalizeColumn(name string) string {
	name = strings.TrimPrefix(name, byteOrderMark)
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

const byteOrderMark = "\ufeff"

type layout struct {
	named map[string]int
	days  map[int]int
	caps  map[int]int
	vices map[int]int
}

func parseHeader(header []string) (layout, error) {
	l := layout{
		named: make(map[string]int),
		days:  make(map[int]int),
		caps:  make(map[int]int),
		vices: make(map[int]int),
	}
	for i, h := range header {
		col := NormalizeColumn(h)
		if canonical, ok := aliases[col]; ok {
			if _, dup := l.named[canonical]; !dup {
				l.named[canonical] = i
			}
			continue
		}
		if m := dayColumn.FindStringSubmatch(col); m != nil {
			d, _ := strconv.Atoi(m[1])
			l.days[d] = i
			continue
		}
		if m := captainDay.FindStringSubmatch(col); m != nil {
			d, _ := strconv.Atoi(m[1])
			l.caps[d] = i
			continue
		}
		if m := viceCaptainDay.FindStringSubmatch(col); m != nil {
			d, _ := strconv.Atoi(m[1])
			l.vices[d] = i
		}
	}

	var missing []string
	for _, req := range []string{"owner_name", "player_name"} {
		if _, ok := l.named[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(l.days) == 0 {
		missing = append(missing, "day<N>")
	}
	if len(missing) > 0 {
		return layout{}, fmt.Errorf("%w: missing columns %s", model.ErrDataShape, strings.Join(missing, ", "))
	}
	return l, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (l layout) get(row []string, name string) string {
	idx, ok := l.named[name]
	if !ok {
		return ""
	}
	return cell(row, idx)
}

func (l layout) has(name string) bool {
	_, ok := l.named[name]
	return ok
}

// ParseTable builds a roster from a header row and data rows. Blank rows
// are skipped. Non-numeric scores and prices count as 0.
func ParseTable(header []string, rows [][]string) (*model.Roster, error) {
	l, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	days := make([]int, 0, len(l.days))
	for d := range l.days {
		days = append(days, d)
	}

	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		p := model.Player{
			Name:      strings.TrimSpace(l.get(row, "player_name")),
			Owner:     strings.TrimSpace(l.get(row, "owner_name")),
			Country:   strings.TrimSpace(l.get(row, "country")),
			Role:      strings.TrimSpace(l.get(row, "role")),
			BidPrice:  model.CoerceScore(l.get(row, "bid_price")),
			Available: true,
			Scores:    make(map[int]float64, len(l.days)),
		}
		if l.has("available") {
			if v := strings.TrimSpace(l.get(row, "available")); v != "" {
				p.Available = model.ParseFlag(v)
			}
		}
		for d, idx := range l.days {
			if raw := cell(row, idx); strings.TrimSpace(raw) != "" {
				p.Scores[d] = model.CoerceScore(raw)
			}
		}

		p.PhaseFlags = map[model.Phase]model.Flags{
			model.GroupStage: {
				Captain:     model.ParseFlag(l.get(row, "c_group")),
				ViceCaptain: model.ParseFlag(l.get(row, "vc_group")),
			},
			model.KnockoutStage: {
				Captain:     model.ParseFlag(l.get(row, "c_knockout")),
				ViceCaptain: model.ParseFlag(l.get(row, "vc_knockout")),
			},
		}

		if len(l.caps) > 0 || len(l.vices) > 0 {
			p.DailyFlags = make(map[int]model.Flags)
			for d, idx := range l.caps {
				f := p.DailyFlags[d]
				f.Captain = model.ParseFlag(cell(row, idx))
				p.DailyFlags[d] = f
			}
			for d, idx := range l.vices {
				f := p.DailyFlags[d]
				f.ViceCaptain = model.ParseFlag(cell(row, idx))
				p.DailyFlags[d] = f
			}
		}
		players = append(players, p)
	}

	return model.NewRoster(players, days)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
