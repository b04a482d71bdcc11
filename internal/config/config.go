// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

// CaptainOverride names an owner's display captain and vice-captain.
// It is used for presentation only and never affects scoring.
type CaptainOverride struct {
	Captain     string `koanf:"c" json:"captain"`
	ViceCaptain string `koanf:"vc" json:"vice_captain"`
}

// Replacement holds the replacement eligibility thresholds.
type Replacement struct {
	MinBidPrice             float64 `koanf:"min_bid_price"`
	PriceStep               float64 `koanf:"price_step"`
	PointsBand              float64 `koanf:"points_band"`
	SoleRepresentativeRatio float64 `koanf:"sole_representative_ratio"`
	PriceRounding           float64 `koanf:"price_rounding"`
	RequireAvailable        bool    `koanf:"require_available"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RosterPath points at the roster table (.csv or .xlsx).
	RosterPath string `koanf:"roster_path"`
	// SchedulePath points at the optional match schedule CSV.
	SchedulePath string `koanf:"schedule_path"`
	// ReloadIntervalSec re-reads the roster periodically; 0 disables.
	ReloadIntervalSec int `koanf:"reload_interval_sec"`

	// GroupStageLastDay is the last day scored with group stage captain flags.
	GroupStageLastDay int `koanf:"group_stage_last_day"`
	// CaptainMultiplier and ViceCaptainMultiplier scale designated players.
	CaptainMultiplier     float64 `koanf:"captain_multiplier"`
	ViceCaptainMultiplier float64 `koanf:"vice_captain_multiplier"`
	// FlagMode is "phase" (group/knockout flags) or "daily" (legacy c_dayN columns).
	FlagMode string `koanf:"flag_mode"`
	// DayRangePolicy is "clamp" or "reject" for out-of-range day queries.
	DayRangePolicy string `koanf:"day_range_policy"`

	Replacement Replacement `koanf:"replacement"`

	// CountryRankings maps country to team ranking, lower is stronger.
	CountryRankings map[string]int `koanf:"country_rankings"`

	// CaptainOverrides maps owner to display captain picks.
	CaptainOverrides map[string]CaptainOverride `koanf:"captain_overrides"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		RosterPath:            "data/points_new.csv",
		GroupStageLastDay:     14,
		CaptainMultiplier:     2.0,
		ViceCaptainMultiplier: 1.5,
		FlagMode:              "phase",
		DayRangePolicy:        "clamp",
		Replacement: Replacement{
			MinBidPrice:             500,
			PriceStep:               50,
			PointsBand:              50,
			SoleRepresentativeRatio: 0.5,
			PriceRounding:           10,
			RequireAvailable:        true,
		},
		CountryRankings: map[string]int{
			"India":        1,
			"Australia":    2,
			"England":      3,
			"New Zealand":  4,
			"South Africa": 5,
			"West Indies":  6,
			"Pakistan":     7,
			"Sri Lanka":    8,
			"Afghanistan":  9,
			"Bangladesh":   10,
		},
		CaptainOverrides: map[string]CaptainOverride{
			"Asif":              {Captain: "Abhishek Sharma", ViceCaptain: "Quinton de Kock"},
			"Johnson":           {Captain: "Mitchell Marsh", ViceCaptain: "Rachin Ravindra"},
			"Lalit":             {Captain: "Suryakumar Yadav", ViceCaptain: "Rashid Khan"},
			"Sanskar":           {Captain: "Hardik Pandya", ViceCaptain: "Cameron Green"},
			"Willy & Umesh":     {Captain: "Jos Buttler", ViceCaptain: "Jasprit Bumrah"},
			"Somansh":           {Captain: "Varun Chakaravarthy", ViceCaptain: "Tilak Varma"},
			"Pritam":            {Captain: "Ryan Rickelton", ViceCaptain: "Mitchell Santner"},
			"Rachita & Pritesh": {Captain: "Ishan Kishan", ViceCaptain: "Shimron Hetmyer"},
			"Mahesh":            {Captain: "Aiden Markram", ViceCaptain: "Phil Salt"},
		},
	}
}
