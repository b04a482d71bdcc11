package service

import (
	"fmt"
	"os"
	"time"

	"github.com/okian/dreamxi/internal/adapters/repository"
	"github.com/okian/dreamxi/internal/config"
	"github.com/okian/dreamxi/internal/domain/replacement"
	"github.com/okian/dreamxi/internal/domain/schedule"
	"github.com/okian/dreamxi/internal/domain/scoring"
	"github.com/okian/dreamxi/internal/domain/types"
	"github.com/okian/dreamxi/pkg/logger"
)

// FromConfig wires the engines, roster store and schedule described by cfg.
// The HTTP server and the report CLI both build their service here.
func FromConfig(cfg *config.Config, log logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Get()
	}

	scorer := scoring.NewEngine(
		scoring.WithGroupStageLastDay(cfg.GroupStageLastDay),
		scoring.WithMultipliers(cfg.CaptainMultiplier, cfg.ViceCaptainMultiplier),
		scoring.WithFlagMode(scoring.FlagMode(cfg.FlagMode)),
		scoring.WithDayRangePolicy(scoring.DayRangePolicy(cfg.DayRangePolicy)),
	)

	replacer := replacement.NewEngine(
		replacement.WithRules(replacement.Rules{
			MinBidPrice:             cfg.Replacement.MinBidPrice,
			PriceStep:               cfg.Replacement.PriceStep,
			PointsBand:              cfg.Replacement.PointsBand,
			SoleRepresentativeRatio: cfg.Replacement.SoleRepresentativeRatio,
			PriceRounding:           cfg.Replacement.PriceRounding,
			RequireAvailable:        cfg.Replacement.RequireAvailable,
		}),
		replacement.WithCountryRanking(replacement.NewCountryRanking(cfg.CountryRankings)),
	)

	var sched *schedule.Schedule
	if cfg.SchedulePath != "" {
		f, err := os.Open(cfg.SchedulePath)
		if err != nil {
			return nil, fmt.Errorf("open schedule: %w", err)
		}
		defer func() { _ = f.Close() }()
		if sched, err = schedule.ParseCSV(f); err != nil {
			return nil, err
		}
	}

	captains := make(map[string]types.CaptainPick, len(cfg.CaptainOverrides))
	for owner, pick := range cfg.CaptainOverrides {
		captains[owner] = types.CaptainPick{Captain: pick.Captain, ViceCaptain: pick.ViceCaptain}
	}

	return New(
		WithLogger(log.Named("service")),
		WithStore(repository.NewFileStore(cfg.RosterPath, repository.WithLogger(log.Named("repository")))),
		WithScoringEngine(scorer),
		WithReplacementEngine(replacer),
		WithSchedule(sched),
		WithCaptains(captains),
		WithReloadInterval(time.Duration(cfg.ReloadIntervalSec)*time.Second),
	), nil
}
