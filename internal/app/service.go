// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/okian/dreamxi/internal/adapters/repository"
	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/replacement"
	"github.com/okian/dreamxi/internal/domain/schedule"
	"github.com/okian/dreamxi/internal/domain/scoring"
	"github.com/okian/dreamxi/internal/domain/trend"
	"github.com/okian/dreamxi/internal/domain/types"
	"github.com/okian/dreamxi/pkg/logger"
	"github.com/okian/dreamxi/pkg/metrics"
)

// Service implements the API dependencies for the league.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	scorer   *scoring.Engine
	replacer *replacement.Engine
	schedule *schedule.Schedule

	// Configuration
	captains       map[string]types.CaptainPick
	reloadInterval time.Duration

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the roster store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScoringEngine replaces the default scoring engine.
func WithScoringEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.scorer = e
		}
	}
}

// WithReplacementEngine replaces the default replacement engine.
func WithReplacementEngine(e *replacement.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.replacer = e
		}
	}
}

// WithSchedule sets the match schedule used by the watchlist.
func WithSchedule(sc *schedule.Schedule) Option {
	return func(s *Service) {
		s.schedule = sc
	}
}

// WithCaptains sets the display-only captain table.
func WithCaptains(picks map[string]types.CaptainPick) Option {
	return func(s *Service) {
		s.captains = make(map[string]types.CaptainPick, len(picks))
		for owner, p := range picks {
			s.captains[owner] = p
		}
	}
}

// WithReloadInterval re-reads the roster periodically. Zero disables it.
func WithReloadInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.reloadInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:   scoring.NewEngine(),
		replacer: replacement.NewEngine(),
		captains: map[string]types.CaptainPick{},
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the roster and starts the reload loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting league service...")
	if err := s.store.Reload(ctx); err != nil {
		return fmt.Errorf("initial roster load: %w", err)
	}

	if s.reloadInterval > 0 {
		s.wg.Add(1)
		go s.reloadLoop(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "league service started",
		logger.Duration("reloadInterval", s.reloadInterval),
		logger.Int("groupStageLastDay", s.scorer.GroupStageLastDay()),
	)
	return nil
}

func (s *Service) reloadLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			// Failures keep the previous snapshot.
			if err := s.store.Reload(ctx); err != nil {
				s.log().Warn(ctx, "roster reload failed", logger.Error(err))
			}
		}
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "league service stopped")
}

// Reload re-reads the roster immediately.
func (s *Service) Reload(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Reload(ctx)
}

func (s *Service) roster(ctx context.Context) (*model.Roster, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.Roster(ctx)
}

// resolve maps day 0 to the latest known day.
func resolve(r *model.Roster, day int) int {
	if day == 0 {
		return r.MaxDay()
	}
	return day
}

func (s *Service) cumulative(r *model.Roster, day int) (scoring.Snapshot, error) {
	start := time.Now()
	snap, err := s.scorer.Cumulative(r, day)
	metrics.RecordScoring(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordErrorByComponent("scoring", "invalid_day")
	}
	return snap, err
}

// Days returns the day numbers present in the roster.
func (s *Service) Days(ctx context.Context) ([]int, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	return r.Days(), nil
}

// Leaderboard ranks owners on day and compares with the day before.
func (s *Service) Leaderboard(ctx context.Context, day int) (types.Leaderboard, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return types.Leaderboard{}, err
	}
	standings, snap, err := s.rank(r, resolve(r, day))
	if err != nil {
		return types.Leaderboard{}, err
	}
	s.log().Debug(ctx, "leaderboard computed",
		logger.Int("day", snap.Day),
		logger.Int("owners", len(standings)),
	)
	return types.Leaderboard{
		Day:       snap.Day,
		Phase:     s.scorer.Phase(snap.Day).String(),
		Standings: standings,
	}, nil
}

func (s *Service) rank(r *model.Roster, day int) ([]ranking.Standing, scoring.Snapshot, error) {
	cur, err := s.cumulative(r, day)
	if err != nil {
		return nil, scoring.Snapshot{}, err
	}
	var prev *scoring.Snapshot
	if cur.Day > 1 {
		p, err := s.cumulative(r, cur.Day-1)
		if err != nil {
			return nil, scoring.Snapshot{}, err
		}
		prev = &p
	}

	standings, err := ranking.Rank(cur, prev)
	if errors.Is(err, ranking.ErrEmptyRoster) {
		metrics.RecordEmptyRanking()
		return nil, cur, err
	}
	if err != nil {
		return nil, cur, err
	}
	metrics.RecordRanking()
	return standings, cur, nil
}

// Summary returns the league headline numbers for day.
func (s *Service) Summary(ctx context.Context, day int) (ranking.Summary, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return ranking.Summary{}, err
	}
	standings, snap, err := s.rank(r, resolve(r, day))
	if err != nil {
		return ranking.Summary{}, err
	}
	return ranking.Summarize(snap, standings)
}

// Players returns cumulative points per player up to day, highest first.
// A non-empty owner restricts the list to that owner's squad.
func (s *Service) Players(ctx context.Context, day int, owner string) ([]scoring.PlayerPoints, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	if owner != "" && len(r.PlayersOf(owner)) == 0 {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownOwner, owner)
	}
	snap, err := s.cumulative(r, resolve(r, day))
	if err != nil {
		return nil, err
	}

	out := make([]scoring.PlayerPoints, 0, snap.Len())
	for _, e := range snap.Entries {
		if owner == "" || e.Owner == owner {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out, nil
}

// Trend returns each owner's cumulative total for every known day.
func (s *Service) Trend(ctx context.Context) (map[string][]trend.Point, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	points, err := trend.Build(s.scorer, r, r.Days())
	metrics.RecordTrendLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		return nil, err
	}
	s.log().Debug(ctx, "trend built", logger.Int("points", len(points)))
	return trend.Series(points), nil
}

// Replacements lists eligible replacements for a ruled-out player, using
// cumulative points up to day.
func (s *Service) Replacements(ctx context.Context, owner, player string, day int) (replacement.Result, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return replacement.Result{}, err
	}
	snap, err := s.cumulative(r, resolve(r, day))
	if err != nil {
		return replacement.Result{}, err
	}

	res, err := s.replacer.Find(r, snap, owner, player)
	if err != nil {
		metrics.RecordReplacementQuery("", "error")
		s.log().Debug(ctx, "replacement lookup rejected",
			logger.String("owner", owner),
			logger.String("player", player),
			logger.Error(err),
		)
		return replacement.Result{}, err
	}

	outcome := "ok"
	if len(res.Candidates) == 0 {
		outcome = "empty"
	}
	metrics.RecordReplacementQuery(string(res.Branch), outcome)
	s.log().Debug(ctx, "replacement lookup",
		logger.String("owner", owner),
		logger.String("player", player),
		logger.String("branch", string(res.Branch)),
		logger.Int("candidates", len(res.Candidates)),
	)
	return res, nil
}

// Watchlist returns the players whose country plays on day.
func (s *Service) Watchlist(ctx context.Context, day int) (types.Watchlist, error) {
	r, err := s.roster(ctx)
	if err != nil {
		return types.Watchlist{}, err
	}
	day = resolve(r, day)
	return types.Watchlist{
		Day:       day,
		Countries: append([]string{}, s.schedule.Countries(day)...),
		Entries:   s.schedule.Watchlist(r, day),
	}, nil
}

// Captains returns a copy of the display captain table.
func (s *Service) Captains() map[string]types.CaptainPick {
	out := make(map[string]types.CaptainPick, len(s.captains))
	for owner, p := range s.captains {
		out[owner] = p
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"reloadIntervalSec": int(s.reloadInterval / time.Second),
		"groupStageLastDay": s.scorer.GroupStageLastDay(),
		"goroutines":        runtime.NumGoroutine(),
	}

	if s.started {
		if r, err := s.store.Roster(context.Background()); err == nil {
			stats["players"] = r.Len()
			stats["owners"] = len(r.Owners())
			stats["days"] = len(r.Days())
			stats["latestDay"] = r.MaxDay()
			metrics.UpdateRosterSize(r.Len(), len(r.Owners()), len(r.Days()))
		}
	}
	return stats
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}
