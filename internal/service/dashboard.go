package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"dealflow/internal/engine"
	"dealflow/internal/repository"
	"dealflow/internal/stream"
)

// DashboardService owns the snapshot-fetch/recompute cycle around the pure
// aggregation engine, plus the advisory freshness guard. The guard only
// suppresses redundant refetches (periodic refresh, a view regaining focus);
// local mutations invalidate the cache and the next Get recomputes.
type DashboardService struct {
	Repo   repository.Repository
	Engine *engine.Engine
	Logger *zap.Logger
	Hub    *stream.Hub

	// TTL is the freshness window; zero disables caching entirely.
	TTL time.Duration
	// Now is the injectable reference clock.
	Now func() time.Time

	mu    sync.Mutex
	cache map[int]cachedView
}

type cachedView struct {
	view       *engine.AggregateView
	computedAt time.Time
}

func (s *DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Get returns the aggregate view for the given year (<=0 means the current
// year). force bypasses the freshness guard. Recomputation is serialized, so
// a newer request always ends up with the newest snapshot's result.
func (s *DashboardService) Get(ctx context.Context, year int, force bool) (*engine.AggregateView, error) {
	if s == nil || s.Repo == nil || s.Engine == nil {
		return nil, fmt.Errorf("dashboard service not configured")
	}
	ref := s.now()
	if year <= 0 {
		year = ref.Year()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.TTL > 0 {
		if cached, ok := s.cache[year]; ok && ref.Sub(cached.computedAt) < s.TTL {
			return cached.view, nil
		}
	}

	view, err := s.computeLocked(ctx, year, ref)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Refresh recomputes unconditionally. Used by the cron schedule and by the
// force query parameter.
func (s *DashboardService) Refresh(ctx context.Context, year int) (*engine.AggregateView, error) {
	return s.Get(ctx, year, true)
}

// Invalidate drops every cached view. Every local mutation (create, edit,
// delete, status change, goal upsert) calls this; the freshness guard must
// never mask a mutation.
func (s *DashboardService) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

func (s *DashboardService) computeLocked(ctx context.Context, year int, ref time.Time) (*engine.AggregateView, error) {
	opps, err := s.Repo.ListAllOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load opportunities: %w", err)
	}
	goal, err := s.Repo.GetGoalByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}

	view, err := s.Engine.Aggregate(opps, goal, year, ref)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	view.ComputedAt = ref

	if s.cache == nil {
		s.cache = map[int]cachedView{}
	}
	s.cache[year] = cachedView{view: view, computedAt: ref}

	if s.Hub != nil {
		s.Hub.Publish(view)
	}
	if s.Logger != nil {
		s.Logger.Debug("dashboard recomputed",
			zap.Int("year", year),
			zap.Int("opportunities", len(opps)),
			zap.Bool("goal_defined", view.GoalDefined))
	}

	return view, nil
}
