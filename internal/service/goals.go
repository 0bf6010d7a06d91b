package service

import (
	"context"
	"errors"
	"fmt"

	"dealflow/internal/models"
	"dealflow/internal/repository"
)

// ErrNotFound marks a mutation against a record that no longer exists.
var ErrNotFound = errors.New("record not found")

// GoalService manages the one-goal-per-year target records.
type GoalService struct {
	Repo      repository.Repository
	Dashboard *DashboardService
}

func (s *GoalService) Upsert(ctx context.Context, goal *models.Goal) error {
	if goal == nil {
		return fmt.Errorf("goal is required")
	}
	if goal.Year < 2000 || goal.Year > 2200 {
		return fmt.Errorf("year %d out of range", goal.Year)
	}
	for _, target := range []struct {
		name  string
		value interface{ IsNegative() bool }
	}{
		{"target_tcv_annual", goal.TargetTCVAnnual},
		{"target_q1", goal.TargetQ1},
		{"target_q2", goal.TargetQ2},
		{"target_q3", goal.TargetQ3},
		{"target_q4", goal.TargetQ4},
	} {
		if target.value.IsNegative() {
			return fmt.Errorf("%s must not be negative", target.name)
		}
	}

	if err := s.Repo.UpsertGoal(ctx, goal); err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	s.Dashboard.Invalidate()
	return nil
}

func (s *GoalService) GetByYear(ctx context.Context, year int) (*models.Goal, error) {
	return s.Repo.GetGoalByYear(ctx, year)
}

func (s *GoalService) List(ctx context.Context) ([]models.Goal, error) {
	return s.Repo.ListGoals(ctx)
}
