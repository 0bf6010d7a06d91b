package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dealflow/internal/models"
	"dealflow/internal/repository"
)

// stubRepo is an in-memory repository.Repository used by service tests.
type stubRepo struct {
	mu            sync.Mutex
	opportunities map[uuid.UUID]models.Opportunity
	goals         map[int]models.Goal

	listSnapshotCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		opportunities: map[uuid.UUID]models.Opportunity{},
		goals:         map[int]models.Goal{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (s *stubRepo) InsertOpportunity(ctx context.Context, item *models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opportunities[item.ID] = *item
	return nil
}

func (s *stubRepo) UpdateOpportunity(ctx context.Context, item *models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opportunities[item.ID] = *item
	return nil
}

func (s *stubRepo) DeleteOpportunity(ctx context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.opportunities[id]; !ok {
		return 0, nil
	}
	delete(s.opportunities, id)
	return 1, nil
}

func (s *stubRepo) GetOpportunityByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.opportunities[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListOpportunities(ctx context.Context, params repository.ListOpportunitiesParams) ([]models.Opportunity, error) {
	return s.ListAllOpportunities(ctx)
}

func (s *stubRepo) CountOpportunities(ctx context.Context, params repository.ListOpportunitiesParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.opportunities)), nil
}

func (s *stubRepo) UpdateOpportunityStatus(ctx context.Context, id uuid.UUID, status models.Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.opportunities[id]
	if !ok {
		return 0, nil
	}
	item.Status = status
	s.opportunities[id] = item
	return 1, nil
}

func (s *stubRepo) ListAllOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listSnapshotCalls++
	items := make([]models.Opportunity, 0, len(s.opportunities))
	for _, item := range s.opportunities {
		items = append(items, item)
	}
	return items, nil
}

func (s *stubRepo) GetGoalByYear(ctx context.Context, year int) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if goal, ok := s.goals[year]; ok {
		return &goal, nil
	}
	return nil, nil
}

func (s *stubRepo) UpsertGoal(ctx context.Context, item *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[item.Year] = *item
	return nil
}

func (s *stubRepo) ListGoals(ctx context.Context) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		items = append(items, goal)
	}
	return items, nil
}

func (s *stubRepo) snapshotCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listSnapshotCalls
}
