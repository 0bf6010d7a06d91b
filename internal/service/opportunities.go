package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"dealflow/internal/models"
	"dealflow/internal/repository"
)

// OpportunityService applies the mutation entry points of the pipeline.
// Every write invalidates the dashboard cache so the next aggregate view
// reflects the change immediately.
type OpportunityService struct {
	Repo      repository.Repository
	Dashboard *DashboardService
}

func (s *OpportunityService) validate(o *models.Opportunity) error {
	if o == nil {
		return fmt.Errorf("opportunity is required")
	}
	if strings.TrimSpace(o.ClientName) == "" {
		return fmt.Errorf("client_name is required")
	}
	if o.Status == "" {
		o.Status = models.StatusNegotiation
	}
	if !o.Status.Valid() {
		return fmt.Errorf("unknown status %q", o.Status)
	}
	if o.CalculatedTCVBRL.IsNegative() {
		return fmt.Errorf("calculated_tcv_brl must not be negative")
	}
	if o.ProbabilityPercent != nil && (*o.ProbabilityPercent < 0 || *o.ProbabilityPercent > 100) {
		return fmt.Errorf("probability_percent must be between 0 and 100")
	}
	if o.RecurringMonthsDuration != nil && *o.RecurringMonthsDuration <= 0 {
		return fmt.Errorf("recurring_months_duration must be positive")
	}
	return nil
}

func (s *OpportunityService) Create(ctx context.Context, o *models.Opportunity) error {
	if err := s.validate(o); err != nil {
		return err
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if err := s.Repo.InsertOpportunity(ctx, o); err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}
	s.Dashboard.Invalidate()
	return nil
}

func (s *OpportunityService) Update(ctx context.Context, o *models.Opportunity) error {
	if o == nil || o.ID == uuid.Nil {
		return fmt.Errorf("opportunity id is required")
	}
	if err := s.validate(o); err != nil {
		return err
	}
	existing, err := s.Repo.GetOpportunityByID(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("load opportunity: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}
	o.CreatedAt = existing.CreatedAt
	if err := s.Repo.UpdateOpportunity(ctx, o); err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	s.Dashboard.Invalidate()
	return nil
}

// Delete removes the deal from every aggregation immediately.
func (s *OpportunityService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.Repo.DeleteOpportunity(ctx, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.Dashboard.Invalidate()
	return nil
}

// ChangeStatus moves a deal to any stage, including backwards. The only
// check is that the target stage exists; transition ordering is not enforced.
func (s *OpportunityService) ChangeStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	affected, err := s.Repo.UpdateOpportunityStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.Dashboard.Invalidate()
	return nil
}
