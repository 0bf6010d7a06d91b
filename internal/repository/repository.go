package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dealflow/internal/models"
)

// ListOpportunitiesParams filters and pages the opportunity listing.
// Pointer fields are "no filter" when nil.
type ListOpportunitiesParams struct {
	Limit      int
	Offset     int
	Status     *models.Status
	Year       *int
	ClientName *string
	OrderBy    string
	Asc        *bool
}

// Repository is the persistence boundary. The aggregation engine never sees
// it: callers fetch a snapshot here and hand plain slices to the engine.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Opportunities
	InsertOpportunity(ctx context.Context, item *models.Opportunity) error
	UpdateOpportunity(ctx context.Context, item *models.Opportunity) error
	DeleteOpportunity(ctx context.Context, id uuid.UUID) (int64, error)
	GetOpportunityByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error)
	ListOpportunities(ctx context.Context, params ListOpportunitiesParams) ([]models.Opportunity, error)
	CountOpportunities(ctx context.Context, params ListOpportunitiesParams) (int64, error)
	UpdateOpportunityStatus(ctx context.Context, id uuid.UUID, status models.Status) (int64, error)
	ListAllOpportunities(ctx context.Context) ([]models.Opportunity, error)

	// Goals
	GetGoalByYear(ctx context.Context, year int) (*models.Goal, error)
	UpsertGoal(ctx context.Context, item *models.Goal) error
	ListGoals(ctx context.Context) ([]models.Goal, error)
}
