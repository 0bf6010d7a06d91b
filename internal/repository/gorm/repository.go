package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dealflow/internal/models"
	"dealflow/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Opportunities ----------------------------------------------------------

func (s *Store) InsertOpportunity(ctx context.Context, item *models.Opportunity) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateOpportunity(ctx context.Context, item *models.Opportunity) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	// Save writes every column so cleared optional fields persist as NULL.
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteOpportunity(ctx context.Context, id uuid.UUID) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Opportunity{})
	return res.RowsAffected, res.Error
}

func (s *Store) GetOpportunityByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Opportunity
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) applyOpportunityFilters(query *gorm.DB, params repository.ListOpportunitiesParams) *gorm.DB {
	if params.Status != nil && strings.TrimSpace(string(*params.Status)) != "" {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Year != nil && *params.Year > 0 {
		start := time.Date(*params.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("expected_close_date >= ? AND expected_close_date < ?", start, start.AddDate(1, 0, 0))
	}
	if params.ClientName != nil && strings.TrimSpace(*params.ClientName) != "" {
		query = query.Where("client_name ILIKE ?", "%"+strings.TrimSpace(*params.ClientName)+"%")
	}
	return query
}

func (s *Store) ListOpportunities(ctx context.Context, params repository.ListOpportunitiesParams) ([]models.Opportunity, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyOpportunityFilters(s.db.WithContext(ctx).Model(&models.Opportunity{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Opportunity
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountOpportunities(ctx context.Context, params repository.ListOpportunitiesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.applyOpportunityFilters(s.db.WithContext(ctx).Model(&models.Opportunity{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateOpportunityStatus(ctx context.Context, id uuid.UUID, status models.Status) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Opportunity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// ListAllOpportunities loads the full snapshot the aggregation engine
// consumes. Pipeline sizes are bounded (hundreds), so no paging.
func (s *Store) ListAllOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Opportunity
	if err := s.db.WithContext(ctx).
		Model(&models.Opportunity{}).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Goals ------------------------------------------------------------------

func (s *Store) GetGoalByYear(ctx context.Context, year int) (*models.Goal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Goal
	err := s.db.WithContext(ctx).First(&item, "year = ?", year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertGoal(ctx context.Context, item *models.Goal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target_tcv_annual",
			"target_q1",
			"target_q2",
			"target_q3",
			"target_q4",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListGoals(ctx context.Context) ([]models.Goal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Goal
	if err := s.db.WithContext(ctx).
		Model(&models.Goal{}).
		Order("year desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	dir := "desc"
	if asc != nil && *asc {
		dir = "asc"
	}
	return query.Order(column + " " + dir)
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
