package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealflow/internal/config"
	"dealflow/internal/engine"
	"dealflow/internal/models"
)

func newTestDashboard(repo *stubRepo) *DashboardService {
	now := time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)
	return &DashboardService{
		Repo:   repo,
		Engine: engine.New(config.ValuationConfig{}, config.ProbabilityConfig{Negotiation: 30, FormalAgreement: 70, SignedContract: 100}),
		TTL:    60 * time.Second,
		Now:    func() time.Time { return now },
	}
}

func seedScenario(t *testing.T, repo *stubRepo) {
	t.Helper()
	closeDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertOpportunity(context.Background(), &models.Opportunity{
		ID:                uuid.New(),
		ClientName:        "Acme",
		Status:            models.StatusSignedContract,
		CalculatedTCVBRL:  decimal.NewFromInt(300000),
		ExpectedCloseDate: &closeDate,
	}))
	require.NoError(t, repo.UpsertGoal(context.Background(), &models.Goal{
		ID:              uuid.New(),
		Year:            2025,
		TargetTCVAnnual: decimal.NewFromInt(1200000),
		TargetQ1:        decimal.NewFromInt(300000),
	}))
}

func TestDashboardGet_ComputesScenario(t *testing.T) {
	repo := newStubRepo()
	seedScenario(t, repo)
	svc := newTestDashboard(repo)

	view, err := svc.Get(context.Background(), 2025, false)
	require.NoError(t, err)
	assert.True(t, view.GoalDefined)
	assert.Equal(t, 0, view.RealizedTotal.Cmp(decimal.NewFromInt(300000)))
	assert.Equal(t, 0, view.Gap.Cmp(decimal.NewFromInt(900000)))
	assert.Equal(t, 25.0, view.RealizedProgressPct)
	assert.Equal(t, 100.0, view.Quarters[0].ProgressPct)
	assert.Equal(t, 300.0, view.Roadmap[1].ProgressPct)
}

func TestDashboardGet_FreshnessGuardSuppressesRefetch(t *testing.T) {
	repo := newStubRepo()
	seedScenario(t, repo)
	svc := newTestDashboard(repo)

	_, err := svc.Get(context.Background(), 2025, false)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), 2025, false)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.snapshotCalls(), "second get within the TTL must hit the cache")

	_, err = svc.Get(context.Background(), 2025, true)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.snapshotCalls(), "force must bypass the guard")
}

func TestDashboardGet_MutationInvalidatesCache(t *testing.T) {
	repo := newStubRepo()
	seedScenario(t, repo)
	svc := newTestDashboard(repo)
	opps := &OpportunityService{Repo: repo, Dashboard: svc}

	before, err := svc.Get(context.Background(), 2025, false)
	require.NoError(t, err)
	require.Equal(t, 0, before.RealizedTotal.Cmp(decimal.NewFromInt(300000)))

	require.NoError(t, opps.Create(context.Background(), &models.Opportunity{
		ClientName:       "Globex",
		Status:           models.StatusSignedContract,
		CalculatedTCVBRL: decimal.NewFromInt(100000),
	}))

	after, err := svc.Get(context.Background(), 2025, false)
	require.NoError(t, err)
	assert.Equal(t, 0, after.RealizedTotal.Cmp(decimal.NewFromInt(400000)),
		"mutation must be visible despite the freshness TTL")
}

func TestDashboardGet_NoGoalView(t *testing.T) {
	repo := newStubRepo()
	svc := newTestDashboard(repo)

	view, err := svc.Get(context.Background(), 2025, false)
	require.NoError(t, err)
	assert.False(t, view.GoalDefined)
	assert.Zero(t, view.RealizedProgressPct)
	assert.True(t, view.Gap.IsZero())
	assert.Len(t, view.Roadmap, 12)
	assert.Len(t, view.Quarters, 4)
}

func TestDashboardGet_DefaultsToReferenceYear(t *testing.T) {
	repo := newStubRepo()
	svc := newTestDashboard(repo)

	view, err := svc.Get(context.Background(), 0, false)
	require.NoError(t, err)
	assert.Equal(t, 2025, view.Year)
	assert.Equal(t, time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC), view.ComputedAt)
}
