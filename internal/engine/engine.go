package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dealflow/internal/config"
	"dealflow/internal/models"
)

// Engine assembles the full AggregateView from a snapshot. It holds only
// configuration; every call re-derives its output from its inputs.
type Engine struct {
	valuator    *Valuator
	probability config.ProbabilityConfig
}

func New(valuation config.ValuationConfig, probability config.ProbabilityConfig) *Engine {
	return &Engine{
		valuator:    NewValuator(valuation),
		probability: probability,
	}
}

func (e *Engine) Valuator() *Valuator {
	return e.valuator
}

// Aggregate computes the dashboard view for one reporting year. goal may be
// nil: that is the common "define your goal" state, not an error. The only
// failure mode is a structurally invalid snapshot (duplicate IDs), which is
// a programming error upstream.
func (e *Engine) Aggregate(opps []models.Opportunity, goal *models.Goal, year int, ref time.Time) (*AggregateView, error) {
	seen := make(map[uuid.UUID]struct{}, len(opps))
	for _, o := range opps {
		if _, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("duplicate opportunity id %s in snapshot", o.ID)
		}
		seen[o.ID] = struct{}{}
	}

	stages := ClassifyStages(opps)
	realizedTotal := stages.SignedContract.TotalValue

	realizedMonths := RealizedByMonth(opps, year)
	realizedQuarters := RealizedByQuarter(opps, year)

	view := &AggregateView{
		Year:          year,
		GoalDefined:   goal != nil,
		Stages:        stages,
		RealizedTotal: realizedTotal,
		Gap:           decimal.Zero,
		Composition:   e.valuator.CompositionByMonth(opps, year),
		Quarters:      buildQuarterCards(goal, realizedQuarters, ref),
		ReferenceDate: ref,
	}
	view.Roadmap, view.Totals = buildRoadmap(goal, realizedMonths)
	view.YearProgressPct = YearProgressPct(ref)

	if goal != nil {
		view.Gap = Gap(goal.TargetTCVAnnual, realizedTotal)
		view.RealizedProgressPct = RealizedProgressPct(goal.TargetTCVAnnual, realizedTotal)
	}

	return view, nil
}

// InferProbability returns the opportunity's explicit win probability, or the
// canonical stage mapping when none is set. Display only; never feeds totals.
func (e *Engine) InferProbability(o models.Opportunity) float64 {
	if o.ProbabilityPercent != nil {
		return *o.ProbabilityPercent
	}
	switch o.Status {
	case models.StatusFormalAgreement:
		return e.probability.FormalAgreement
	case models.StatusSignedContract:
		return e.probability.SignedContract
	default:
		return e.probability.Negotiation
	}
}
