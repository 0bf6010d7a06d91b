// Package engine derives the dashboard aggregates from an in-memory snapshot
// of opportunities and the annual goal. Every function is deterministic and
// side-effect free: no I/O, no clock reads, the reference date is injected.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageSummary is the per-stage header of the pipeline view: how many deals
// sit in the stage and the sum of their stored contract values.
type StageSummary struct {
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// PipelineSummary holds one StageSummary per pipeline stage.
type PipelineSummary struct {
	Negotiation     StageSummary `json:"negotiation"`
	FormalAgreement StageSummary `json:"formal_agreement"`
	SignedContract  StageSummary `json:"signed_contract"`
}

// MonthlyContribution is the component breakdown of one opportunity's value,
// attributed in full to its expected close month.
type MonthlyContribution struct {
	Setup     decimal.Decimal `json:"setup"`
	Recurring decimal.Decimal `json:"recurring"`
	Billing   decimal.Decimal `json:"billing"`
}

func (m MonthlyContribution) Total() decimal.Decimal {
	return m.Setup.Add(m.Recurring).Add(m.Billing)
}

// CompositionRow is one month of the stacked revenue-composition chart.
// It covers every stage: the chart answers "what mix is expected to close
// when", signed or not.
type CompositionRow struct {
	Month     int             `json:"month"`
	Setup     decimal.Decimal `json:"setup"`
	Recurring decimal.Decimal `json:"recurring"`
	Billing   decimal.Decimal `json:"billing"`
}

// QuarterCard is one quarter of the target-vs-realized cards. Progress is
// uncapped so over-target quarters read above 100.
type QuarterCard struct {
	Quarter     int             `json:"quarter"`
	Target      decimal.Decimal `json:"target"`
	Realized    decimal.Decimal `json:"realized"`
	ProgressPct float64         `json:"progress_pct"`
	Current     bool            `json:"current"`
}

// RoadmapRow is one month of the full-year roadmap table.
type RoadmapRow struct {
	Month              int             `json:"month"`
	Target             decimal.Decimal `json:"target"`
	Realized           decimal.Decimal `json:"realized"`
	ProgressPct        float64         `json:"progress_pct"`
	CumulativeRealized decimal.Decimal `json:"cumulative_realized"`
}

// RoadmapTotals is the annual totals row under the roadmap.
type RoadmapTotals struct {
	Target      decimal.Decimal `json:"target"`
	Realized    decimal.Decimal `json:"realized"`
	ProgressPct float64         `json:"progress_pct"`
}

// AggregateView is the full dashboard aggregate for one reporting year.
// GoalDefined=false marks the "define your goal" state: realized figures are
// still present, every target-relative percentage is zero.
type AggregateView struct {
	Year        int  `json:"year"`
	GoalDefined bool `json:"goal_defined"`

	Stages              PipelineSummary `json:"stages"`
	RealizedTotal       decimal.Decimal `json:"realized_total"`
	Gap                 decimal.Decimal `json:"gap"`
	RealizedProgressPct float64         `json:"realized_progress_pct"`
	YearProgressPct     float64         `json:"year_progress_pct"`

	Composition []CompositionRow `json:"composition"`
	Quarters    []QuarterCard    `json:"quarters"`
	Roadmap     []RoadmapRow     `json:"roadmap"`
	Totals      RoadmapTotals    `json:"totals"`

	ReferenceDate time.Time `json:"reference_date"`
	ComputedAt    time.Time `json:"computed_at"`
}
