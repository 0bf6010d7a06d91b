package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"dealflow/internal/models"
)

var three = decimal.NewFromInt(3)

// YearProgressPct is the elapsed-day fraction of the reference year as a
// percentage, capped at 100. It measures time, not revenue: comparing it to
// the realized progress tells whether the pipeline is ahead of or behind
// schedule.
func YearProgressPct(ref time.Time) float64 {
	total := 365.0
	if isLeapYear(ref.Year()) {
		total = 366
	}
	pct := float64(ref.YearDay()) / total * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// round1 rounds to one decimal place, the display precision of roadmap
// progress figures.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// splitQuarterTarget splits a quarter target into three equal monthly parts,
// rounded to cents. The third month absorbs the rounding remainder so the
// three parts always sum back to the quarter target exactly.
func splitQuarterTarget(q decimal.Decimal) [3]decimal.Decimal {
	part := q.Div(three).Round(2)
	return [3]decimal.Decimal{part, part, q.Sub(part.Mul(decimal.NewFromInt(2)))}
}

// buildQuarterCards combines quarter targets with realized-by-quarter sums.
// The current quarter follows the reference month, independent of the
// displayed year.
func buildQuarterCards(goal *models.Goal, realized []decimal.Decimal, ref time.Time) []QuarterCard {
	current := QuarterOf(int(ref.Month()))
	cards := make([]QuarterCard, 4)
	for q := 1; q <= 4; q++ {
		card := QuarterCard{
			Quarter:  q,
			Target:   decimal.Zero,
			Realized: realized[q-1],
			Current:  q == current,
		}
		if goal != nil {
			card.Target = goal.TargetForQuarter(q)
		}
		if card.Target.IsPositive() {
			card.ProgressPct = card.Realized.Div(card.Target).Mul(oneHundred).InexactFloat64()
		}
		cards[q-1] = card
	}
	return cards
}

// buildRoadmap produces the twelve target-vs-realized rows with running
// realized totals, plus the annual totals row.
func buildRoadmap(goal *models.Goal, realizedByMonth []decimal.Decimal) ([]RoadmapRow, RoadmapTotals) {
	rows := make([]RoadmapRow, 12)
	totals := RoadmapTotals{Target: decimal.Zero, Realized: decimal.Zero}
	cumulative := decimal.Zero

	for q := 1; q <= 4; q++ {
		var parts [3]decimal.Decimal
		if goal != nil {
			parts = splitQuarterTarget(goal.TargetForQuarter(q))
		}
		for i := 0; i < 3; i++ {
			month := (q-1)*3 + i + 1
			row := RoadmapRow{
				Month:    month,
				Target:   parts[i],
				Realized: realizedByMonth[month-1],
			}
			if row.Target.IsPositive() {
				row.ProgressPct = round1(row.Realized.Div(row.Target).Mul(oneHundred).InexactFloat64())
			}
			cumulative = cumulative.Add(row.Realized)
			row.CumulativeRealized = cumulative
			rows[month-1] = row

			totals.Target = totals.Target.Add(row.Target)
			totals.Realized = totals.Realized.Add(row.Realized)
		}
	}

	if totals.Target.IsPositive() {
		totals.ProgressPct = round1(totals.Realized.Div(totals.Target).Mul(oneHundred).InexactFloat64())
	}

	return rows, totals
}
