package engine

import (
	"github.com/shopspring/decimal"

	"dealflow/internal/models"
)

// ClassifyStages partitions the snapshot into the three pipeline stages and
// sums the stored contract value per stage. Deals without a close date are
// still counted here; only the time-bucketed views exclude them.
func ClassifyStages(opps []models.Opportunity) PipelineSummary {
	sum := PipelineSummary{
		Negotiation:     StageSummary{TotalValue: decimal.Zero},
		FormalAgreement: StageSummary{TotalValue: decimal.Zero},
		SignedContract:  StageSummary{TotalValue: decimal.Zero},
	}

	for _, o := range opps {
		switch o.Status {
		case models.StatusNegotiation:
			sum.Negotiation.Count++
			sum.Negotiation.TotalValue = sum.Negotiation.TotalValue.Add(o.CalculatedTCVBRL)
		case models.StatusFormalAgreement:
			sum.FormalAgreement.Count++
			sum.FormalAgreement.TotalValue = sum.FormalAgreement.TotalValue.Add(o.CalculatedTCVBRL)
		case models.StatusSignedContract:
			sum.SignedContract.Count++
			sum.SignedContract.TotalValue = sum.SignedContract.TotalValue.Add(o.CalculatedTCVBRL)
		}
	}

	return sum
}

// Gap is the remaining distance to the annual target, floored at zero.
func Gap(target, realized decimal.Decimal) decimal.Decimal {
	gap := target.Sub(realized)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// RealizedProgressPct is realized/target as a percentage, capped at 100 for
// display. Zero or absent target short-circuits to 0.
func RealizedProgressPct(target, realized decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	pct := realized.Div(target).Mul(oneHundred).InexactFloat64()
	if pct > 100 {
		return 100
	}
	return pct
}
