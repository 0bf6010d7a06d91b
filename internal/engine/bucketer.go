package engine

import (
	"github.com/shopspring/decimal"

	"dealflow/internal/models"
)

// QuarterOf maps a calendar month (1-12) to its quarter (1-4).
func QuarterOf(month int) int {
	return (month-1)/3 + 1
}

// CompositionByMonth buckets every opportunity's valuated components into its
// expected close month of the given year, regardless of pipeline stage.
// Deals without a close date contribute to no bucket.
func (v *Valuator) CompositionByMonth(opps []models.Opportunity, year int) []CompositionRow {
	rows := make([]CompositionRow, 12)
	for i := range rows {
		rows[i] = CompositionRow{
			Month:     i + 1,
			Setup:     decimal.Zero,
			Recurring: decimal.Zero,
			Billing:   decimal.Zero,
		}
	}

	for _, o := range opps {
		if o.ExpectedCloseDate == nil || o.ExpectedCloseDate.Year() != year {
			continue
		}
		c := v.Valuate(o)
		i := int(o.ExpectedCloseDate.Month()) - 1
		rows[i].Setup = rows[i].Setup.Add(c.Setup)
		rows[i].Recurring = rows[i].Recurring.Add(c.Recurring)
		rows[i].Billing = rows[i].Billing.Add(c.Billing)
	}

	return rows
}

// RealizedByMonth sums the stored contract value of signed deals per close
// month of the given year.
func RealizedByMonth(opps []models.Opportunity, year int) []decimal.Decimal {
	months := make([]decimal.Decimal, 12)
	for i := range months {
		months[i] = decimal.Zero
	}

	for _, o := range opps {
		if o.Status != models.StatusSignedContract {
			continue
		}
		if o.ExpectedCloseDate == nil || o.ExpectedCloseDate.Year() != year {
			continue
		}
		i := int(o.ExpectedCloseDate.Month()) - 1
		months[i] = months[i].Add(o.CalculatedTCVBRL)
	}

	return months
}

// RealizedByQuarter folds the monthly realized sums into the four quarters.
func RealizedByQuarter(opps []models.Opportunity, year int) []decimal.Decimal {
	quarters := make([]decimal.Decimal, 4)
	for i := range quarters {
		quarters[i] = decimal.Zero
	}

	for i, m := range RealizedByMonth(opps, year) {
		q := QuarterOf(i + 1)
		quarters[q-1] = quarters[q-1].Add(m)
	}

	return quarters
}
