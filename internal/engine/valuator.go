package engine

import (
	"github.com/shopspring/decimal"

	"dealflow/internal/config"
	"dealflow/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// Valuator converts one opportunity's optional revenue components into a
// single month-indexed contribution in the reporting currency.
type Valuator struct {
	cfg config.ValuationConfig
}

func NewValuator(cfg config.ValuationConfig) *Valuator {
	if cfg.DefaultRecurringMonths <= 0 {
		cfg.DefaultRecurringMonths = 24
	}
	if cfg.DefaultDolarRate <= 0 {
		cfg.DefaultDolarRate = 5.30
	}
	if cfg.DefaultTotalDiscountPct <= 0 {
		cfg.DefaultTotalDiscountPct = 13
	}
	if cfg.DefaultClientDiscountPct <= 0 {
		cfg.DefaultClientDiscountPct = 4
	}
	if cfg.BillingHorizonMonths <= 0 {
		cfg.BillingHorizonMonths = 24
	}
	return &Valuator{cfg: cfg}
}

// Valuate never fails: unset amounts contribute zero, unset defaults fall
// back to the configured values. A flag without its amount yields zero for
// that component.
func (v *Valuator) Valuate(o models.Opportunity) MonthlyContribution {
	out := MonthlyContribution{
		Setup:     decimal.Zero,
		Recurring: decimal.Zero,
		Billing:   decimal.Zero,
	}

	if o.HasSetup {
		out.Setup = o.SetupValue
	}

	if o.HasRecurring {
		months := v.cfg.DefaultRecurringMonths
		if o.RecurringMonthsDuration != nil && *o.RecurringMonthsDuration > 0 {
			months = *o.RecurringMonthsDuration
		}
		// Full contract-lifetime value attributed to the close month,
		// not amortized across months.
		out.Recurring = o.RecurringMonthlyValue.Mul(decimal.NewFromInt(int64(months)))
	}

	if o.HasBilling {
		rate := decimal.NewFromFloat(v.cfg.DefaultDolarRate)
		if o.BillingDolarRate != nil && o.BillingDolarRate.IsPositive() {
			rate = *o.BillingDolarRate
		}
		totalDiscount := decimal.NewFromFloat(v.cfg.DefaultTotalDiscountPct)
		if o.BillingTotalDiscountPct != nil {
			totalDiscount = *o.BillingTotalDiscountPct
		}
		clientDiscount := decimal.NewFromFloat(v.cfg.DefaultClientDiscountPct)
		if o.BillingClientDiscountPct != nil {
			clientDiscount = *o.BillingClientDiscountPct
		}

		// Margin percent is the slice of the negotiated discount retained
		// after passing the client-specific discount through.
		marginPct := totalDiscount.Sub(clientDiscount).Div(oneHundred)
		monthlyMarginBRL := o.BillingMonthlyUSD.Mul(marginPct).Mul(rate)
		// Fixed horizon regardless of the recurring contract duration.
		out.Billing = monthlyMarginBRL.Mul(decimal.NewFromInt(int64(v.cfg.BillingHorizonMonths)))
	}

	return out
}
