package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status is the pipeline stage of an opportunity. Transitions are free-form:
// any stage may move to any other stage by explicit user action.
type Status string

const (
	StatusNegotiation     Status = "negotiation"
	StatusFormalAgreement Status = "formal_agreement"
	StatusSignedContract  Status = "signed_contract"
)

// Statuses lists every pipeline stage in display order.
func Statuses() []Status {
	return []Status{StatusNegotiation, StatusFormalAgreement, StatusSignedContract}
}

func (s Status) Valid() bool {
	switch s {
	case StatusNegotiation, StatusFormalAgreement, StatusSignedContract:
		return true
	}
	return false
}

// Opportunity is one sales deal moving through the pipeline.
// Money-like values are stored as numeric to avoid float errors.
type Opportunity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientName string    `gorm:"type:varchar(200);not null" json:"client_name"`
	Status     Status    `gorm:"type:varchar(20);not null;index;default:'negotiation'" json:"status"`

	// CalculatedTCVBRL is the stored total contract value and is authoritative
	// for stage totals. It is not required to reconcile with the component
	// breakdown below; the composition chart is derived independently.
	CalculatedTCVBRL decimal.Decimal `gorm:"column:calculated_tcv_brl;type:numeric(30,10);not null;default:0" json:"calculated_tcv_brl"`

	HasSetup   bool            `gorm:"not null;default:false" json:"has_setup"`
	SetupValue decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"setup_value"`

	HasRecurring            bool            `gorm:"not null;default:false" json:"has_recurring"`
	RecurringMonthlyValue   decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"recurring_monthly_value"`
	RecurringMonthsDuration *int            `json:"recurring_months_duration,omitempty"`

	HasBilling               bool             `gorm:"not null;default:false" json:"has_billing"`
	BillingMonthlyUSD        decimal.Decimal  `gorm:"column:billing_monthly_usd;type:numeric(30,10);not null;default:0" json:"billing_monthly_usd"`
	BillingDolarRate         *decimal.Decimal `gorm:"type:numeric(20,10)" json:"billing_dolar_rate,omitempty"`
	BillingTotalDiscountPct  *decimal.Decimal `gorm:"column:billing_total_discount_percent;type:numeric(20,10)" json:"billing_total_discount_percent,omitempty"`
	BillingClientDiscountPct *decimal.Decimal `gorm:"column:billing_client_discount_percent;type:numeric(20,10)" json:"billing_client_discount_percent,omitempty"`

	ExpectedCloseDate *time.Time `gorm:"type:date;index" json:"expected_close_date,omitempty"`

	// ProbabilityPercent is an explicit win probability (0-100). When absent,
	// a probability is inferred from Status for display.
	ProbabilityPercent *float64 `json:"probability_percent,omitempty"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}
