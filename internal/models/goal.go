package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is the annual revenue target. At most one exists per reporting year.
// Quarter targets are set independently and are not required to sum to the
// annual target.
type Goal struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Year int       `gorm:"not null;uniqueIndex" json:"year"`

	TargetTCVAnnual decimal.Decimal `gorm:"column:target_tcv_annual;type:numeric(30,10);not null;default:0" json:"target_tcv_annual"`
	TargetQ1        decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"target_q1"`
	TargetQ2        decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"target_q2"`
	TargetQ3        decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"target_q3"`
	TargetQ4        decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"target_q4"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

// TargetForQuarter returns the target for quarter 1-4, zero otherwise.
func (g Goal) TargetForQuarter(q int) decimal.Decimal {
	switch q {
	case 1:
		return g.TargetQ1
	case 2:
		return g.TargetQ2
	case 3:
		return g.TargetQ3
	case 4:
		return g.TargetQ4
	}
	return decimal.Zero
}
