package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"dealflow/internal/models"
)

func closing(status models.Status, tcv float64, date string) models.Opportunity {
	o := opp(status, tcv)
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	o.ExpectedCloseDate = &d
	return o
}

func TestQuarterOf(t *testing.T) {
	want := map[int]int{1: 1, 2: 1, 3: 1, 4: 2, 5: 2, 6: 2, 7: 3, 8: 3, 9: 3, 10: 4, 11: 4, 12: 4}
	for month, q := range want {
		if got := QuarterOf(month); got != q {
			t.Fatalf("QuarterOf(%d)=%d want %d", month, got, q)
		}
	}
}

func TestCompositionByMonth_IncludesAllStages(t *testing.T) {
	v := newTestValuator()
	unsigned := closing(models.StatusNegotiation, 0, "2025-03-10")
	unsigned.HasSetup = true
	unsigned.SetupValue = dec(5000)
	signed := closing(models.StatusSignedContract, 0, "2025-03-20")
	signed.HasRecurring = true
	signed.RecurringMonthlyValue = dec(100)

	rows := v.CompositionByMonth([]models.Opportunity{unsigned, signed}, 2025)
	if len(rows) != 12 {
		t.Fatalf("rows=%d want 12", len(rows))
	}
	march := rows[2]
	if march.Setup.Cmp(dec(5000)) != 0 {
		t.Fatalf("march setup=%s want 5000", march.Setup)
	}
	if march.Recurring.Cmp(dec(2400)) != 0 {
		t.Fatalf("march recurring=%s want 2400", march.Recurring)
	}
}

func TestCompositionByMonth_FiltersYearAndMissingDate(t *testing.T) {
	v := newTestValuator()
	otherYear := closing(models.StatusNegotiation, 0, "2024-03-10")
	otherYear.HasSetup = true
	otherYear.SetupValue = dec(5000)
	noDate := models.Opportunity{ID: uuid.New(), HasSetup: true, SetupValue: dec(900)}

	rows := v.CompositionByMonth([]models.Opportunity{otherYear, noDate}, 2025)
	for _, row := range rows {
		if !row.Setup.IsZero() || !row.Recurring.IsZero() || !row.Billing.IsZero() {
			t.Fatalf("month %d not empty: %+v", row.Month, row)
		}
	}
}

func TestRealizedByMonth_SignedOnly(t *testing.T) {
	opps := []models.Opportunity{
		closing(models.StatusSignedContract, 300000, "2025-02-15"),
		closing(models.StatusNegotiation, 100000, "2025-02-20"),
		closing(models.StatusFormalAgreement, 50000, "2025-02-25"),
		closing(models.StatusSignedContract, 40000, "2024-02-01"),
	}

	months := RealizedByMonth(opps, 2025)
	if months[1].Cmp(dec(300000)) != 0 {
		t.Fatalf("february=%s want 300000", months[1])
	}
	for i, m := range months {
		if i != 1 && !m.IsZero() {
			t.Fatalf("month %d=%s want 0", i+1, m)
		}
	}
}

func TestRealizedByQuarter_FoldsMonths(t *testing.T) {
	opps := []models.Opportunity{
		closing(models.StatusSignedContract, 100, "2025-01-05"),
		closing(models.StatusSignedContract, 200, "2025-03-30"),
		closing(models.StatusSignedContract, 400, "2025-10-01"),
	}

	quarters := RealizedByQuarter(opps, 2025)
	if quarters[0].Cmp(dec(300)) != 0 {
		t.Fatalf("q1=%s want 300", quarters[0])
	}
	if !quarters[1].IsZero() || !quarters[2].IsZero() {
		t.Fatalf("q2=%s q3=%s want 0", quarters[1], quarters[2])
	}
	if quarters[3].Cmp(dec(400)) != 0 {
		t.Fatalf("q4=%s want 400", quarters[3])
	}
}

func TestRealizedByMonth_NoCloseDateExcluded(t *testing.T) {
	noDate := opp(models.StatusSignedContract, 999)
	months := RealizedByMonth([]models.Opportunity{noDate}, 2025)
	for i, m := range months {
		if !m.IsZero() {
			t.Fatalf("month %d=%s want 0 for dateless deal", i+1, m)
		}
	}
	// Still counted in stage totals.
	sum := ClassifyStages([]models.Opportunity{noDate})
	if sum.SignedContract.TotalValue.Cmp(dec(999)) != 0 {
		t.Fatalf("signed total=%s want 999", sum.SignedContract.TotalValue)
	}
}
