package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dealflow/internal/models"
)

func opp(status models.Status, tcv float64) models.Opportunity {
	return models.Opportunity{
		ID:               uuid.New(),
		Status:           status,
		CalculatedTCVBRL: dec(tcv),
	}
}

func TestClassifyStages_PartitionAndTotals(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StatusNegotiation, 1000),
		opp(models.StatusNegotiation, 500),
		opp(models.StatusFormalAgreement, 2000),
		opp(models.StatusSignedContract, 300),
		opp(models.StatusSignedContract, 700),
	}

	sum := ClassifyStages(opps)
	if sum.Negotiation.Count != 2 || sum.Negotiation.TotalValue.Cmp(dec(1500)) != 0 {
		t.Fatalf("negotiation=%+v want count=2 total=1500", sum.Negotiation)
	}
	if sum.FormalAgreement.Count != 1 || sum.FormalAgreement.TotalValue.Cmp(dec(2000)) != 0 {
		t.Fatalf("formal=%+v want count=1 total=2000", sum.FormalAgreement)
	}
	if sum.SignedContract.Count != 2 || sum.SignedContract.TotalValue.Cmp(dec(1000)) != 0 {
		t.Fatalf("signed=%+v want count=2 total=1000", sum.SignedContract)
	}
}

func TestClassifyStages_OrderIndependentAndIdempotent(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StatusSignedContract, 300),
		opp(models.StatusNegotiation, 1000),
		opp(models.StatusSignedContract, 700),
	}
	reversed := []models.Opportunity{opps[2], opps[1], opps[0]}

	first := ClassifyStages(opps)
	second := ClassifyStages(opps)
	swapped := ClassifyStages(reversed)

	for _, got := range []PipelineSummary{second, swapped} {
		if got.SignedContract.TotalValue.Cmp(first.SignedContract.TotalValue) != 0 ||
			got.SignedContract.Count != first.SignedContract.Count {
			t.Fatalf("signed summary not stable: %+v vs %+v", got.SignedContract, first.SignedContract)
		}
	}
	if first.SignedContract.TotalValue.Cmp(dec(1000)) != 0 {
		t.Fatalf("realized=%s want 1000", first.SignedContract.TotalValue)
	}
}

func TestGap_FlooredAtZero(t *testing.T) {
	if g := Gap(dec(1000), dec(400)); g.Cmp(dec(600)) != 0 {
		t.Fatalf("gap=%s want 600", g)
	}
	if g := Gap(dec(1000), dec(5000)); !g.IsZero() {
		t.Fatalf("gap=%s want 0 when realized exceeds target", g)
	}
	if g := Gap(decimal.Zero, dec(100)); !g.IsZero() {
		t.Fatalf("gap=%s want 0 with zero target", g)
	}
}

func TestRealizedProgressPct(t *testing.T) {
	if p := RealizedProgressPct(dec(1200000), dec(300000)); p != 25 {
		t.Fatalf("progress=%v want 25", p)
	}
	if p := RealizedProgressPct(dec(1000), dec(2500)); p != 100 {
		t.Fatalf("progress=%v want capped at 100", p)
	}
	if p := RealizedProgressPct(decimal.Zero, dec(100)); p != 0 {
		t.Fatalf("progress=%v want 0 with zero target", p)
	}
}
