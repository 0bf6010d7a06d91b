package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dealflow/internal/models"
)

func TestYearProgressPct(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if p := YearProgressPct(jan1); p <= 0 || p > 1 {
		t.Fatalf("jan 1 progress=%v want small positive", p)
	}
	dec31 := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if p := YearProgressPct(dec31); p != 100 {
		t.Fatalf("dec 31 progress=%v want 100", p)
	}
	// Leap year: July 1 is day 183 of 366.
	leapMid := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	want := 183.0 / 366 * 100
	if p := YearProgressPct(leapMid); p != want {
		t.Fatalf("leap midyear progress=%v want %v", p, want)
	}
}

func TestSplitQuarterTarget_ExactSum(t *testing.T) {
	for _, q := range []float64{300000, 100, 0.01, 99999.97, 1} {
		target := dec(q)
		parts := splitQuarterTarget(target)
		sum := parts[0].Add(parts[1]).Add(parts[2])
		if sum.Cmp(target) != 0 {
			t.Fatalf("parts of %s sum to %s", target, sum)
		}
		if parts[0].Cmp(parts[1]) != 0 {
			t.Fatalf("first two parts differ: %s vs %s", parts[0], parts[1])
		}
	}
}

func TestBuildRoadmap_TargetSumMatchesQuarterTargets(t *testing.T) {
	goal := &models.Goal{
		TargetQ1: dec(100),
		TargetQ2: dec(250000),
		TargetQ3: dec(0.05),
		TargetQ4: dec(77777.77),
	}
	quarterSum := goal.TargetQ1.Add(goal.TargetQ2).Add(goal.TargetQ3).Add(goal.TargetQ4)

	months := make([]decimal.Decimal, 12)
	for i := range months {
		months[i] = decimal.Zero
	}
	rows, totals := buildRoadmap(goal, months)
	if len(rows) != 12 {
		t.Fatalf("rows=%d want 12", len(rows))
	}
	if totals.Target.Cmp(quarterSum) != 0 {
		t.Fatalf("total target=%s want %s", totals.Target, quarterSum)
	}
}

func TestBuildRoadmap_ProgressAndCumulative(t *testing.T) {
	goal := &models.Goal{TargetQ1: dec(300000)}
	months := make([]decimal.Decimal, 12)
	for i := range months {
		months[i] = decimal.Zero
	}
	months[1] = dec(300000) // february

	rows, totals := buildRoadmap(goal, months)
	feb := rows[1]
	if feb.Target.Cmp(dec(100000)) != 0 {
		t.Fatalf("feb target=%s want 100000", feb.Target)
	}
	if feb.ProgressPct != 300.0 {
		t.Fatalf("feb progress=%v want 300.0", feb.ProgressPct)
	}
	if feb.CumulativeRealized.Cmp(dec(300000)) != 0 {
		t.Fatalf("feb cumulative=%s want 300000", feb.CumulativeRealized)
	}
	if rows[11].CumulativeRealized.Cmp(dec(300000)) != 0 {
		t.Fatalf("dec cumulative=%s want 300000", rows[11].CumulativeRealized)
	}
	if totals.Realized.Cmp(dec(300000)) != 0 {
		t.Fatalf("total realized=%s want 300000", totals.Realized)
	}
	if totals.ProgressPct != 100.0 {
		t.Fatalf("total progress=%v want 100.0", totals.ProgressPct)
	}
}

func TestBuildRoadmap_ZeroTargetZeroProgress(t *testing.T) {
	months := make([]decimal.Decimal, 12)
	for i := range months {
		months[i] = decimal.Zero
	}
	months[5] = dec(1000)

	rows, totals := buildRoadmap(nil, months)
	if rows[5].ProgressPct != 0 {
		t.Fatalf("progress=%v want 0 without a goal", rows[5].ProgressPct)
	}
	if totals.ProgressPct != 0 {
		t.Fatalf("total progress=%v want 0 without a goal", totals.ProgressPct)
	}
}

func TestBuildQuarterCards_CurrentQuarterFollowsReference(t *testing.T) {
	goal := &models.Goal{TargetQ1: dec(300000), TargetQ2: dec(100)}
	realized := []decimal.Decimal{dec(300000), decimal.Zero, decimal.Zero, decimal.Zero}
	ref := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	cards := buildQuarterCards(goal, realized, ref)
	if cards[0].ProgressPct != 100 {
		t.Fatalf("q1 progress=%v want 100", cards[0].ProgressPct)
	}
	if cards[0].Current {
		t.Fatalf("q1 flagged current, reference is in q2")
	}
	if !cards[1].Current {
		t.Fatalf("q2 not flagged current for a may reference date")
	}
	if cards[2].ProgressPct != 0 {
		t.Fatalf("q3 progress=%v want 0 with zero target", cards[2].ProgressPct)
	}
}
