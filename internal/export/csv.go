// Package export renders an AggregateView as downloadable report files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"dealflow/internal/engine"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WriteDashboardCSV writes the dashboard tables as one CSV document with
// blank-line separated sections: pipeline stages, quarter cards, monthly
// roadmap, revenue composition.
func WriteDashboardCSV(w io.Writer, view *engine.AggregateView) error {
	if view == nil {
		return fmt.Errorf("nil aggregate view")
	}
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Dashboard", strconv.Itoa(view.Year)},
		{"Computed At", view.ComputedAt.Format(time.RFC3339)},
		{"Goal Defined", strconv.FormatBool(view.GoalDefined)},
		{},
		{"Stage", "Count", "Total Value"},
		{"Negotiation", strconv.Itoa(view.Stages.Negotiation.Count), view.Stages.Negotiation.TotalValue.String()},
		{"Formal Agreement", strconv.Itoa(view.Stages.FormalAgreement.Count), view.Stages.FormalAgreement.TotalValue.String()},
		{"Signed Contract", strconv.Itoa(view.Stages.SignedContract.Count), view.Stages.SignedContract.TotalValue.String()},
		{},
		{"Realized Total", view.RealizedTotal.String()},
		{"Gap", view.Gap.String()},
		{"Realized Progress %", formatPct(view.RealizedProgressPct)},
		{"Year Progress %", formatPct(view.YearProgressPct)},
		{},
		{"Quarter", "Target", "Realized", "Progress %"},
	}
	for _, q := range view.Quarters {
		records = append(records, []string{
			fmt.Sprintf("Q%d", q.Quarter), q.Target.String(), q.Realized.String(), formatPct(q.ProgressPct),
		})
	}

	records = append(records, nil,
		[]string{"Month", "Target", "Realized", "Progress %", "Cumulative Realized"})
	for _, row := range view.Roadmap {
		records = append(records, []string{
			monthNames[row.Month-1], row.Target.String(), row.Realized.String(),
			formatPct(row.ProgressPct), row.CumulativeRealized.String(),
		})
	}
	records = append(records, []string{
		"Total", view.Totals.Target.String(), view.Totals.Realized.String(),
		formatPct(view.Totals.ProgressPct), view.Totals.Realized.String(),
	})

	records = append(records, nil,
		[]string{"Month", "Setup", "Recurring", "Billing"})
	for _, row := range view.Composition {
		records = append(records, []string{
			monthNames[row.Month-1], row.Setup.String(), row.Recurring.String(), row.Billing.String(),
		})
	}

	for _, record := range records {
		if record == nil {
			record = []string{""}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
