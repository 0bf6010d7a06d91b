package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dealflow/internal/engine"
)

// WriteDashboardXLSX writes the dashboard as a styled workbook with one sheet
// per table.
func WriteDashboardXLSX(w io.Writer, view *engine.AggregateView) error {
	if view == nil {
		return fmt.Errorf("nil aggregate view")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := writePipelineSheet(f, view, headerStyle); err != nil {
		return err
	}
	if err := writeQuartersSheet(f, view, headerStyle); err != nil {
		return err
	}
	if err := writeRoadmapSheet(f, view, headerStyle); err != nil {
		return err
	}
	if err := writeCompositionSheet(f, view, headerStyle); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, headerStyle int, header []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(name, cell, title); err != nil {
			return fmt.Errorf("sheet %s header: %w", name, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("sheet %s style: %w", name, err)
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", name, i+2, err)
			}
		}
	}
	return nil
}

func writePipelineSheet(f *excelize.File, view *engine.AggregateView, style int) error {
	rows := [][]any{
		{"Negotiation", view.Stages.Negotiation.Count, view.Stages.Negotiation.TotalValue.InexactFloat64()},
		{"Formal Agreement", view.Stages.FormalAgreement.Count, view.Stages.FormalAgreement.TotalValue.InexactFloat64()},
		{"Signed Contract", view.Stages.SignedContract.Count, view.Stages.SignedContract.TotalValue.InexactFloat64()},
		{},
		{"Gap", "", view.Gap.InexactFloat64()},
		{"Realized Progress %", "", view.RealizedProgressPct},
		{"Year Progress %", "", view.YearProgressPct},
	}
	return writeSheet(f, "Pipeline", style, []string{"Stage", "Count", "Total Value"}, rows)
}

func writeQuartersSheet(f *excelize.File, view *engine.AggregateView, style int) error {
	rows := make([][]any, 0, len(view.Quarters))
	for _, q := range view.Quarters {
		rows = append(rows, []any{
			fmt.Sprintf("Q%d", q.Quarter), q.Target.InexactFloat64(), q.Realized.InexactFloat64(), q.ProgressPct,
		})
	}
	return writeSheet(f, "Quarters", style, []string{"Quarter", "Target", "Realized", "Progress %"}, rows)
}

func writeRoadmapSheet(f *excelize.File, view *engine.AggregateView, style int) error {
	rows := make([][]any, 0, len(view.Roadmap)+1)
	for _, row := range view.Roadmap {
		rows = append(rows, []any{
			monthNames[row.Month-1], row.Target.InexactFloat64(), row.Realized.InexactFloat64(),
			row.ProgressPct, row.CumulativeRealized.InexactFloat64(),
		})
	}
	rows = append(rows, []any{
		"Total", view.Totals.Target.InexactFloat64(), view.Totals.Realized.InexactFloat64(),
		view.Totals.ProgressPct, view.Totals.Realized.InexactFloat64(),
	})
	return writeSheet(f, "Roadmap", style,
		[]string{"Month", "Target", "Realized", "Progress %", "Cumulative Realized"}, rows)
}

func writeCompositionSheet(f *excelize.File, view *engine.AggregateView, style int) error {
	rows := make([][]any, 0, len(view.Composition))
	for _, row := range view.Composition {
		rows = append(rows, []any{
			monthNames[row.Month-1], row.Setup.InexactFloat64(), row.Recurring.InexactFloat64(), row.Billing.InexactFloat64(),
		})
	}
	return writeSheet(f, "Composition", style, []string{"Month", "Setup", "Recurring", "Billing"}, rows)
}
