package excel

import (
	"fmt"
	"io"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	ReportsSheet     = "Reports"
	ReportsFileName  = "reports.xlsx"
	SpreadsheetMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	baseRowHeight    = 15.0
	reportColumnSpan = "Q"
)

var reportHeaders = []string{
	"Date",
	"User Name",
	"Agent",
	"Origin",
	"Sport",
	"Event",
	"Market",
	"A/C Balance",
	"After Void Balance",
	"P/L",
	"Odds",
	"Stack",
	"Time",
	"Catch By",
	"Proof Type",
	"Proof Status",
	"Remark",
}

// WriteReports renders one row per report into a single-sheet workbook and
// writes it to w. Bet details share cells, one line per detail.
func WriteReports(w io.Writer, reports []domain.Report) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), ReportsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#8EA9DB", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create body style: %w", err)
	}

	header := make([]any, 0, len(reportHeaders))
	for _, title := range reportHeaders {
		header = append(header, title)
	}
	if err := file.SetSheetRow(ReportsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := file.SetCellStyle(ReportsSheet, "A1", reportColumnSpan+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for index, report := range reports {
		rowNumber := index + 2
		cell, err := excelize.CoordinatesToCellName(1, rowNumber)
		if err != nil {
			return err
		}
		values := reportRow(report)
		if err := file.SetSheetRow(ReportsSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", rowNumber, err)
		}
		last := fmt.Sprintf("%s%d", reportColumnSpan, rowNumber)
		if err := file.SetCellStyle(ReportsSheet, cell, last, bodyStyle); err != nil {
			return fmt.Errorf("style row %d: %w", rowNumber, err)
		}
		lines := max(1, len(report.BetDetails))
		if err := file.SetRowHeight(ReportsSheet, rowNumber, baseRowHeight*float64(lines)); err != nil {
			return fmt.Errorf("size row %d: %w", rowNumber, err)
		}
	}

	if err := file.SetColWidth(ReportsSheet, "A", reportColumnSpan, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := file.SetPanes(ReportsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func reportRow(report domain.Report) []any {
	odds := make([]string, 0, len(report.BetDetails))
	stacks := make([]string, 0, len(report.BetDetails))
	times := make([]string, 0, len(report.BetDetails))
	for _, detail := range report.BetDetails {
		odds = append(odds, fixed2(detail.Odds))
		stacks = append(stacks, fixed2(detail.Stack))
		times = append(times, validation.To12Hour(detail.Time))
	}

	return []any{
		report.Date.UTC().Format("02/01/2006"),
		report.UserName,
		report.Agent,
		report.Origin,
		report.SportName,
		report.EventName,
		report.MarketName,
		fixed2(report.ACBalance),
		fixed2(report.AfterVoidBalance),
		fixed2(report.PL),
		strings.Join(odds, "\n"),
		strings.Join(stacks, "\n"),
		strings.Join(times, "\n"),
		report.CatchBy,
		report.ProofType,
		report.ProofStatus,
		report.Remark,
	}
}

func fixed2(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
