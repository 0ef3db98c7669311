package excel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/validation"

	"github.com/xuri/excelize/v2"
)

func sampleReport() domain.Report {
	return domain.Report{
		ID:               7,
		Date:             time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		UserName:         "punter01",
		Agent:            "agent-7",
		Origin:           "Mumbai",
		SportName:        "Cricket",
		EventName:        "IND v AUS",
		MarketName:       "Match Odds",
		ACBalance:        1250.5,
		AfterVoidBalance: 900,
		PL:               -350.456,
		BetDetails: []domain.BetDetail{
			{Odds: 1.85, Stack: 500, Time: "13:05:09"},
			{Odds: 2.1, Stack: 250, Time: "00:00:00"},
		},
		CatchBy:     "Deepak",
		ProofType:   "Odds Manipulation",
		ProofStatus: "Submitted",
		Remark:      "flagged",
	}
}

func TestWriteReports(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReports(&buf, []domain.Report{sampleReport()}); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(ReportsSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if strings.Join(rows[0], "|") != strings.Join(reportHeaders, "|") {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	want := map[int]string{
		0:  "05/03/2024",
		7:  "1250.50",
		8:  "900.00",
		9:  "-350.46",
		10: "1.85\n2.10",
		11: "500.00\n250.00",
		12: "01:05:09 PM\n12:00:00 AM",
		15: "Submitted",
	}
	for col, value := range want {
		if got := rows[1][col]; got != value {
			t.Errorf("column %s = %q, want %q", reportHeaders[col], got, value)
		}
	}

	height, err := file.GetRowHeight(ReportsSheet, 2)
	if err != nil {
		t.Fatal(err)
	}
	if height != 30 {
		t.Errorf("row height = %v, want 30", height)
	}

	panes, err := file.GetPanes(ReportsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if !panes.Freeze || panes.YSplit != 1 {
		t.Errorf("header row not frozen: %+v", panes)
	}
}

func TestWriteReportsRowHeightWithoutDetails(t *testing.T) {
	report := sampleReport()
	report.BetDetails = nil

	var buf bytes.Buffer
	if err := WriteReports(&buf, []domain.Report{report}); err != nil {
		t.Fatal(err)
	}
	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if height, _ := file.GetRowHeight(ReportsSheet, 2); height != 15 {
		t.Errorf("row height = %v, want 15", height)
	}
}

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", "March"); err != nil {
		t.Fatal(err)
	}
	rows := [][]any{
		{"Date", "User Name", "Agent", "Sport", "Event", "Market", "Odds", "Stake", "Time", "Catch By", "Proof Type", "Proof Status", "Remarks"},
		{"05/03/2024", "punter01", "agent-7", "Cricket", "IND v AUS", "Match Odds", "1.85", "500", "1:05:09 PM", "Deepak", "Odds Manipulation", "Submitted", "first"},
		{"", "", "", "", "", "", "2.10", "250", "2:00:00 PM"},
		{},
		{45356, "punter02", "agent-9", "Tennis", "Final", "Bookmaker", "3", "100", "9:00:00 AM", "Harsh", "Group Betting", "Not Submitted"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow("March", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	dateStyle, err := file.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatal(err)
	}
	if err := file.SetCellStyle("March", "A5", "A5", dateStyle); err != nil {
		t.Fatal(err)
	}

	if _, err := file.NewSheet("Notes"); err != nil {
		t.Fatal(err)
	}
	if err := file.SetCellValue("Notes", "A1", "nothing to import here"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseReportWorkbook(t *testing.T) {
	reports, err := ParseReportWorkbook("upload.xlsx", bytes.NewReader(buildWorkbook(t)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	first := reports[0]
	if first.SheetName != "March" || first.RowIndex == nil || *first.RowIndex != 2 {
		t.Fatalf("unexpected metadata: %q %v", first.SheetName, first.RowIndex)
	}
	if len(first.BetDetails) != 2 || first.BetDetails[1].Odds != "2.10" || first.BetDetails[1].Time != "2:00:00 PM" {
		t.Fatalf("continuation row not folded: %+v", first.BetDetails)
	}
	if first.Remark != "first" {
		t.Fatalf("remark alias not mapped: %q", first.Remark)
	}

	second := reports[1]
	if *second.RowIndex != 5 || second.Date != "45356" {
		t.Fatalf("unexpected second report: row %d date %q", *second.RowIndex, second.Date)
	}
	parsed, verr := validation.ParseReport(second)
	if verr != nil {
		t.Fatalf("second report should validate: %v", verr)
	}
	if !parsed.Date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("serial date not converted: %s", parsed.Date)
	}
}

func TestParseReportWorkbookSniffsUnknownExtension(t *testing.T) {
	reports, err := ParseReportWorkbook("upload.bin", bytes.NewReader(buildWorkbook(t)))
	if err != nil || len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d (%v)", len(reports), err)
	}
}

func TestParseReportWorkbookErrors(t *testing.T) {
	if _, err := ParseReportWorkbook("empty.xlsx", bytes.NewReader(nil)); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ParseReportWorkbook("junk.xlsx", strings.NewReader("not a workbook")); err == nil {
		t.Error("expected error for garbage input")
	}

	file := excelize.NewFile()
	_ = file.SetCellValue("Sheet1", "A1", "Product")
	var buf bytes.Buffer
	_ = file.Write(&buf)
	file.Close()
	if _, err := ParseReportWorkbook("other.xlsx", &buf); err == nil {
		t.Error("expected error when no header row is recognized")
	}
}

func TestExportThenImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	original := sampleReport()
	if err := WriteReports(&buf, []domain.Report{original}); err != nil {
		t.Fatal(err)
	}
	raws, err := ParseReportWorkbook(ReportsFileName, &buf)
	if err != nil {
		t.Fatalf("parse exported workbook: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 report, got %d", len(raws))
	}
	parsed, verr := validation.ParseReport(raws[0])
	if verr != nil {
		t.Fatalf("exported row does not validate: %v", verr)
	}
	if !parsed.Date.Equal(original.Date) || parsed.UserName != original.UserName || len(parsed.BetDetails) != 2 {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
	if parsed.BetDetails[0].Time != "13:05:09" || parsed.BetDetails[1].Odds != 2.1 {
		t.Fatalf("bet details mismatch: %+v", parsed.BetDetails)
	}
}
