package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"backoffice/internal/domain"
)

func workbookRow(user string, row int) domain.RawReport {
	return domain.RawReport{
		Date:        "05/03/2024",
		UserName:    domain.LooseString(user),
		Agent:       "agent-7",
		SportName:   "Cricket",
		EventName:   "IND v AUS",
		MarketName:  "Match Odds",
		BetDetails:  []domain.RawBetDetail{{Odds: "1.85", Stack: "500", Time: "1:05:09 PM"}},
		CatchBy:     "Deepak",
		ProofType:   "Odds Manipulation",
		ProofStatus: "Submitted",
		SheetName:   "March",
		RowIndex:    &row,
	}
}

func TestValidateRows(t *testing.T) {
	invalid := workbookRow("punter03", 4)
	invalid.BetDetails = nil

	sum, failures := validateRows([]domain.RawReport{
		workbookRow("punter01", 2),
		workbookRow("PUNTER01", 3),
		invalid,
		workbookRow("punter02", 5),
	})
	if sum.parsed != 4 || sum.accepted != 2 || sum.rejected != 2 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if len(failures) != 2 || *failures[0].RowIndex != 3 || *failures[1].RowIndex != 4 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
}

func TestWriteErrorsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.csv")
	row := 7
	err := writeErrorsCSV(path, []domain.ImportRowError{
		{Message: "betDetails must contain at least one entry", SheetName: "March", RowIndex: &row},
		{Message: "Failed to save report: timeout"},
	})
	if err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if records[1][0] != "March" || records[1][1] != "7" || records[2][1] != "" {
		t.Fatalf("unexpected records: %v", records)
	}
}
