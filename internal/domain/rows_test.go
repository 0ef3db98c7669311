package domain

import (
	"encoding/json"
	"testing"
)

func TestRawBetDetailsTolerant(t *testing.T) {
	cases := map[string]int{
		`{"betDetails": ""}`:                             0,
		`{"betDetails": {"odds": 2}}`:                    0,
		`{"betDetails": 7}`:                              0,
		`{"betDetails": null}`:                           0,
		`{"betDetails": [{"odds": 2}, "x", 3]}`:          3,
		`{"betDetails": [{"odds": "1.5", "stack": 10}]}`: 1,
	}
	for input, want := range cases {
		var raw RawReport
		if err := json.Unmarshal([]byte(input), &raw); err != nil {
			t.Fatalf("%s: unexpected error: %v", input, err)
		}
		if len(raw.BetDetails) != want {
			t.Errorf("%s: got %d details, want %d", input, len(raw.BetDetails), want)
		}
	}

	var raw RawReport
	if err := json.Unmarshal([]byte(`{"betDetails": [{"odds": 2}, "x"]}`), &raw); err != nil {
		t.Fatal(err)
	}
	if raw.BetDetails[0].Odds != "2" || raw.BetDetails[1] != (RawBetDetail{}) {
		t.Fatalf("unexpected details: %+v", raw.BetDetails)
	}
}

func TestDecodeRawReportsKeepsBadRows(t *testing.T) {
	body := `[
		{"userName": "punter01", "sheetName": "March", "rowIndex": 2},
		{"userName": {}, "sheetName": "March", "rowIndex": "5"},
		{"rowIndex": "5", "sheetName": 12},
		"not a row"
	]`
	rows, err := DecodeRawReports([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].DecodeErr != nil || rows[0].UserName != "punter01" {
		t.Fatalf("first row should decode: %+v", rows[0])
	}

	bad := rows[1]
	if bad.DecodeErr == nil || bad.SheetName != "March" || bad.RowIndex == nil || *bad.RowIndex != 5 {
		t.Fatalf("unexpected second row: %+v", bad)
	}
	if rows[2].DecodeErr == nil || rows[2].SheetName != "12" || *rows[2].RowIndex != 5 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
	if rows[3].DecodeErr == nil || rows[3].SheetName != "" || rows[3].RowIndex != nil {
		t.Fatalf("unexpected fourth row: %+v", rows[3])
	}
}

func TestDecodeRawReportsRejectsNonArray(t *testing.T) {
	for _, body := range []string{`{"userName": "x"}`, `"rows"`, `[`} {
		if _, err := DecodeRawReports([]byte(body)); err == nil {
			t.Errorf("%s: expected error", body)
		}
	}
}
