package repository

import (
	"strings"
	"testing"
	"time"

	"backoffice/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestBuildReportQueryEmpty(t *testing.T) {
	q := BuildReportQuery(domain.ReportFilter{})
	if q.Where != "" || len(q.Args) != 0 {
		t.Fatalf("expected no clauses, got %q %v", q.Where, q.Args)
	}
	if q.OrderBy != "ORDER BY report_date DESC, id DESC" {
		t.Fatalf("unexpected default order: %q", q.OrderBy)
	}
}

func TestBuildReportQueryNumericRange(t *testing.T) {
	q := BuildReportQuery(domain.ReportFilter{ACBalanceMin: ptr(100.0), ACBalanceMax: ptr(500.0)})
	if q.Where != "WHERE ac_balance >= $1 AND ac_balance <= $2" {
		t.Fatalf("unexpected where: %q", q.Where)
	}
	if len(q.Args) != 2 || q.Args[0] != 100.0 || q.Args[1] != 500.0 {
		t.Fatalf("unexpected args: %v", q.Args)
	}
}

func TestBuildReportQueryDateAndSubstring(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	q := BuildReportQuery(domain.ReportFilter{StartDate: &start, UserName: " 50%_off "})
	want := "WHERE report_date >= $1 AND user_name ILIKE '%' || $2 || '%'"
	if q.Where != want {
		t.Fatalf("where = %q, want %q", q.Where, want)
	}
	if q.Args[1] != `50\%\_off` {
		t.Fatalf("expected escaped pattern, got %v", q.Args[1])
	}
}

func TestBuildReportQueryBetDetailsElementWise(t *testing.T) {
	q := BuildReportQuery(domain.ReportFilter{OddsMin: ptr(1.5), StackMax: ptr(1000.0)})
	want := "EXISTS (SELECT 1 FROM jsonb_array_elements(bet_details) AS bd WHERE (bd->>'odds')::numeric >= $1 AND (bd->>'stack')::numeric <= $2)"
	if q.Where != "WHERE "+want {
		t.Fatalf("unexpected where: %q", q.Where)
	}
}

func TestBuildReportQuerySearchTermSharesPlaceholder(t *testing.T) {
	q := BuildReportQuery(domain.ReportFilter{ProofStatus: "Submitted", SearchTerm: "india"})
	if len(q.Args) != 2 {
		t.Fatalf("expected 2 args, got %v", q.Args)
	}
	if !strings.HasPrefix(q.Where, "WHERE proof_status = $1 AND (") {
		t.Fatalf("unexpected where: %q", q.Where)
	}
	if got := strings.Count(q.Where, "$2"); got != len(reportSearchColumns) {
		t.Fatalf("search placeholder used %d times, want %d", got, len(reportSearchColumns))
	}
}

func TestReportOrderBy(t *testing.T) {
	cases := []struct {
		key, order, want string
	}{
		{"foo", "asc", "ORDER BY report_date DESC, id DESC"},
		{"", "", "ORDER BY report_date DESC, id DESC"},
		{"pl", "ASC", "ORDER BY pl ASC, id DESC"},
		{"userName", "desc", "ORDER BY user_name DESC, id DESC"},
		{"agent", "sideways", "ORDER BY agent DESC, id DESC"},
	}
	for _, tc := range cases {
		if got := BuildReportQuery(domain.ReportFilter{SortKey: tc.key, SortOrder: tc.order}).OrderBy; got != tc.want {
			t.Errorf("sort %q/%q = %q, want %q", tc.key, tc.order, got, tc.want)
		}
	}
}
