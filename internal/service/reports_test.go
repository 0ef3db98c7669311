package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/repository"
	"backoffice/internal/repository/memstore"
	"backoffice/internal/validation"
)

func rawReport(user string) domain.RawReport {
	return domain.RawReport{
		Date:        "2024-03-05",
		UserName:    domain.LooseString(user),
		Agent:       "agent-7",
		SportName:   "Cricket",
		EventName:   "IND v AUS",
		MarketName:  "Match Odds",
		ACBalance:   "1000",
		PL:          "-50",
		BetDetails:  []domain.RawBetDetail{{Odds: "1.85", Stack: "500", Time: "1:05:09 PM"}},
		CatchBy:     "Deepak",
		ProofType:   "Odds Manipulation",
		ProofStatus: "Submitted",
	}
}

func rowAt(raw domain.RawReport, sheet string, row int) domain.RawReport {
	raw.SheetName = sheet
	raw.RowIndex = &row
	return raw
}

func newTestService(store *memstore.Store, maxRows int) *Service {
	return New(store, Options{MaxImportRows: maxRows})
}

func TestCreateReportDefaultsProofStatus(t *testing.T) {
	svc := newTestService(memstore.New(), 0)
	raw := rawReport("punter01")
	raw.ProofStatus = ""

	created, err := svc.CreateReport(context.Background(), raw)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.ProofStatus != domain.ProofStatusNotSubmitted {
		t.Fatalf("unexpected report: %+v", created)
	}
}

func TestCreateReportValidationError(t *testing.T) {
	svc := newTestService(memstore.New(), 0)
	raw := rawReport("punter01")
	raw.SportName = "Baseball"

	_, err := svc.CreateReport(context.Background(), raw)
	var verr *validation.ValidationError
	if !errors.As(err, &verr) || verr.Kind != validation.KindInvalidFieldValues {
		t.Fatalf("expected invalid field values, got %v", err)
	}
}

func TestCreateReportDuplicateIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	if _, err := svc.CreateReport(ctx, rawReport("punter01")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateReport(ctx, rawReport("PUNTER01"))
	if !errors.Is(err, repository.ErrDuplicateReport) {
		t.Fatalf("expected duplicate, got %v", err)
	}
}

func TestUpdateReportDuplicateChecks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	first, err := svc.CreateReport(ctx, rawReport("alpha"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateReport(ctx, rawReport("beta"))
	if err != nil {
		t.Fatal(err)
	}

	edit := rawReport("beta")
	edit.Remark = "rechecked"
	updated, err := svc.UpdateReport(ctx, second.ID, edit)
	if err != nil {
		t.Fatalf("updating own key should succeed: %v", err)
	}
	if updated.Remark != "rechecked" {
		t.Fatalf("remark not updated: %+v", updated)
	}

	if _, err := svc.UpdateReport(ctx, second.ID, rawReport("alpha")); !errors.Is(err, repository.ErrDuplicateReport) {
		t.Fatalf("expected duplicate against report %d, got %v", first.ID, err)
	}
	if _, err := svc.UpdateReport(ctx, 9999, rawReport("gamma")); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestImportReportsPartialSuccess(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store, 0)
	if _, err := svc.CreateReport(ctx, rawReport("existing")); err != nil {
		t.Fatal(err)
	}

	result := svc.ImportReports(ctx, []domain.RawReport{
		rowAt(rawReport("fresh"), "March", 2),
		rowAt(rawReport("Existing"), "March", 3),
	})
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(result.Accepted) != 1 || len(result.Errors) != 1 {
		t.Fatalf("expected 1 accepted and 1 error, got %d/%d", len(result.Accepted), len(result.Errors))
	}
	rowErr := result.Errors[0]
	if !strings.Contains(rowErr.Message, "Duplicate") || rowErr.SheetName != "March" || rowErr.RowIndex == nil || *rowErr.RowIndex != 3 {
		t.Fatalf("unexpected row error: %+v", rowErr)
	}
}

func TestImportReportsWithinBatchDuplicate(t *testing.T) {
	svc := newTestService(memstore.New(), 0)
	result := svc.ImportReports(context.Background(), []domain.RawReport{
		rawReport("same"),
		rawReport("same"),
	})
	if len(result.Accepted) != 1 || len(result.Errors) != 1 {
		t.Fatalf("expected second row rejected, got %d/%d", len(result.Accepted), len(result.Errors))
	}
}

func TestImportReportsAllRejected(t *testing.T) {
	svc := newTestService(memstore.New(), 0)
	bad := rawReport("x")
	bad.Agent = ""
	result := svc.ImportReports(context.Background(), []domain.RawReport{bad, bad})
	if result.Success {
		t.Fatal("expected failure when nothing accepted")
	}
	if len(result.Errors) != 2 || result.Errors[0].Message != "Missing required fields: agent" {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
}

func TestImportReportsTruncates(t *testing.T) {
	svc := newTestService(memstore.New(), 3)
	rows := make([]domain.RawReport, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, rawReport(fmt.Sprintf("user%d", i)))
	}
	result := svc.ImportReports(context.Background(), rows)
	if len(result.Accepted) != 3 || len(result.Errors) != 0 {
		t.Fatalf("expected 3 accepted, got %d/%d", len(result.Accepted), len(result.Errors))
	}
}

func TestImportReportsFoldsPersistenceErrors(t *testing.T) {
	store := memstore.New()
	store.FailCreate = errors.New("connection reset")
	svc := newTestService(store, 0)

	result := svc.ImportReports(context.Background(), []domain.RawReport{rawReport("a"), rawReport("b")})
	if result.Success || len(result.Errors) != 2 {
		t.Fatalf("expected two folded errors, got %+v", result)
	}
	if result.Errors[0].Message != "Failed to save report: connection reset" {
		t.Fatalf("driver message not passed through: %q", result.Errors[0].Message)
	}
}

func TestImportReportsEmptyBatch(t *testing.T) {
	svc := newTestService(memstore.New(), 0)
	result := svc.ImportReports(context.Background(), nil)
	if !result.Success || len(result.Accepted) != 0 {
		t.Fatalf("empty batch should be a vacuous success: %+v", result)
	}
}

func TestListReportsPaginates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	for i := 0; i < 5; i++ {
		if _, err := svc.CreateReport(ctx, rawReport(fmt.Sprintf("user%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.ListReports(ctx, domain.ReportFilter{SortKey: "userName", SortOrder: "asc"}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 || page.Count != 2 || page.Page != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Items[0].UserName != "user2" || page.Items[1].UserName != "user3" {
		t.Fatalf("unexpected order: %s, %s", page.Items[0].UserName, page.Items[1].UserName)
	}

	page, err = svc.ListReports(ctx, domain.ReportFilter{}, 0, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if page.Limit != MaxPageLimit || page.Page != 1 {
		t.Fatalf("limit/page not clamped: %+v", page)
	}
}

func TestExportReportsEmpty(t *testing.T) {
	svc := newTestService(memstore.New(), 0)
	if _, err := svc.ExportReports(context.Background(), domain.ReportFilter{UserName: "nobody"}); !errors.Is(err, ErrNoReports) {
		t.Fatalf("expected ErrNoReports, got %v", err)
	}
}

func TestExportReportsIgnoresPagination(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	for i := 0; i < 3; i++ {
		if _, err := svc.CreateReport(ctx, rawReport(fmt.Sprintf("user%d", i))); err != nil {
			t.Fatal(err)
		}
	}
	items, err := svc.ExportReports(ctx, domain.ReportFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 reports, got %d", len(items))
	}
}

func floatPtr(v float64) *float64 { return &v }

func listUsers(t *testing.T, svc *Service, filter domain.ReportFilter) []string {
	t.Helper()
	page, err := svc.ListReports(context.Background(), filter, 1, MaxPageLimit)
	if err != nil {
		t.Fatal(err)
	}
	users := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		users = append(users, item.UserName)
	}
	return users
}

func TestListReportsBalanceBoundsInclusive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	for _, balance := range []string{"99.99", "100", "300", "500", "500.01"} {
		raw := rawReport("bal-" + balance)
		raw.ACBalance = domain.LooseString(balance)
		if _, err := svc.CreateReport(ctx, raw); err != nil {
			t.Fatal(err)
		}
	}

	users := listUsers(t, svc, domain.ReportFilter{
		ACBalanceMin: floatPtr(100),
		ACBalanceMax: floatPtr(500),
		SortKey:      "acBalance",
		SortOrder:    "asc",
	})
	want := []string{"bal-100", "bal-300", "bal-500"}
	if strings.Join(users, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", users, want)
	}
}

func TestListReportsUnknownSortKeyFallsBackToNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	for user, date := range map[string]string{"jan": "2024-01-10", "mar": "2024-03-05", "feb": "2024-02-01"} {
		raw := rawReport(user)
		raw.Date = domain.LooseString(date)
		if _, err := svc.CreateReport(ctx, raw); err != nil {
			t.Fatal(err)
		}
	}

	users := listUsers(t, svc, domain.ReportFilter{SortKey: "foo", SortOrder: "asc"})
	if strings.Join(users, ",") != "mar,feb,jan" {
		t.Fatalf("expected newest first, got %v", users)
	}
}

func TestListReportsBetDetailBoundsApplyPerDetail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)

	split := rawReport("split")
	split.BetDetails = []domain.RawBetDetail{
		{Odds: "3.0", Stack: "1000", Time: "1:00:00 PM"},
		{Odds: "1.2", Stack: "50", Time: "2:00:00 PM"},
	}
	single := rawReport("single")
	single.BetDetails = []domain.RawBetDetail{{Odds: "2.5", Stack: "80", Time: "3:00:00 PM"}}
	for _, raw := range []domain.RawReport{split, single} {
		if _, err := svc.CreateReport(ctx, raw); err != nil {
			t.Fatal(err)
		}
	}

	users := listUsers(t, svc, domain.ReportFilter{OddsMin: floatPtr(2), StackMax: floatPtr(100)})
	if len(users) != 1 || users[0] != "single" {
		t.Fatalf("expected only the report with one detail inside both bounds, got %v", users)
	}

	users = listUsers(t, svc, domain.ReportFilter{OddsMin: floatPtr(2), SortKey: "userName", SortOrder: "asc"})
	if strings.Join(users, ",") != "single,split" {
		t.Fatalf("odds bound alone should match both, got %v", users)
	}
}

func TestImportReportsUndecodableRow(t *testing.T) {
	row := 5
	bad := domain.RawReport{SheetName: "March", RowIndex: &row, DecodeErr: errors.New("expected scalar value, got {")}
	svc := newTestService(memstore.New(), 0)

	result := svc.ImportReports(context.Background(), []domain.RawReport{bad, rawReport("ok")})
	if !result.Success || len(result.Accepted) != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	rowErr := result.Errors[0]
	if rowErr.Message != "Invalid report row: expected scalar value, got {" || rowErr.SheetName != "March" || *rowErr.RowIndex != 5 {
		t.Fatalf("unexpected row error: %+v", rowErr)
	}
}
