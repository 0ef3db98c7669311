package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/metrics"
	"backoffice/internal/repository"
	"backoffice/internal/validation"

	"go.uber.org/zap"
)

const (
	DefaultMaxImportRows = 70
	DefaultPageLimit     = 20
	MaxPageLimit         = 500
)

const duplicateReportMessage = "Duplicate report: a report with the same date, user, agent, sport, event and market already exists"

// CreateReport validates raw and stores it. A missing proofStatus defaults to
// "Not Submitted". Validation failures are returned as *validation.ValidationError
// and duplicates as repository.ErrDuplicateReport.
func (s *Service) CreateReport(ctx context.Context, raw domain.RawReport) (domain.Report, error) {
	report, err := s.prepareReport(ctx, raw, 0)
	if err != nil {
		return domain.Report{}, err
	}
	created, err := s.store.CreateReport(ctx, report)
	if err != nil {
		return domain.Report{}, fmt.Errorf("create report: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateReport(ctx context.Context, id int64, raw domain.RawReport) (domain.Report, error) {
	if _, err := s.store.GetReport(ctx, id); err != nil {
		return domain.Report{}, err
	}
	report, err := s.prepareReport(ctx, raw, id)
	if err != nil {
		return domain.Report{}, err
	}
	updated, err := s.store.UpdateReport(ctx, id, report)
	if err != nil {
		return domain.Report{}, fmt.Errorf("update report %d: %w", id, err)
	}
	return updated, nil
}

func (s *Service) prepareReport(ctx context.Context, raw domain.RawReport, excludeID int64) (domain.Report, error) {
	if raw.ProofStatus.Trimmed() == "" {
		raw.ProofStatus = domain.ProofStatusNotSubmitted
	}
	report, verr := validation.ParseReport(raw)
	if verr != nil {
		return domain.Report{}, verr
	}
	if err := s.checkDuplicate(ctx, report, excludeID); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func (s *Service) checkDuplicate(ctx context.Context, report domain.Report, excludeID int64) error {
	exists, err := s.store.FindDuplicateReport(ctx, report.NaturalKey(), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrDuplicateReport
	}
	return nil
}

func (s *Service) DeleteReport(ctx context.Context, id int64) error {
	return s.store.DeleteReport(ctx, id)
}

func (s *Service) GetReport(ctx context.Context, id int64) (domain.Report, error) {
	return s.store.GetReport(ctx, id)
}

// ListReports returns one page of matching reports. page is 1-based; limit
// defaults to DefaultPageLimit and is capped at MaxPageLimit.
func (s *Service) ListReports(ctx context.Context, filter domain.ReportFilter, page, limit int) (domain.ReportPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	items, total, err := s.store.ListReports(ctx, filter)
	if err != nil {
		return domain.ReportPage{}, err
	}
	return domain.ReportPage{
		Items: items,
		Count: len(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// ExportReports returns every report matching filter, ignoring pagination.
// An empty result is ErrNoReports.
func (s *Service) ExportReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	filter.Limit = 0
	filter.Offset = 0
	items, _, err := s.store.ListReports(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoReports
	}
	return items, nil
}

// ImportReports processes rows one at a time in input order. Only the first
// maxImportRows rows are considered. A failing row never stops the batch; its
// error is recorded with the row's sheet/row metadata.
func (s *Service) ImportReports(ctx context.Context, rows []domain.RawReport) domain.ImportResult {
	start := time.Now()
	received := len(rows)
	if len(rows) > s.maxImportRows {
		rows = rows[:s.maxImportRows]
	}

	result := domain.ImportResult{Accepted: make([]domain.Report, 0, len(rows))}
	for _, raw := range rows {
		created, outcome, failure := s.importRow(ctx, raw)
		metrics.ImportRows.WithLabelValues(outcome).Inc()
		if failure != "" {
			result.Errors = append(result.Errors, domain.ImportRowError{
				Message:   failure,
				SheetName: raw.SheetName,
				RowIndex:  raw.RowIndex,
			})
			continue
		}
		result.Accepted = append(result.Accepted, created)
	}

	result.Success = len(result.Accepted) > 0 || len(result.Errors) == 0
	result.Message = importSummary(len(rows), len(result.Accepted), len(result.Errors))

	s.log.Info("report import finished",
		zap.Int("received", received),
		zap.Int("processed", len(rows)),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("rejected", len(result.Errors)),
		zap.Duration("duration", time.Since(start)),
	)
	return result
}

// importRow saves one row. A non-empty failure is the message reported for
// the row; outcome labels the row for metrics either way.
func (s *Service) importRow(ctx context.Context, raw domain.RawReport) (created domain.Report, outcome, failure string) {
	if raw.DecodeErr != nil {
		return domain.Report{}, metrics.OutcomeInvalid, "Invalid report row: " + raw.DecodeErr.Error()
	}
	report, verr := validation.ParseReport(raw)
	if verr != nil {
		return domain.Report{}, metrics.OutcomeInvalid, verr.Error()
	}

	err := s.checkDuplicate(ctx, report, 0)
	if err == nil {
		report, err = s.store.CreateReport(ctx, report)
	}
	switch {
	case err == nil:
		return report, metrics.OutcomeAccepted, ""
	case errors.Is(err, repository.ErrDuplicateReport):
		return domain.Report{}, metrics.OutcomeDuplicate, duplicateReportMessage
	default:
		s.log.Warn("report import row failed", zap.Error(err))
		return domain.Report{}, metrics.OutcomeFailed, "Failed to save report: " + err.Error()
	}
}

func importSummary(processed, accepted, rejected int) string {
	switch {
	case processed == 0:
		return "No reports to import"
	case accepted == 0:
		return fmt.Sprintf("No reports were imported; %d row(s) failed", rejected)
	case rejected == 0:
		return fmt.Sprintf("Successfully imported %d report(s)", accepted)
	default:
		return fmt.Sprintf("Imported %d of %d report(s); %d row(s) failed", accepted, processed, rejected)
	}
}
