package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/excel"
	"backoffice/internal/metrics"
	"backoffice/internal/service"
	"backoffice/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	reportNotFound   = "report not found"
	noReportsMessage = "No reports found matching the criteria"
	maxUploadBytes   = 32 << 20
)

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := parseReportFilter(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := parseOptionalInt(query.Get("page"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseOptionalInt(query.Get("limit"), service.DefaultPageLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.ListReports(r.Context(), filter, page, limit)
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	result.Items = presentReports(result.Items)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ExportReports(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reports, err := h.svc.ExportReports(r.Context(), filter)
	if errors.Is(err, service.ErrNoReports) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": noReportsMessage})
		return
	}
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteReports(&buf, reports); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ReportExports.Inc()

	w.Header().Set("Content-Type", excel.SpreadsheetMIME)
	w.Header().Set("Content-Disposition", "attachment; filename="+excel.ReportsFileName)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.svc.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	writeJSON(w, http.StatusOK, presentReport(report))
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawReport
	if err := decodeRawJSON(r, &raw); err != nil {
		writeDecodeError(w, err)
		return
	}
	created, err := h.svc.CreateReport(r.Context(), raw)
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, presentReport(created))
}

func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var raw domain.RawReport
	if err := decodeRawJSON(r, &raw); err != nil {
		writeDecodeError(w, err)
		return
	}
	updated, err := h.svc.UpdateReport(r.Context(), id, raw)
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	writeJSON(w, http.StatusOK, presentReport(updated))
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteReport(r.Context(), id); err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BulkCreateReports(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDecodeError(w, bodyError(err))
		return
	}
	// Rows are decoded one by one so a malformed row is reported against
	// its sheet/row instead of failing the batch.
	rows, err := domain.DecodeRawReports(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSON.Error())
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "no reports provided")
		return
	}
	h.writeImportResult(w, h.svc.ImportReports(r.Context(), rows), nil)
}

func (h *Handler) ImportReportsFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if errors.Is(bodyError(err), errBodyTooLarge) {
			writeDecodeError(w, errBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := excel.ParseReportWorkbook(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "workbook has no report rows")
		return
	}
	h.log.Info("report workbook parsed",
		zap.String("file_name", header.Filename),
		zap.Int("rows", len(rows)),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	)
	h.writeImportResult(w, h.svc.ImportReports(r.Context(), rows), map[string]any{
		"fileName":   header.Filename,
		"parsedRows": len(rows),
	})
}

func (h *Handler) writeImportResult(w http.ResponseWriter, result domain.ImportResult, extra map[string]any) {
	body := map[string]any{
		"message": result.Message,
		"data":    presentReports(result.Accepted),
	}
	if len(result.Errors) > 0 {
		body["errors"] = result.Errors
	}
	for key, value := range extra {
		body[key] = value
	}
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, body)
}

// decodeRawJSON tolerates unknown fields; report payloads often echo back
// server-owned fields such as id or createdAt.
func decodeRawJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return bodyError(err)
	}
	return nil
}

func parseReportFilter(query url.Values) (domain.ReportFilter, error) {
	filter := domain.ReportFilter{
		UserName:    query.Get("userName"),
		Agent:       query.Get("agent"),
		Origin:      query.Get("origin"),
		SportName:   query.Get("sportName"),
		EventName:   query.Get("eventName"),
		MarketName:  query.Get("marketName"),
		CatchBy:     query.Get("catchBy"),
		Remark:      query.Get("remark"),
		ProofType:   query.Get("proofType"),
		ProofStatus: query.Get("proofStatus"),
		SearchTerm:  query.Get("searchTerm"),
		SortKey:     query.Get("sortKey"),
		SortOrder:   query.Get("sortOrder"),
	}

	var err error
	if filter.StartDate, err = parseFilterDate("startDate", query.Get("startDate")); err != nil {
		return domain.ReportFilter{}, err
	}
	if filter.EndDate, err = parseFilterDate("endDate", query.Get("endDate")); err != nil {
		return domain.ReportFilter{}, err
	}

	for _, bound := range []struct {
		name   string
		target **float64
	}{
		{"acBalanceMin", &filter.ACBalanceMin},
		{"acBalanceMax", &filter.ACBalanceMax},
		{"afterVoidBalanceMin", &filter.AfterVoidBalanceMin},
		{"afterVoidBalanceMax", &filter.AfterVoidBalanceMax},
		{"plMin", &filter.PLMin},
		{"plMax", &filter.PLMax},
		{"oddsMin", &filter.OddsMin},
		{"oddsMax", &filter.OddsMax},
		{"stackMin", &filter.StackMin},
		{"stackMax", &filter.StackMax},
	} {
		value, err := parseOptionalFloat(bound.name, query.Get(bound.name))
		if err != nil {
			return domain.ReportFilter{}, err
		}
		*bound.target = value
	}
	return filter, nil
}

func parseFilterDate(name, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, ok := validation.ParseDate(raw)
	if !ok {
		return nil, fmt.Errorf("invalid date for %s: %s", name, raw)
	}
	return &parsed, nil
}

// presentReport converts stored 24-hour bet times to the 12-hour display
// form clients send and expect back.
func presentReport(report domain.Report) domain.Report {
	details := make([]domain.BetDetail, len(report.BetDetails))
	for i, detail := range report.BetDetails {
		detail.Time = validation.To12Hour(detail.Time)
		details[i] = detail
	}
	report.BetDetails = details
	return report
}

func presentReports(reports []domain.Report) []domain.Report {
	out := make([]domain.Report, 0, len(reports))
	for _, report := range reports {
		out = append(out, presentReport(report))
	}
	return out
}
