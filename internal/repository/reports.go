package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
)

const reportColumns = `
	id,
	report_date,
	user_name,
	agent,
	origin,
	sport_name,
	event_name,
	market_name,
	ac_balance::double precision,
	after_void_balance::double precision,
	pl::double precision,
	bet_details,
	catch_by,
	proof_type,
	proof_status,
	remark,
	created_at,
	updated_at
`

func (r *Repository) CreateReport(ctx context.Context, report domain.Report) (domain.Report, error) {
	details, err := json.Marshal(report.BetDetails)
	if err != nil {
		return domain.Report{}, fmt.Errorf("encode bet details: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reports (
			report_date,
			user_name,
			agent,
			origin,
			sport_name,
			event_name,
			market_name,
			ac_balance,
			after_void_balance,
			pl,
			bet_details,
			catch_by,
			proof_type,
			proof_status,
			remark
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+reportColumns,
		report.Date,
		report.UserName,
		report.Agent,
		report.Origin,
		report.SportName,
		report.EventName,
		report.MarketName,
		report.ACBalance,
		report.AfterVoidBalance,
		report.PL,
		details,
		report.CatchBy,
		report.ProofType,
		report.ProofStatus,
		report.Remark,
	)
	created, err := scanReportRow(row)
	if err != nil {
		return domain.Report{}, translateError(err, "create report")
	}
	return created, nil
}

func (r *Repository) UpdateReport(ctx context.Context, id int64, report domain.Report) (domain.Report, error) {
	details, err := json.Marshal(report.BetDetails)
	if err != nil {
		return domain.Report{}, fmt.Errorf("encode bet details: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE reports SET
			report_date = $2,
			user_name = $3,
			agent = $4,
			origin = $5,
			sport_name = $6,
			event_name = $7,
			market_name = $8,
			ac_balance = $9,
			after_void_balance = $10,
			pl = $11,
			bet_details = $12,
			catch_by = $13,
			proof_type = $14,
			proof_status = $15,
			remark = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+reportColumns,
		id,
		report.Date,
		report.UserName,
		report.Agent,
		report.Origin,
		report.SportName,
		report.EventName,
		report.MarketName,
		report.ACBalance,
		report.AfterVoidBalance,
		report.PL,
		details,
		report.CatchBy,
		report.ProofType,
		report.ProofStatus,
		report.Remark,
	)
	updated, err := scanReportRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Report{}, ErrNotFound
		}
		return domain.Report{}, translateError(err, fmt.Sprintf("update report %d", id))
	}
	return updated, nil
}

func (r *Repository) DeleteReport(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetReport(ctx context.Context, id int64) (domain.Report, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+reportColumns+" FROM reports WHERE id = $1", id)
	report, err := scanReportRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Report{}, ErrNotFound
		}
		return domain.Report{}, fmt.Errorf("get report %d: %w", id, err)
	}
	return report, nil
}

// FindDuplicateReport reports whether a row other than excludeID already
// holds the natural key. Text columns compare case-insensitively, matching
// the unique index.
func (r *Repository) FindDuplicateReport(ctx context.Context, key domain.NaturalKey, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM reports
			WHERE report_date = $1
				AND lower(user_name) = lower($2)
				AND lower(agent) = lower($3)
				AND lower(sport_name) = lower($4)
				AND lower(event_name) = lower($5)
				AND lower(market_name) = lower($6)
				AND id <> $7
		)
	`,
		key.Date,
		strings.TrimSpace(key.UserName),
		strings.TrimSpace(key.Agent),
		strings.TrimSpace(key.SportName),
		strings.TrimSpace(key.EventName),
		strings.TrimSpace(key.MarketName),
		excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("find duplicate report: %w", err)
	}
	return exists, nil
}

// ListReports returns the filtered reports and the total matching count.
// A zero Limit returns every match.
func (r *Repository) ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, int, error) {
	query := BuildReportQuery(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*)::int FROM reports "+query.Where, query.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	sql := "SELECT " + reportColumns + " FROM reports " + query.Where + " " + query.OrderBy
	args := query.Args
	if filter.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, normalizeLimit(filter.Limit), normalizeOffset(filter.Offset))
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0)
	for rows.Next() {
		report, err := scanReportRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, total, nil
}

func scanReportRow(row pgx.Row) (domain.Report, error) {
	var (
		report  domain.Report
		details []byte
	)
	if err := row.Scan(
		&report.ID,
		&report.Date,
		&report.UserName,
		&report.Agent,
		&report.Origin,
		&report.SportName,
		&report.EventName,
		&report.MarketName,
		&report.ACBalance,
		&report.AfterVoidBalance,
		&report.PL,
		&details,
		&report.CatchBy,
		&report.ProofType,
		&report.ProofStatus,
		&report.Remark,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return domain.Report{}, err
	}
	if err := json.Unmarshal(details, &report.BetDetails); err != nil {
		return domain.Report{}, fmt.Errorf("decode bet details: %w", err)
	}
	report.Date = report.Date.UTC()
	return report, nil
}
