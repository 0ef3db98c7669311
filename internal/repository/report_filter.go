package repository

import (
	"fmt"
	"strings"

	"backoffice/internal/domain"
)

// ReportQuery is a composed WHERE/ORDER BY pair with positional arguments.
// Where is empty when no filter applies.
type ReportQuery struct {
	Where   string
	Args    []any
	OrderBy string
}

const defaultReportOrder = "ORDER BY report_date DESC, id DESC"

var reportSortColumns = map[string]string{
	"date":             "report_date",
	"userName":         "user_name",
	"agent":            "agent",
	"origin":           "origin",
	"sportName":        "sport_name",
	"eventName":        "event_name",
	"marketName":       "market_name",
	"acBalance":        "ac_balance",
	"afterVoidBalance": "after_void_balance",
	"pl":               "pl",
	"catchBy":          "catch_by",
	"proofType":        "proof_type",
	"proofStatus":      "proof_status",
	"createdAt":        "created_at",
}

var reportSearchColumns = []string{
	"user_name",
	"agent",
	"origin",
	"sport_name",
	"event_name",
	"market_name",
	"remark",
	"catch_by",
	"proof_type",
}

type queryBuilder struct {
	clauses []string
	args    []any
}

func (b *queryBuilder) arg(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(format string, values ...any) {
	placeholders := make([]any, 0, len(values))
	for _, value := range values {
		placeholders = append(placeholders, b.arg(value))
	}
	b.clauses = append(b.clauses, fmt.Sprintf(format, placeholders...))
}

func (b *queryBuilder) contains(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.where(column+" ILIKE '%%' || %s || '%%'", escapeLike(value))
}

func (b *queryBuilder) between(column string, min, max *float64) {
	if min != nil {
		b.where(column+" >= %s", *min)
	}
	if max != nil {
		b.where(column+" <= %s", *max)
	}
}

func (b *queryBuilder) equals(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.where(column+" = %s", value)
}

// BuildReportQuery composes every provided filter with AND. searchTerm adds
// one OR group across the free-text columns. Unknown sort keys fall back to
// date descending.
func BuildReportQuery(filter domain.ReportFilter) ReportQuery {
	b := &queryBuilder{}

	if filter.StartDate != nil {
		b.where("report_date >= %s", *filter.StartDate)
	}
	if filter.EndDate != nil {
		b.where("report_date <= %s", *filter.EndDate)
	}

	b.contains("user_name", filter.UserName)
	b.contains("agent", filter.Agent)
	b.contains("origin", filter.Origin)
	b.contains("sport_name", filter.SportName)
	b.contains("event_name", filter.EventName)
	b.contains("market_name", filter.MarketName)
	b.contains("catch_by", filter.CatchBy)
	b.contains("remark", filter.Remark)

	b.between("ac_balance", filter.ACBalanceMin, filter.ACBalanceMax)
	b.between("after_void_balance", filter.AfterVoidBalanceMin, filter.AfterVoidBalanceMax)
	b.between("pl", filter.PLMin, filter.PLMax)

	var element []string
	if filter.OddsMin != nil {
		element = append(element, "(bd->>'odds')::numeric >= "+b.arg(*filter.OddsMin))
	}
	if filter.OddsMax != nil {
		element = append(element, "(bd->>'odds')::numeric <= "+b.arg(*filter.OddsMax))
	}
	if filter.StackMin != nil {
		element = append(element, "(bd->>'stack')::numeric >= "+b.arg(*filter.StackMin))
	}
	if filter.StackMax != nil {
		element = append(element, "(bd->>'stack')::numeric <= "+b.arg(*filter.StackMax))
	}
	if len(element) > 0 {
		b.clauses = append(b.clauses,
			"EXISTS (SELECT 1 FROM jsonb_array_elements(bet_details) AS bd WHERE "+strings.Join(element, " AND ")+")")
	}

	b.equals("proof_type", filter.ProofType)
	b.equals("proof_status", filter.ProofStatus)

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		placeholder := b.arg(escapeLike(term))
		parts := make([]string, 0, len(reportSearchColumns))
		for _, column := range reportSearchColumns {
			parts = append(parts, column+" ILIKE '%' || "+placeholder+" || '%'")
		}
		b.clauses = append(b.clauses, "("+strings.Join(parts, " OR ")+")")
	}

	query := ReportQuery{Args: b.args, OrderBy: reportOrderBy(filter.SortKey, filter.SortOrder)}
	if len(b.clauses) > 0 {
		query.Where = "WHERE " + strings.Join(b.clauses, " AND ")
	}
	return query
}

func reportOrderBy(sortKey, sortOrder string) string {
	column, ok := reportSortColumns[strings.TrimSpace(sortKey)]
	if !ok {
		return defaultReportOrder
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id DESC", column, direction)
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
