package memstore

import (
	"cmp"
	"slices"
	"strings"

	"backoffice/internal/domain"
)

// MatchReport evaluates filter against one report with the same semantics as
// repository.BuildReportQuery.
func MatchReport(report domain.Report, filter domain.ReportFilter) bool {
	if filter.StartDate != nil && report.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && report.Date.After(*filter.EndDate) {
		return false
	}

	for _, pair := range [][2]string{
		{report.UserName, filter.UserName},
		{report.Agent, filter.Agent},
		{report.Origin, filter.Origin},
		{report.SportName, filter.SportName},
		{report.EventName, filter.EventName},
		{report.MarketName, filter.MarketName},
		{report.CatchBy, filter.CatchBy},
		{report.Remark, filter.Remark},
	} {
		if !containsFold(pair[0], pair[1]) {
			return false
		}
	}

	if !inRange(report.ACBalance, filter.ACBalanceMin, filter.ACBalanceMax) ||
		!inRange(report.AfterVoidBalance, filter.AfterVoidBalanceMin, filter.AfterVoidBalanceMax) ||
		!inRange(report.PL, filter.PLMin, filter.PLMax) {
		return false
	}

	if filter.OddsMin != nil || filter.OddsMax != nil || filter.StackMin != nil || filter.StackMax != nil {
		matched := slices.ContainsFunc(report.BetDetails, func(detail domain.BetDetail) bool {
			return inRange(detail.Odds, filter.OddsMin, filter.OddsMax) &&
				inRange(detail.Stack, filter.StackMin, filter.StackMax)
		})
		if !matched {
			return false
		}
	}

	if v := strings.TrimSpace(filter.ProofType); v != "" && report.ProofType != v {
		return false
	}
	if v := strings.TrimSpace(filter.ProofStatus); v != "" && report.ProofStatus != v {
		return false
	}

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		return slices.ContainsFunc([]string{
			report.UserName,
			report.Agent,
			report.Origin,
			report.SportName,
			report.EventName,
			report.MarketName,
			report.Remark,
			report.CatchBy,
			report.ProofType,
		}, func(value string) bool { return containsFold(value, term) })
	}
	return true
}

func inRange(value float64, min, max *float64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

var reportComparators = map[string]func(a, b domain.Report) int{
	"date":             func(a, b domain.Report) int { return a.Date.Compare(b.Date) },
	"userName":         func(a, b domain.Report) int { return strings.Compare(a.UserName, b.UserName) },
	"agent":            func(a, b domain.Report) int { return strings.Compare(a.Agent, b.Agent) },
	"origin":           func(a, b domain.Report) int { return strings.Compare(a.Origin, b.Origin) },
	"sportName":        func(a, b domain.Report) int { return strings.Compare(a.SportName, b.SportName) },
	"eventName":        func(a, b domain.Report) int { return strings.Compare(a.EventName, b.EventName) },
	"marketName":       func(a, b domain.Report) int { return strings.Compare(a.MarketName, b.MarketName) },
	"acBalance":        func(a, b domain.Report) int { return cmp.Compare(a.ACBalance, b.ACBalance) },
	"afterVoidBalance": func(a, b domain.Report) int { return cmp.Compare(a.AfterVoidBalance, b.AfterVoidBalance) },
	"pl":               func(a, b domain.Report) int { return cmp.Compare(a.PL, b.PL) },
	"catchBy":          func(a, b domain.Report) int { return strings.Compare(a.CatchBy, b.CatchBy) },
	"proofType":        func(a, b domain.Report) int { return strings.Compare(a.ProofType, b.ProofType) },
	"proofStatus":      func(a, b domain.Report) int { return strings.Compare(a.ProofStatus, b.ProofStatus) },
	"createdAt":        func(a, b domain.Report) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// SortReports orders reports by sortKey (date when unknown) in sortOrder,
// descending unless sortOrder is "asc". Ties fall back to id descending.
func SortReports(reports []domain.Report, sortKey, sortOrder string) {
	compare, ok := reportComparators[strings.TrimSpace(sortKey)]
	ascending := ok && strings.EqualFold(strings.TrimSpace(sortOrder), "asc")
	if !ok {
		compare = reportComparators["date"]
	}
	slices.SortFunc(reports, func(a, b domain.Report) int {
		c := compare(a, b)
		if !ascending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
