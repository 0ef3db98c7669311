package validation

import (
	"fmt"
	"math"
	"strings"

	"backoffice/internal/domain"

	"github.com/shopspring/decimal"
)

type ErrorKind string

const (
	KindMissingFields      ErrorKind = "missing_fields"
	KindInvalidFieldValues ErrorKind = "invalid_field_values"
	KindEmptyBetDetails    ErrorKind = "empty_bet_details"
	KindInvalidBetDetail   ErrorKind = "invalid_bet_detail"
)

type BetDetailError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ValidationError describes why a candidate report was rejected. Only the
// fields relevant to Kind are set.
type ValidationError struct {
	Kind       ErrorKind           `json:"kind"`
	Fields     []string            `json:"fields,omitempty"`
	Allowed    map[string][]string `json:"allowed,omitempty"`
	BetDetails []BetDetailError    `json:"betDetails,omitempty"`
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingFields:
		return "Missing required fields: " + strings.Join(e.Fields, ", ")
	case KindInvalidFieldValues:
		parts := make([]string, 0, len(e.Fields))
		for _, field := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s (allowed: %s)", field, strings.Join(e.Allowed[field], ", ")))
		}
		return "Invalid values for fields: " + strings.Join(parts, "; ")
	case KindEmptyBetDetails:
		return "betDetails must contain at least one entry"
	case KindInvalidBetDetail:
		parts := make([]string, 0, len(e.BetDetails))
		for _, detail := range e.BetDetails {
			parts = append(parts, fmt.Sprintf("betDetails[%d]: %s", detail.Index, detail.Reason))
		}
		return "Invalid bet details: " + strings.Join(parts, "; ")
	default:
		return "invalid report"
	}
}

type enumField struct {
	name    string
	allowed []string
}

var enumFields = []enumField{
	{name: "sportName", allowed: domain.Sports},
	{name: "marketName", allowed: domain.Markets},
	{name: "catchBy", allowed: domain.Investigators},
	{name: "proofType", allowed: domain.ProofTypes},
	{name: "proofStatus", allowed: domain.ProofStatuses},
}

// ParseReport turns a raw candidate into a normalized report. Checks run in
// order and stop at the first failing category: required fields, enumerated
// values, bet details present, each bet detail valid.
func ParseReport(raw domain.RawReport) (domain.Report, *ValidationError) {
	required := []struct {
		name  string
		value string
	}{
		{"userName", raw.UserName.Trimmed()},
		{"agent", raw.Agent.Trimmed()},
		{"sportName", raw.SportName.Trimmed()},
		{"eventName", raw.EventName.Trimmed()},
		{"marketName", raw.MarketName.Trimmed()},
		{"catchBy", raw.CatchBy.Trimmed()},
		{"proofType", raw.ProofType.Trimmed()},
		{"proofStatus", raw.ProofStatus.Trimmed()},
	}
	values := make(map[string]string, len(required))
	var missing []string
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
		values[field.name] = field.value
	}
	if len(missing) > 0 {
		return domain.Report{}, &ValidationError{Kind: KindMissingFields, Fields: missing}
	}

	var invalid []string
	allowed := map[string][]string{}
	for _, field := range enumFields {
		if !domain.Contains(field.allowed, values[field.name]) {
			invalid = append(invalid, field.name)
			allowed[field.name] = field.allowed
		}
	}
	if len(invalid) > 0 {
		return domain.Report{}, &ValidationError{Kind: KindInvalidFieldValues, Fields: invalid, Allowed: allowed}
	}

	if len(raw.BetDetails) == 0 {
		return domain.Report{}, &ValidationError{Kind: KindEmptyBetDetails}
	}

	details := make([]domain.BetDetail, 0, len(raw.BetDetails))
	var detailErrs []BetDetailError
	for index, item := range raw.BetDetails {
		odds, oddsOK := parseNumber(item.Odds.Trimmed())
		switch {
		case !oddsOK:
			detailErrs = append(detailErrs, BetDetailError{Index: index, Reason: "odds must be a number"})
		case odds == 0:
			detailErrs = append(detailErrs, BetDetailError{Index: index, Reason: "odds must be non-zero"})
		}
		stack, stackOK := parseNumber(item.Stack.Trimmed())
		switch {
		case !stackOK:
			detailErrs = append(detailErrs, BetDetailError{Index: index, Reason: "stack must be a number"})
		case stack == 0:
			detailErrs = append(detailErrs, BetDetailError{Index: index, Reason: "stack must be non-zero"})
		}
		if !IsTime12(item.Time.Trimmed()) {
			detailErrs = append(detailErrs, BetDetailError{Index: index, Reason: "time must match HH:MM:SS AM/PM"})
		}
		details = append(details, domain.BetDetail{
			Odds:  odds,
			Stack: stack,
			Time:  To24Hour(item.Time.Trimmed()),
		})
	}
	if len(detailErrs) > 0 {
		return domain.Report{}, &ValidationError{Kind: KindInvalidBetDetail, BetDetails: detailErrs}
	}

	return domain.Report{
		Date:             NormalizeDateTime(raw.Date.Trimmed()),
		UserName:         values["userName"],
		Agent:            values["agent"],
		Origin:           raw.Origin.Trimmed(),
		SportName:        values["sportName"],
		EventName:        values["eventName"],
		MarketName:       values["marketName"],
		ACBalance:        numberOrZero(raw.ACBalance.Trimmed()),
		AfterVoidBalance: numberOrZero(raw.AfterVoidBalance.Trimmed()),
		PL:               numberOrZero(raw.PL.Trimmed()),
		BetDetails:       details,
		CatchBy:          values["catchBy"],
		ProofType:        values["proofType"],
		ProofStatus:      values["proofStatus"],
		Remark:           raw.Remark.Trimmed(),
	}, nil
}

func parseNumber(raw string) (float64, bool) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if value == "" {
		return 0, false
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return 0, false
	}
	number := parsed.InexactFloat64()
	if math.IsInf(number, 0) || math.IsNaN(number) {
		return 0, false
	}
	return number, true
}

func numberOrZero(raw string) float64 {
	value, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	return value
}
