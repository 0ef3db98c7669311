package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	defaultTime24 = "00:00:00"
	defaultTime12 = "12:00:00 AM"

	isoDateLayout = "2006-01-02T15:04:05.000Z"

	// maxExcelSerial is 9999-12-31, the last date a workbook can hold.
	maxExcelSerial = 2958465
)

var (
	time12Pattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]):([0-5][0-9])\s*([AaPp][Mm])$`)
	time24Pattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9])$`)
	yearPattern   = regexp.MustCompile(`^[0-9]{4}$`)
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006",
}

// IsTime12 reports whether value is a 12-hour "H:MM:SS AM" time.
func IsTime12(value string) bool {
	return time12Pattern.MatchString(strings.TrimSpace(value))
}

// To24Hour converts "H:MM:SS AM|PM" to "HH:MM:SS". Empty or malformed input
// yields "00:00:00".
func To24Hour(time12 string) string {
	match := time12Pattern.FindStringSubmatch(strings.TrimSpace(time12))
	if match == nil {
		return defaultTime24
	}
	hour, _ := strconv.Atoi(match[1])
	hour %= 12
	if strings.EqualFold(match[4], "PM") {
		hour += 12
	}
	return fmt.Sprintf("%02d:%s:%s", hour, match[2], match[3])
}

// To12Hour converts strict "HH:MM:SS" to "HH:MM:SS AM|PM". Malformed input
// yields "12:00:00 AM".
func To12Hour(time24 string) string {
	match := time24Pattern.FindStringSubmatch(strings.TrimSpace(time24))
	if match == nil {
		return defaultTime12
	}
	hour, _ := strconv.Atoi(match[1])
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%02d:%s:%s %s", display, match[2], match[3], period)
}

// NormalizeDate returns the ISO-8601 form of raw truncated to UTC midnight.
// Unparseable input falls back to the current date.
func NormalizeDate(raw string) string {
	return NormalizeDateTime(raw).Format(isoDateLayout)
}

func NormalizeDateTime(raw string) time.Time {
	return NormalizeDateAt(raw, time.Now())
}

func NormalizeDateAt(raw string, now time.Time) time.Time {
	parsed, ok := parseDate(raw)
	if !ok {
		parsed = now
	}
	return midnightUTC(parsed)
}

// ParseDate is the strict variant used for query parameters.
func ParseDate(raw string) (time.Time, bool) {
	parsed, ok := parseDate(raw)
	if !ok {
		return time.Time{}, false
	}
	return midnightUTC(parsed), true
}

func parseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if serial, ok := excelSerial(value); ok {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return parsed, true
		}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// excelSerial accepts a positive finite day count no later than 9999-12-31.
// Four-digit integers are read as years, not serials.
func excelSerial(value string) (float64, bool) {
	if yearPattern.MatchString(value) {
		return 0, false
	}
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return 0, false
	}
	if serial <= 0 || serial > maxExcelSerial {
		return 0, false
	}
	return serial, true
}

func midnightUTC(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
