package validation

import (
	"fmt"
	"testing"
	"time"
)

func TestTo12Hour(t *testing.T) {
	cases := map[string]string{
		"13:05:09":  "01:05:09 PM",
		"00:00:00":  "12:00:00 AM",
		"12:00:00":  "12:00:00 PM",
		"23:59:59":  "11:59:59 PM",
		"09:30:00":  "09:30:00 AM",
		"badinput":  "12:00:00 AM",
		"24:00:00":  "12:00:00 AM",
		"9:30:00":   "12:00:00 AM",
		"":          "12:00:00 AM",
		" 13:05:09": "01:05:09 PM",
	}
	for input, want := range cases {
		if got := To12Hour(input); got != want {
			t.Errorf("To12Hour(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTo24Hour(t *testing.T) {
	cases := map[string]string{
		"12:00:00 AM": "00:00:00",
		"12:00:00 PM": "12:00:00",
		"":            "00:00:00",
		"1:05:09 pm":  "13:05:09",
		"01:05:09PM":  "13:05:09",
		"11:59:59 PM": "23:59:59",
		"7:00:00 am":  "07:00:00",
		"13:00:00 PM": "00:00:00",
		"10:61:00 AM": "00:00:00",
		"garbage":     "00:00:00",
	}
	for input, want := range cases {
		if got := To24Hour(input); got != want {
			t.Errorf("To24Hour(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minSec := range []string{"00:00", "05:09", "59:59"} {
			value := fmt.Sprintf("%02d:%s", hour, minSec)
			if got := To24Hour(To12Hour(value)); got != value {
				t.Fatalf("round trip of %q produced %q", value, got)
			}
		}
	}
}

func TestNormalizeDateAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 18, 45, 0, 0, time.UTC)
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T22:10:00Z", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T22:10:00-05:00", time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
		{"05/03/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"45356", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2958465", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2958466", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"1e308", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"NaN", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"Inf", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"-Inf", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"-3", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"not a date", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := NormalizeDateAt(tc.input, now); !got.Equal(tc.want) {
			t.Errorf("NormalizeDateAt(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeDateFormat(t *testing.T) {
	if got := NormalizeDate("2024-03-05T10:00:00Z"); got != "2024-03-05T00:00:00.000Z" {
		t.Fatalf("unexpected ISO output %q", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, ok := ParseDate("tomorrow"); ok {
		t.Fatal("expected garbage date to be rejected")
	}
	if _, ok := ParseDate("2024-01-31"); !ok {
		t.Fatal("expected ISO date to parse")
	}
	for _, raw := range []string{"NaN", "+Inf", "1e308", "0"} {
		if _, ok := ParseDate(raw); ok {
			t.Errorf("ParseDate(%q) should be rejected", raw)
		}
	}
}
