package transcript

import "testing"

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{7.9, "00:07"},
		{59.999, "00:59"},
		{60, "01:00"},
		{125.7, "02:05"},
		{3599, "59:59"},
		// No hour rollover: minutes keep counting.
		{3700, "61:40"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{125.7, "02:05"},
		{3599.9, "59:59"},
		{3600, "01:00:00"},
		{7325, "02:02:05"},
		{36061, "10:01:01"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
