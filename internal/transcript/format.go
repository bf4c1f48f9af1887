package transcript

import "fmt"

// FormatTimestamp renders a position in seconds as zero-padded MM:SS,
// truncating toward zero. Minutes run past 59 without hour rollover, so a
// timestamp deep into a long recording stays monotonic.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatDuration renders a length in seconds as HH:MM:SS once it reaches an
// hour and MM:SS below that, truncating toward zero.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	if hours := total / 3600; hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
