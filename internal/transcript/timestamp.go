package transcript

import (
	"fmt"
	"math"
)

// FormatTimestamp renders a second offset as HH:MM:SS. Fractional seconds are
// truncated, not rounded; hours are zero-padded to two digits but not wrapped
// at 24, so very long recordings keep monotonic timestamps.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	return formatSeconds(int64(math.Floor(seconds)))
}

func formatSeconds(total int64) string {
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatSRTTime renders a whole-second offset in SRT notation. The system only
// tracks second precision, so the millisecond field is always 000.
func formatSRTTime(total int64) string {
	return formatSeconds(total) + ",000"
}
