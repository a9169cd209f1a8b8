package tools

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// formatNumber prints v in its shortest form: 1, 1.5, 0.25.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // normalize negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatSpeed prints a playback speed such as "1.5x".
func formatSpeed(v float64) string {
	return formatNumber(v) + "x"
}

// formatClock prints a position as minutes and zero-padded seconds, e.g. 1:05.
// Fractions and negative values are kept rather than rounded.
func formatClock(seconds float64) string {
	minutes := math.Floor(seconds / 60)
	rest := formatNumber(math.Mod(seconds, 60))
	if len(rest) < 2 {
		rest = strings.Repeat("0", 2-len(rest)) + rest
	}
	return formatNumber(minutes) + ":" + rest
}

// formatDuration prints seconds as "Xh Ym".
func formatDuration(seconds int) string {
	d := float64(seconds)
	hours := math.Floor(d / 3600)
	minutes := math.Floor(math.Mod(d, 3600) / 60)
	return formatNumber(hours) + "h " + formatNumber(minutes) + "m"
}

// formatDate prints a date as M/D/YYYY in the time's location.
func formatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// yesNo renders a flag as YES or NO.
func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
