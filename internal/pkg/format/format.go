package format

import (
	"fmt"
	"strings"
	"time"
)

// Float prints val with at most decimals places and no trailing zeros.
func Float(val float64, decimals int) string {
	if decimals < 0 {
		decimals = 4
	}
	out := fmt.Sprintf("%.*f", decimals, val)
	if strings.Contains(out, ".") {
		out = strings.TrimRight(strings.TrimRight(out, "0"), ".")
	}
	if out == "" || out == "-0" {
		return "0"
	}
	return out
}

// Series prints a slice of floats as [a, b, c] with two decimals.
func Series(vals []float64) string {
	if len(vals) == 0 {
		return "[]"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = Float(v, 2)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Duration prints d as 1h5m, 3m20s, 45s or 230ms.
func Duration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, d/time.Second)
	}
	return fmt.Sprintf("%ds", d/time.Second)
}
