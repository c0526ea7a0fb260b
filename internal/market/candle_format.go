package market

import (
	"fmt"
	"math"
	"strings"
	"time"

	"rsibot/internal/pkg/format"
)

// TimeString formats the open time of bar i in UTC, "-" for untimed series.
func (s PriceSeries) TimeString(i int) string {
	if i < 0 || i >= len(s.times) || s.times[i] <= 0 {
		return "-"
	}
	return time.UnixMilli(s.times[i]).UTC().Format("2006-01-02 15:04") + "Z"
}

// Summary describes the series for a log line: last close, change over the
// window and the low-high range.
func (s PriceSeries) Summary() string {
	if len(s.closes) == 0 {
		return ""
	}
	first := s.closes[0]
	last := s.closes[len(s.closes)-1]
	low, high := math.MaxFloat64, -math.MaxFloat64
	for _, c := range s.closes {
		low = math.Min(low, c)
		high = math.Max(high, c)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d bars, close=%s", len(s.closes), format.Float(last, 8)))
	iv := strings.TrimSpace(s.Interval)
	if iv == "" {
		iv = "bar"
	}
	sb.WriteString(fmt.Sprintf(" (%+.2f%% over %dx%s)", (last-first)/first*100, len(s.closes)-1, iv))
	sb.WriteString(fmt.Sprintf(", range %s-%s", format.Float(low, 8), format.Float(high, 8)))
	if n := len(s.times); n > 0 {
		sb.WriteString(", from " + s.TimeString(0) + " to " + s.TimeString(n-1))
	}
	return sb.String()
}
