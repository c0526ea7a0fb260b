package market

import (
	"errors"
	"strings"
)

// NormalizeSymbol upper-cases and trims a pair such as "btcusdt".
func NormalizeSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", errors.New("market: empty symbol")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", errors.New("market: symbol must be alphanumeric: " + s)
		}
	}
	return s, nil
}

// ValidInterval accepts exchange bar intervals: digits followed by
// m, h, d, w or M (1m, 15m, 4h, 1d, 1w, 1M).
func ValidInterval(s string) bool {
	if len(s) < 2 {
		return false
	}
	switch s[len(s)-1] {
	case 'm', 'h', 'd', 'w', 'M':
	default:
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[0] != '0'
}
