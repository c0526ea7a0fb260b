// Package binance adapts the Binance spot REST API (through go-binance) to the
// market and executor contracts. It performs exactly one request per call and
// leaves retries to the caller.
package binance

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"

	"rsibot/internal/logger"
	"rsibot/internal/pkg/text"
)

const (
	MainnetURL = "https://api.binance.com"
	TestnetURL = "https://testnet.binance.vision"

	// maxKlines is the largest limit /api/v3/klines accepts.
	maxKlines = 1000
)

// Config selects the endpoint and credentials. Market data works without keys.
type Config struct {
	APIKey     string
	APISecret  string
	Testnet    bool
	BaseURL    string // wins over Testnet when set
	RecvWindow int64  // ms
	Timeout    time.Duration
	Debug      bool
}

// Endpoint resolves the REST base URL for cfg.
func (cfg Config) Endpoint() string {
	if u := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); u != "" {
		return u
	}
	if cfg.Testnet {
		return TestnetURL
	}
	return MainnetURL
}

// Gateway implements market.BarSource, market.QuoteSource and
// executor.OrderSink against one Binance endpoint.
type Gateway struct {
	cfg    Config
	client *gobinance.Client
	newID  func() string
}

// New builds a Gateway. The go-binance client is pointed at cfg.Endpoint()
// explicitly instead of relying on the package-level testnet switch.
func New(cfg Config) *Gateway {
	if cfg.RecvWindow <= 0 {
		cfg.RecvWindow = 5000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := gobinance.NewClient(cfg.APIKey, cfg.APISecret)
	client.BaseURL = cfg.Endpoint()
	client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	client.Debug = cfg.Debug
	client.Logger = log.New(logWriter{}, "", 0)
	logger.Debugf("binance gateway endpoint=%s testnet=%v", client.BaseURL, cfg.Testnet)
	return &Gateway{cfg: cfg, client: client, newID: newClientOrderID}
}

// Endpoint is the base URL requests go to.
func (g *Gateway) Endpoint() string { return g.client.BaseURL }

// parseDecimal reads an exchange decimal string.
func parseDecimal(field, s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// formatDecimal prints v without exponent or float noise, e.g. 0.001 -> "0.001".
func formatDecimal(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// apiCode returns the Binance error code carried by err, if any.
func apiCode(err error) (int64, bool) {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return 0, false
}

// debugLogLimit caps one go-binance debug line.
const debugLogLimit = 2000

// logWriter routes go-binance debug output through the leveled logger.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logger.Debugf("go-binance: %s", text.Truncate(strings.TrimRight(string(p), "\n"), debugLogLimit))
	return len(p), nil
}
