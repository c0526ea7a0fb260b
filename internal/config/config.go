package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"rsibot/internal/decision"
	"rsibot/internal/indicator"
	"rsibot/internal/market"
)

// Environment variables that override the file.
const (
	EnvConfigPath = "RSIBOT_CONFIG"
	EnvAPIKey     = "RSIBOT_API_KEY"
	EnvAPISecret  = "RSIBOT_API_SECRET"

	DefaultPath = "configs/config.toml"
)

// Binance caps a kline request at this many bars.
const maxKlineLimit = 1000

type Config struct {
	App struct {
		Env          string `toml:"env"`
		LogLevel     string `toml:"log_level"`
		EverySeconds int    `toml:"every_seconds"` // 0 runs a single cycle
	} `toml:"app"`

	Exchange struct {
		Testnet        bool   `toml:"testnet"`
		DryRun         bool   `toml:"dry_run"`
		APIKey         string `toml:"api_key"`
		APISecret      string `toml:"api_secret"`
		BaseURL        string `toml:"base_url"` // overrides the live/testnet endpoint
		RecvWindowMs   int64  `toml:"recv_window_ms"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"exchange"`

	Strategy struct {
		Symbol     string              `toml:"symbol"`
		Interval   string              `toml:"interval"`
		Window     int                 `toml:"window"`
		WarmupBars int                 `toml:"warmup_bars"`
		Method     string              `toml:"method"` // percent | absolute
		Flat       string              `toml:"flat"`   // neutral | undefined
		Quantity   float64             `toml:"quantity"`
		Thresholds decision.Thresholds `toml:"thresholds"`
	} `toml:"strategy"`

	Report struct {
		ChartPath string `toml:"chart_path"` // empty disables the chart
	} `toml:"report"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

// Load reads the config at path and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read parses the TOML file at path, falling back to defaults when it does
// not exist, and applies env overrides. The result is not validated so
// callers can layer further overrides first.
func Read(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse TOML %s: %w", path, err)
		}
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// PathFromEnv returns $RSIBOT_CONFIG or DefaultPath.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

func applyDefaults(c *Config) {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Exchange.RecvWindowMs <= 0 {
		c.Exchange.RecvWindowMs = 5000
	}
	if c.Exchange.TimeoutSeconds <= 0 {
		c.Exchange.TimeoutSeconds = 10
	}
	if c.Strategy.Symbol == "" {
		c.Strategy.Symbol = "BTCUSDT"
	}
	if c.Strategy.Interval == "" {
		c.Strategy.Interval = "1d"
	}
	if c.Strategy.Window == 0 {
		c.Strategy.Window = 14
	}
	if c.Strategy.Method == "" {
		c.Strategy.Method = "percent"
	}
	if c.Strategy.Flat == "" {
		c.Strategy.Flat = "neutral"
	}
	if c.Strategy.Quantity == 0 {
		c.Strategy.Quantity = 0.001
	}
	// both edges unset means the default band
	if c.Strategy.Thresholds == (decision.Thresholds{}) {
		c.Strategy.Thresholds = decision.DefaultThresholds()
	}
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.Exchange.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPISecret)); v != "" {
		c.Exchange.APISecret = v
	}
}

// Validate normalizes the symbol and checks every field.
func (c *Config) Validate() error {
	sym, err := market.NormalizeSymbol(c.Strategy.Symbol)
	if err != nil {
		return fmt.Errorf("strategy.symbol: %w", err)
	}
	c.Strategy.Symbol = sym
	if !market.ValidInterval(c.Strategy.Interval) {
		return fmt.Errorf("strategy.interval: invalid bar interval %q", c.Strategy.Interval)
	}
	if c.Strategy.Window < 1 {
		return fmt.Errorf("strategy.window must be >= 1, got %d", c.Strategy.Window)
	}
	if c.Strategy.WarmupBars < 0 {
		return fmt.Errorf("strategy.warmup_bars must be >= 0, got %d", c.Strategy.WarmupBars)
	}
	if n := c.BarCount(); n > maxKlineLimit {
		return fmt.Errorf("strategy.window + warmup_bars + 1 = %d exceeds %d bars", n, maxKlineLimit)
	}
	method, err := c.RSIMethod()
	if err != nil {
		return fmt.Errorf("strategy.method: %w", err)
	}
	if method == indicator.MethodAbsolute && c.Strategy.Window < 2 {
		return fmt.Errorf("strategy.window must be >= 2 for the absolute method")
	}
	if _, err := c.FlatPolicy(); err != nil {
		return fmt.Errorf("strategy.flat: %w", err)
	}
	if c.Strategy.Quantity <= 0 {
		return fmt.Errorf("strategy.quantity must be > 0, got %v", c.Strategy.Quantity)
	}
	if err := c.Strategy.Thresholds.Validate(); err != nil {
		return fmt.Errorf("strategy.thresholds: %w", err)
	}
	if c.App.EverySeconds < 0 {
		return fmt.Errorf("app.every_seconds must be >= 0, got %d", c.App.EverySeconds)
	}
	if !c.Exchange.DryRun && (c.Exchange.APIKey == "" || c.Exchange.APISecret == "") {
		return fmt.Errorf("exchange: api_key and api_secret are required unless dry_run is set (or use %s/%s)", EnvAPIKey, EnvAPISecret)
	}
	return nil
}

// BarCount is how many bars one cycle requests.
func (c *Config) BarCount() int {
	return c.Strategy.Window + c.Strategy.WarmupBars + 1
}

func (c *Config) RSIMethod() (indicator.Method, error) {
	return indicator.ParseMethod(c.Strategy.Method)
}

func (c *Config) FlatPolicy() (indicator.FlatPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(c.Strategy.Flat)) {
	case "", "neutral":
		return indicator.FlatNeutral, nil
	case "undefined", "error":
		return indicator.FlatUndefined, nil
	default:
		return 0, fmt.Errorf("unknown flat policy %q", c.Strategy.Flat)
	}
}

// RSIOptions bundles the indicator options; call after Validate.
func (c *Config) RSIOptions() indicator.Options {
	m, _ := c.RSIMethod()
	f, _ := c.FlatPolicy()
	return indicator.Options{Method: m, Flat: f}
}
