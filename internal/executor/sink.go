// Package executor defines where trade intents go: the OrderSink contract,
// its confirmation and error types, and a dry-run sink that never touches
// an exchange.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rsibot/internal/decision"
	"rsibot/internal/logger"
)

// ErrNotActionable is returned when a hold intent reaches a sink.
var ErrNotActionable = errors.New("executor: intent has no order")

// OrderSink submits one limit order per call and does not retry.
type OrderSink interface {
	SubmitLimitOrder(ctx context.Context, intent decision.TradeIntent) (Confirmation, error)
}

// Confirmation is what the venue acknowledged.
type Confirmation struct {
	OrderID       string
	ClientOrderID string
	Symbol        string
	Side          string
	Status        string
	Price         float64
	Quantity      float64
	TransactTime  time.Time
	DryRun        bool
}

func (c Confirmation) String() string {
	mode := ""
	if c.DryRun {
		mode = " (dry-run)"
	}
	return fmt.Sprintf("order %s %s %s status=%s client_id=%s%s", c.OrderID, c.Symbol, c.Side, c.Status, c.ClientOrderID, mode)
}

// OrderError reports a rejected or failed submission.
type OrderError struct {
	Symbol string
	Side   string
	Code   int64 // venue error code, 0 if none
	Err    error
}

func (e *OrderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("submit %s %s: code=%d: %v", e.Side, e.Symbol, e.Code, e.Err)
	}
	return fmt.Sprintf("submit %s %s: %v", e.Side, e.Symbol, e.Err)
}

func (e *OrderError) Unwrap() error { return e.Err }

// DryRunSink logs intents and acknowledges them locally.
type DryRunSink struct {
	mu     sync.Mutex
	orders []Confirmation
	now    func() time.Time
}

// NewDryRunSink returns an empty dry-run sink.
func NewDryRunSink() *DryRunSink {
	return &DryRunSink{now: time.Now}
}

// SubmitLimitOrder records the intent and returns a NEW confirmation.
func (s *DryRunSink) SubmitLimitOrder(ctx context.Context, intent decision.TradeIntent) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, &OrderError{Symbol: intent.Symbol, Side: intent.Side(), Err: err}
	}
	if !intent.Actionable() {
		return Confirmation{}, &OrderError{Symbol: intent.Symbol, Err: ErrNotActionable}
	}
	id := uuid.NewString()
	conf := Confirmation{
		OrderID:       "DRY-" + id,
		ClientOrderID: id,
		Symbol:        intent.Symbol,
		Side:          intent.Side(),
		Status:        "NEW",
		Price:         intent.Price,
		Quantity:      intent.Quantity,
		TransactTime:  s.now(),
		DryRun:        true,
	}
	s.mu.Lock()
	s.orders = append(s.orders, conf)
	s.mu.Unlock()
	logger.Infof("dry-run: %s", intent)
	return conf, nil
}

// Orders returns a copy of every acknowledged order.
func (s *DryRunSink) Orders() []Confirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Confirmation, len(s.orders))
	copy(out, s.orders)
	return out
}
