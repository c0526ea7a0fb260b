package binance

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"github.com/google/uuid"

	"rsibot/internal/decision"
	"rsibot/internal/executor"
)

var errNoCredentials = errors.New("binance: api key/secret required")

func newClientOrderID() string {
	// Binance caps newClientOrderId at 36 chars
	return "rsibot-" + uuid.NewString()[:23]
}

// SubmitLimitOrder places one GTC LIMIT order for the intent.
func (g *Gateway) SubmitLimitOrder(ctx context.Context, intent decision.TradeIntent) (executor.Confirmation, error) {
	fail := func(code int64, err error) (executor.Confirmation, error) {
		return executor.Confirmation{}, &executor.OrderError{Symbol: intent.Symbol, Side: intent.Side(), Code: code, Err: err}
	}
	var side gobinance.SideType
	switch intent.Action {
	case decision.Buy:
		side = gobinance.SideTypeBuy
	case decision.Sell:
		side = gobinance.SideTypeSell
	default:
		return fail(0, executor.ErrNotActionable)
	}
	if g.cfg.APIKey == "" || g.cfg.APISecret == "" {
		return fail(0, errNoCredentials)
	}

	clientID := g.newID()
	resp, err := g.client.NewCreateOrderService().
		Symbol(intent.Symbol).
		Side(side).
		Type(gobinance.OrderTypeLimit).
		TimeInForce(gobinance.TimeInForceTypeGTC).
		Quantity(formatDecimal(intent.Quantity)).
		Price(formatDecimal(intent.Price)).
		NewClientOrderID(clientID).
		Do(ctx, gobinance.WithRecvWindow(g.cfg.RecvWindow))
	if err != nil {
		code, _ := apiCode(err)
		return fail(code, err)
	}
	if resp == nil {
		return fail(0, fmt.Errorf("empty order response"))
	}

	conf := executor.Confirmation{
		OrderID:       fmt.Sprintf("%d", resp.OrderID),
		ClientOrderID: resp.ClientOrderID,
		Symbol:        resp.Symbol,
		Side:          string(resp.Side),
		Status:        string(resp.Status),
		Price:         intent.Price,
		Quantity:      intent.Quantity,
	}
	if resp.TransactTime > 0 {
		conf.TransactTime = time.UnixMilli(resp.TransactTime)
	}
	if p, err := parseDecimal("price", resp.Price); err == nil && p > 0 {
		conf.Price = p
	}
	if q, err := parseDecimal("origQty", resp.OrigQuantity); err == nil && q > 0 {
		conf.Quantity = q
	}
	if conf.ClientOrderID == "" {
		conf.ClientOrderID = clientID
	}
	return conf, nil
}
