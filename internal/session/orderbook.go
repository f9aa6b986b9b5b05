package session

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/deskbot/goexch/pkg/sdk/api"
)

// RefreshOrders re-fetches one side of the book and replaces the local
// list wholesale. Failures of any kind leave the existing list untouched
// and are logged only; read paths never notify the user.
func (s *Session) RefreshOrders(ctx context.Context, side api.Side) error {
	ident, err := s.identity()
	if err != nil {
		return err
	}

	res, err := s.exchange.GetOrders(ctx, ident, side, s.coinPair, s.orderStart, s.orderEnd)
	if err != nil {
		slog().Warnf("refresh %s orders: %v", side, err)
		return err
	}

	orders := res.Orders
	if orders == nil {
		orders = []api.Order{}
	}

	s.mu.Lock()
	if side == api.SideAsk {
		s.asks = orders
	} else {
		s.bids = orders
	}
	s.mu.Unlock()
	s.changed.Emit()

	return nil
}

// SubmitOrder posts a new order from user-entered amount and price.
// The strings are converted to unsigned numbers without validation;
// unparsable or negative input degenerates to zero, reaches the server
// as a malformed order and comes back as a soft failure. Success
// triggers a re-fetch of the matching side
// only. The order-dialog flag is cleared exactly once per submission,
// whatever the outcome.
func (s *Session) SubmitOrder(ctx context.Context, side api.Side, amount, price string) error {
	defer s.closeOrderDialog()

	ident, err := s.identity()
	if err != nil {
		return err
	}

	amt, _ := decimal.NewFromString(amount)
	prc, _ := decimal.NewFromString(price)
	if amt.IsNegative() {
		amt = decimal.Zero
	}
	if prc.IsNegative() {
		prc = decimal.Zero
	}
	req := api.OrderReq{
		Type:     string(side),
		CoinPair: s.coinPair,
		Amount:   amt.BigInt().Uint64(),
		Price:    prc.BigInt().Uint64(),
	}

	res, err := s.exchange.SubmitOrder(ctx, ident, req)
	if err != nil {
		s.notifier.Notify(submitFailureReason(err))
		return err
	}

	slog().Infof("submitted %s order %d (amount=%d price=%d)", side, res.OrderID, req.Amount, req.Price)
	s.recordOrder(ctx, req, res.OrderID)

	// only the affected side is refreshed; the other keeps its state
	_ = s.RefreshOrders(ctx, side)

	return nil
}

func (s *Session) closeOrderDialog() {
	s.mu.Lock()
	s.orderDialogOpen = false
	s.mu.Unlock()
	s.changed.Emit()
}

func (s *Session) recordOrder(ctx context.Context, req api.OrderReq, orderID uint64) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordOrder(ctx, req.Type, req.Amount, req.Price, orderID); err != nil {
		slog().Warnf("journal order %d: %v", orderID, err)
	}
}

// submitFailureReason extracts the server reason when one exists; a
// transport failure has none worth showing.
func submitFailureReason(err error) string {
	var soft *api.SoftError
	if errors.As(err, &soft) && soft.Reason != "" {
		return soft.Reason
	}
	return "order submission failed"
}
