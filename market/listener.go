package market

import (
	"context"
	"fmt"
)

// OnTransfer handles an incoming funds transfer carrying an operation
// message. The transfer amount is the operation's deposit: it must cover
// the declared bid value or licence price. A parse or validation failure
// leaves all state untouched; the caller is expected to refund the sender.
func (e *Engine) OnTransfer(ctx context.Context, sender string, amount float64, msg string) error {
	req, err := ParseMessage(msg)
	if err != nil {
		return err
	}

	switch r := req.(type) {
	case BidRequest:
		if amount < r.Value {
			return fmt.Errorf("%w: attached %g, bid value %g", ErrInsufficientDeposit, amount, r.Value)
		}
		return e.PlaceBid(ctx, r.ID, sender, r.Value, r.Points)
	case BuyRequest:
		return e.BuyLicence(ctx, r.ID, sender, amount, r.Price)
	default:
		return fmt.Errorf("%w: unhandled request %T", ErrMalformedMessage, req)
	}
}
