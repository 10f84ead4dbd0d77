package market

import (
	"context"
	"fmt"

	"github.com/cmgorg/libcmg-go/content"
)

// BuyLicence sells buyer a usage licence for a content item at price, funded
// by deposit. The price must cover the content's reserve: the sum of all
// stored slot bids, or the flat new-content reserve when the item has never
// been bid on. The platform treasury takes 10% of the price and the other
// 90% is split across current owners pro rata to their percentage points.
// The buyer receives a freshly minted licence token.
//
// Any deposit above the price is kept, not refunded. Callers quote the
// exact price they are willing to pay.
func (e *Engine) BuyLicence(ctx context.Context, id content.Identity, buyer string, deposit, price float64) error {
	if buyer == "" || price <= 0 {
		return fmt.Errorf("%w: buyer %q, price %g", ErrInvalidBid, buyer, price)
	}
	if deposit < price {
		return fmt.Errorf("%w: deposit %g below price %g", ErrInsufficientDeposit, deposit, price)
	}

	if !e.guard.TryEnter() {
		return ErrBusy
	}
	defer e.guard.Exit()

	rec, created, err := e.registry.GetOrCreate(ctx, id)
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}

	reserve := e.cfg.NewContentReserve
	if !created {
		reserve = rec.ReservePrice()
	}
	if price < reserve {
		return fmt.Errorf("%w: price %g, reserve %g", ErrPriceTooLow, price, reserve)
	}

	stakes, err := content.Aggregate(ctx, e.tokens, rec)
	if err != nil {
		return fmt.Errorf("aggregate owners: %w", err)
	}

	e.pay(ctx, "licence_platform", buyer, e.cfg.TreasuryAccount, platformShare*price)
	ownersPool := creatorShare * price
	for account, stake := range stakes {
		e.pay(ctx, "licence_share", buyer, account, ownersPool*float64(stake.Points)/100)
	}

	tokenID, err := e.licences.Mint(ctx, buyer, fmt.Sprintf("$%g licence for %s", price, id.Key()))
	if err != nil {
		return fmt.Errorf("mint licence: %w", err)
	}

	e.events.Emit(ctx, LicenceEvent{
		ContentKey: id.Key(),
		Buyer:      buyer,
		Price:      price,
		TokenID:    tokenID,
	})
	return nil
}
