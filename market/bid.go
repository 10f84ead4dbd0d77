package market

import (
	"context"
	"fmt"

	"github.com/cmgorg/libcmg-go/content"
)

// PlaceBid allocates up to points ownership slots of a content item to
// bidder, funded by value. Each slot costs value/points; only slots whose
// stored bid is strictly below that per-point price are taken. An evicted
// holder is refunded their full stored bid, the creator receives 90% of the
// price step above it and the platform treasury the remaining 10%. Funds
// left unspent because too few slots were beatable are returned to the
// bidder when they exceed the dust epsilon.
//
// Points may exceed the slot count; allocations cap at the available slots
// and the excess comes back through the unspent refund.
//
// The record is looked up lazily: a bid on an unseen identity mints the
// content's token set first, all slots held by the creator at zero value.
func (e *Engine) PlaceBid(ctx context.Context, id content.Identity, bidder string, value float64, points int) error {
	if bidder == "" || points < 1 || points > 100 || value <= 0 {
		return fmt.Errorf("%w: bidder %q, points %d, value %g", ErrInvalidBid, bidder, points, value)
	}

	if !e.guard.TryEnter() {
		return ErrBusy
	}
	defer e.guard.Exit()

	rec, _, err := e.registry.GetOrCreate(ctx, id)
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}

	perPoint := value / float64(points)
	remaining := points
	spent := 0.0

	// Slots are stored ascending, so this takes the cheapest beatable
	// slots first and stops at the first slot at or above the offer.
	for i := range rec.Slots {
		if remaining == 0 {
			break
		}
		slot := &rec.Slots[i]
		if slot.BidValue >= perPoint {
			break
		}

		prevOwner, err := e.tokens.OwnerOf(ctx, slot.TokenID)
		if err != nil {
			return fmt.Errorf("slot %d owner: %w", i, err)
		}
		if slot.BidValue > 0 {
			e.pay(ctx, "outbid_refund", bidder, prevOwner, slot.BidValue)
		}
		if err := e.tokens.TransferUnconditional(ctx, slot.TokenID, prevOwner, bidder); err != nil {
			return fmt.Errorf("slot %d transfer: %w", i, err)
		}
		premium := perPoint - slot.BidValue
		e.pay(ctx, "creator_royalty", bidder, rec.Creator, creatorShare*premium)
		e.pay(ctx, "platform_royalty", bidder, e.cfg.TreasuryAccount, platformShare*premium)

		slot.BidValue = perPoint
		spent += perPoint
		remaining--
	}

	if unspent := value - spent; unspent > e.cfg.DustEpsilon {
		e.pay(ctx, "unspent_refund", bidder, bidder, unspent)
	}

	rec.SortSlots()
	if err := e.registry.Put(ctx, rec); err != nil {
		return fmt.Errorf("store record: %w", err)
	}

	return e.emitBid(ctx, rec)
}
