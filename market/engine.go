package market

import (
	"context"
	"fmt"

	"github.com/cmgorg/libcmg-go/config"
	"github.com/cmgorg/libcmg-go/content"
	"github.com/cmgorg/libcmg-go/ownership"
	"github.com/cmgorg/libcmg-go/payout"
)

// Royalty split applied to every bid premium and every licence price.
const (
	creatorShare  = 0.9
	platformShare = 0.1
)

// Engine runs the fractional-ownership market: bid slot allocation, licence
// sales, and the payout fan-out both produce. All mutating operations are
// serialised by a single non-blocking reentrancy guard.
type Engine struct {
	cfg      config.Config
	registry content.Registry
	tokens   ownership.Registry
	licences ownership.Registry
	payouts  *payout.Dispatcher
	events   Emitter
	guard    Guard
}

// NewEngine assembles an engine. A nil events emitter disables notifications.
func NewEngine(cfg config.Config, registry content.Registry, tokens, licences ownership.Registry, payouts *payout.Dispatcher, events Emitter) *Engine {
	if events == nil {
		events = NopEmitter{}
	}
	return &Engine{
		cfg:      cfg,
		registry: registry,
		tokens:   tokens,
		licences: licences,
		payouts:  payouts,
		events:   events,
	}
}

// pay dispatches a fire-and-forget transfer and mirrors it as an event.
func (e *Engine) pay(ctx context.Context, reason, from, to string, amount float64) {
	e.payouts.Pay(ctx, to, amount)
	e.events.Emit(ctx, TransferEvent{Reason: reason, From: from, To: to, Amount: amount})
}

// BiddingState returns the stored record for a content item, slots in
// ascending bid-value order.
func (e *Engine) BiddingState(ctx context.Context, id content.Identity) (*content.Record, error) {
	return e.registry.Get(ctx, id)
}

// Owners returns the current ownership percentages for a content item.
func (e *Engine) Owners(ctx context.Context, id content.Identity) (map[string]int, error) {
	stakes, err := e.OwnerStakes(ctx, id)
	if err != nil {
		return nil, err
	}
	owners := make(map[string]int, len(stakes))
	for account, s := range stakes {
		owners[account] = s.Points
	}
	return owners, nil
}

// OwnerStakes returns ownership percentages together with the bid value
// backing each owner's slots.
func (e *Engine) OwnerStakes(ctx context.Context, id content.Identity) (map[string]content.Stake, error) {
	rec, err := e.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return content.Aggregate(ctx, e.tokens, rec)
}

func (e *Engine) emitBid(ctx context.Context, rec *content.Record) error {
	stakes, err := content.Aggregate(ctx, e.tokens, rec)
	if err != nil {
		return fmt.Errorf("aggregate for bid event: %w", err)
	}
	e.events.Emit(ctx, BidEvent{
		ContentKey: rec.Identity().Key(),
		Bids:       sortedStakes(stakes),
	})
	return nil
}
