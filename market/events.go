package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cmgorg/libcmg-go/content"
)

// Event is a best-effort informational notification. Events are never
// acknowledged by any collaborator and their delivery is not awaited.
type Event interface {
	// Kind returns the event type tag.
	Kind() string
}

// OwnerStake is one account's position in a bid event payload.
type OwnerStake struct {
	Owner  string  `json:"owner"`
	Points int     `json:"percentage"`
	Value  float64 `json:"value"`
}

// BidEvent is emitted after every completed slot allocation, carrying the
// full ownership aggregation of the content item.
type BidEvent struct {
	ContentKey string       `json:"content_id"`
	Bids       []OwnerStake `json:"bids"`
}

func (BidEvent) Kind() string { return "content_bid" }

// LicenceEvent is emitted after every completed licence purchase.
type LicenceEvent struct {
	ContentKey string  `json:"content_id"`
	Buyer      string  `json:"buyer"`
	Price      float64 `json:"price"`
	TokenID    string  `json:"token_id"`
}

func (LicenceEvent) Kind() string { return "content_licensing" }

// TransferEvent is emitted for every dispatched payout.
type TransferEvent struct {
	Reason string  `json:"reason"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"value"`
}

func (TransferEvent) Kind() string { return "transfer_funds" }

// Emitter receives engine notifications.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) Emit(ctx context.Context, event Event) {}

// JSONEmitter writes each event as a single "EVENT_JSON:{...}" line, the
// format indexers scrape. Write errors are dropped; notifications are
// best-effort by contract.
type JSONEmitter struct {
	W io.Writer
}

func (e JSONEmitter) Emit(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(e.W, "EVENT_JSON:{\"event\": %q, \"data\": %s}\n", event.Kind(), payload)
}

// sortedStakes flattens an aggregation map into a deterministic owner-sorted
// slice for event payloads.
func sortedStakes(stakes map[string]content.Stake) []OwnerStake {
	out := make([]OwnerStake, 0, len(stakes))
	for owner, s := range stakes {
		out = append(out, OwnerStake{Owner: owner, Points: s.Points, Value: s.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Owner < out[j].Owner })
	return out
}
