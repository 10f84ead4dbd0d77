package payout

import (
	"context"
	"math"
	"sync"
)

// Dispatcher converts human-scaled decimal amounts to minor units and hands
// them to the Payer without waiting for completion.
type Dispatcher struct {
	payer Payer
	scale float64
	wg    sync.WaitGroup
}

// NewDispatcher creates a Dispatcher paying through payer. scale is the
// number of minor units per currency unit.
func NewDispatcher(payer Payer, scale float64) *Dispatcher {
	return &Dispatcher{payer: payer, scale: scale}
}

// Pay dispatches an irrevocable transfer of amount currency units to the
// recipient. The transfer runs asynchronously; its error, if any, is
// discarded. Amounts that round to zero minor units are not dispatched.
//
// The dispatch outlives the caller's context: a payout already issued cannot
// be cancelled by aborting the operation that issued it.
func (d *Dispatcher) Pay(ctx context.Context, recipient string, amount float64) {
	if recipient == "" || amount <= 0 {
		return
	}
	minor := uint64(math.Round(amount * d.scale))
	if minor == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = d.payer.Transfer(ctx, recipient, minor)
	}()
}

// Wait blocks until all dispatched transfers have been handed to the Payer.
// Test support; the engine itself never waits on payouts.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
