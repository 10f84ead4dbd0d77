// Package payout issues best-effort, asynchronous, irrevocable value
// transfers on behalf of the marketplace engine. A dispatched payout is never
// awaited, retried, or rolled back; its eventual failure is not observable to
// the caller.
package payout

import "context"

// Payer is the payment/ledger collaborator. Amounts are in the payment
// medium's minor unit.
type Payer interface {
	// Transfer moves amount minor units to the recipient account.
	Transfer(ctx context.Context, recipient string, amount uint64) error
}

// MockPayer is a test double for Payer.
// The function field must be set before the method is called.
type MockPayer struct {
	TransferFn func(ctx context.Context, recipient string, amount uint64) error
}

func (m *MockPayer) Transfer(ctx context.Context, recipient string, amount uint64) error {
	return m.TransferFn(ctx, recipient, amount)
}
