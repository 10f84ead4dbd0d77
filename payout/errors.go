package payout

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive payout amount.
	ErrInvalidAmount = errors.New("payout: amount must be positive")

	// ErrEmptyRecipient indicates a payout with no recipient account.
	ErrEmptyRecipient = errors.New("payout: recipient must not be empty")

	// ErrInsufficientFunds indicates the funding source cannot cover the
	// payout plus fee.
	ErrInsufficientFunds = errors.New("payout: insufficient funds")

	// ErrTxBuildFailed indicates the payment transaction could not be built.
	ErrTxBuildFailed = errors.New("payout: transaction build failed")

	// ErrResolveFailed indicates a recipient handle could not be resolved.
	ErrResolveFailed = errors.New("payout: handle resolution failed")

	// ErrInvalidHandle indicates the recipient handle is not alias@domain.
	ErrInvalidHandle = errors.New("payout: invalid recipient handle")

	// ErrNodeUnreachable indicates the broadcast node could not be reached.
	ErrNodeUnreachable = errors.New("payout: node unreachable")

	// ErrInvalidNodeResponse indicates an undecodable node response.
	ErrInvalidNodeResponse = errors.New("payout: invalid node response")

	// ErrBroadcastRejected indicates the node refused the transaction.
	ErrBroadcastRejected = errors.New("payout: broadcast rejected")
)
