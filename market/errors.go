package market

import "errors"

var (
	// ErrBusy indicates another allocation or licence operation holds the
	// reentrancy guard. Nothing was mutated; the caller should retry later.
	ErrBusy = errors.New("market: engine busy, retry later")

	// ErrMalformedMessage indicates a transfer-listener message did not
	// parse into a valid operation descriptor.
	ErrMalformedMessage = errors.New("market: malformed operation message")

	// ErrInsufficientDeposit indicates the attached deposit is below the
	// requested bid value or licence price.
	ErrInsufficientDeposit = errors.New("market: insufficient deposit")

	// ErrPriceTooLow indicates a licence price below the content's reserve.
	ErrPriceTooLow = errors.New("market: price below reserve")

	// ErrInvalidBid indicates bid parameters outside their valid ranges.
	ErrInvalidBid = errors.New("market: invalid bid parameters")
)
