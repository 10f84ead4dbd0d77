package ownership

import "errors"

var (
	// ErrTokenNotFound indicates the token ID is not present in the registry.
	ErrTokenNotFound = errors.New("ownership: token not found")

	// ErrNotOwner indicates the from account does not hold the token.
	ErrNotOwner = errors.New("ownership: account does not hold token")

	// ErrEmptyOwner indicates a mint or transfer with an empty account.
	ErrEmptyOwner = errors.New("ownership: owner account must not be empty")

	// ErrTokenIDFailed indicates token ID derivation failed.
	ErrTokenIDFailed = errors.New("ownership: token ID derivation failed")
)
