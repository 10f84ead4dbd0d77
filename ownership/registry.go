// Package ownership is the boundary to the external token registry that
// tracks which account holds which ownership or licence token. The engine
// treats a token as an unforgeable capability: it never inspects one, it only
// mints, reads the current holder, and reassigns holders unconditionally.
package ownership

import "context"

// Registry is the external token registry consumed by the marketplace engine.
type Registry interface {
	// Mint creates a new token held by owner and returns its identifier.
	// The note is a human-readable description carried by the token
	// ("1% of <content>", "$30 licence for <content>").
	Mint(ctx context.Context, owner, note string) (string, error)

	// TransferUnconditional reassigns a token from its current holder to
	// another account. No approval workflow applies; the engine is trusted
	// to reassign slot tokens during eviction.
	TransferUnconditional(ctx context.Context, tokenID, from, to string) error

	// OwnerOf returns the account currently holding the token.
	OwnerOf(ctx context.Context, tokenID string) (string, error)
}
