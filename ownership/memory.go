package ownership

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
)

// MemoryRegistry is an in-process Registry implementation. Token IDs are
// derived with HKDF from a per-registry secret, so holders of a token ID
// cannot forge the next one.
type MemoryRegistry struct {
	mu     sync.Mutex
	secret []byte
	seq    uint64
	owners map[string]string // token ID -> holder account
	notes  map[string]string // token ID -> human-readable note
}

// Compile-time interface check.
var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty in-memory token registry with a random
// secret.
func NewMemoryRegistry() (*MemoryRegistry, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("ownership: registry secret: %w", err)
	}
	return NewMemoryRegistryWithSecret(secret), nil
}

// NewMemoryRegistryWithSecret creates an in-memory registry that derives
// token IDs from the given secret. Intended for deterministic tests and for
// restoring a registry.
func NewMemoryRegistryWithSecret(secret []byte) *MemoryRegistry {
	return &MemoryRegistry{
		secret: secret,
		owners: make(map[string]string),
		notes:  make(map[string]string),
	}
}

// Mint creates a new token held by owner.
func (r *MemoryRegistry) Mint(ctx context.Context, owner, note string) (string, error) {
	if owner == "" {
		return "", ErrEmptyOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	id, err := deriveTokenID(r.secret, r.seq)
	if err != nil {
		return "", err
	}
	r.owners[id] = owner
	r.notes[id] = note
	return id, nil
}

// TransferUnconditional reassigns tokenID from its current holder to another
// account without any approval check.
func (r *MemoryRegistry) TransferUnconditional(ctx context.Context, tokenID, from, to string) error {
	if to == "" {
		return ErrEmptyOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	holder, ok := r.owners[tokenID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if holder != from {
		return fmt.Errorf("%w: %s holds %s, not %s", ErrNotOwner, holder, tokenID, from)
	}
	r.owners[tokenID] = to
	return nil
}

// OwnerOf returns the account currently holding tokenID.
func (r *MemoryRegistry) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	holder, ok := r.owners[tokenID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	return holder, nil
}

// NoteOf returns the human-readable note recorded at mint time, or "" if the
// token is unknown.
func (r *MemoryRegistry) NoteOf(tokenID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notes[tokenID]
}

// Len returns the number of minted tokens.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.owners)
}
