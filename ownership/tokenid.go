package ownership

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// tokenIDInfo is the constant info string used in HKDF-SHA256 token ID
	// derivation.
	tokenIDInfo = "cmg-token-id"

	// tokenIDLen is the length of a derived token ID in bytes (before hex
	// encoding).
	tokenIDLen = 16
)

// deriveTokenID derives an unforgeable token identifier from the registry
// secret and a monotonically increasing sequence number.
//
// The derivation is deterministic per (secret, seq) pair, so a registry
// restored with the same secret re-derives the same IDs, while a caller
// without the secret cannot predict the next ID.
func deriveTokenID(secret []byte, seq uint64) (string, error) {
	salt := make([]byte, 8)
	binary.BigEndian.PutUint64(salt, seq)

	r := hkdf.New(sha256.New, secret, salt, []byte(tokenIDInfo))
	id := make([]byte, tokenIDLen)
	if _, err := io.ReadFull(r, id); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenIDFailed, err)
	}
	return hex.EncodeToString(id), nil
}
