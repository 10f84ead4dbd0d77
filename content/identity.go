// Package content implements the content registry: records keyed by the
// (creator, contentId, timestamp) identity, each carrying the fixed sequence
// of auctioned ownership slots and the creator's primary token.
package content

import (
	"encoding/hex"
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Identity uniquely names an auctionable content item. Two identities with
// equal fields always produce the same key and resolve to the same Record.
type Identity struct {
	Creator   string
	ContentID string
	Timestamp uint64
}

// Key returns the composite key string "contentId:creator:timestamp".
func (id Identity) Key() string {
	return fmt.Sprintf("%s:%s:%d", id.ContentID, id.Creator, id.Timestamp)
}

// Digest returns the hex-encoded SHA256 of the composite key, used as a
// fixed-length storage key.
func (id Identity) Digest() string {
	return hex.EncodeToString(bsvhash.Sha256([]byte(id.Key())))
}

// Valid reports whether the identity has all fields set.
func (id Identity) Valid() bool {
	return id.Creator != "" && id.ContentID != ""
}
