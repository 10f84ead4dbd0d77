package content

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmgorg/libcmg-go/ownership"
)

// Registry is the get-or-create store of content records.
type Registry interface {
	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id Identity) (*Record, error)

	// GetOrCreate returns the existing record, or constructs a new one with
	// all slots at zero and mints the primary token plus SlotCount slot
	// tokens to the creator. The second return value reports whether the
	// record was created by this call. Repeated calls with the same
	// identity never mint duplicate tokens.
	GetOrCreate(ctx context.Context, id Identity) (*Record, bool, error)

	// Put persists a mutated record.
	Put(ctx context.Context, rec *Record) error
}

// newRecord constructs a fresh record for id and mints its tokens: one
// primary token representing the creator's 100 - SlotCount points, then one
// token per slot, all initially held by the creator.
func newRecord(ctx context.Context, tokens ownership.Registry, id Identity) (*Record, error) {
	rec := &Record{
		Creator:   id.Creator,
		ContentID: id.ContentID,
		Timestamp: id.Timestamp,
	}

	primary, err := tokens.Mint(ctx, id.Creator,
		fmt.Sprintf("%d%% of %s", 100-SlotCount, id.Key()))
	if err != nil {
		return nil, fmt.Errorf("content: mint primary token: %w", err)
	}
	rec.PrimaryTokenID = primary

	for i := range rec.Slots {
		tok, err := tokens.Mint(ctx, id.Creator, fmt.Sprintf("1%% of %s", id.Key()))
		if err != nil {
			return nil, fmt.Errorf("content: mint slot token %d: %w", i, err)
		}
		rec.Slots[i] = Slot{BidValue: 0, TokenID: tok}
	}
	return rec, nil
}

// cloneRecord returns an independent copy of rec. The slot array is a value
// type, so a shallow copy is a full copy.
func cloneRecord(rec *Record) *Record {
	c := *rec
	return &c
}

// MemoryRegistry is an in-process Registry backed by a map. Lookups return
// copies; mutations become visible to other readers only through Put, so an
// operation abandoned mid-mutation leaves the stored record untouched.
type MemoryRegistry struct {
	mu      sync.Mutex
	tokens  ownership.Registry
	records map[string]*Record // identity digest -> record
}

// Compile-time interface check.
var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty in-memory content registry minting
// through the given token registry.
func NewMemoryRegistry(tokens ownership.Registry) *MemoryRegistry {
	return &MemoryRegistry{
		tokens:  tokens,
		records: make(map[string]*Record),
	}
}

// Get returns the record for id, or ErrNotFound.
func (r *MemoryRegistry) Get(ctx context.Context, id Identity) (*Record, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentity, id.Key())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id.Digest()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.Key())
	}
	return cloneRecord(rec), nil
}

// GetOrCreate returns the existing record or creates one, minting its tokens.
func (r *MemoryRegistry) GetOrCreate(ctx context.Context, id Identity) (*Record, bool, error) {
	if !id.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidIdentity, id.Key())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.Digest()
	if rec, ok := r.records[key]; ok {
		return cloneRecord(rec), false, nil
	}

	rec, err := newRecord(ctx, r.tokens, id)
	if err != nil {
		return nil, false, err
	}
	r.records[key] = rec
	return cloneRecord(rec), true, nil
}

// Put persists a mutated record. The registry stores its own copy, so later
// caller-side mutations do not leak in.
func (r *MemoryRegistry) Put(ctx context.Context, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.Identity().Digest()] = cloneRecord(rec)
	return nil
}

// Len returns the number of stored records.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
