package content

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/cmgorg/libcmg-go/ownership"
)

var bucketRecords = []byte("records")

// BoltRegistry is a Registry persisted in a bbolt database. Records are
// stored gob-encoded under the identity digest.
type BoltRegistry struct {
	db     *bbolt.DB
	tokens ownership.Registry
}

// Compile-time interface check.
var _ Registry = (*BoltRegistry)(nil)

// OpenBoltRegistry opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltRegistry(dbPath string, tokens ownership.Registry) (*BoltRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("content: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("content: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("content: create bucket: %w", err)
	}

	return &BoltRegistry{db: db, tokens: tokens}, nil
}

// Close closes the underlying database.
func (r *BoltRegistry) Close() error { return r.db.Close() }

// Get returns the record for id, or ErrNotFound.
func (r *BoltRegistry) Get(ctx context.Context, id Identity) (*Record, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentity, id.Key())
	}

	var rec *Record
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRecords).Get([]byte(id.Digest()))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id.Key())
		}
		rec = &Record{}
		return decodeGob(data, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetOrCreate returns the existing record or creates and persists one.
//
// Token minting happens inside the bolt update transaction, so a concurrent
// GetOrCreate for the same identity cannot mint a second token set.
func (r *BoltRegistry) GetOrCreate(ctx context.Context, id Identity) (*Record, bool, error) {
	if !id.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidIdentity, id.Key())
	}

	var (
		rec     *Record
		created bool
	)
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		key := []byte(id.Digest())

		if data := b.Get(key); data != nil {
			rec = &Record{}
			return decodeGob(data, rec)
		}

		fresh, err := newRecord(ctx, r.tokens, id)
		if err != nil {
			return err
		}
		data, err := encodeGob(fresh)
		if err != nil {
			return fmt.Errorf("content: encode record: %w", err)
		}
		if err := b.Put(key, data); err != nil {
			return fmt.Errorf("content: store record: %w", err)
		}
		rec = fresh
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

// Put persists a mutated record.
func (r *BoltRegistry) Put(ctx context.Context, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	data, err := encodeGob(rec)
	if err != nil {
		return fmt.Errorf("content: encode record: %w", err)
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Put([]byte(rec.Identity().Digest()), data)
	})
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
