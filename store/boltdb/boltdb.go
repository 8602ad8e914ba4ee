/*
Package boltdb provides a persistent safelite.CacheableKVStore backed by a
single bbolt bucket.

All writes done through a batch are applied within one bolt transaction,
so a cache wrap flushed into this store either lands completely or not at
all.
*/
package boltdb

import (
	"bytes"
	"time"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/store"
	bolt "go.etcd.io/bbolt"
)

var defaultBucket = []byte("safelite")

// Store is a key value store persisted in a bolt database file.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

var _ safelite.CacheableKVStore = (*Store)(nil)

// Open opens or creates the database file at given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", path, err)
	}
	s := &Store{db: db, bucket: defaultBucket}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket: %s", err)
	}
	return s, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns a copy of the stored value or nil if the key does not exist.
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get(key); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

// Has returns true if a value is stored under given key.
func (s *Store) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	return v != nil, err
}

// Set writes a single value in its own transaction.
func (s *Store) Set(key, value []byte) error {
	return s.apply([]store.Op{store.SetOp(key, value)})
}

// Delete removes a single value in its own transaction.
func (s *Store) Delete(key []byte) error {
	return s.apply([]store.Op{store.DelOp(key)})
}

// Iterator loads all pairs within the [start, end) range. A nil start or end
// leaves that side of the range open.
func (s *Store) Iterator(start, end []byte) (safelite.Iterator, error) {
	var data []store.Model
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && bytes.Compare(k, end) >= 0 {
				break
			}
			data = append(data, store.Pair(append([]byte{}, k...), append([]byte{}, v...)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.NewSliceIterator(data), nil
}

// NewBatch returns a batch that is written in a single bolt transaction.
func (s *Store) NewBatch() safelite.Batch {
	return &batch{store: s}
}

// CacheWrap returns an in memory layer on top of this store. Writing the
// cache flushes all of its changes atomically.
func (s *Store) CacheWrap() safelite.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

func (s *Store) apply(ops []store.Op) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return applyOps(tx.Bucket(s.bucket), ops)
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

type batch struct {
	store *Store
	ops   []store.Op
}

var _ safelite.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	if err := b.store.apply(b.ops); err != nil {
		return err
	}
	b.ops = nil
	return nil
}

// Discard is called by the cache wrap when its changes are dropped.
func (b *batch) Discard() {
	b.ops = nil
}

func applyOps(bucket *bolt.Bucket, ops []store.Op) error {
	for _, op := range ops {
		if err := op.Apply(bucketWriter{bucket}); err != nil {
			return err
		}
	}
	return nil
}

type bucketWriter struct {
	b *bolt.Bucket
}

func (w bucketWriter) Set(key, value []byte) error { return w.b.Put(key, value) }
func (w bucketWriter) Delete(key []byte) error     { return w.b.Delete(key) }
