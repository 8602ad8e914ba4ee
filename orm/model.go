package orm

import (
	"bytes"
	"fmt"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

// NewModelBucket returns a bucket storing given model type. Keys of all
// entities are prefixed with "<name>:".
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(m),
	}
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key used to persist an entity with given primary key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One query the database for a single model instance. Result is loaded into
// given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
// If given model type cannot be used to contain stored entity, ErrType is
// returned.
func (b ModelBucket) One(db safelite.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", b.name)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s: %s", b.name, err)
	}
	return nil
}

// Has returns true if an entity with given primary key exists.
func (b ModelBucket) Has(db safelite.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put saves given model in the database.
func (b ModelBucket) Put(db safelite.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be stored in %s", m, b.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %s: %s", b.name, err)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db safelite.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", b.name)
	}
	return db.Delete(b.DBKey(key))
}

// Keys returns primary keys of all entities stored in the bucket, in
// ascending order.
func (b ModelBucket) Keys(db safelite.ReadOnlyKVStore) ([][]byte, error) {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var keys [][]byte
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		if !bytes.HasPrefix(k, b.prefix) {
			continue
		}
		keys = append(keys, append([]byte{}, k[len(b.prefix):]...))
	}
}

// prefixEnd returns the smallest key greater than all keys with given
// prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
