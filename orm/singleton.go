package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

// Singleton stores exactly one model under a fixed key.
type Singleton struct {
	key []byte
}

// NewSingleton returns a singleton persisted under given key.
func NewSingleton(key string) Singleton {
	if !isBucketName(key) {
		panic("illegal singleton key: " + key)
	}
	return Singleton{key: []byte(key)}
}

// Load reads the stored model into dest. It returns ErrNotFound if nothing
// was saved yet.
func (s Singleton) Load(db safelite.ReadOnlyKVStore, dest Model) error {
	raw, err := db.Get(s.key)
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", s.key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s: %s", s.key, err)
	}
	return nil
}

// Exists returns true if the model was saved.
func (s Singleton) Exists(db safelite.ReadOnlyKVStore) (bool, error) {
	return db.Has(s.key)
}

// Save validates and stores given model, replacing the previous one.
func (s Singleton) Save(db safelite.KVStore, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %s: %s", s.key, err)
	}
	return db.Set(s.key, raw)
}
