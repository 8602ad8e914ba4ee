package store

import (
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

// Savepoint isolates all writes done by fn. They are written to db only if
// fn succeeds and discarded otherwise, so a failing fn leaves db untouched.
// A panic inside fn is recovered, reported as ErrPanic and discarded as well.
//
// Savepoints nest: fn may call Savepoint again on the store it is given.
func Savepoint(db safelite.KVStore, fn func(safelite.KVStore) error) (err error) {
	cstore, ok := db.(safelite.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrHuman, "%T does not support cache wrapping", db)
	}

	cache := cstore.CacheWrap()
	defer func() {
		if r := recover(); r != nil {
			cache.Discard()
			err = errors.Wrapf(errors.ErrPanic, "%v", r)
		}
	}()

	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
