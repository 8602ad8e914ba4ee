package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

// Sequence maintains a counter. Each value is greater than the last, both
// numerically and by bytes.Compare on its encoded form.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following
// pattern to construct a key:
//
//	_s.<name>
func NewSequence(name string) Sequence {
	return Sequence{
		id: []byte("_s." + name),
	}
}

// Current returns the sequence value without modifying it. A sequence that
// was never incremented is zero.
func (s Sequence) Current(db safelite.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw)
}

// Increment advances the sequence by one and returns the new value.
func (s Sequence) Increment(db safelite.KVStore) (uint64, error) {
	val, err := s.Current(db)
	if err != nil {
		return 0, err
	}
	if val == math.MaxUint64 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	val++
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return 0, errors.Wrap(err, "cannot store sequence")
	}
	return val, nil
}

// DecodeSequence reads an 8 byte big endian value. Nil decodes to zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "invalid sequence length %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence writes val as 8 byte big endian.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
