package safelite

import (
	"github.com/iov-one/safelite/errors"
)

// HashLength is the length of a keccak-256 digest.
const HashLength = 32

// Hash is a keccak-256 digest.
type Hash [HashLength]byte

// BytesToHash converts b to a Hash. Input of a different length is rejected,
// never truncated or padded.
func BytesToHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, errors.Wrapf(errors.ErrInput, "hash length %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// ParseHash decodes a 0x prefixed hex representation of a hash.
func ParseHash(s string) (Hash, error) {
	raw, err := DecodeHex(s)
	if err != nil {
		return Hash{}, err
	}
	return BytesToHash(raw)
}

// Bytes returns a copy of the hash as a slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashLength)
	copy(b, h[:])
	return b
}

func (h Hash) String() string {
	return EncodeHex(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return marshalHex(h[:])
}

func (h *Hash) UnmarshalJSON(raw []byte) error {
	b, err := unmarshalHex(raw)
	if err != nil {
		return err
	}
	parsed, err := BytesToHash(b)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
