package safelite

import (
	"bytes"

	"github.com/iov-one/safelite/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = 20

// Address identifies an account: an owner, the wallet itself, or any other
// destination of a call. It is the last 20 bytes of the keccak-256 hash of
// the public key.
type Address []byte

// ParseAddress decodes a 0x prefixed hex representation of an address.
func ParseAddress(s string) (Address, error) {
	raw, err := DecodeHex(s)
	if err != nil {
		return nil, errors.Wrapf(err, "address %q", s)
	}
	a := Address(raw)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustParseAddress is like ParseAddress, but panics instead of returning
// errors. Only use for constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Compare orders addresses as unsigned 160 bit integers. The result is 0 if
// a == b, -1 if a < b, and +1 if a > b.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a, b)
}

// IsZero returns true for the all-zero address.
func (a Address) IsZero() bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return true
}

// Validate returns an error if the address is not the valid size.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	c := make(Address, len(a))
	copy(c, a)
	return c
}

// Set updates the address from its hex representation. It makes Address
// usable as a flag.Value.
func (a *Address) Set(s string) error {
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// String returns a 0x prefixed hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return EncodeHex(a)
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return marshalHex(a)
}

// UnmarshalJSON parses JSON in hex representation,
// to override the standard base64 []byte encoding.
func (a *Address) UnmarshalJSON(raw []byte) error {
	b, err := unmarshalHex(raw)
	if err != nil {
		return err
	}
	*a = b
	return nil
}
