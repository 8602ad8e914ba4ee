package multisig

import (
	"bytes"
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/x/cash"
)

// Call is an action of the wallet: send value and payload to destination.
type Call struct {
	Destination safelite.Address
	// Value is the amount of base units sent along. Nil means zero.
	Value   *big.Int
	Payload []byte
}

// Validate rejects calls that cannot be encoded in the digest without
// truncation.
func (c Call) Validate() error {
	if err := c.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if c.Value != nil {
		if err := cash.ValidateAmount(c.Value); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	return nil
}

// Equals returns true if both calls describe the same action.
func (c Call) Equals(o Call) bool {
	return c.Destination.Equals(o.Destination) &&
		c.value().Cmp(o.value()) == 0 &&
		bytes.Equal(c.Payload, o.Payload)
}

func (c Call) value() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value
}
