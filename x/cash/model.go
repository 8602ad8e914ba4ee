package cash

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
)

// Balance is the amount held by a single account.
type Balance struct {
	// Amount is a big endian unsigned integer of at most 32 bytes.
	Amount []byte `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Balance)(nil)

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

// Validate ensures the amount fits in 256 bits.
func (m *Balance) Validate() error {
	if len(m.Amount) > 32 {
		return errors.Wrap(errors.ErrOverflow, "balance exceeds 256 bits")
	}
	return nil
}

// Value returns the amount as an integer.
func (m *Balance) Value() *big.Int {
	return new(big.Int).SetBytes(m.Amount)
}

// NewBalance returns a balance model holding given amount.
func NewBalance(amount *big.Int) *Balance {
	return &Balance{Amount: amount.Bytes()}
}

// NewBucket returns a bucket for storing balances under cash:<address>.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Balance{})
}
