package multisig

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
)

const (
	ownersKey    = "owners"
	walletCfgKey = "walletcfg"
	pendingName  = "pending"
	nonceName    = "nonce"
)

// OwnerSet holds the owners of the wallet and the number of signatures
// required to authorize a call.
type OwnerSet struct {
	// Owners in the order they were added.
	Owners             [][]byte `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	SignaturesRequired uint64   `protobuf:"varint,2,opt,name=signatures_required,json=signaturesRequired,proto3" json:"signatures_required,omitempty"`
}

var _ orm.Model = (*OwnerSet)(nil)

func (m *OwnerSet) Reset()         { *m = OwnerSet{} }
func (m *OwnerSet) String() string { return proto.CompactTextString(m) }
func (*OwnerSet) ProtoMessage()    {}

// Validate ensures 1 <= SignaturesRequired <= len(Owners) and that every
// owner is a unique, well formed address.
func (m *OwnerSet) Validate() error {
	if err := validateThreshold(m.SignaturesRequired, len(m.Owners)); err != nil {
		return err
	}
	for i, o := range m.Owners {
		if err := safelite.Address(o).Validate(); err != nil {
			return errors.Wrapf(err, "owner %d", i)
		}
		if m.index(o) != i {
			return errors.Wrapf(ErrAlreadyOwner, "owner %s", safelite.Address(o))
		}
	}
	return nil
}

func (m *OwnerSet) index(addr []byte) int {
	for i, o := range m.Owners {
		if safelite.Address(o).Equals(addr) {
			return i
		}
	}
	return -1
}

// Has returns true if addr is an owner.
func (m *OwnerSet) Has(addr safelite.Address) bool {
	return m.index(addr) >= 0
}

// Addresses returns a copy of the owner list.
func (m *OwnerSet) Addresses() []safelite.Address {
	res := make([]safelite.Address, len(m.Owners))
	for i, o := range m.Owners {
		res[i] = safelite.Address(o).Clone()
	}
	return res
}

func validateThreshold(threshold uint64, owners int) error {
	if threshold < 1 || threshold > uint64(owners) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d with %d owners", threshold, owners)
	}
	return nil
}

// WalletConfig is the replay domain of a wallet instance.
type WalletConfig struct {
	// ChainID is a 32 byte big endian integer.
	ChainID []byte `protobuf:"bytes,1,opt,name=chain_id,json=chainId,proto3" json:"chain_id,omitempty"`
	Address []byte `protobuf:"bytes,2,opt,name=address,proto3" json:"address,omitempty"`
}

var _ orm.Model = (*WalletConfig)(nil)

func (m *WalletConfig) Reset()         { *m = WalletConfig{} }
func (m *WalletConfig) String() string { return proto.CompactTextString(m) }
func (*WalletConfig) ProtoMessage()    {}

// Validate checks the field widths.
func (m *WalletConfig) Validate() error {
	if len(m.ChainID) != 32 {
		return errors.Wrap(errors.ErrModel, "chain id must be 32 bytes")
	}
	if err := safelite.Address(m.Address).Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return nil
}

// PendingTx is a call collecting signatures under the incremental protocol.
type PendingTx struct {
	Destination []byte `protobuf:"bytes,1,opt,name=destination,proto3" json:"destination,omitempty"`
	// Value is a big endian unsigned integer of at most 32 bytes.
	Value    []byte `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
	Payload  []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	Executed bool   `protobuf:"varint,4,opt,name=executed,proto3" json:"executed,omitempty"`
	// Signers in the order their signatures were recorded.
	Signers [][]byte `protobuf:"bytes,5,rep,name=signers,proto3" json:"signers,omitempty"`
}

var _ orm.Model = (*PendingTx)(nil)

func (m *PendingTx) Reset()         { *m = PendingTx{} }
func (m *PendingTx) String() string { return proto.CompactTextString(m) }
func (*PendingTx) ProtoMessage()    {}

// Validate checks the field widths and that no signer is recorded twice.
func (m *PendingTx) Validate() error {
	if err := safelite.Address(m.Destination).Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Value) > 32 {
		return errors.Wrap(errors.ErrOverflow, "value exceeds 256 bits")
	}
	for i, s := range m.Signers {
		if err := safelite.Address(s).Validate(); err != nil {
			return errors.Wrapf(err, "signer %d", i)
		}
		if m.signerIndex(s) != i {
			return errors.Wrapf(ErrSignatureAlreadyRecorded, "signer %s", safelite.Address(s))
		}
	}
	return nil
}

func (m *PendingTx) signerIndex(addr []byte) int {
	for i, s := range m.Signers {
		if safelite.Address(s).Equals(addr) {
			return i
		}
	}
	return -1
}

// HasSigner returns true if a signature of addr was recorded.
func (m *PendingTx) HasSigner(addr safelite.Address) bool {
	return m.signerIndex(addr) >= 0
}

// Call returns the call collecting signatures.
func (m *PendingTx) Call() Call {
	return Call{
		Destination: safelite.Address(m.Destination).Clone(),
		Value:       new(big.Int).SetBytes(m.Value),
		Payload:     append([]byte{}, m.Payload...),
	}
}

// Matches returns true if the record is collecting signatures for c.
func (m *PendingTx) Matches(c Call) bool {
	return m.Call().Equals(c)
}

func newPendingTx(c Call) *PendingTx {
	return &PendingTx{
		Destination: c.Destination.Clone(),
		Value:       c.value().Bytes(),
		Payload:     append([]byte{}, c.Payload...),
	}
}
