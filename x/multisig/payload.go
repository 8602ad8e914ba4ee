package multisig

import (
	"bytes"
	"math"
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
	"github.com/iov-one/safelite/errors"
)

// Function signatures of the governance operations.
const (
	AddOwnerSig        = "addOwner(address,uint256)"
	RemoveOwnerSig     = "removeOwner(address,uint256)"
	UpdateThresholdSig = "updateThreshold(uint256)"
)

var (
	addOwnerSelector        = crypto.Selector(AddOwnerSig)
	removeOwnerSelector     = crypto.Selector(RemoveOwnerSig)
	updateThresholdSelector = crypto.Selector(UpdateThresholdSig)
)

// Operation is what an authorized call does once it executes. It is one of
// Transfer, AddOwner, RemoveOwner, UpdateThreshold or GenericCall.
type Operation interface {
	operation()
}

// Transfer is a call to the wallet itself without payload.
type Transfer struct{}

// AddOwner adds an owner and sets a new threshold.
type AddOwner struct {
	Owner              safelite.Address
	SignaturesRequired uint64
}

// RemoveOwner removes an owner and sets a new threshold.
type RemoveOwner struct {
	Owner              safelite.Address
	SignaturesRequired uint64
}

// UpdateThreshold sets a new threshold.
type UpdateThreshold struct {
	SignaturesRequired uint64
}

// GenericCall is any call to a destination other than the wallet. The
// payload is passed through without interpretation.
type GenericCall struct {
	Payload []byte
}

func (Transfer) operation()        {}
func (AddOwner) operation()        {}
func (RemoveOwner) operation()     {}
func (UpdateThreshold) operation() {}
func (GenericCall) operation()     {}

// DecodeOperation returns the operation of a call made by the wallet at
// self. Only calls to self are interpreted, all others are GenericCall.
func DecodeOperation(self safelite.Address, c Call) (Operation, error) {
	if !c.Destination.Equals(self) {
		return GenericCall{Payload: c.Payload}, nil
	}
	if len(c.Payload) == 0 {
		return Transfer{}, nil
	}
	if len(c.Payload) < 4 {
		return nil, errors.Wrapf(ErrOutboundCallFailed, "payload of %d bytes has no selector", len(c.Payload))
	}

	var sel [4]byte
	copy(sel[:], c.Payload)
	args := c.Payload[4:]

	switch sel {
	case addOwnerSelector:
		owner, threshold, err := decodeAddressUint(args)
		if err != nil {
			return nil, errors.Wrap(err, "addOwner")
		}
		return AddOwner{Owner: owner, SignaturesRequired: threshold}, nil
	case removeOwnerSelector:
		owner, threshold, err := decodeAddressUint(args)
		if err != nil {
			return nil, errors.Wrap(err, "removeOwner")
		}
		return RemoveOwner{Owner: owner, SignaturesRequired: threshold}, nil
	case updateThresholdSelector:
		if len(args) != 32 {
			return nil, errors.Wrapf(ErrOutboundCallFailed, "updateThreshold: want 32 argument bytes, got %d", len(args))
		}
		return UpdateThreshold{SignaturesRequired: decodeThreshold(args)}, nil
	default:
		return nil, errors.Wrapf(ErrOutboundCallFailed, "unknown selector %x", sel)
	}
}

func decodeAddressUint(args []byte) (safelite.Address, uint64, error) {
	if len(args) != 64 {
		return nil, 0, errors.Wrapf(ErrOutboundCallFailed, "want 64 argument bytes, got %d", len(args))
	}
	if !bytes.Equal(args[:12], make([]byte, 12)) {
		return nil, 0, errors.Wrap(ErrOutboundCallFailed, "dirty address padding")
	}
	owner := safelite.Address(append([]byte{}, args[12:32]...))
	return owner, decodeThreshold(args[32:64]), nil
}

// decodeThreshold reads a uint256 word. Values that do not fit uint64 are
// clamped, which no owner set can satisfy.
func decodeThreshold(word []byte) uint64 {
	n := new(big.Int).SetBytes(word)
	if !n.IsUint64() {
		return math.MaxUint64
	}
	return n.Uint64()
}

// EncodeAddOwner returns the payload of a call adding owner.
func EncodeAddOwner(owner safelite.Address, signaturesRequired uint64) []byte {
	return encodeCall(addOwnerSelector, addressWord(owner), uint64Word(signaturesRequired))
}

// EncodeRemoveOwner returns the payload of a call removing owner.
func EncodeRemoveOwner(owner safelite.Address, signaturesRequired uint64) []byte {
	return encodeCall(removeOwnerSelector, addressWord(owner), uint64Word(signaturesRequired))
}

// EncodeUpdateThreshold returns the payload of a call changing the threshold.
func EncodeUpdateThreshold(signaturesRequired uint64) []byte {
	return encodeCall(updateThresholdSelector, uint64Word(signaturesRequired))
}

func encodeCall(sel [4]byte, words ...[]byte) []byte {
	out := make([]byte, 0, 4+32*len(words))
	out = append(out, sel[:]...)
	for _, w := range words {
		out = append(out, w...)
	}
	return out
}

func addressWord(a safelite.Address) []byte {
	word := make([]byte, 32)
	copy(word[32-len(a):], a)
	return word
}
