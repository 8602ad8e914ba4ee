package multisig

import (
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/x/cash"
)

// Event is a notification emitted by a successful state transition.
type Event interface {
	// KeyVals returns the event as key value pairs, ready to be logged.
	KeyVals() []interface{}
	event()
}

// OwnerChanged is emitted for every initial owner and whenever an owner is
// added or removed.
type OwnerChanged struct {
	Owner safelite.Address
	Added bool
}

// Deposit is emitted when the wallet receives funds.
type Deposit struct {
	Sender  safelite.Address
	Amount  *big.Int
	Balance *big.Int
}

// TransactionSigned is emitted when a signature is recorded in a pending
// record.
type TransactionSigned struct {
	Nonce          uint64
	Signer         safelite.Address
	SignatureCount uint64
}

// TransactionExecuted is emitted when an authorized call was executed.
type TransactionExecuted struct {
	Sender      safelite.Address
	Destination safelite.Address
	Value       *big.Int
	Payload     []byte
	Nonce       uint64
	Digest      safelite.Hash
	Result      []byte
}

func (OwnerChanged) event()        {}
func (Deposit) event()             {}
func (TransactionSigned) event()   {}
func (TransactionExecuted) event() {}

func (e OwnerChanged) KeyVals() []interface{} {
	return []interface{}{"event", "owner", "owner", e.Owner.String(), "added", e.Added}
}

func (e Deposit) KeyVals() []interface{} {
	return []interface{}{"event", "deposit", "sender", e.Sender.String(),
		"amount", cash.FormatAmount(e.Amount), "balance", cash.FormatAmount(e.Balance)}
}

func (e TransactionSigned) KeyVals() []interface{} {
	return []interface{}{"event", "signed", "nonce", e.Nonce,
		"signer", e.Signer.String(), "signatures", e.SignatureCount}
}

func (e TransactionExecuted) KeyVals() []interface{} {
	return []interface{}{"event", "executed", "nonce", e.Nonce,
		"destination", e.Destination.String(), "value", cash.FormatAmount(e.Value),
		"digest", e.Digest.String()}
}
