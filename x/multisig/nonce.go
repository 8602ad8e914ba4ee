package multisig

import (
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/orm"
)

// NonceSequencer holds the transaction counter. The counter starts at zero
// and is advanced by exactly one per executed transaction.
type NonceSequencer struct {
	seq orm.Sequence
}

// NewNonceSequencer returns a sequencer persisted under "_s.nonce".
func NewNonceSequencer() NonceSequencer {
	return NonceSequencer{seq: orm.NewSequence(nonceName)}
}

// Current returns the nonce the next transaction must be signed with.
func (n NonceSequencer) Current(db safelite.ReadOnlyKVStore) (uint64, error) {
	return n.seq.Current(db)
}

func (n NonceSequencer) advance(db safelite.KVStore) (uint64, error) {
	return n.seq.Increment(db)
}
