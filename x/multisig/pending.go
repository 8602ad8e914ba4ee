package multisig

import (
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
)

// PendingTransaction is the public view of a pending record.
type PendingTransaction struct {
	Nonce          uint64
	Destination    safelite.Address
	Value          *big.Int
	Payload        []byte
	Executed       bool
	SignatureCount uint64
}

// PendingStore keeps pending records keyed by nonce.
type PendingStore struct {
	bucket orm.ModelBucket
}

// NewPendingStore returns a store persisting records under
// pending:<nonce 8 bytes big endian>.
func NewPendingStore() PendingStore {
	return PendingStore{bucket: orm.NewModelBucket(pendingName, &PendingTx{})}
}

// Get returns the record for nonce or ErrNotFound.
func (s PendingStore) Get(db safelite.ReadOnlyKVStore, nonce uint64) (*PendingTx, error) {
	var tx PendingTx
	if err := s.bucket.One(db, orm.EncodeSequence(nonce), &tx); err != nil {
		return nil, errors.Wrapf(err, "nonce %d", nonce)
	}
	return &tx, nil
}

// Nonces returns all nonces with a record, in ascending order.
func (s PendingStore) Nonces(db safelite.ReadOnlyKVStore) ([]uint64, error) {
	keys, err := s.bucket.Keys(db)
	if err != nil {
		return nil, err
	}
	nonces := make([]uint64, 0, len(keys))
	for _, k := range keys {
		n, err := orm.DecodeSequence(k)
		if err != nil {
			return nil, errors.Wrap(err, "pending key")
		}
		nonces = append(nonces, n)
	}
	return nonces, nil
}

func (s PendingStore) save(db safelite.KVStore, nonce uint64, tx *PendingTx) error {
	return s.bucket.Put(db, orm.EncodeSequence(nonce), tx)
}

func viewPending(nonce uint64, tx *PendingTx) *PendingTransaction {
	c := tx.Call()
	return &PendingTransaction{
		Nonce:          nonce,
		Destination:    c.Destination,
		Value:          c.Value,
		Payload:        c.Payload,
		Executed:       tx.Executed,
		SignatureCount: uint64(len(tx.Signers)),
	}
}
