package multisig

import (
	"testing"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/safelitetest"
	"github.com/iov-one/safelite/safelitetest/assert"
)

func TestGovernanceAddOwner(t *testing.T) {
	f := newFixture(t, 3, 2)
	owner4 := safelitetest.Key("owner4")

	c := Call{Destination: walletAddr, Payload: EncodeAddOwner(owner4.Address(), 3)}
	res, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, f.owners[0], f.owners[1]))
	assert.Nil(t, err)

	ok, err := f.wallet.IsOwner(f.db, owner4.Address())
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	required, err := f.wallet.GetSignaturesRequired(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), required)

	owners, err := f.wallet.GetOwners(f.db)
	assert.Nil(t, err)
	assert.Equal(t, append(safelitetest.Addresses(f.owners...), owner4.Address()), owners)

	assert.Equal(t, OwnerChanged{Owner: owner4.Address(), Added: true}, res.Events[0])
}

func TestGovernanceRemoveOwner(t *testing.T) {
	f := newFixture(t, 3, 2)
	owner3 := f.owners[2]

	c := Call{Destination: walletAddr, Payload: EncodeRemoveOwner(owner3.Address(), 1)}
	res, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, f.owners[0], f.owners[1]))
	assert.Nil(t, err)
	assert.Equal(t, OwnerChanged{Owner: owner3.Address(), Added: false}, res.Events[0])

	owners, err := f.wallet.GetOwners(f.db)
	assert.Nil(t, err)
	assert.Equal(t, safelitetest.Addresses(f.owners[0], f.owners[1]), owners)
	required, err := f.wallet.GetSignaturesRequired(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), required)

	// The removed owner can no longer sign.
	next := Call{Destination: f.owners[1].Address(), Value: one()}
	nonce := f.nonce(t)
	_, err = f.wallet.SignTransaction(f.ctx, f.db, nonce, next, f.sign(t, nonce, next, owner3))
	assert.IsErr(t, ErrNotOwner, err)

	// A single remaining owner is now enough.
	res, err = f.wallet.SignTransaction(f.ctx, f.db, nonce, next, f.sign(t, nonce, next, f.owners[0]))
	assert.Nil(t, err)
	assert.Equal(t, true, res.Executed)
}

func TestGovernanceUpdateThreshold(t *testing.T) {
	f := newFixture(t, 3, 2)
	f.execute(t, Call{Destination: walletAddr, Payload: EncodeUpdateThreshold(3)}, f.owners[0], f.owners[1])

	required, err := f.wallet.GetSignaturesRequired(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), required)

	// Two signatures are not enough anymore.
	c := Call{Destination: f.owners[1].Address(), Value: one()}
	_, err = f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, f.owners[0], f.owners[1]))
	assert.IsErr(t, ErrInsufficientSignatures, err)
	f.execute(t, c, f.owners...)
}

func TestGovernanceFailuresRollBack(t *testing.T) {
	cases := map[string]struct {
		payload func(f *fixture) []byte
		wantErr *errors.Error
	}{
		"add existing owner": {
			payload: func(f *fixture) []byte { return EncodeAddOwner(f.owners[2].Address(), 2) },
			wantErr: ErrAlreadyOwner,
		},
		"add owner with threshold above owner count": {
			payload: func(f *fixture) []byte { return EncodeAddOwner(safelitetest.Key("x").Address(), 5) },
			wantErr: ErrInvalidThreshold,
		},
		"add owner with zero threshold": {
			payload: func(f *fixture) []byte { return EncodeAddOwner(safelitetest.Key("x").Address(), 0) },
			wantErr: ErrInvalidThreshold,
		},
		"remove unknown owner": {
			payload: func(f *fixture) []byte { return EncodeRemoveOwner(safelitetest.Key("x").Address(), 1) },
			wantErr: ErrNotOwner,
		},
		"remove owner keeping threshold of three": {
			payload: func(f *fixture) []byte { return EncodeRemoveOwner(f.owners[2].Address(), 3) },
			wantErr: ErrInvalidThreshold,
		},
		"threshold above owner count": {
			payload: func(f *fixture) []byte { return EncodeUpdateThreshold(4) },
			wantErr: ErrInvalidThreshold,
		},
		"threshold beyond uint64": {
			payload: func(f *fixture) []byte {
				p := EncodeUpdateThreshold(0)
				p[4] = 1
				return p
			},
			wantErr: ErrInvalidThreshold,
		},
		"unknown selector": {
			payload: func(f *fixture) []byte { return []byte{0xde, 0xad, 0xbe, 0xef} },
			wantErr: ErrOutboundCallFailed,
		},
		"truncated arguments": {
			payload: func(f *fixture) []byte { return EncodeUpdateThreshold(1)[:20] },
			wantErr: ErrOutboundCallFailed,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 3, 2)
			c := Call{Destination: walletAddr, Payload: tc.payload(f)}

			_, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, f.owners[0], f.owners[1]))
			assert.IsErr(t, tc.wantErr, err)

			assert.Equal(t, uint64(0), f.nonce(t))
			owners, err := f.wallet.GetOwners(f.db)
			assert.Nil(t, err)
			assert.Equal(t, safelitetest.Addresses(f.owners...), owners)
			required, err := f.wallet.GetSignaturesRequired(f.db)
			assert.Nil(t, err)
			assert.Equal(t, uint64(2), required)
		})
	}
}

// Governance always consumes the nonce, so public calls cannot change the
// owner set under a pending record. The registry is changed directly to
// check the tally rules.
func TestTallyCountsCurrentOwnersOnly(t *testing.T) {
	f := newFixture(t, 4, 2)
	owner1, owner2, owner4 := f.owners[0], f.owners[1], f.owners[3]
	c := Call{Destination: owner2.Address(), Value: one()}

	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, owner4))
	assert.Nil(t, err)
	_, err = f.wallet.registry.removeOwner(f.db, owner4.Address(), 2)
	assert.Nil(t, err)

	// owner4's recorded signature no longer counts, owner1 alone is not
	// a quorum.
	res, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, owner1))
	assert.Nil(t, err)
	assert.Equal(t, false, res.Executed)
	assert.Equal(t, uint64(2), res.SignatureCount)

	// Once owner4 is an owner again, its recorded signature counts again
	// but cannot be recorded twice.
	_, err = f.wallet.registry.addOwner(f.db, owner4.Address(), 2)
	assert.Nil(t, err)
	_, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, owner4))
	assert.IsErr(t, ErrSignatureAlreadyRecorded, err)

	_, err = f.wallet.registry.removeOwner(f.db, owner4.Address(), 2)
	assert.Nil(t, err)
	_, err = f.wallet.registry.addOwner(f.db, owner4.Address(), 3)
	assert.Nil(t, err)
	res, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, owner2))
	assert.Nil(t, err)
	assert.Equal(t, true, res.Executed)
	assert.Equal(t, uint64(3), res.SignatureCount)
}

func TestGovernanceThroughIncrementalProtocol(t *testing.T) {
	f := newFixture(t, 3, 2)
	owner4 := safelitetest.Key("owner4")
	c := Call{Destination: walletAddr, Payload: EncodeAddOwner(owner4.Address(), 2)}

	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, f.owners[2]))
	assert.Nil(t, err)
	res, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, f.owners[0]))
	assert.Nil(t, err)
	assert.Equal(t, true, res.Executed)

	ok, err := f.wallet.IsOwner(f.db, owner4.Address())
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	// Owner set changes are visible in events.
	var changed []safelite.Address
	for _, e := range res.Events {
		if oc, ok := e.(OwnerChanged); ok {
			changed = append(changed, oc.Owner)
		}
	}
	assert.Equal(t, []safelite.Address{owner4.Address()}, changed)
}
