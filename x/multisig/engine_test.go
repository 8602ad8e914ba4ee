package multisig

import (
	"math/big"
	"testing"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/safelitetest"
	"github.com/iov-one/safelite/safelitetest/assert"
	"github.com/iov-one/safelite/x/cash"
)

func TestBatchTransfer(t *testing.T) {
	f := newFixture(t, 3, 2)
	owner1, owner2 := f.owners[0], f.owners[1]
	before := f.balance(t, owner2.Address())

	c := Call{Destination: owner2.Address(), Value: one()}
	res, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, owner1, owner2))
	assert.Nil(t, err)
	assert.Equal(t, true, res.Executed)
	assert.Equal(t, uint64(0), res.Nonce)
	assert.Equal(t, uint64(2), res.SignatureCount)

	assertAmount(t, new(big.Int).Add(before, one()), f.balance(t, owner2.Address()))
	assertAmount(t, new(big.Int), f.balance(t, walletAddr))
	assert.Equal(t, uint64(1), f.nonce(t))

	last := res.Events[len(res.Events)-1].(TransactionExecuted)
	assert.Equal(t, uint64(0), last.Nonce)
	assert.Equal(t, owner2.Address(), last.Destination)
	assert.Equal(t, f.digest(t, 0, c), last.Digest)
}

func TestBatchReplayIsRejected(t *testing.T) {
	f := newFixture(t, 3, 2)
	owner1, owner2 := f.owners[0], f.owners[1]
	assert.Nil(t, f.cash.IssueCoins(f.db, walletAddr, cash.MustParseAmount("5")))

	c := Call{Destination: owner2.Address(), Value: one()}
	sigs := f.batchSigs(t, c, owner1, owner2)
	_, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, sigs)
	assert.Nil(t, err)

	balance := f.balance(t, owner2.Address())
	_, err = f.wallet.ExecuteTransaction(f.ctx, f.db, c, sigs)
	assert.IsErr(t, ErrInvalidNonce, err)
	assertAmount(t, balance, f.balance(t, owner2.Address()))
	assert.Equal(t, uint64(1), f.nonce(t))
}

func TestBatchRejections(t *testing.T) {
	outsider := safelitetest.Key("outsider")

	cases := map[string]struct {
		sigs    func(t testing.TB, f *fixture, c Call) [][]byte
		wantErr *errors.Error
	}{
		"unsorted signatures": {
			sigs: func(t testing.TB, f *fixture, c Call) [][]byte {
				sorted := safelitetest.SortByAddress(f.owners[0], f.owners[1])
				return safelitetest.Sign(f.digest(t, 0, c), sorted[1], sorted[0])
			},
			wantErr: ErrUnsortedOrDuplicateSignature,
		},
		"duplicated signature": {
			sigs: func(t testing.TB, f *fixture, c Call) [][]byte {
				sig := f.sign(t, 0, c, f.owners[0])
				return [][]byte{sig, sig}
			},
			wantErr: ErrUnsortedOrDuplicateSignature,
		},
		"non owner reaching quorum by count": {
			sigs: func(t testing.TB, f *fixture, c Call) [][]byte {
				return f.batchSigs(t, c, f.owners[0], outsider)
			},
			wantErr: ErrNotOwner,
		},
		"single signature": {
			sigs: func(t testing.TB, f *fixture, c Call) [][]byte {
				return f.batchSigs(t, c, f.owners[2])
			},
			wantErr: ErrInsufficientSignatures,
		},
		"no signatures": {
			sigs:    func(t testing.TB, f *fixture, c Call) [][]byte { return nil },
			wantErr: ErrInsufficientSignatures,
		},
		"truncated signature": {
			sigs: func(t testing.TB, f *fixture, c Call) [][]byte {
				sigs := f.batchSigs(t, c, f.owners[0], f.owners[1])
				sigs[1] = sigs[1][:64]
				return sigs
			},
			wantErr: crypto.ErrInvalidSignatureLength,
		},
		"signature for another nonce": {
			sigs: func(t testing.TB, f *fixture, c Call) [][]byte {
				return safelitetest.SignSorted(f.digest(t, 7, c), f.owners[0], f.owners[1])
			},
			wantErr: ErrNotOwner,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 3, 2)
			c := Call{Destination: f.owners[1].Address(), Value: one()}
			before := f.balance(t, walletAddr)

			_, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, tc.sigs(t, f, c))
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, uint64(0), f.nonce(t))
			assertAmount(t, before, f.balance(t, walletAddr))
		})
	}
}

func TestIncrementalTransfer(t *testing.T) {
	f := newFixture(t, 3, 2)
	owner1, owner2 := f.owners[0], f.owners[1]
	before := f.balance(t, owner2.Address())
	c := Call{Destination: owner2.Address(), Value: one()}

	res, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, owner1))
	assert.Nil(t, err)
	assert.Equal(t, false, res.Executed)
	assert.Equal(t, uint64(1), res.SignatureCount)

	p, err := f.wallet.GetPendingTransaction(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), p.SignatureCount)
	assert.Equal(t, false, p.Executed)
	assert.Equal(t, owner2.Address(), p.Destination)
	assert.Equal(t, 0, p.Value.Cmp(one()))
	assertAmount(t, before, f.balance(t, owner2.Address()))
	assert.Equal(t, uint64(0), f.nonce(t))

	res, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, owner2))
	assert.Nil(t, err)
	assert.Equal(t, true, res.Executed)
	assert.Equal(t, uint64(2), res.SignatureCount)

	p, err = f.wallet.GetPendingTransaction(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), p.SignatureCount)
	assert.Equal(t, true, p.Executed)
	assertAmount(t, new(big.Int).Add(before, one()), f.balance(t, owner2.Address()))
	assert.Equal(t, uint64(1), f.nonce(t))

	signers, err := f.wallet.GetPendingSigners(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, []safelite.Address{owner1.Address(), owner2.Address()}, signers)
}

func TestIncrementalInsufficientSignatures(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: f.owners[1].Address(), Value: one()}

	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, f.owners[2]))
	assert.Nil(t, err)

	// Nothing else happens until a second signature arrives.
	for i := 0; i < 3; i++ {
		p, err := f.wallet.GetPendingTransaction(f.db, 0)
		assert.Nil(t, err)
		assert.Equal(t, false, p.Executed)
		assert.Equal(t, uint64(1), p.SignatureCount)
	}
	assertAmount(t, one(), f.balance(t, walletAddr))
}

func TestIncrementalDuplicateSigner(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: f.owners[1].Address(), Value: one()}
	sig := f.sign(t, 0, c, f.owners[0])

	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, sig)
	assert.Nil(t, err)

	_, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, sig)
	assert.IsErr(t, ErrSignatureAlreadyRecorded, err)

	// The zero based V encoding of the same signature is the same signer.
	alt := append([]byte{}, sig...)
	alt[64] -= 27
	_, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, alt)
	assert.IsErr(t, ErrSignatureAlreadyRecorded, err)

	p, err := f.wallet.GetPendingTransaction(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), p.SignatureCount)
}

func TestIncrementalRejections(t *testing.T) {
	cases := map[string]struct {
		nonce   uint64
		call    func(f *fixture) Call
		signer  func(f *fixture) *crypto.PrivateKey
		wantErr *errors.Error
	}{
		"future nonce": {
			nonce:   1,
			signer:  func(f *fixture) *crypto.PrivateKey { return f.owners[1] },
			wantErr: ErrInvalidNonce,
		},
		"different call under the same nonce": {
			call: func(f *fixture) Call {
				return Call{Destination: f.owners[2].Address(), Value: one()}
			},
			signer:  func(f *fixture) *crypto.PrivateKey { return f.owners[1] },
			wantErr: ErrTransactionMismatch,
		},
		"different value under the same nonce": {
			call: func(f *fixture) Call {
				return Call{Destination: f.owners[1].Address(), Value: big.NewInt(1)}
			},
			signer:  func(f *fixture) *crypto.PrivateKey { return f.owners[1] },
			wantErr: ErrTransactionMismatch,
		},
		"different payload under the same nonce": {
			call: func(f *fixture) Call {
				return Call{Destination: f.owners[1].Address(), Value: one(), Payload: []byte{1}}
			},
			signer:  func(f *fixture) *crypto.PrivateKey { return f.owners[1] },
			wantErr: ErrTransactionMismatch,
		},
		"not an owner": {
			signer:  func(f *fixture) *crypto.PrivateKey { return safelitetest.Key("outsider") },
			wantErr: ErrNotOwner,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 3, 2)
			first := Call{Destination: f.owners[1].Address(), Value: one()}
			_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, first, f.sign(t, 0, first, f.owners[0]))
			assert.Nil(t, err)

			c := first
			if tc.call != nil {
				c = tc.call(f)
			}
			sig := f.sign(t, tc.nonce, c, tc.signer(f))
			_, err = f.wallet.SignTransaction(f.ctx, f.db, tc.nonce, c, sig)
			assert.IsErr(t, tc.wantErr, err)

			p, err := f.wallet.GetPendingTransaction(f.db, 0)
			assert.Nil(t, err)
			assert.Equal(t, uint64(1), p.SignatureCount)
			assert.Equal(t, false, p.Executed)
			assert.Equal(t, uint64(0), f.nonce(t))
		})
	}
}

func TestIncrementalFailureCreatesNoRecord(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: f.owners[1].Address(), Value: one()}
	sig := f.sign(t, 0, c, safelitetest.Key("outsider"))

	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, sig)
	assert.IsErr(t, ErrNotOwner, err)

	_, err = f.wallet.GetPendingTransaction(f.db, 0)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestMixedProtocols(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: f.owners[2].Address(), Value: one()}

	// A signature recorded in a pending record can still be used in a
	// batch for the same nonce.
	sig := f.sign(t, 0, c, f.owners[0])
	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, c, sig)
	assert.Nil(t, err)

	f.execute(t, c, f.owners[0], f.owners[1])
	assert.Equal(t, uint64(1), f.nonce(t))

	// The batch executed the pending call.
	p, err := f.wallet.GetPendingTransaction(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, true, p.Executed)
	assert.Equal(t, uint64(1), p.SignatureCount)

	// Its nonce has passed.
	_, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, f.owners[1]))
	assert.IsErr(t, ErrInvalidNonce, err)
}

func TestBatchKeepsPendingRecordOfAnotherCall(t *testing.T) {
	f := newFixture(t, 3, 2)
	pending := Call{Destination: f.owners[2].Address(), Value: one()}
	_, err := f.wallet.SignTransaction(f.ctx, f.db, 0, pending, f.sign(t, 0, pending, f.owners[0]))
	assert.Nil(t, err)

	f.execute(t, Call{Destination: f.owners[1].Address(), Value: one()}, f.owners[0], f.owners[1])

	p, err := f.wallet.GetPendingTransaction(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, false, p.Executed)
	assert.Equal(t, f.owners[2].Address(), p.Destination)
}

func TestSelfTransfer(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: walletAddr, Value: one()}

	res, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, f.owners[0], f.owners[1]))
	assert.Nil(t, err)
	assertAmount(t, one(), f.balance(t, walletAddr))

	dep, ok := res.Events[0].(Deposit)
	assert.Equal(t, true, ok)
	assert.Equal(t, walletAddr, dep.Sender)
	assertAmount(t, one(), dep.Balance)
}

func TestInsufficientFundsRollsBack(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: f.owners[1].Address(), Value: cash.MustParseAmount("2")}

	_, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, f.owners[0], f.owners[1]))
	assert.IsErr(t, ErrOutboundCallFailed, err)
	assert.Equal(t, uint64(0), f.nonce(t))
	assertAmount(t, one(), f.balance(t, walletAddr))

	_, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, f.owners[0]))
	assert.Nil(t, err)
	_, err = f.wallet.SignTransaction(f.ctx, f.db, 0, c, f.sign(t, 0, c, f.owners[1]))
	assert.IsErr(t, ErrOutboundCallFailed, err)

	// The failed second signature left the record as it was.
	p, err := f.wallet.GetPendingTransaction(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), p.SignatureCount)
	assert.Equal(t, false, p.Executed)
	assert.Equal(t, uint64(0), f.nonce(t))
}

func TestInvalidCall(t *testing.T) {
	f := newFixture(t, 3, 2)
	c := Call{Destination: safelite.Address{1, 2, 3}, Value: one()}

	_, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, nil)
	assert.IsErr(t, errors.ErrInput, err)

	_, err = f.wallet.GetTransactionDigest(0, Call{Destination: walletAddr, Value: big.NewInt(-1)})
	assert.IsErr(t, errors.ErrInput, err)
}
