package multisig

import (
	"context"
	"math/big"
	"testing"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
	"github.com/iov-one/safelite/safelitetest"
	"github.com/iov-one/safelite/safelitetest/assert"
	"github.com/iov-one/safelite/store"
	"github.com/iov-one/safelite/x/cash"
)

var (
	testChainID = big.NewInt(1001)
	walletAddr  = safelite.MustParseAddress("0x5afe5afe5afe5afe5afe5afe5afe5afe5afe5afe")
)

type fixture struct {
	ctx    safelite.Context
	db     safelite.CacheableKVStore
	router *Router
	wallet *Wallet
	cash   cash.BaseController
	// owners are owner1, owner2, owner3 ... in construction order.
	owners []*crypto.PrivateKey
}

// newFixture returns a wallet with n owners and given threshold, holding
// 1.0 deposited by owner1.
func newFixture(t testing.TB, n int, threshold uint64) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		db:     store.MemStore(),
		router: NewRouter(),
		cash:   cash.NewController(cash.NewBucket()),
		owners: safelitetest.Keys(n),
	}
	w, err := NewWallet(testChainID, walletAddr, f.router)
	assert.Nil(t, err)
	f.wallet = w

	_, err = w.Initialize(f.ctx, f.db, safelitetest.Addresses(f.owners...), threshold)
	assert.Nil(t, err)

	assert.Nil(t, f.cash.IssueCoins(f.db, f.owners[0].Address(), cash.MustParseAmount("10")))
	_, err = w.Receive(f.ctx, f.db, f.owners[0].Address(), cash.MustParseAmount("1.0"))
	assert.Nil(t, err)
	return f
}

func (f *fixture) nonce(t testing.TB) uint64 {
	t.Helper()
	n, err := f.wallet.GetNonce(f.db)
	assert.Nil(t, err)
	return n
}

func (f *fixture) digest(t testing.TB, nonce uint64, c Call) safelite.Hash {
	t.Helper()
	d, err := f.wallet.GetTransactionDigest(nonce, c)
	assert.Nil(t, err)
	return d
}

// batchSigs signs c under the current nonce with given keys, sorted by
// signer address.
func (f *fixture) batchSigs(t testing.TB, c Call, keys ...*crypto.PrivateKey) [][]byte {
	t.Helper()
	return safelitetest.SignSorted(f.digest(t, f.nonce(t), c), keys...)
}

func (f *fixture) sign(t testing.TB, nonce uint64, c Call, k *crypto.PrivateKey) []byte {
	t.Helper()
	return safelitetest.Sign(f.digest(t, nonce, c), k)[0]
}

func (f *fixture) balance(t testing.TB, addr safelite.Address) *big.Int {
	t.Helper()
	b, err := f.cash.Balance(f.db, addr)
	assert.Nil(t, err)
	return b
}

func (f *fixture) execute(t testing.TB, c Call, keys ...*crypto.PrivateKey) {
	t.Helper()
	res, err := f.wallet.ExecuteTransaction(f.ctx, f.db, c, f.batchSigs(t, c, keys...))
	assert.Nil(t, err)
	assert.Equal(t, true, res.Executed)
}

func one() *big.Int {
	return cash.MustParseAmount("1.0")
}

func assertAmount(t testing.TB, want, got *big.Int) {
	t.Helper()
	if want.Cmp(got) != 0 {
		t.Fatalf("want amount %s, got %s", want, got)
	}
}
