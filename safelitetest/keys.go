package safelitetest

import (
	"fmt"
	"sort"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
)

// NewKey returns a random private key.
func NewKey() *crypto.PrivateKey {
	k, err := crypto.GenPrivKey()
	if err != nil {
		panic(err)
	}
	return k
}

// Key returns a deterministic private key derived from given seed. The same
// seed always returns the same key.
func Key(seed string) *crypto.PrivateKey {
	raw := crypto.Keccak256([]byte("safelitetest/" + seed))
	k, err := crypto.PrivKeyFromBytes(raw)
	if err != nil {
		panic(fmt.Sprintf("seed %q: %s", seed, err))
	}
	return k
}

// Keys returns n deterministic keys named owner1 ... ownerN.
func Keys(n int) []*crypto.PrivateKey {
	keys := make([]*crypto.PrivateKey, n)
	for i := range keys {
		keys[i] = Key(fmt.Sprintf("owner%d", i+1))
	}
	return keys
}

// Addresses returns the addresses of given keys, in the same order.
func Addresses(keys ...*crypto.PrivateKey) []safelite.Address {
	addrs := make([]safelite.Address, len(keys))
	for i, k := range keys {
		addrs[i] = k.Address()
	}
	return addrs
}

// SortByAddress returns a copy of keys ordered by ascending address.
func SortByAddress(keys ...*crypto.PrivateKey) []*crypto.PrivateKey {
	sorted := append([]*crypto.PrivateKey{}, keys...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Address().Compare(sorted[j].Address()) < 0
	})
	return sorted
}

// Sign signs digest with every key in the given order.
func Sign(digest safelite.Hash, keys ...*crypto.PrivateKey) [][]byte {
	sigs := make([][]byte, len(keys))
	for i, k := range keys {
		sig, err := k.SignHash(digest)
		if err != nil {
			panic(err)
		}
		sigs[i] = sig
	}
	return sigs
}

// SignSorted signs digest with every key, returning signatures ordered by
// ascending signer address.
func SignSorted(digest safelite.Hash, keys ...*crypto.PrivateKey) [][]byte {
	return Sign(digest, SortByAddress(keys...)...)
}
