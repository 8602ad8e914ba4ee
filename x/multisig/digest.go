package multisig

import (
	"encoding/binary"
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
)

// BuildDigest returns the canonical hash of a call authorized under given
// nonce. The replay domain (wallet address and chain id) is part of the hash
// so that a signature is valid for a single wallet on a single chain only.
//
//	keccak256(wallet[20] || chainID[32] || nonce[32] || destination[20] || value[32] || payload)
//
// Inputs are not validated. Callers must reject addresses that are not 20
// bytes long and values that do not fit 256 bits.
func BuildDigest(wallet safelite.Address, chainID *big.Int, nonce uint64, c Call) safelite.Hash {
	return crypto.Keccak256Hash(
		wallet,
		uint256Word(chainID),
		uint64Word(nonce),
		c.Destination,
		uint256Word(c.value()),
		c.Payload,
	)
}

// uint256Word returns n as a 32 byte big endian word.
func uint256Word(n *big.Int) []byte {
	word := make([]byte, 32)
	if n != nil {
		n.FillBytes(word)
	}
	return word
}

func uint64Word(n uint64) []byte {
	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], n)
	return word
}
