package crypto

import (
	"github.com/iov-one/safelite"
	"golang.org/x/crypto/sha3"
)

// personalPrefix is prepended to a 32 byte digest before signing.
const personalPrefix = "\x19Ethereum Signed Message:\n32"

// Keccak256 returns the legacy Keccak-256 hash of the concatenated input.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash is Keccak256 returning a fixed size hash.
func Keccak256Hash(data ...[]byte) safelite.Hash {
	var h safelite.Hash
	copy(h[:], Keccak256(data...))
	return h
}

// EthSignedMessageHash wraps a 32 byte digest with the personal message
// prefix and hashes the result. This is the hash that is actually signed.
func EthSignedMessageHash(digest safelite.Hash) safelite.Hash {
	return Keccak256Hash([]byte(personalPrefix), digest[:])
}

// Selector returns the 4 byte function selector of given signature, for
// example "updateThreshold(uint256)".
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], Keccak256([]byte(signature)))
	return sel
}
