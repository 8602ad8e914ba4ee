package crypto

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

var secp256k1HalfN = new(big.Int).Rsh(btcec.S256().N, 1)

// Recover returns the address that produced given signature over the
// personal message hash of digest. No ownership check is done.
//
// V may be 27/28 or 0/1. Signatures with S in the upper half of the curve
// order are rejected so that every signature has exactly one valid form.
func Recover(digest safelite.Hash, sig []byte) (safelite.Address, error) {
	if len(sig) != SignatureLength {
		return nil, errors.Wrapf(ErrInvalidSignatureLength, "got %d bytes, want %d", len(sig), SignatureLength)
	}

	v := sig[64]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return nil, errors.Wrapf(ErrInvalidSignatureRecovery, "invalid recovery id %d", sig[64])
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if r.Sign() == 0 || s.Sign() == 0 {
		return nil, errors.Wrap(ErrInvalidSignatureRecovery, "zero signature value")
	}
	if s.Cmp(secp256k1HalfN) > 0 {
		return nil, errors.Wrap(ErrInvalidSignatureRecovery, "high s value")
	}

	compact := make([]byte, SignatureLength)
	compact[0] = v
	copy(compact[1:], sig[:64])

	hash := EthSignedMessageHash(digest)
	pub, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignatureRecovery, err.Error())
	}
	addr := PubKeyToAddress(pub)
	if addr.IsZero() {
		return nil, errors.Wrap(ErrInvalidSignatureRecovery, "zero address")
	}
	return addr, nil
}
