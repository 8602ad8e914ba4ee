package crypto

import (
	"io/ioutil"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
)

const (
	// SignatureLength is the length of a recoverable signature R || S || V.
	SignatureLength = 65

	// PrivateKeyLength is the length of a raw secp256k1 private key.
	PrivateKeyLength = 32
)

// Signer is the functionality we use from a private key. It is an interface
// so that signing can be delegated to a device that does not expose the key.
type Signer interface {
	// SignHash signs the personal message hash of given digest.
	SignHash(digest safelite.Hash) ([]byte, error)
	Address() safelite.Address
}

// PrivateKey is a secp256k1 private key.
type PrivateKey struct {
	key *btcec.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKey returns a random new private key.
func GenPrivKey() (*PrivateKey, error) {
	k, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "cannot generate key: %s", err)
	}
	return &PrivateKey{key: k}, nil
}

// PrivKeyFromBytes loads a raw 32 byte private key. The scalar must be
// within the curve order.
func PrivKeyFromBytes(raw []byte) (*PrivateKey, error) {
	if len(raw) != PrivateKeyLength {
		return nil, errors.Wrapf(errors.ErrInput, "private key must be %d bytes, got %d", PrivateKeyLength, len(raw))
	}
	d := new(big.Int).SetBytes(raw)
	if d.Sign() == 0 || d.Cmp(btcec.S256().N) >= 0 {
		return nil, errors.Wrap(errors.ErrInput, "private key out of range")
	}
	k, _ := btcec.PrivKeyFromBytes(raw)
	return &PrivateKey{key: k}, nil
}

// PrivKeyFromHex loads a hex encoded private key, with or without 0x prefix.
func PrivKeyFromHex(s string) (*PrivateKey, error) {
	raw, err := safelite.DecodeHex(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return PrivKeyFromBytes(raw)
}

// LoadPrivKey reads a hex encoded private key from a file.
func LoadPrivKey(path string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read key file: %s", err)
	}
	return PrivKeyFromHex(string(raw))
}

// Bytes returns the raw 32 byte key.
func (p *PrivateKey) Bytes() []byte {
	return p.key.Serialize()
}

// Hex returns the 0x prefixed hex encoding of the raw key.
func (p *PrivateKey) Hex() string {
	return safelite.EncodeHex(p.Bytes())
}

// Address returns the account address controlled by this key.
func (p *PrivateKey) Address() safelite.Address {
	return PubKeyToAddress(p.key.PubKey())
}

// SignHash signs the personal message hash of given digest and returns a
// 65 byte R || S || V signature with V being 27 or 28.
func (p *PrivateKey) SignHash(digest safelite.Hash) ([]byte, error) {
	hash := EthSignedMessageHash(digest)
	compact := ecdsa.SignCompact(p.key, hash[:], false)
	if len(compact) != SignatureLength {
		return nil, errors.Wrapf(errors.ErrHuman, "unexpected compact signature length %d", len(compact))
	}
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig, nil
}

// PubKeyToAddress returns the last 20 bytes of the Keccak-256 hash of the
// uncompressed public key, without its 0x04 prefix.
func PubKeyToAddress(pub *btcec.PublicKey) safelite.Address {
	raw := pub.SerializeUncompressed()
	return safelite.Address(Keccak256(raw[1:])[12:])
}
