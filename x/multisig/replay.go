package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/orm"
)

const usedSigName = "usedsig"

// SignatureUse records the nonce a signature was submitted for and the
// owner that produced it.
type SignatureUse struct {
	Nonce  uint64 `protobuf:"varint,1,opt,name=nonce,proto3" json:"nonce,omitempty"`
	Signer []byte `protobuf:"bytes,2,opt,name=signer,proto3" json:"signer,omitempty"`
}

var _ orm.Model = (*SignatureUse)(nil)

func (m *SignatureUse) Reset()         { *m = SignatureUse{} }
func (m *SignatureUse) String() string { return proto.CompactTextString(m) }
func (*SignatureUse) ProtoMessage()    {}

// Validate checks the signer address.
func (m *SignatureUse) Validate() error {
	return errors.Wrap(safelite.Address(m.Signer).Validate(), "signer")
}

// SignatureIndex remembers submitted signatures. A signature is bound to the
// nonce it was produced for, so one seen under an older nonce can only be a
// replay.
type SignatureIndex struct {
	bucket orm.ModelBucket
}

// NewSignatureIndex returns an index persisted under usedsig:<hash>.
func NewSignatureIndex() SignatureIndex {
	return SignatureIndex{bucket: orm.NewModelBucket(usedSigName, &SignatureUse{})}
}

// checkFresh returns ErrInvalidNonce if sig was already submitted under a
// nonce older than current.
func (s SignatureIndex) checkFresh(db safelite.ReadOnlyKVStore, sig []byte, current uint64) error {
	if len(sig) != crypto.SignatureLength {
		return nil
	}
	var use SignatureUse
	switch err := s.bucket.One(db, signatureKey(sig), &use); {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	case use.Nonce < current:
		return errors.Wrapf(ErrInvalidNonce, "signature already used for nonce %d, current is %d", use.Nonce, current)
	default:
		return nil
	}
}

func (s SignatureIndex) record(db safelite.KVStore, sig []byte, nonce uint64, signer safelite.Address) error {
	return s.bucket.Put(db, signatureKey(sig), &SignatureUse{Nonce: nonce, Signer: signer.Clone()})
}

// signatureKey hashes the signature with its recovery id normalized to
// 27/28, so both encodings of V share one key.
func signatureKey(sig []byte) []byte {
	v := sig[64]
	if v < 27 {
		v += 27
	}
	return crypto.Keccak256(sig[:64], []byte{v})
}
