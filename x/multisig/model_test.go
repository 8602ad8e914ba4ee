package multisig

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/safelite/safelitetest/assert"
)

// The models are declared by hand, these tests pin them to the field
// numbers and wire types of codec.proto.
func TestModelWireFormat(t *testing.T) {
	addr := func(b byte) []byte { return bytes.Repeat([]byte{b}, 20) }
	hexAddr := func(b byte) string { return hex.EncodeToString(addr(b)) }

	cases := map[string]struct {
		model proto.Message
		empty proto.Message
		want  string
	}{
		"owner set": {
			model: &OwnerSet{Owners: [][]byte{addr(1), addr(2)}, SignaturesRequired: 2},
			empty: &OwnerSet{},
			want:  "0a14" + hexAddr(1) + "0a14" + hexAddr(2) + "1002",
		},
		"wallet config": {
			model: &WalletConfig{ChainID: []byte{0x03, 0xe9}, Address: addr(5)},
			empty: &WalletConfig{},
			want:  "0a0203e9" + "1214" + hexAddr(5),
		},
		"pending transaction": {
			model: &PendingTx{
				Destination: addr(1),
				Value:       []byte{0x05},
				Payload:     []byte{0xaa},
				Executed:    true,
				Signers:     [][]byte{addr(2)},
			},
			empty: &PendingTx{},
			want:  "0a14" + hexAddr(1) + "120105" + "1a01aa" + "2001" + "2a14" + hexAddr(2),
		},
		"signature use": {
			model: &SignatureUse{Nonce: 300, Signer: addr(7)},
			empty: &SignatureUse{},
			want:  "08ac02" + "1214" + hexAddr(7),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := proto.Marshal(tc.model)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(raw))

			want, err := hex.DecodeString(tc.want)
			assert.Nil(t, err)
			assert.Nil(t, proto.Unmarshal(want, tc.empty))
			assert.Equal(t, tc.model, tc.empty)
		})
	}
}
