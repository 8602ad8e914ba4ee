package safelite

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/safelite/errors"
)

// DecodeHex parses a hex string with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// EncodeHex returns the 0x prefixed lowercase hex representation.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func unmarshalHex(src []byte) ([]byte, error) {
	var s string
	if err := json.Unmarshal(src, &s); err != nil {
		return nil, errors.Wrap(err, "parse string")
	}
	if s == "" {
		return nil, nil
	}
	return DecodeHex(s)
}

func marshalHex(b []byte) ([]byte, error) {
	return json.Marshal(EncodeHex(b))
}
