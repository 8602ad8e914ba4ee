package crypto

import "github.com/iov-one/safelite/errors"

// Crypto reserves 100~109 error codes
var (
	// ErrInvalidSignatureLength is returned when a signature is not exactly
	// SignatureLength bytes long.
	ErrInvalidSignatureLength = errors.Register(100, "invalid signature length")

	// ErrInvalidSignatureRecovery is returned when no valid signer address
	// can be recovered from a signature.
	ErrInvalidSignatureRecovery = errors.Register(101, "invalid signature recovery")
)
