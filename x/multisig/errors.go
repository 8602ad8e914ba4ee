package multisig

import "github.com/iov-one/safelite/errors"

// multisig takes 1030-1039
var (
	ErrInvalidThreshold             = errors.Register(1030, "invalid threshold")
	ErrAlreadyOwner                 = errors.Register(1031, "already owner")
	ErrNotOwner                     = errors.Register(1032, "not owner")
	ErrUnsortedOrDuplicateSignature = errors.Register(1033, "unsorted or duplicate signature")
	ErrInsufficientSignatures       = errors.Register(1034, "insufficient signatures")
	ErrInvalidNonce                 = errors.Register(1035, "invalid nonce")
	ErrTransactionMismatch          = errors.Register(1036, "transaction mismatch")
	ErrSignatureAlreadyRecorded     = errors.Register(1037, "signature already recorded")
	ErrOutboundCallFailed           = errors.Register(1038, "outbound call failed")
)
