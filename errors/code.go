package errors

import "fmt"

const (
	// SuccessCode is returned for a nil error.
	SuccessCode uint32 = 0

	// All errors that do not provide a registered code are clubbed under
	// an internal code and a generic message instead of detailed error
	// string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Code returns the registered code of the root cause of given error. Errors
// that do not wrap a registered root error return 1.
func Code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and the message that can be safely exposed to a
// client. When not running in a debug mode all messages of errors that do not
// provide a registered code are replaced with generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	if code := Code(err); code != internalCode {
		if debug {
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

// Lookup returns the root error registered under given code.
func Lookup(code uint32) (*Error, bool) {
	e, ok := usedCodes[code]
	return e, ok
}

type coder interface {
	Code() uint32
}
