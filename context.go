package safelite

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to this package

const (
	contextKeyLogger contextKey = iota
	contextKeySender
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithSender sets the account that submitted the current request. It is the
// account paying for a deposit and the one reported in execution events. It
// grants no authority: quorum comes from signatures only.
func WithSender(ctx Context, sender Address) Context {
	return context.WithValue(ctx, contextKeySender, sender)
}

// GetSender returns the account that submitted the current request.
func GetSender(ctx Context) (Address, bool) {
	val, ok := ctx.Value(contextKeySender).(Address)
	return val, ok
}
