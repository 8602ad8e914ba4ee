package multisig

import (
	"math/big"

	"github.com/iov-one/safelite"
)

// CallInfo describes an outbound call made by the wallet.
type CallInfo struct {
	From    safelite.Address
	To      safelite.Address
	Value   *big.Int
	Payload []byte
}

// Callee is a destination that executes code when called. It receives the
// same store the wallet is running in and may call back into the wallet.
// Returning an error fails the call and rolls back the whole transaction.
type Callee interface {
	Call(ctx safelite.Context, db safelite.KVStore, info CallInfo) ([]byte, error)
}

// CalleeFunc adapts a function to the Callee interface.
type CalleeFunc func(ctx safelite.Context, db safelite.KVStore, info CallInfo) ([]byte, error)

// Call implements Callee.
func (fn CalleeFunc) Call(ctx safelite.Context, db safelite.KVStore, info CallInfo) ([]byte, error) {
	return fn(ctx, db, info)
}

// Router maps destination addresses to callees. A destination without a
// callee is a plain account: it receives value and ignores the payload.
type Router struct {
	callees map[string]Callee
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{callees: make(map[string]Callee)}
}

// Register sets the callee for given address. It panics when the address
// already has one.
func (r *Router) Register(addr safelite.Address, c Callee) {
	if err := addr.Validate(); err != nil {
		panic(err)
	}
	key := string(addr)
	if _, ok := r.callees[key]; ok {
		panic("callee already registered for " + addr.String())
	}
	r.callees[key] = c
}

// Lookup returns the callee registered for given address, if any.
func (r *Router) Lookup(addr safelite.Address) (Callee, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.callees[string(addr)]
	return c, ok
}
