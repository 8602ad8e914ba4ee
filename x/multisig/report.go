package multisig

import (
	"context"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/store"
)

type reportsKey struct{}

// reports collects what committed wallet calls log and count. Nothing is
// reported before the outermost call has written its savepoint.
type reports struct {
	fns []func()
}

// commit runs fn in a savepoint of db. The report returned by fn is run
// once the outermost wallet call in ctx has committed. A wallet call made
// by a callee hands its report to the call that invoked the callee, so a
// rollback of the outer call discards it together with the state change.
func commit(ctx safelite.Context, db safelite.KVStore, fn func(safelite.Context, safelite.KVStore) (func(), error)) error {
	outer, nested := ctx.Value(reportsKey{}).(*reports)
	rs := &reports{}
	ctx = context.WithValue(ctx, reportsKey{}, rs)

	err := store.Savepoint(db, func(db safelite.KVStore) error {
		report, err := fn(ctx, db)
		if err != nil {
			return err
		}
		rs.fns = append(rs.fns, report)
		return nil
	})
	if err != nil {
		return err
	}

	if nested {
		outer.fns = append(outer.fns, rs.fns...)
		return nil
	}
	for _, report := range rs.fns {
		report()
	}
	return nil
}

// report logs the events and counts the owner set changes.
func (w *Wallet) report(ctx safelite.Context, events []Event) {
	observeEvents(events)
	w.logEvents(ctx, events)
}
