package multisig

import (
	"math/big"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
	"github.com/iov-one/safelite/errors"
)

// Result describes a successful call to the engine.
type Result struct {
	// Executed is true if the call was dispatched.
	Executed bool
	// Nonce is the nonce the call was authorized under.
	Nonce  uint64
	Digest safelite.Hash
	// SignatureCount is the number of signatures recorded for the call.
	SignatureCount uint64
	// Data is returned by the callee of an executed call.
	Data   []byte
	Events []Event
}

// ExecuteTransaction authorizes and executes c with all signatures at once.
// Signatures must be ordered by ascending signer address and every signer
// must be a current owner.
func (w *Wallet) ExecuteTransaction(ctx safelite.Context, db safelite.KVStore, c Call, sigs [][]byte) (*Result, error) {
	var res *Result
	err := commit(ctx, db, func(ctx safelite.Context, db safelite.KVStore) (func(), error) {
		var err error
		if res, err = w.executeBatch(ctx, db, c, sigs); err != nil {
			return nil, err
		}
		events := res.Events
		return func() {
			executedTotal.WithLabelValues(protocolBatch).Inc()
			w.report(ctx, events)
		}, nil
	})
	if err != nil {
		w.reject(ctx, protocolBatch, err)
		return nil, err
	}
	return res, nil
}

func (w *Wallet) executeBatch(ctx safelite.Context, db safelite.KVStore, c Call, sigs [][]byte) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	set, err := w.registry.Load(db)
	if err != nil {
		return nil, err
	}
	nonce, err := w.nonce.Current(db)
	if err != nil {
		return nil, err
	}
	digest := w.digest(nonce, c)

	for i, sig := range sigs {
		if err := w.sigs.checkFresh(db, sig, nonce); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}

	signers := make([]safelite.Address, len(sigs))
	var prev safelite.Address
	for i, sig := range sigs {
		signer, err := crypto.Recover(digest, sig)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers[i] = signer
		if prev != nil && signer.Compare(prev) <= 0 {
			return nil, errors.Wrapf(ErrUnsortedOrDuplicateSignature, "signature %d by %s", i, signer)
		}
		prev = signer
		if !set.Has(signer) {
			return nil, errors.Wrapf(ErrNotOwner, "signature %d by %s", i, signer)
		}
	}
	if n := uint64(len(sigs)); n < set.SignaturesRequired {
		return nil, errors.Wrapf(ErrInsufficientSignatures, "%d of %d", n, set.SignaturesRequired)
	}

	for i, sig := range sigs {
		if err := w.sigs.record(db, sig, nonce, signers[i]); err != nil {
			return nil, err
		}
	}

	// A pending record of the same call is executed by this batch as well.
	switch tx, err := w.pending.Get(db, nonce); {
	case errors.ErrNotFound.Is(err):
	case err != nil:
		return nil, err
	case tx.Matches(c):
		tx.Executed = true
		if err := w.pending.save(db, nonce, tx); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Nonce:          nonce,
		Digest:         digest,
		SignatureCount: uint64(len(sigs)),
	}
	if err := w.execute(ctx, db, res, c); err != nil {
		return nil, err
	}
	return res, nil
}

// SignTransaction records one owner signature for c under nonce. The first
// signature for a nonce creates the pending record, later ones must be for
// the same call. Once the recorded signers that are still owners reach the
// threshold, the call is executed.
func (w *Wallet) SignTransaction(ctx safelite.Context, db safelite.KVStore, nonce uint64, c Call, sig []byte) (*Result, error) {
	var res *Result
	err := commit(ctx, db, func(ctx safelite.Context, db safelite.KVStore) (func(), error) {
		var err error
		if res, err = w.signIncremental(ctx, db, nonce, c, sig); err != nil {
			return nil, err
		}
		executed, events := res.Executed, res.Events
		return func() {
			signaturesTotal.Inc()
			if executed {
				executedTotal.WithLabelValues(protocolIncremental).Inc()
			}
			w.report(ctx, events)
		}, nil
	})
	if err != nil {
		w.reject(ctx, protocolIncremental, err)
		return nil, err
	}
	return res, nil
}

func (w *Wallet) signIncremental(ctx safelite.Context, db safelite.KVStore, nonce uint64, c Call, sig []byte) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch current, err := w.nonce.Current(db); {
	case err != nil:
		return nil, err
	case nonce != current:
		return nil, errors.Wrapf(ErrInvalidNonce, "got %d, want %d", nonce, current)
	}

	tx, err := w.pending.Get(db, nonce)
	switch {
	case errors.ErrNotFound.Is(err):
		tx = newPendingTx(c)
	case err != nil:
		return nil, err
	case tx.Executed:
		return nil, errors.Wrapf(errors.ErrState, "nonce %d already executed", nonce)
	case !tx.Matches(c):
		return nil, errors.Wrapf(ErrTransactionMismatch, "nonce %d", nonce)
	}

	digest := w.digest(nonce, c)
	signer, err := crypto.Recover(digest, sig)
	if err != nil {
		return nil, err
	}
	set, err := w.registry.Load(db)
	if err != nil {
		return nil, err
	}
	if !set.Has(signer) {
		return nil, errors.Wrapf(ErrNotOwner, "signer %s", signer)
	}
	if tx.HasSigner(signer) {
		return nil, errors.Wrapf(ErrSignatureAlreadyRecorded, "signer %s", signer)
	}
	tx.Signers = append(tx.Signers, signer.Clone())
	if err := w.sigs.record(db, sig, nonce, signer); err != nil {
		return nil, err
	}

	res := &Result{
		Nonce:          nonce,
		Digest:         digest,
		SignatureCount: uint64(len(tx.Signers)),
		Events: []Event{TransactionSigned{
			Nonce:          nonce,
			Signer:         signer.Clone(),
			SignatureCount: uint64(len(tx.Signers)),
		}},
	}

	// Only signers that are owners at the time of the tally count.
	var tally uint64
	for _, s := range tx.Signers {
		if set.Has(s) {
			tally++
		}
	}
	if tally < set.SignaturesRequired {
		if err := w.pending.save(db, nonce, tx); err != nil {
			return nil, err
		}
		return res, nil
	}

	tx.Executed = true
	if err := w.pending.save(db, nonce, tx); err != nil {
		return nil, err
	}
	if err := w.execute(ctx, db, res, c); err != nil {
		return nil, err
	}
	return res, nil
}

// execute advances the nonce and only then dispatches the call. A callee
// that reenters the wallet sees the advanced nonce and the pending record
// marked executed.
func (w *Wallet) execute(ctx safelite.Context, db safelite.KVStore, res *Result, c Call) error {
	if _, err := w.nonce.advance(db); err != nil {
		return err
	}

	data, events, err := w.dispatch(ctx, db, c)
	if err != nil {
		return err
	}

	sender, _ := safelite.GetSender(ctx)
	res.Executed = true
	res.Data = data
	res.Events = append(res.Events, events...)
	res.Events = append(res.Events, TransactionExecuted{
		Sender:      sender.Clone(),
		Destination: c.Destination.Clone(),
		Value:       new(big.Int).Set(c.value()),
		Payload:     append([]byte{}, c.Payload...),
		Nonce:       res.Nonce,
		Digest:      res.Digest,
		Result:      data,
	})
	return nil
}

func (w *Wallet) dispatch(ctx safelite.Context, db safelite.KVStore, c Call) ([]byte, []Event, error) {
	op, err := DecodeOperation(w.address, c)
	if err != nil {
		return nil, nil, err
	}

	if c.Destination.Equals(w.address) {
		// Value sent to self does not change the balance, but the wallet
		// must still be able to cover it.
		if err := w.cash.MoveCoins(db, w.address, w.address, c.value()); err != nil {
			return nil, nil, errors.Wrapf(ErrOutboundCallFailed, "transfer to self: %s", err)
		}
	}

	switch op := op.(type) {
	case Transfer:
		balance, err := w.Balance(db)
		if err != nil {
			return nil, nil, err
		}
		return nil, []Event{Deposit{
			Sender:  w.address.Clone(),
			Amount:  new(big.Int).Set(c.value()),
			Balance: balance,
		}}, nil
	case AddOwner:
		ev, err := w.registry.addOwner(db, op.Owner, op.SignaturesRequired)
		if err != nil {
			return nil, nil, errors.Wrap(err, "addOwner")
		}
		return nil, []Event{ev}, nil
	case RemoveOwner:
		ev, err := w.registry.removeOwner(db, op.Owner, op.SignaturesRequired)
		if err != nil {
			return nil, nil, errors.Wrap(err, "removeOwner")
		}
		return nil, []Event{ev}, nil
	case UpdateThreshold:
		if err := w.registry.updateThreshold(db, op.SignaturesRequired); err != nil {
			return nil, nil, errors.Wrap(err, "updateThreshold")
		}
		return nil, nil, nil
	case GenericCall:
		data, err := w.call(ctx, db, c)
		return data, nil, err
	default:
		return nil, nil, errors.Wrapf(errors.ErrHuman, "unknown operation %T", op)
	}
}

// call moves the value to the destination and invokes its callee, if any.
func (w *Wallet) call(ctx safelite.Context, db safelite.KVStore, c Call) ([]byte, error) {
	if err := w.cash.MoveCoins(db, w.address, c.Destination, c.value()); err != nil {
		return nil, errors.Wrapf(ErrOutboundCallFailed, "transfer to %s: %s", c.Destination, err)
	}
	callee, ok := w.router.Lookup(c.Destination)
	if !ok {
		return nil, nil
	}
	info := CallInfo{
		From:    w.address.Clone(),
		To:      c.Destination.Clone(),
		Value:   new(big.Int).Set(c.value()),
		Payload: append([]byte{}, c.Payload...),
	}
	data, err := invoke(ctx, db, callee, info)
	if err != nil {
		return nil, errors.Wrapf(ErrOutboundCallFailed, "call %s: %s", c.Destination, err)
	}
	return data, nil
}

func invoke(ctx safelite.Context, db safelite.KVStore, callee Callee, info CallInfo) (data []byte, err error) {
	defer errors.Recover(&err)
	return callee.Call(ctx, db, info)
}

func (w *Wallet) reject(ctx safelite.Context, protocol string, err error) {
	rejectedTotal.WithLabelValues(protocol, rejectReason(err)).Inc()
	safelite.GetLogger(ctx).Debug("transaction rejected",
		"module", "multisig",
		"wallet", w.address.String(),
		"protocol", protocol,
		"err", err.Error())
}
