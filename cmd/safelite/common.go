package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"strings"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/store/boltdb"
	"github.com/iov-one/safelite/x/multisig"
)

// session is a wallet loaded from an open database.
type session struct {
	ctx    safelite.Context
	db     *boltdb.Store
	wallet *multisig.Wallet
}

// openDB opens the database and builds a context carrying a logger of the
// configured level.
func openDB(path, logLevel string) (safelite.Context, *boltdb.Store, error) {
	logger, err := newLogger(logLevel)
	if err != nil {
		return nil, nil, err
	}
	db, err := boltdb.Open(path)
	if err != nil {
		return nil, nil, err
	}
	ctx := safelite.WithLogger(context.Background(), logger.With("db", path))
	return ctx, db, nil
}

// openSession opens the database and loads the wallet initialized in it.
// The command line tool does not execute code of call destinations, all of
// them are treated as plain accounts.
func openSession(path, logLevel string) (*session, error) {
	ctx, db, err := openDB(path, logLevel)
	if err != nil {
		return nil, err
	}
	w, err := multisig.LoadWallet(db, nil)
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "load wallet from %q, run init first", path)
	}
	return &session{ctx: ctx, db: db, wallet: w}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// callFlags declares the flags describing a call.
type callFlags struct {
	to      *safelite.Address
	value   *amountValue
	payload *hexValue
}

func declareCallFlags(fl *flag.FlagSet) callFlags {
	return callFlags{
		to:      flAddress(fl, "to", "", "Destination address of the call. Use the wallet address for governance and self transfers."),
		value:   flAmount(fl, "value", "", "Amount sent along with the call, for example 1.5"),
		payload: flHex(fl, "payload", "Hex encoded payload of the call. See encode-governance."),
	}
}

func (c callFlags) call() (multisig.Call, error) {
	if len(*c.to) == 0 {
		return multisig.Call{}, errors.Wrap(errors.ErrInput, "destination address is required")
	}
	return multisig.Call{
		Destination: *c.to,
		Value:       c.value.amount,
		Payload:     []byte(*c.payload),
	}, nil
}

// readHexLines returns every non empty line of input decoded from hex.
func readHexLines(input io.Reader) ([][]byte, error) {
	var res [][]byte
	sc := bufio.NewScanner(input)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		raw, err := safelite.DecodeHex(line)
		if err != nil {
			return nil, err
		}
		res = append(res, raw)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// hexListValue is a flag.Value collecting all occurrences of a hex flag.
type hexListValue [][]byte

func (v *hexListValue) Set(s string) error {
	raw, err := safelite.DecodeHex(s)
	if err != nil {
		return err
	}
	*v = append(*v, raw)
	return nil
}

func (v *hexListValue) String() string {
	if v == nil {
		return ""
	}
	parts := make([]string, len(*v))
	for i, b := range *v {
		parts[i] = safelite.EncodeHex(b)
	}
	return strings.Join(parts, ",")
}

// nonceFlag returns the nonce given with -nonce or the current one.
func nonceFlag(s *session, fl int64) (uint64, error) {
	if fl >= 0 {
		return uint64(fl), nil
	}
	return s.wallet.GetNonce(s.db)
}
