package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/errors"
	"github.com/iov-one/safelite/store"
	"github.com/iov-one/safelite/x/cash"
	"github.com/iov-one/safelite/x/multisig"
)

func dbFlags(fl *flag.FlagSet) (*string, *string) {
	conf := mustConfig()
	dbPathFl := fl.String("db", conf.DB,
		"Path to the wallet database. You can use SAFELITE_DB environment variable to set it.")
	logLevelFl := fl.String("log-level", conf.LogLevel,
		"Log level (debug, info, error or none). You can use SAFELITE_LOG_LEVEL environment variable to set it.")
	return dbPathFl, logLevelFl
}

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a new wallet database from a genesis file and print the wallet
address. The genesis is read from the input unless given with -genesis.

	{
	  "cash": [{"address": "0x...", "amount": "10"}],
	  "multisig": {"chain_id": 1, "owners": ["0x...", "0x..."], "signatures_required": 2}
	}
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		genesisFl            = fl.String("genesis", "", "Path to the genesis file.")
	)
	fl.Parse(args)

	var (
		raw []byte
		err error
	)
	if *genesisFl != "" {
		raw, err = ioutil.ReadFile(*genesisFl)
	} else {
		raw, err = ioutil.ReadAll(input)
	}
	if err != nil {
		return fmt.Errorf("cannot read genesis: %s", err)
	}
	var opts safelite.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}
	if _, ok := opts["multisig"]; !ok {
		return errors.Wrap(errors.ErrInput, "genesis has no multisig section")
	}

	ctx, db, err := openDB(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer db.Close()

	genesis := safelite.ChainInitializers(cash.Initializer{}, multisig.Initializer{})
	err = store.Savepoint(db, func(kv safelite.KVStore) error {
		return genesis.FromGenesis(ctx, opts, kv)
	})
	if err != nil {
		return err
	}

	w, err := multisig.LoadWallet(db, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, w.Address())
	return err
}

func cmdDigest(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the digest owners must sign to authorize a call.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		callFl               = declareCallFlags(fl)
		nonceFl              = fl.Int64("nonce", -1, "Nonce the call is authorized under. Defaults to the current nonce.")
	)
	fl.Parse(args)

	c, err := callFl.call()
	if err != nil {
		return err
	}
	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	nonce, err := nonceFlag(s, *nonceFl)
	if err != nil {
		return err
	}
	digest, err := s.wallet.GetTransactionDigest(nonce, c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, digest)
	return err
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a call authorized by enough owner signatures at once. Signatures are
read from the input, one per line, unless given with -sig. They must be
ordered by ascending signer address.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		callFl               = declareCallFlags(fl)
		sigsFl               hexListValue
	)
	fl.Var(&sigsFl, "sig", "Hex encoded signature. Can be used many times.")
	fl.Parse(args)

	c, err := callFl.call()
	if err != nil {
		return err
	}
	sigs := [][]byte(sigsFl)
	if len(sigs) == 0 {
		if sigs, err = readHexLines(input); err != nil {
			return err
		}
	}

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.wallet.ExecuteTransaction(s.ctx, s.db, c, sigs)
	if err != nil {
		return err
	}
	return printResult(output, res)
}

func cmdSignTx(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Record a single owner signature of a call. The call is executed as soon as
enough owners signed it. The signature is read from the input unless given
with -sig.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		callFl               = declareCallFlags(fl)
		nonceFl              = fl.Int64("nonce", -1, "Nonce the call is authorized under. Defaults to the current nonce.")
		sigFl                = flHex(fl, "sig", "Hex encoded signature.")
	)
	fl.Parse(args)

	c, err := callFl.call()
	if err != nil {
		return err
	}
	sig := []byte(*sigFl)
	if len(sig) == 0 {
		lines, err := readHexLines(input)
		if err != nil {
			return err
		}
		if len(lines) != 1 {
			return fmt.Errorf("want exactly one signature on input, got %d", len(lines))
		}
		sig = lines[0]
	}

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	nonce, err := nonceFlag(s, *nonceFl)
	if err != nil {
		return err
	}
	res, err := s.wallet.SignTransaction(s.ctx, s.db, nonce, c, sig)
	if err != nil {
		return err
	}
	return printResult(output, res)
}

func printResult(output io.Writer, res *multisig.Result) error {
	if res.Executed {
		_, err := fmt.Fprintf(output, "executed\tnonce=%d\tdigest=%s\n", res.Nonce, res.Digest)
		return err
	}
	_, err := fmt.Fprintf(output, "signed\tnonce=%d\tdigest=%s\tsignatures=%d\n", res.Nonce, res.Digest, res.SignatureCount)
	return err
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move funds from an account to the wallet and print the new wallet balance.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		fromFl               = flAddress(fl, "from", "", "Account the funds are taken from.")
		amountFl             = flAmount(fl, "amount", "", "Amount to deposit, for example 1.5")
	)
	fl.Parse(args)

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := safelite.WithSender(s.ctx, *fromFl)
	if _, err := s.wallet.Receive(ctx, s.db, *fromFl, amountFl.amount); err != nil {
		return err
	}
	balance, err := s.wallet.Balance(s.db)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, cash.FormatAmount(balance))
	return err
}

func cmdIssue(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create new funds on an account. This is meant for local testing only.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		toFl                 = flAddress(fl, "to", "", "Account receiving the funds.")
		amountFl             = flAmount(fl, "amount", "", "Amount to issue, for example 1.5")
	)
	fl.Parse(args)

	ctx, db, err := openDB(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer db.Close()

	ctrl := cash.NewController(cash.NewBucket())
	err = store.Savepoint(db, func(kv safelite.KVStore) error {
		return ctrl.IssueCoins(kv, *toFl, amountFl.amount)
	})
	if err != nil {
		return err
	}
	balance, err := ctrl.Balance(db, *toFl)
	if err != nil {
		return err
	}
	safelite.GetLogger(ctx).Info("coins issued", "account", toFl.String(), "balance", cash.FormatAmount(balance))
	_, err = fmt.Fprintln(output, cash.FormatAmount(balance))
	return err
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the balance of an account. Defaults to the wallet.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		ofFl                 = flAddress(fl, "of", "", "Account to check. Defaults to the wallet.")
	)
	fl.Parse(args)

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	addr := *ofFl
	if len(addr) == 0 {
		addr = s.wallet.Address()
	}
	balance, err := cash.NewController(cash.NewBucket()).Balance(s.db, addr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, cash.FormatAmount(balance))
	return err
}

func cmdOwners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the wallet owners in the order they were added, followed by the
number of required signatures.
`)
		fl.PrintDefaults()
	}
	dbPathFl, logLevelFl := dbFlags(fl)
	fl.Parse(args)

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	owners, err := s.wallet.GetOwners(s.db)
	if err != nil {
		return err
	}
	required, err := s.wallet.GetSignaturesRequired(s.db)
	if err != nil {
		return err
	}
	for _, o := range owners {
		fmt.Fprintln(output, o)
	}
	_, err = fmt.Fprintf(output, "signatures required: %d\n", required)
	return err
}

func cmdNonce(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the nonce the next transaction must be signed with.
`)
		fl.PrintDefaults()
	}
	dbPathFl, logLevelFl := dbFlags(fl)
	fl.Parse(args)

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	nonce, err := s.wallet.GetNonce(s.db)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, nonce)
	return err
}

func cmdPending(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out pending transactions of the incremental signing protocol. All of
them are listed unless -nonce is given.
`)
		fl.PrintDefaults()
	}
	var (
		dbPathFl, logLevelFl = dbFlags(fl)
		nonceFl              = fl.Int64("nonce", -1, "Nonce of a single pending transaction.")
	)
	fl.Parse(args)

	s, err := openSession(*dbPathFl, *logLevelFl)
	if err != nil {
		return err
	}
	defer s.Close()

	nonces := []uint64{uint64(*nonceFl)}
	if *nonceFl < 0 {
		if nonces, err = s.wallet.GetPendingNonces(s.db); err != nil {
			return err
		}
	}
	for _, n := range nonces {
		tx, err := s.wallet.GetPendingTransaction(s.db, n)
		if err != nil {
			return err
		}
		signers, err := s.wallet.GetPendingSigners(s.db, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "nonce=%d\tto=%s\tvalue=%s\tpayload=%s\texecuted=%t\tsignatures=%d\n",
			tx.Nonce, tx.Destination, cash.FormatAmount(tx.Value), safelite.EncodeHex(tx.Payload),
			tx.Executed, tx.SignatureCount)
		for _, a := range signers {
			fmt.Fprintf(output, "\tsigner=%s\n", a)
		}
	}
	return nil
}
