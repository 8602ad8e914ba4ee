package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/crypto"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new secp256k1 private key.

When successful a new file with the hex encoded private key is created. This
command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", mustConfig().PrivKey,
			"Path to the private key file. You can use SAFELITE_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key, err := crypto.GenPrivKey()
	if err != nil {
		return fmt.Errorf("cannot generate key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fmt.Fprintln(fd, key.Hex()); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address controlled by your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", mustConfig().PrivKey,
			"Path to the private key file. You can use SAFELITE_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := crypto.LoadPrivKey(*keyPathFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, key.Address())
	return err
}

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign a transaction digest with your private key and print the 65 byte
signature. The digest is read from the input unless given with -digest.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", mustConfig().PrivKey,
			"Path to the private key file. You can use SAFELITE_PRIV_KEY environment variable to set it.")
		digestFl = flHex(fl, "digest", "Hex encoded digest to sign.")
	)
	fl.Parse(args)

	raw := []byte(*digestFl)
	if len(raw) == 0 {
		lines, err := readHexLines(input)
		if err != nil {
			return err
		}
		if len(lines) != 1 {
			return fmt.Errorf("want exactly one digest on input, got %d", len(lines))
		}
		raw = lines[0]
	}
	digest, err := safelite.BytesToHash(raw)
	if err != nil {
		return err
	}

	key, err := crypto.LoadPrivKey(*keyPathFl)
	if err != nil {
		return err
	}
	sig, err := key.SignHash(digest)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, safelite.EncodeHex(sig))
	return err
}

func cmdRecover(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address that created a signature of given digest.
`)
		fl.PrintDefaults()
	}
	var (
		digestFl = flHex(fl, "digest", "Hex encoded digest that was signed.")
		sigFl    = flHex(fl, "sig", "Hex encoded 65 byte signature.")
	)
	fl.Parse(args)

	digest, err := safelite.BytesToHash(*digestFl)
	if err != nil {
		return err
	}
	addr, err := crypto.Recover(digest, *sigFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, addr)
	return err
}
