package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/x/cash"
)

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *safelite.Address {
	var a safelite.Address
	if defaultVal != "" {
		var err error
		a, err = safelite.ParseAddress(defaultVal)
		if err != nil {
			fatalf("Cannot parse %q address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// amountValue is a flag.Value of a decimal amount with 18 fractional digits.
type amountValue struct {
	amount *big.Int
}

func (v *amountValue) Set(s string) error {
	a, err := cash.ParseAmount(s)
	if err != nil {
		return err
	}
	v.amount = a
	return nil
}

func (v *amountValue) String() string {
	if v == nil || v.amount == nil {
		return ""
	}
	return cash.FormatAmount(v.amount)
}

// flAmount works like flAddress for decimal amounts. The returned value is
// nil until set.
func flAmount(fl *flag.FlagSet, name, defaultVal, usage string) *amountValue {
	var v amountValue
	if defaultVal != "" {
		if err := v.Set(defaultVal); err != nil {
			fatalf("Cannot parse %q amount flag value. %s", name, err)
		}
	}
	fl.Var(&v, name, usage)
	return &v
}

// hexValue is a flag.Value of a 0x prefixed hex string.
type hexValue []byte

func (v *hexValue) Set(s string) error {
	raw, err := safelite.DecodeHex(s)
	if err != nil {
		return err
	}
	*v = raw
	return nil
}

func (v *hexValue) String() string {
	if v == nil || len(*v) == 0 {
		return ""
	}
	return safelite.EncodeHex(*v)
}

func flHex(fl *flag.FlagSet, name, usage string) *hexValue {
	var v hexValue
	fl.Var(&v, name, usage)
	return &v
}
