package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/safelite"
	"github.com/iov-one/safelite/x/multisig"
)

func cmdEncodeGovernance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the hex encoded payload of a governance call. Governance calls are
sent to the wallet address itself and authorized like any other call.

Supported operations are add-owner, remove-owner and update-threshold.
`)
		fl.PrintDefaults()
	}
	var (
		opFl        = fl.String("op", "", "Governance operation.")
		ownerFl     = flAddress(fl, "owner", "", "Owner to add or remove.")
		thresholdFl = fl.Uint64("threshold", 0, "Number of signatures required after the change.")
	)
	fl.Parse(args)

	var payload []byte
	switch *opFl {
	case "add-owner":
		if len(*ownerFl) == 0 {
			return fmt.Errorf("owner is required")
		}
		payload = multisig.EncodeAddOwner(*ownerFl, *thresholdFl)
	case "remove-owner":
		if len(*ownerFl) == 0 {
			return fmt.Errorf("owner is required")
		}
		payload = multisig.EncodeRemoveOwner(*ownerFl, *thresholdFl)
	case "update-threshold":
		payload = multisig.EncodeUpdateThreshold(*thresholdFl)
	default:
		return fmt.Errorf("unknown operation %q", *opFl)
	}
	_, err := fmt.Fprintln(output, safelite.EncodeHex(payload))
	return err
}
