package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/safelite"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program name and the command name. It is the responsibility of
// the command function to parse the arguments using its own flag set.
//
// Commands that change the wallet state open the database, apply a single
// operation and close it again. A pipeline can be used to combine them:
//
//	$ safelite digest -to 0x... -value 1.5 \
//	    | safelite sign \
//	    | safelite sign-tx -to 0x... -value 1.5
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"balance":           cmdBalance,
	"deposit":           cmdDeposit,
	"digest":            cmdDigest,
	"encode-governance": cmdEncodeGovernance,
	"execute":           cmdExecute,
	"init":              cmdInit,
	"issue":             cmdIssue,
	"keyaddr":           cmdKeyaddr,
	"keygen":            cmdKeygen,
	"nonce":             cmdNonce,
	"owners":            cmdOwners,
	"pending":           cmdPending,
	"recover":           cmdRecover,
	"sign":              cmdSign,
	"sign-tx":           cmdSignTx,
	"version":           cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s operates a multi-signature wallet persisted in a local database.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, safelite.Version())
	return nil
}
