package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/iov-one/safelite"
)

// runCmd executes cmd with given input and returns its trimmed output.
func runCmd(t testing.TB, cmd func(io.Reader, io.Writer, []string) error, input string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := cmd(strings.NewReader(input), &out, args); err != nil {
		t.Fatalf("%+v", err)
	}
	return strings.TrimSpace(out.String())
}

func TestAvailableCmdsAreSorted(t *testing.T) {
	cmds := availableCmds()
	if len(cmds) != len(commands) {
		t.Fatalf("want %d commands, got %d", len(commands), len(cmds))
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1] >= cmds[i] {
			t.Fatalf("commands not sorted: %q before %q", cmds[i-1], cmds[i])
		}
	}
}

func TestVersion(t *testing.T) {
	if got := runCmd(t, cmdVersion, ""); got != safelite.Version() {
		t.Fatalf("want %q, got %q", safelite.Version(), got)
	}
}
