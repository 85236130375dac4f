package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// runCommandForTest executes the root command with the given args and
// returns everything written to its output stream.
func runCommandForTest(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(resetFlagsForTest)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

// resetFlagsForTest clears flag state between executions of the
// package-level command tree.
func resetFlagsForTest() {
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	for _, cmd := range append(rootCmd.Commands(), rootCmd) {
		cmd.Flags().VisitAll(resetFlag)
		cmd.PersistentFlags().VisitAll(resetFlag)
	}
}

func resetFlag(f *pflag.Flag) {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		sv.Replace(nil)
	} else {
		f.Value.Set(f.DefValue)
	}
	f.Changed = false
}
