package main

import (
	"github.com/spf13/cobra"

	"github.com/jacobsgrj/nono/pkg/sandbox"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a command in a sandbox (the default when no subcommand is given)",
	Example: `  nono run --allow ./proj -- make test
  nono run --allow ./proj --net-block -- curl https://example.com`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print the capability set and exit without sandboxing")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	set, err := buildCapabilitySet(cmd.Flags())
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		if dryRun && len(args) == 0 {
			// Dry-run has nothing to exec, so the separator is not
			// required.
			dash = 0
		} else {
			return usagef(ErrMissingSeparator, "")
		}
	}
	if dash > 0 {
		return usagef(ErrUnexpectedArg, " %q", args[0])
	}
	child := args[dash:]

	sb, err := sandbox.New(set)
	if err != nil {
		return err
	}

	if dryRun {
		sb.DryRun(cmd.OutOrStdout())
		return nil
	}

	if len(child) == 0 {
		return usagef(ErrNoChildCommand, "")
	}

	// Exec replaces the process image on success; an error return
	// means the sandbox was never entered or the child never started.
	return sb.Exec(child)
}
