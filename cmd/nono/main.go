package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "nono [flags] -- <command> [args...]",
	Short: "Run a command with least-privilege filesystem and network access",
	Long: `nono wraps a child command in an OS-enforced sandbox. Only the paths
granted on the command line are accessible; everything else is denied
by the kernel, including a default-deny set of credential-bearing
locations (~/.ssh, ~/.aws, shell config, ...) unless explicitly
granted.

Enforcement uses Landlock on Linux and Seatbelt on macOS. The policy
is installed irreversibly before exec: neither the child nor any of
its descendants can relax it.`,
	Example: `  nono --allow ./proj -- npm install
  nono --read /etc --allow ./proj -- ./build.sh
  nono --allow ./proj --net-block -- python3 agent.py
  nono --dry-run --allow ./proj --read /etc -- anything
  nono why --self --path ~/.ssh/id_rsa --op read --json`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringArrayP("allow", "a", nil, "Grant read+write on a directory tree")
	pf.StringArrayP("read", "r", nil, "Grant read-only on a directory tree")
	pf.StringArrayP("write", "w", nil, "Grant write-only on a directory tree")
	pf.StringArray("allow-file", nil, "Grant read+write on a single file")
	pf.StringArray("read-file", nil, "Grant read-only on a single file")
	pf.StringArray("write-file", nil, "Grant write-only on a single file")
	pf.Bool("net-block", false, "Block all outbound network access")
	pf.CountP("verbose", "v", "Increase logging verbosity (repeatable)")
	pf.StringP("config", "c", "", "Config file (reserved)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetCount("verbose")
		switch {
		case verbose >= 2:
			logrus.SetLevel(logrus.DebugLevel)
		case verbose == 1:
			logrus.SetLevel(logrus.InfoLevel)
		default:
			logrus.SetLevel(logrus.WarnLevel)
		}
	}

	viper.BindPFlag("allow", pf.Lookup("allow"))
	viper.BindPFlag("read", pf.Lookup("read"))
	viper.BindPFlag("write", pf.Lookup("write"))
	viper.BindPFlag("allow-file", pf.Lookup("allow-file"))
	viper.BindPFlag("read-file", pf.Lookup("read-file"))
	viper.BindPFlag("write-file", pf.Lookup("write-file"))
	viper.BindPFlag("net-block", pf.Lookup("net-block"))
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors: term.IsTerminal(int(os.Stderr.Fd())),
	})

	if err := rootCmd.Execute(); err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Run 'nono --help' for usage.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
