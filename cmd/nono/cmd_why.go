package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
	"github.com/jacobsgrj/nono/pkg/query"
	"github.com/jacobsgrj/nono/pkg/state"
)

var whyCmd = &cobra.Command{
	Use:   "why [flags]",
	Short: "Explain whether an operation would be allowed and how to grant it",
	Long: `why replays the sandbox's allow/deny decision for a hypothetical
operation and suggests the minimal flag that would allow it.

With --self the capability set is loaded from the current sandbox
(NONO_CAP_FILE); otherwise it is assembled from this invocation's
grant flags, which lets you test a command line before running it.`,
	Example: `  nono why --self --path ~/.ssh/id_rsa --op read --json
  nono why --allow ./proj --path ./proj/src --op write
  nono why --self --host api.example.com --port 443`,
	Args: cobra.NoArgs,
	RunE: runWhy,
}

func init() {
	whyCmd.Flags().Bool("self", false, "Load capabilities from the enclosing sandbox")
	whyCmd.Flags().String("path", "", "Probe a filesystem path")
	whyCmd.Flags().String("op", "read", "Operation to probe: read, write, or readwrite")
	whyCmd.Flags().String("host", "", "Probe an outbound connection to a host")
	whyCmd.Flags().Int("port", 443, "Port for --host probes")
	whyCmd.Flags().Bool("json", false, "Emit the decision as JSON")
	whyCmd.Flags().String("workdir", "", "Working directory for the hypothetical sandbox")
	whyCmd.Flags().String("profile", "", "Capability profile (resolved externally; reserved)")

	viper.BindPFlag("why.json", whyCmd.Flags().Lookup("json"))

	rootCmd.AddCommand(whyCmd)
}

func runWhy(cmd *cobra.Command, args []string) error {
	self, _ := cmd.Flags().GetBool("self")
	path, _ := cmd.Flags().GetString("path")
	opName, _ := cmd.Flags().GetString("op")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	jsonOut, _ := cmd.Flags().GetBool("json")
	workdir, _ := cmd.Flags().GetString("workdir")
	profile, _ := cmd.Flags().GetString("profile")

	if profile != "" {
		logrus.Warnf("--profile %s: profile expansion is not handled here; ignoring", profile)
	}

	if path == "" && host == "" {
		return usagef(ErrProbeRequired, "")
	}
	if path != "" && host != "" {
		return usagef(ErrProbeConflict, "")
	}
	if host != "" && (port < 1 || port > 65535) {
		return usagef(ErrInvalidPort, ": %d", port)
	}

	op, err := api.ParseAccess(opName)
	if err != nil {
		return usagef(ErrInvalidOp, " %q (want read, write, or readwrite)", opName)
	}

	engine, notSandboxed, err := buildEngine(cmd, self, workdir)
	if err != nil {
		return err
	}
	if notSandboxed {
		// Missing or unreadable capability state answers in-band
		// rather than failing the command.
		return writeResult(cmd.OutOrStdout(), query.NotSandboxed(), jsonOut)
	}

	var result query.Result
	if path != "" {
		result = engine.QueryPath(path, op)
	} else {
		result = engine.QueryNetwork(host, port)
	}
	return writeResult(cmd.OutOrStdout(), result, jsonOut)
}

// buildEngine materializes the capability set either from the
// enclosing sandbox's capability file or from this invocation's grant
// flags.
func buildEngine(cmd *cobra.Command, self bool, workdir string) (*query.Engine, bool, error) {
	if self {
		capFile := os.Getenv(api.EnvCapFile)
		if capFile == "" {
			return nil, true, nil
		}
		st, err := state.Load(capFile)
		if err != nil {
			logrus.Debugf("load capability file: %v", err)
			return nil, true, nil
		}
		return query.NewEngine(st.Set(), st.Registry(), st.Workdir), false, nil
	}

	set, err := buildCapabilitySet(cmd.Flags())
	if err != nil {
		return nil, false, err
	}

	reg, err := capability.DefaultRegistry()
	if err != nil {
		return nil, false, err
	}

	if workdir == "" {
		workdir, _ = os.Getwd()
	}
	canonical, err := capability.Canonicalize(workdir)
	if err != nil {
		return nil, false, err
	}

	return query.NewEngine(set, reg.Entries(), canonical), false, nil
}

func writeResult(w io.Writer, r query.Result, jsonOut bool) error {
	if jsonOut {
		return r.WriteJSON(w)
	}
	r.WriteHuman(w)
	return nil
}
