//go:build darwin

package policy

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
)

// sandboxExecPath is the system profile interpreter. Exec replaces the
// current process with it; it applies the profile and execs the child
// in turn, so the sandboxed process IS the child and no fork happens
// anywhere in the chain.
const sandboxExecPath = "/usr/bin/sandbox-exec"

func (b *SeatbeltBackend) Exec(a *Artifact, argv []string, env []string) error {
	if os.Getenv(api.EnvSandboxed) != "" {
		return ErrAlreadyInstall
	}

	wrapped := append([]string{sandboxExecPath, "-p", a.text, "--"}, argv...)
	if err := unix.Exec(sandboxExecPath, wrapped, env); err != nil {
		return errx.Wrap(ErrInstallPolicy, err)
	}
	return nil
}
