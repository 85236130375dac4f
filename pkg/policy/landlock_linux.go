//go:build linux

package policy

import (
	"os"

	"github.com/landlock-lsm/go-landlock/landlock"
	llsys "github.com/landlock-lsm/go-landlock/landlock/syscall"
	"golang.org/x/sys/unix"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
)

// Landlock access sets for the write side. Landlock ABI v4 is the
// floor: it adds the TCP bind/connect rights needed for --net-block,
// and every filesystem right below is available from v2/v3.
var (
	writeDirAccess = landlock.AccessFSSet(
		llsys.AccessFSWriteFile | llsys.AccessFSTruncate |
			llsys.AccessFSRemoveDir | llsys.AccessFSRemoveFile |
			llsys.AccessFSMakeChar | llsys.AccessFSMakeDir |
			llsys.AccessFSMakeReg | llsys.AccessFSMakeSock |
			llsys.AccessFSMakeFifo | llsys.AccessFSMakeBlock |
			llsys.AccessFSMakeSym | llsys.AccessFSRefer)

	writeFileAccess = landlock.AccessFSSet(
		llsys.AccessFSWriteFile | llsys.AccessFSTruncate)
)

// Exec installs the ruleset on the current process and replaces it
// with the child. The restriction applies to every thread the runtime
// owns and is inherited by all descendants; nothing in the process
// tree can relax it afterwards. Only returns on failure.
func (b *LandlockBackend) Exec(a *Artifact, argv []string, env []string) error {
	if os.Getenv(api.EnvSandboxed) != "" {
		return ErrAlreadyInstall
	}

	var rules []landlock.Rule
	for _, r := range a.reads {
		if r.Recursive {
			rules = append(rules, landlock.RODirs(r.Path).IgnoreIfMissing())
		} else {
			rules = append(rules, landlock.ROFiles(r.Path).IgnoreIfMissing())
		}
	}
	for _, r := range a.writes {
		if r.Recursive {
			rules = append(rules, landlock.PathAccess(writeDirAccess, r.Path).IgnoreIfMissing())
		} else {
			rules = append(rules, landlock.PathAccess(writeFileAccess, r.Path).IgnoreIfMissing())
		}
	}

	var err error
	if a.network == api.NetworkBlocked {
		// Restrict handles the TCP rights as well; with no allowing
		// net rules, every outbound connect and bind is denied.
		err = landlock.V4.Restrict(rules...)
	} else {
		err = landlock.V4.RestrictPaths(rules...)
	}
	if err != nil {
		return errx.Wrap(ErrInstallPolicy, err)
	}

	if err := unix.Exec(argv[0], argv, env); err != nil {
		return errx.Wrap(ErrExecChild, err)
	}
	return nil
}
