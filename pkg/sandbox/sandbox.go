// Package sandbox drives the setup pipeline: freeze the capability
// set, persist it, export the child environment, compile the policy,
// and hand off to the backend's irreversible install+exec.
//
// There is no fork anywhere: the sandboxed process IS the child, so
// the child inherits exactly the installed policy and cannot race the
// installer.
package sandbox

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
	"github.com/jacobsgrj/nono/pkg/policy"
	"github.com/jacobsgrj/nono/pkg/state"
)

// Sandbox holds everything needed between capability freeze and exec.
type Sandbox struct {
	set      *capability.Set
	registry *capability.Registry
	workdir  string
	backend  policy.Backend
}

// New freezes the capability set and prepares the backend for this OS.
// The set must not be modified afterwards.
func New(set *capability.Set) (*Sandbox, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errx.Wrap(ErrResolveWorkdir, err)
	}
	workdir, err := capability.Canonicalize(cwd)
	if err != nil {
		return nil, errx.Wrap(ErrResolveWorkdir, err)
	}

	registry, err := capability.DefaultRegistry()
	if err != nil {
		return nil, err
	}

	backend, err := policy.New()
	if err != nil {
		return nil, err
	}

	return &Sandbox{
		set:      set,
		registry: registry,
		workdir:  workdir,
		backend:  backend,
	}, nil
}

// Workdir returns the canonicalized working directory.
func (s *Sandbox) Workdir() string { return s.workdir }

// Registry returns the expanded sensitive-path registry.
func (s *Sandbox) Registry() *capability.Registry { return s.registry }

// Exec runs the whole pipeline and replaces the current process with
// the child. Ordering is fixed: the capability file is written and the
// environment assembled before the policy is installed, and nothing
// observes a partially-built state. Only returns on failure; the
// capability file is cleaned up on every failure path.
func (s *Sandbox) Exec(argv []string) error {
	childPath, err := exec.LookPath(argv[0])
	if err != nil {
		return errx.With(ErrChildNotFound, " %q: %v", argv[0], err)
	}
	if childPath, err = filepath.Abs(childPath); err != nil {
		return errx.Wrap(ErrChildNotFound, err)
	}

	capPath := state.DefaultPath()
	st := state.New(s.set, s.workdir, s.registry)
	if err := st.Write(capPath); err != nil {
		return err
	}

	artifact, err := s.backend.Compile(s.set, policy.CompileOptions{
		ChildPath:      childPath,
		ExtraReadFiles: []string{capPath},
	})
	if err != nil {
		os.Remove(capPath)
		return errx.Wrap(policy.ErrCompilePolicy, err)
	}

	logrus.WithFields(logrus.Fields{
		"backend": s.backend.Name(),
		"grants":  s.set.Len(),
		"net":     s.set.Network().String(),
	}).Info("installing sandbox")
	logrus.Debugf("compiled policy:\n%s", artifact.Text())
	logrus.Debugf("exec %s", api.ShellQuoteArgs(argv))

	env := childEnv(os.Environ(), s.set, s.registry, capPath)

	child := append([]string{childPath}, argv[1:]...)
	err = s.backend.Exec(artifact, child, env)

	// Reached only when install or exec failed.
	os.Remove(capPath)
	return err
}

// DryRun renders the frozen capability set for human inspection
// without compiling or installing anything.
func (s *Sandbox) DryRun(w io.Writer) {
	WriteReport(w, s.set)
}
