// Package policy translates a frozen capability set into a
// kernel-accepted sandbox policy and installs it.
//
// There are two backends behind one interface: a Landlock ruleset on
// Linux and a Seatbelt S-expression profile on macOS. Both are lossless
// with respect to the capability grammar and both are deterministic:
// the same capability set and network policy always produce a
// byte-identical artifact.
package policy

import (
	"runtime"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// Rule is one path entry of a compiled policy. Recursive rules cover a
// directory and all descendants; non-recursive rules cover exactly one
// path.
type Rule struct {
	Path      string
	Recursive bool
}

// CompileOptions carries the per-invocation paths that must be allowed
// beyond the grant table itself.
type CompileOptions struct {
	// ChildPath is the resolved program about to be executed. It must
	// be readable and executable inside the sandbox.
	ChildPath string
	// ExtraReadFiles are files the child must be able to read that are
	// not grants, such as the capability state file.
	ExtraReadFiles []string
}

// Artifact is a fully-compiled policy. Text is the canonical rendering
// used for determinism checks and verbose output; on the Seatbelt
// backend it is the profile handed to the kernel verbatim.
type Artifact struct {
	backend string
	network api.NetworkPolicy
	reads   []Rule
	writes  []Rule
	text    string
}

// Backend returns the backend name ("landlock" or "seatbelt").
func (a *Artifact) Backend() string { return a.backend }

// Network returns the compiled network policy.
func (a *Artifact) Network() api.NetworkPolicy { return a.network }

// ReadRules returns the compiled read set, bootstrap included.
func (a *Artifact) ReadRules() []Rule { return a.reads }

// WriteRules returns the compiled write set.
func (a *Artifact) WriteRules() []Rule { return a.writes }

// Text returns the canonical policy rendering.
func (a *Artifact) Text() string { return a.text }

// Backend compiles capability sets into policy artifacts and installs
// them. Exec is the point of no return: it installs the artifact
// irreversibly in the current process and replaces the process image
// with the child. It only returns on failure.
type Backend interface {
	Name() string
	Compile(set *capability.Set, opts CompileOptions) (*Artifact, error)
	Exec(a *Artifact, argv []string, env []string) error
}

// New returns the backend for the current OS.
func New() (Backend, error) {
	switch runtime.GOOS {
	case "linux":
		return NewLandlock(), nil
	case "darwin":
		return NewSeatbelt(), nil
	default:
		return nil, errx.With(ErrUnsupportedOS, " %s", runtime.GOOS)
	}
}
