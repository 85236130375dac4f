// Package query reproduces the sandbox's allow/deny decisions offline
// and produces actionable remediation suggestions. It powers the `why`
// subcommand.
//
// The engine never stats, lists, or otherwise observes probed paths
// beyond lexical normalization: observing a denied path would leak
// metadata to a potentially adversarial caller.
package query

import (
	"runtime"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
	"github.com/jacobsgrj/nono/pkg/policy"
)

// Result statuses.
const (
	StatusAllowed      = "allowed"
	StatusDenied       = "denied"
	StatusNotSandboxed = "not_sandboxed"
)

// Allow reasons.
const (
	ReasonExplicitGrant         = "explicit_grant"
	ReasonWithinWorkdir         = "within_workdir"
	ReasonSystemPath            = "system_path"
	ReasonNetworkAllowedDefault = "network_allowed_by_default"
)

// Deny reasons.
const (
	ReasonSensitivePath    = "sensitive_path"
	ReasonNotInAllowedPath = "not_in_allowed_paths"
	ReasonNetworkBlocked   = "network_blocked"
)

// Result is a single query answer in one of three shapes: allowed
// (reason + granted_by), denied (reason + optional category +
// suggestion), or not_sandboxed (message).
type Result struct {
	Status     string
	Reason     string
	GrantedBy  string
	Category   string
	Suggestion string
	Message    string
}

// NotSandboxed is the in-band answer for `why --self` outside a
// sandbox.
func NotSandboxed() Result {
	return Result{
		Status:  StatusNotSandboxed,
		Message: "not running inside a nono sandbox (NONO_CAP_FILE is not set or cannot be loaded)",
	}
}

// Engine replays the decision procedure over a materialized capability
// set. The sensitive registry comes either from the capability file
// (--self) or from a fresh expansion of the static table.
type Engine struct {
	set       *capability.Set
	sensitive []api.SensitiveEntry
	workdir   string
	goos      string
}

// NewEngine builds an engine over a frozen capability set.
func NewEngine(set *capability.Set, sensitive []api.SensitiveEntry, workdir string) *Engine {
	return &Engine{set: set, sensitive: sensitive, workdir: workdir, goos: runtime.GOOS}
}

// QueryPath decides whether the set grants op on the probed path.
//
// Order matters: an explicit grant covering the path suppresses the
// sensitive-path denial (the user opted in), so grants are consulted
// before the registry.
func (e *Engine) QueryPath(raw string, op api.Access) Result {
	p, err := capability.Normalize(raw)
	if err != nil {
		// Unnormalizable input is answered like any unknown path, with
		// the raw string in the suggestion.
		return e.deniedUnknown(raw, op)
	}

	if grant, ok := e.set.CoveringGrant(p, op); ok {
		reason := ReasonExplicitGrant
		if e.withinGrantedWorkdir(p) {
			reason = ReasonWithinWorkdir
		}
		return Result{
			Status:    StatusAllowed,
			Reason:    reason,
			GrantedBy: grant.Flag() + " " + grant.Path,
		}
	}

	if policy.BootstrapCovers(e.goos, p, op) {
		return Result{
			Status:    StatusAllowed,
			Reason:    ReasonSystemPath,
			GrantedBy: "system path",
		}
	}

	for _, entry := range e.sensitive {
		if pathIsUnder(p, entry.Path) {
			// Suggestions for sensitive hits always use the
			// directory-level registry entry, never the probe itself.
			return Result{
				Status:     StatusDenied,
				Reason:     ReasonSensitivePath,
				Category:   entry.Category,
				Suggestion: suggestFlag(op) + " " + entry.Path,
			}
		}
	}

	return e.deniedUnknown(p, op)
}

func (e *Engine) deniedUnknown(p string, op api.Access) Result {
	return Result{
		Status:     StatusDenied,
		Reason:     ReasonNotInAllowedPath,
		Suggestion: op.Flag() + " " + p,
	}
}

// QueryNetwork decides a host+port probe. The policy is binary, so the
// host and port only appear in the answer, never in the decision.
func (e *Engine) QueryNetwork(host string, port int) Result {
	if e.set.Network() == api.NetworkBlocked {
		return Result{
			Status:     StatusDenied,
			Reason:     ReasonNetworkBlocked,
			Suggestion: "remove --net-block flag",
		}
	}
	return Result{
		Status:    StatusAllowed,
		Reason:    ReasonNetworkAllowedDefault,
		GrantedBy: "network allowed by default",
	}
}

// withinGrantedWorkdir reports whether p falls under a workdir that is
// itself a grant.
func (e *Engine) withinGrantedWorkdir(p string) bool {
	if e.workdir == "" || !pathIsUnder(p, e.workdir) {
		return false
	}
	for _, g := range e.set.Iter() {
		if g.Scope == api.ScopeTree && g.Path == e.workdir {
			return true
		}
	}
	return false
}

// suggestFlag picks the directory-level flag for a sensitive-registry
// suggestion: --read for read probes, --allow for anything involving
// a write.
func suggestFlag(op api.Access) string {
	if op == api.AccessRead {
		return "--read"
	}
	return "--allow"
}

func pathIsUnder(p, q string) bool {
	if p == q {
		return true
	}
	if q == "/" {
		return len(p) > 0 && p[0] == '/'
	}
	return len(p) > len(q) && p[:len(q)] == q && p[len(q)] == '/'
}
