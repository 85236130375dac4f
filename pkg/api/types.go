package api

import (
	"encoding/json"

	"github.com/jacobsgrj/nono/internal/errx"
)

// Access is the set of filesystem operations a grant permits. It is a
// two-bit lattice: Read and Write join to ReadWrite.
type Access uint8

const (
	AccessRead Access = 1 << iota
	AccessWrite

	AccessReadWrite = AccessRead | AccessWrite
)

// Join returns the least upper bound of two access levels.
func (a Access) Join(b Access) Access {
	return a | b
}

// Allows reports whether this access level permits the requested one.
// ReadWrite allows everything; Read and Write only allow themselves.
func (a Access) Allows(requested Access) bool {
	return requested&a == requested
}

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "readwrite"
	default:
		return "invalid"
	}
}

// Flag returns the directory-level CLI flag that grants this access.
func (a Access) Flag() string {
	switch a {
	case AccessWrite:
		return "--write"
	case AccessReadWrite:
		return "--allow"
	default:
		return "--read"
	}
}

// Tag returns the two-column mode tag used in human-readable listings.
func (a Access) Tag() string {
	switch a {
	case AccessRead:
		return "[r-]"
	case AccessWrite:
		return "[-w]"
	case AccessReadWrite:
		return "[rw]"
	default:
		return "[--]"
	}
}

// ParseAccess parses "read", "write", or "readwrite".
func ParseAccess(s string) (Access, error) {
	switch s {
	case "read":
		return AccessRead, nil
	case "write":
		return AccessWrite, nil
	case "readwrite":
		return AccessReadWrite, nil
	default:
		return 0, errx.With(ErrInvalidAccess, " %q", s)
	}
}

func (a Access) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Access) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccess(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Scope controls whether a grant applies to a single path or a whole
// directory tree.
type Scope uint8

const (
	// ScopeFile grants access to exactly one path.
	ScopeFile Scope = iota
	// ScopeTree grants access to a path and all of its descendants.
	ScopeTree
)

func (s Scope) String() string {
	switch s {
	case ScopeFile:
		return "file"
	case ScopeTree:
		return "tree"
	default:
		return "invalid"
	}
}

// ParseScope parses "file" or "tree".
func ParseScope(v string) (Scope, error) {
	switch v {
	case "file":
		return ScopeFile, nil
	case "tree":
		return ScopeTree, nil
	default:
		return 0, errx.With(ErrInvalidScope, " %q", v)
	}
}

func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Scope) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseScope(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Grant is a single capability: access to a canonical path, either the
// path alone (ScopeFile) or the path and its descendants (ScopeTree).
type Grant struct {
	Path   string `json:"path"`
	Scope  Scope  `json:"scope"`
	Access Access `json:"mode"`
}

// Flag returns the CLI flag that would produce this grant.
func (g Grant) Flag() string {
	flag := g.Access.Flag()
	if g.Scope == ScopeFile {
		flag += "-file"
	}
	return flag
}

// NetworkPolicy is the binary outbound-network switch. There is no
// per-host or per-port granularity.
type NetworkPolicy uint8

const (
	NetworkAllowed NetworkPolicy = iota
	NetworkBlocked
)

func (n NetworkPolicy) String() string {
	if n == NetworkBlocked {
		return "blocked"
	}
	return "allowed"
}

// ParseNetworkPolicy parses "allowed" or "blocked".
func ParseNetworkPolicy(s string) (NetworkPolicy, error) {
	switch s {
	case "allowed":
		return NetworkAllowed, nil
	case "blocked":
		return NetworkBlocked, nil
	default:
		return 0, errx.With(ErrInvalidNetworkPolicy, " %q", s)
	}
}

func (n NetworkPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *NetworkPolicy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseNetworkPolicy(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// SensitiveEntry is a credential-bearing or shell-config location from
// the static registry, expanded against the invoking user's home.
type SensitiveEntry struct {
	Path     string `json:"path"`
	Category string `json:"category"`
}
