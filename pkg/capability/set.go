package capability

import (
	"sort"

	"github.com/jacobsgrj/nono/pkg/api"
)

// Set is the normalized grant table. It is built once from CLI flags,
// frozen before the sandbox is installed, and read-only afterwards.
//
// Invariants, preserved after every insert:
//   - at most one entry per (path, scope);
//   - no File and Tree entry share a path (Tree dominates);
//   - Tree entries form an antichain: no Tree entry is a descendant of
//     another Tree entry.
type Set struct {
	grants  []api.Grant
	network api.NetworkPolicy
}

// NewSet returns an empty set with network access allowed.
func NewSet() *Set {
	return &Set{network: api.NetworkAllowed}
}

// Insert canonicalizes the path and merges the grant into the set.
func (s *Set) Insert(raw string, scope api.Scope, access api.Access) error {
	path, err := Canonicalize(raw)
	if err != nil {
		return err
	}
	s.InsertCanonical(path, scope, access)
	return nil
}

// InsertCanonical merges an already-canonical grant into the set,
// applying the mode-join and dominance rules.
func (s *Set) InsertCanonical(path string, scope api.Scope, access api.Access) {
	if scope == api.ScopeTree {
		s.insertTree(path, access)
	} else {
		s.insertFile(path, access)
	}
}

func (s *Set) insertTree(path string, access api.Access) {
	// An existing Tree entry at or above the path absorbs the mode.
	for i, g := range s.grants {
		if g.Scope == api.ScopeTree && isDescendant(path, g.Path) {
			s.grants[i].Access = g.Access.Join(access)
			return
		}
	}

	// The new entry absorbs Tree descendants, takes over a File entry
	// at the same path, and drops File descendants that add nothing.
	kept := s.grants[:0]
	for _, g := range s.grants {
		switch {
		case g.Scope == api.ScopeTree && isDescendant(g.Path, path):
			access = access.Join(g.Access)
		case g.Scope == api.ScopeFile && g.Path == path:
			access = access.Join(g.Access)
		case g.Scope == api.ScopeFile && isDescendant(g.Path, path) && access.Allows(g.Access):
			// dropped: covered by the new tree
		default:
			kept = append(kept, g)
		}
	}
	s.grants = append(kept, api.Grant{Path: path, Scope: api.ScopeTree, Access: access})
}

func (s *Set) insertFile(path string, access api.Access) {
	for i, g := range s.grants {
		if g.Path == path {
			// Same path: join modes; if the existing entry is a Tree,
			// it stays a Tree (strictly more permissive).
			s.grants[i].Access = g.Access.Join(access)
			return
		}
	}
	// A covering Tree ancestor with at least this mode makes the File
	// grant redundant.
	for _, g := range s.grants {
		if g.Scope == api.ScopeTree && isDescendant(path, g.Path) && g.Access.Allows(access) {
			return
		}
	}
	s.grants = append(s.grants, api.Grant{Path: path, Scope: api.ScopeFile, Access: access})
}

// Covers reports whether the set grants the requested access to the
// path: some entry must allow the mode and either match the path
// exactly (File) or contain it (Tree). The sensitive registry is not
// consulted here.
func (s *Set) Covers(path string, access api.Access) bool {
	_, ok := s.CoveringGrant(path, access)
	return ok
}

// CoveringGrant returns the first grant (in iteration order) that
// covers the path with the requested access.
func (s *Set) CoveringGrant(path string, access api.Access) (api.Grant, bool) {
	for _, g := range s.Iter() {
		if !g.Access.Allows(access) {
			continue
		}
		if g.Scope == api.ScopeFile && g.Path == path {
			return g, true
		}
		if g.Scope == api.ScopeTree && isDescendant(path, g.Path) {
			return g, true
		}
	}
	return api.Grant{}, false
}

// Iter returns the grants in deterministic order: by path, then File
// before Tree, then read < write < readwrite.
func (s *Set) Iter() []api.Grant {
	out := make([]api.Grant, len(s.grants))
	copy(out, s.grants)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		if out[i].Scope != out[j].Scope {
			return out[i].Scope == api.ScopeFile
		}
		return out[i].Access < out[j].Access
	})
	return out
}

// Len returns the number of grants.
func (s *Set) Len() int {
	return len(s.grants)
}

// Paths returns the granted paths in iteration order.
func (s *Set) Paths() []string {
	grants := s.Iter()
	out := make([]string, len(grants))
	for i, g := range grants {
		out[i] = g.Path
	}
	return out
}

// SetNetwork sets the outbound-network policy.
func (s *Set) SetNetwork(n api.NetworkPolicy) {
	s.network = n
}

// Network returns the outbound-network policy.
func (s *Set) Network() api.NetworkPolicy {
	return s.network
}
