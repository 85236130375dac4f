// Package state persists the frozen capability set for child-side
// introspection. The file is written once before the sandbox is
// installed, its path is exported as NONO_CAP_FILE, and it is never
// mutated afterwards.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// Version is the current schema version.
const Version = 1

// State is the capability-file schema. Grants are stored in the set's
// deterministic iteration order; Sensitive is the expanded registry as
// of sandbox construction, so children resolve the same home directory
// the parent did.
type State struct {
	Version   int                  `json:"version"`
	Workdir   string               `json:"workdir"`
	Network   api.NetworkPolicy    `json:"network"`
	Grants    []api.Grant          `json:"grants"`
	Sensitive []api.SensitiveEntry `json:"sensitive"`
}

// New captures a frozen capability set.
func New(set *capability.Set, workdir string, reg *capability.Registry) *State {
	return &State{
		Version:   Version,
		Workdir:   workdir,
		Network:   set.Network(),
		Grants:    set.Iter(),
		Sensitive: reg.Entries(),
	}
}

// Set reconstructs the capability set from the stored grants.
func (s *State) Set() *capability.Set {
	set := capability.NewSet()
	set.SetNetwork(s.Network)
	for _, g := range s.Grants {
		set.InsertCanonical(g.Path, g.Scope, g.Access)
	}
	return set
}

// Registry reconstructs the sensitive-path registry from the stored
// entries.
func (s *State) Registry() []api.SensitiveEntry {
	return s.Sensitive
}

// DefaultPath returns a fresh per-invocation file path under the
// system temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "nono-"+uuid.NewString()+".json")
}

// Write serializes the state to path with mode 0600. The content is
// deterministic for a given state.
func (s *State) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errx.Wrap(ErrEncodeState, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errx.Wrap(ErrWriteState, err)
	}
	return nil
}

// Load reads and validates a capability file.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.Wrap(ErrReadState, err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errx.Wrap(ErrParseState, err)
	}
	if s.Version != Version {
		return nil, errx.With(ErrStateVersion, " %d (want %d)", s.Version, Version)
	}
	return &s, nil
}
