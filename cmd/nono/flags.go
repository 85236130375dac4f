package main

import (
	"github.com/spf13/pflag"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// grantFlags maps each grant flag to the (scope, access) it produces.
var grantFlags = []struct {
	name   string
	scope  api.Scope
	access api.Access
}{
	{"allow", api.ScopeTree, api.AccessReadWrite},
	{"read", api.ScopeTree, api.AccessRead},
	{"write", api.ScopeTree, api.AccessWrite},
	{"allow-file", api.ScopeFile, api.AccessReadWrite},
	{"read-file", api.ScopeFile, api.AccessRead},
	{"write-file", api.ScopeFile, api.AccessWrite},
}

// buildCapabilitySet assembles and normalizes the capability set from
// the parsed grant flags. Every path is canonicalized here; a path
// that cannot be canonicalized aborts setup before any sandbox state
// is created.
func buildCapabilitySet(flags *pflag.FlagSet) (*capability.Set, error) {
	set := capability.NewSet()

	for _, gf := range grantFlags {
		paths, err := flags.GetStringArray(gf.name)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if err := set.Insert(p, gf.scope, gf.access); err != nil {
				return nil, errx.With(ErrGrantPath, " --%s %s: %v", gf.name, p, err)
			}
		}
	}

	if blocked, _ := flags.GetBool("net-block"); blocked {
		set.SetNetwork(api.NetworkBlocked)
	}

	return set, nil
}
