package sandbox

import (
	"strings"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// childEnv publishes the capability summary into the child
// environment on top of the inherited one.
func childEnv(base []string, set *capability.Set, reg *capability.Registry, capPath string) []string {
	var blocked []string
	for _, e := range reg.Uncovered(set) {
		blocked = append(blocked, e.Path)
	}

	env := append([]string(nil), base...)
	env = setEnv(env, api.EnvSandboxed, "1")
	env = setEnv(env, api.EnvActive, "1")
	env = setEnv(env, api.EnvAllowed, strings.Join(set.Paths(), ":"))
	env = setEnv(env, api.EnvNet, set.Network().String())
	env = setEnv(env, api.EnvBlocked, strings.Join(blocked, ":"))
	env = setEnv(env, api.EnvHelp, api.HelpText)
	env = setEnv(env, api.EnvCapFile, capPath)
	return env
}

// setEnv replaces an existing KEY= entry or appends a new one.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
