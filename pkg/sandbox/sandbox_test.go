package sandbox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

func TestWriteReport_TagsAndNetworkLine(t *testing.T) {
	set := capability.NewSet()
	set.InsertCanonical("/proj", api.ScopeTree, api.AccessReadWrite)
	set.InsertCanonical("/etc", api.ScopeTree, api.AccessRead)
	set.InsertCanonical("/var/log/out.log", api.ScopeFile, api.AccessWrite)

	var buf bytes.Buffer
	WriteReport(&buf, set)

	out := buf.String()
	assert.Contains(t, out, "[rw] /proj")
	assert.Contains(t, out, "[r-] /etc")
	assert.Contains(t, out, "[-w] /var/log/out.log (file)")
	assert.Contains(t, out, "[net] allowed")
}

func TestWriteReport_BlockedNetwork(t *testing.T) {
	set := capability.NewSet()
	set.SetNetwork(api.NetworkBlocked)

	var buf bytes.Buffer
	WriteReport(&buf, set)
	assert.Contains(t, buf.String(), "[net] blocked")
}

func TestChildEnv_PublishesCapabilitySummary(t *testing.T) {
	set := capability.NewSet()
	set.InsertCanonical("/proj", api.ScopeTree, api.AccessReadWrite)
	set.InsertCanonical("/data", api.ScopeTree, api.AccessRead)
	reg := capability.NewRegistry("/home/u")

	env := childEnv([]string{"PATH=/usr/bin", "HOME=/home/u"}, set, reg, "/tmp/nono-cap.json")

	lookup := func(key string) (string, bool) {
		for _, kv := range env {
			if strings.HasPrefix(kv, key+"=") {
				return kv[len(key)+1:], true
			}
		}
		return "", false
	}

	v, ok := lookup(api.EnvSandboxed)
	require.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = lookup(api.EnvActive)
	require.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = lookup(api.EnvAllowed)
	require.True(t, ok)
	assert.Equal(t, "/data:/proj", v)

	v, ok = lookup(api.EnvNet)
	require.True(t, ok)
	assert.Equal(t, "allowed", v)

	v, ok = lookup(api.EnvBlocked)
	require.True(t, ok)
	assert.Contains(t, v, "/home/u/.ssh")

	v, ok = lookup(api.EnvCapFile)
	require.True(t, ok)
	assert.Equal(t, "/tmp/nono-cap.json", v)

	v, ok = lookup(api.EnvHelp)
	require.True(t, ok)
	assert.Contains(t, v, "nono why")

	// Inherited entries survive.
	v, ok = lookup("PATH")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin", v)
}

func TestChildEnv_GrantedSensitivePathNotBlocked(t *testing.T) {
	set := capability.NewSet()
	set.InsertCanonical("/home/u/.ssh", api.ScopeTree, api.AccessReadWrite)
	reg := capability.NewRegistry("/home/u")

	env := childEnv(nil, set, reg, "/tmp/cap.json")
	for _, kv := range env {
		if strings.HasPrefix(kv, api.EnvBlocked+"=") {
			assert.NotContains(t, kv, "/home/u/.ssh:")
			assert.False(t, strings.HasSuffix(kv, "/home/u/.ssh"))
		}
	}
}

func TestSetEnv_ReplacesExistingEntry(t *testing.T) {
	env := []string{"NONO_NET=allowed", "PATH=/bin"}
	env = setEnv(env, "NONO_NET", "blocked")

	assert.Equal(t, []string{"NONO_NET=blocked", "PATH=/bin"}, env)
}
