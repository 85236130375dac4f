package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobsgrj/nono/pkg/api"
)

func TestRegistry_MatchesKnownLocations(t *testing.T) {
	r := NewRegistry("/home/u")

	tests := []struct {
		path     string
		category string
	}{
		{"/home/u/.ssh", "ssh keys"},
		{"/home/u/.ssh/id_rsa", "ssh keys"},
		{"/home/u/.aws/credentials", "aws credentials"},
		{"/home/u/.config/gcloud/application_default_credentials.json", "gcloud credentials"},
		{"/home/u/.netrc", "netrc credentials"},
		{"/home/u/.bashrc", "shell config"},
		{"/home/u/.zshrc", "shell config"},
		{"/home/u/.bash_profile", "shell config"},
		{"/home/u/.zprofile", "shell config"},
		{"/home/u/.profile", "shell config"},
		{"/home/u/.gnupg/secring.gpg", "gpg keys"},
		{"/home/u/.kube/config", "kubernetes config"},
		{"/home/u/.docker/config.json", "docker config"},
		{"/home/u/.npmrc", "package tokens"},
		{"/home/u/.pypirc", "package tokens"},
		{"/etc/shadow", "system credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			entry, ok := r.Match(tt.path)
			require.True(t, ok, "expected %s to match the registry", tt.path)
			assert.Equal(t, tt.category, entry.Category)
		})
	}
}

func TestRegistry_DoesNotMatchOrdinaryPaths(t *testing.T) {
	r := NewRegistry("/home/u")

	for _, p := range []string{
		"/home/u/project",
		"/home/u/.sshx",
		"/home/other/.ssh/id_rsa",
		"/tmp/scratch",
	} {
		_, ok := r.Match(p)
		assert.False(t, ok, "expected %s not to match", p)
	}
}

func TestRegistry_EntriesAreSorted(t *testing.T) {
	r := NewRegistry("/home/u")
	entries := r.Entries()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Path, entries[i].Path)
	}
}

func TestRegistry_UncoveredExcludesGrantedEntries(t *testing.T) {
	r := NewRegistry("/home/u")

	s := NewSet()
	s.InsertCanonical("/home/u/.ssh", api.ScopeTree, api.AccessReadWrite)

	for _, e := range r.Uncovered(s) {
		assert.NotEqual(t, "/home/u/.ssh", e.Path, "granted entry should not be reported as blocked")
	}

	all := len(r.Entries())
	assert.Len(t, r.Uncovered(s), all-1)
}
