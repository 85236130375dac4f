package capability

import (
	"path/filepath"
	"sort"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/jacobsgrj/nono/internal/errx"
	"github.com/jacobsgrj/nono/pkg/api"
)

// sensitivePatterns is the static catalog of credential-bearing and
// shell-config locations. Home-relative patterns are expanded against
// the invoking user's home directory once per process. These locations
// are denied by default; an explicit grant covering one of them
// suppresses the denial.
var sensitivePatterns = []struct {
	pattern  string
	category string
}{
	{"~/.ssh", "ssh keys"},
	{"~/.gnupg", "gpg keys"},
	{"~/.aws", "aws credentials"},
	{"~/.config/gcloud", "gcloud credentials"},
	{"~/.azure", "azure credentials"},
	{"~/.netrc", "netrc credentials"},
	{"~/.kube", "kubernetes config"},
	{"~/.docker", "docker config"},
	{"~/.npmrc", "package tokens"},
	{"~/.pypirc", "package tokens"},
	{"~/.cargo/credentials.toml", "package tokens"},
	{"~/.bashrc", "shell config"},
	{"~/.zshrc", "shell config"},
	{"~/.bash_profile", "shell config"},
	{"~/.zprofile", "shell config"},
	{"~/.profile", "shell config"},
	{"/etc/shadow", "system credentials"},
	{"/etc/sudoers", "system credentials"},
}

// Registry is the expanded sensitive-path table, keyed by canonical-ish
// absolute paths. Lookup is by path-component prefix.
type Registry struct {
	entries []api.SensitiveEntry
}

// DefaultRegistry expands the static pattern table against the current
// user's home directory.
func DefaultRegistry() (*Registry, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, errx.Wrap(ErrHomeDir, err)
	}
	return NewRegistry(home), nil
}

// NewRegistry expands the static pattern table against the given home
// directory. Entries are sorted by path for deterministic iteration.
func NewRegistry(home string) *Registry {
	entries := make([]api.SensitiveEntry, 0, len(sensitivePatterns))
	for _, p := range sensitivePatterns {
		path := p.pattern
		if strings.HasPrefix(path, "~/") {
			path = filepath.Join(home, path[2:])
		}
		entries = append(entries, api.SensitiveEntry{
			Path:     filepath.Clean(path),
			Category: p.category,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return &Registry{entries: entries}
}

// Match returns the registry entry whose path covers p, if any. A path
// is covered when it equals an entry or lies underneath it.
func (r *Registry) Match(p string) (api.SensitiveEntry, bool) {
	for _, e := range r.entries {
		if isDescendant(p, e.Path) {
			return e, true
		}
	}
	return api.SensitiveEntry{}, false
}

// Entries returns the expanded table in sorted order.
func (r *Registry) Entries() []api.SensitiveEntry {
	out := make([]api.SensitiveEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Uncovered returns the registry entries not covered by any grant in
// the set. These are the paths reported via NONO_BLOCKED.
func (r *Registry) Uncovered(set *Set) []api.SensitiveEntry {
	var out []api.SensitiveEntry
	for _, e := range r.entries {
		if !set.Covers(e.Path, api.AccessRead) {
			out = append(out, e)
		}
	}
	return out
}
