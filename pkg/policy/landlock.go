package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// LandlockBackend compiles capability sets into a Landlock ruleset: a
// read set and a write set of path rules, recursive for tree grants
// and exact for file grants. When the network policy is Blocked the
// installed ruleset additionally handles TCP bind and connect with no
// allowing rules, which denies all outbound TCP.
type LandlockBackend struct{}

// NewLandlock returns the Linux policy backend.
func NewLandlock() *LandlockBackend {
	return &LandlockBackend{}
}

func (b *LandlockBackend) Name() string { return "landlock" }

// Compile derives the read and write rule sets from the capability set
// plus the bootstrap paths, the child binary, and any extra read
// files. The output is deterministic: rules are deduplicated and
// sorted, and the artifact text is a canonical listing.
func (b *LandlockBackend) Compile(set *capability.Set, opts CompileOptions) (*Artifact, error) {
	reads, writes := bootstrapRules("linux")

	if opts.ChildPath != "" {
		reads = append(reads, Rule{Path: opts.ChildPath})
	}
	for _, p := range opts.ExtraReadFiles {
		reads = append(reads, Rule{Path: p})
	}

	for _, g := range set.Iter() {
		r := Rule{Path: g.Path, Recursive: g.Scope == api.ScopeTree}
		if g.Access.Allows(api.AccessRead) {
			reads = append(reads, r)
		}
		if g.Access.Allows(api.AccessWrite) {
			writes = append(writes, r)
		}
	}

	reads = normalizeRules(reads)
	writes = normalizeRules(writes)

	a := &Artifact{
		backend: "landlock",
		network: set.Network(),
		reads:   reads,
		writes:  writes,
	}
	a.text = renderLandlock(a)
	return a, nil
}

func normalizeRules(rules []Rule) []Rule {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Path != rules[j].Path {
			return rules[i].Path < rules[j].Path
		}
		return !rules[i].Recursive && rules[j].Recursive
	})
	out := rules[:0]
	for i, r := range rules {
		if i > 0 && r == rules[i-1] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func renderLandlock(a *Artifact) string {
	var sb strings.Builder
	sb.WriteString("landlock ruleset\n")
	fmt.Fprintf(&sb, "net %s\n", a.network)
	for _, r := range a.reads {
		fmt.Fprintf(&sb, "read %s %s\n", ruleKind(r), r.Path)
	}
	for _, r := range a.writes {
		fmt.Fprintf(&sb, "write %s %s\n", ruleKind(r), r.Path)
	}
	return sb.String()
}

func ruleKind(r Rule) string {
	if r.Recursive {
		return "tree"
	}
	return "file"
}
