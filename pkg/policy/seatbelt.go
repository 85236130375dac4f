package policy

import (
	"fmt"
	"strings"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// SeatbeltBackend compiles capability sets into a Seatbelt profile: a
// textual S-expression policy with a default-deny stance and explicit
// allow clauses. The profile text is the policy artifact handed to the
// kernel verbatim.
type SeatbeltBackend struct{}

// NewSeatbelt returns the macOS policy backend.
func NewSeatbelt() *SeatbeltBackend {
	return &SeatbeltBackend{}
}

func (b *SeatbeltBackend) Name() string { return "seatbelt" }

func (b *SeatbeltBackend) Compile(set *capability.Set, opts CompileOptions) (*Artifact, error) {
	reads, writes := bootstrapRules("darwin")

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
		backend: "seatbelt",
		network: set.Network(),
		reads:   reads,
		writes:  writes,
	}
	a.text = renderSeatbelt(a)
	return a, nil
}

func renderSeatbelt(a *Artifact) string {
	var sb strings.Builder
	sb.WriteString("(version 1)\n")
	sb.WriteString("(deny default)\n")
	sb.WriteString("\n")

	// Minimal bootstrap: the child must be able to exec, fork for
	// pipelines, inspect itself, and reach the usual mach services.
	sb.WriteString("(allow process-exec)\n")
	sb.WriteString("(allow process-fork)\n")
	sb.WriteString("(allow process-info* (target self))\n")
	sb.WriteString("(allow signal (target same-sandbox))\n")
	sb.WriteString("(allow sysctl-read)\n")
	sb.WriteString("(allow mach-lookup)\n")
	sb.WriteString("(allow file-read-metadata)\n")
	sb.WriteString("\n")

	writeClause(&sb, "file-read*", a.reads)
	writeClause(&sb, "file-write*", a.writes)

	sb.WriteString("\n")
	if a.network == api.NetworkBlocked {
		// Outbound is denied wholesale; local unix-domain sockets stay
		// usable so the child can talk to on-host services like the
		// syslog daemon.
		sb.WriteString("(deny network-outbound)\n")
		sb.WriteString("(allow network-outbound (remote unix-socket))\n")
		sb.WriteString("(allow network-inbound (local unix-socket))\n")
	} else {
		sb.WriteString("(allow network-outbound)\n")
		sb.WriteString("(allow network-inbound (local ip \"localhost:*\"))\n")
		sb.WriteString("(allow system-socket)\n")
	}
	return sb.String()
}

func writeClause(sb *strings.Builder, op string, rules []Rule) {
	if len(rules) == 0 {
		return
	}
	fmt.Fprintf(sb, "(allow %s\n", op)
	for _, r := range rules {
		if r.Recursive {
			fmt.Fprintf(sb, "  (subpath %s)\n", seatbeltQuote(r.Path))
		} else {
			fmt.Fprintf(sb, "  (literal %s)\n", seatbeltQuote(r.Path))
		}
	}
	sb.WriteString(")\n")
}

// seatbeltQuote renders a path as a Seatbelt string literal. Quotes and
// backslashes are escaped; everything else passes through as the host
// filesystem's byte form.
func seatbeltQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
