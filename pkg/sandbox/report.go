package sandbox

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jacobsgrj/nono/pkg/api"
	"github.com/jacobsgrj/nono/pkg/capability"
)

// WriteReport renders the capability set as one line per grant with a
// mode tag, followed by the network line.
func WriteReport(w io.Writer, set *capability.Set) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, g := range set.Iter() {
		suffix := ""
		if g.Scope == api.ScopeFile {
			suffix = " (file)"
		}
		fmt.Fprintf(tw, "%s\t%s%s\n", g.Access.Tag(), g.Path, suffix)
	}
	tw.Flush()
	// The net line stays out of the aligned block so it does not
	// widen the mode-tag column.
	fmt.Fprintf(w, "[net] %s\n", set.Network())
}
