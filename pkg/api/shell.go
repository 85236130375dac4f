package api

import shellquote "github.com/kballard/go-shellquote"

// ShellQuoteArgs renders a child command line for logs and error
// messages using POSIX shell quoting rules.
func ShellQuoteArgs(args []string) string {
	return shellquote.Join(args...)
}
