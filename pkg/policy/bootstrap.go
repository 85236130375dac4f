package policy

import "github.com/jacobsgrj/nono/pkg/api"

// The bootstrap read set is the fixed set of system paths any program
// needs to start: the dynamic loader and its configuration, system
// library directories, locale data, and /proc/self. It deliberately
// never includes home directories, /tmp, or user configuration; those
// are only reachable through explicit grants.
//
// The write side is limited to device files programs genuinely need
// open for writing (/dev/null, /dev/tty); no transient scratch
// directories are granted.

var linuxBootstrapReadTrees = []string{
	"/bin",
	"/etc/ld.so.conf.d",
	"/lib",
	"/lib32",
	"/lib64",
	"/proc/self",
	"/sbin",
	"/usr",
}

var linuxBootstrapReadFiles = []string{
	"/dev/null",
	"/dev/tty",
	"/dev/urandom",
	"/dev/zero",
	"/etc/ld.so.cache",
	"/etc/ld.so.conf",
	"/etc/localtime",
	"/etc/locale.alias",
}

var linuxBootstrapWriteFiles = []string{
	"/dev/null",
	"/dev/tty",
}

var darwinBootstrapReadTrees = []string{
	"/System",
	"/bin",
	"/private/var/db/dyld",
	"/sbin",
	"/usr/bin",
	"/usr/lib",
	"/usr/sbin",
	"/usr/share",
}

var darwinBootstrapReadFiles = []string{
	"/dev/null",
	"/dev/random",
	"/dev/tty",
	"/dev/urandom",
	"/private/etc/localtime",
}

var darwinBootstrapWriteFiles = []string{
	"/dev/null",
	"/dev/tty",
}

func bootstrapRules(goos string) (reads, writes []Rule) {
	trees, files, wfiles := linuxBootstrapReadTrees, linuxBootstrapReadFiles, linuxBootstrapWriteFiles
	if goos == "darwin" {
		trees, files, wfiles = darwinBootstrapReadTrees, darwinBootstrapReadFiles, darwinBootstrapWriteFiles
	}
	for _, p := range trees {
		reads = append(reads, Rule{Path: p, Recursive: true})
	}
	for _, p := range files {
		reads = append(reads, Rule{Path: p})
	}
	for _, p := range wfiles {
		writes = append(writes, Rule{Path: p})
	}
	return reads, writes
}

// BootstrapCovers reports whether the fixed bootstrap set of the given
// OS permits the requested access to the path. The `why` engine uses
// this to answer with the system_path reason.
func BootstrapCovers(goos, path string, access api.Access) bool {
	reads, writes := bootstrapRules(goos)
	if access&api.AccessRead != 0 && !rulesCover(reads, path) {
		return false
	}
	if access&api.AccessWrite != 0 && !rulesCover(writes, path) {
		return false
	}
	return true
}

func rulesCover(rules []Rule, path string) bool {
	for _, r := range rules {
		if r.Path == path {
			return true
		}
		if r.Recursive && isUnder(path, r.Path) {
			return true
		}
	}
	return false
}

func isUnder(p, q string) bool {
	if p == q {
		return true
	}
	if q == "/" {
		return len(p) > 0 && p[0] == '/'
	}
	return len(p) > len(q) && p[:len(q)] == q && p[len(q)] == '/'
}
