package capability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/jacobsgrj/nono/internal/errx"
)

// Canonicalize turns a user-supplied path into its canonical form:
// tilde-expanded, absolute, symlink-resolved, and lexically normalized.
// The result contains no "." or ".." components and no trailing
// separator except at the root.
//
// Non-existent targets are rejected. The policy compilers cannot encode
// a path that may later materialize as a symlink, so the sandbox
// refuses to grant access to anything it cannot resolve now.
func Canonicalize(raw string) (string, error) {
	expanded, err := Normalize(raw)
	if err != nil {
		return "", err
	}

	// EvalSymlinks walks every component, chasing links until a fixed
	// point and failing on cycles, then returns a cleaned path.
	resolved, err := filepath.EvalSymlinks(expanded)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return "", errx.With(ErrPathNotExist, ": %s", raw)
		case errors.Is(err, os.ErrPermission):
			return "", errx.With(ErrPathStat, ": %s", raw)
		default:
			return "", errx.Wrap(ErrPathResolve, err)
		}
	}

	return filepath.Clean(resolved), nil
}

// Normalize is the lexical half of Canonicalize: tilde expansion,
// relative-to-absolute, and "."/".." collapse, with no symlink
// resolution and no existence requirement. The query engine uses it
// for probe paths so that a denial answer never depends on (or
// reveals) whether the probed path exists.
//
// Paths are kept in the host filesystem's byte form; only NUL is
// rejected here, since no OS accepts it in a path component.
func Normalize(raw string) (string, error) {
	if raw == "" {
		return "", errx.With(ErrPathEncoding, ": empty path")
	}
	if strings.ContainsRune(raw, 0) {
		return "", errx.With(ErrPathEncoding, ": NUL byte in %q", raw)
	}

	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", errx.Wrap(ErrHomeDir, err)
	}
	if !filepath.IsAbs(expanded) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errx.Wrap(ErrPathResolve, err)
		}
		expanded = filepath.Join(cwd, expanded)
	}
	return filepath.Clean(expanded), nil
}

// isDescendant reports whether p equals q or lies underneath it.
// Comparison is by path component, so "/homeevil" is not a descendant
// of "/home".
func isDescendant(p, q string) bool {
	if p == q {
		return true
	}
	if q == string(filepath.Separator) {
		return strings.HasPrefix(p, q)
	}
	return strings.HasPrefix(p, q+string(filepath.Separator))
}
