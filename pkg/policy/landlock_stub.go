//go:build !linux

package policy

import "github.com/jacobsgrj/nono/internal/errx"

func (b *LandlockBackend) Exec(a *Artifact, argv []string, env []string) error {
	return errx.With(ErrUnsupportedOS, ": landlock requires linux")
}
