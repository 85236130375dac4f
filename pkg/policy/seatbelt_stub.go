//go:build !darwin

package policy

import "github.com/jacobsgrj/nono/internal/errx"

func (b *SeatbeltBackend) Exec(a *Artifact, argv []string, env []string) error {
	return errx.With(ErrUnsupportedOS, ": seatbelt requires darwin")
}
