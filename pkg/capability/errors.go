package capability

import "errors"

var (
	ErrPathNotExist = errors.New("path does not exist")
	ErrPathStat     = errors.New("not permitted to stat path")
	ErrPathEncoding = errors.New("invalid path encoding")
	ErrPathResolve  = errors.New("resolve path")
	ErrHomeDir      = errors.New("determine home directory")
)
