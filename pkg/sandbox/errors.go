package sandbox

import "errors"

var (
	ErrResolveWorkdir = errors.New("resolve working directory")
	ErrChildNotFound  = errors.New("child command not found")
)
