package policy

import "errors"

var (
	ErrUnsupportedOS  = errors.New("no sandbox backend for OS")
	ErrCompilePolicy  = errors.New("compile policy")
	ErrInstallPolicy  = errors.New("install policy")
	ErrExecChild      = errors.New("exec child command")
	ErrAlreadyInstall = errors.New("process is already sandboxed")
)
