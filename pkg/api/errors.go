package api

import "errors"

var (
	ErrInvalidAccess        = errors.New("invalid access mode")
	ErrInvalidScope         = errors.New("invalid grant scope")
	ErrInvalidNetworkPolicy = errors.New("invalid network policy")
)
