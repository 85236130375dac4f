package state

import "errors"

var (
	ErrEncodeState  = errors.New("encode capability state")
	ErrWriteState   = errors.New("write capability file")
	ErrReadState    = errors.New("read capability file")
	ErrParseState   = errors.New("parse capability file")
	ErrStateVersion = errors.New("unsupported capability file version")
)
