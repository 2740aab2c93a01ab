package gt

import "errors"

var (
	ErrBadSignature  = errors.New("invalid GT20 signature")
	ErrCorruptStream = errors.New("corrupt GT20 stream")
)
