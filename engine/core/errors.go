package core

import (
	"errors"
)

var (
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotInitialized     = errors.New("not initialized")
	ErrUnknown            = errors.New("unknown")
)
