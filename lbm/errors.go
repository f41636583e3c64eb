package lbm

import "errors"

var (
	// ErrInvalidSize reports a non-positive grid dimension.
	ErrInvalidSize = errors.New("lbm: invalid grid size")
	// ErrUnstableOmega reports a relaxation rate outside (0, 2].
	ErrUnstableOmega = errors.New("lbm: relaxation rate outside (0, 2]")
	// ErrInvalidConfig reports any other rejected configuration value.
	ErrInvalidConfig = errors.New("lbm: invalid configuration")
)
