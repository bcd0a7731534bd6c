package nxcube

import "errors"

// Sentinel errors for the nxcube package.
var (
	// Configuration errors
	ErrInvalidSize      = errors.New("nxcube: invalid size")
	ErrInvalidMode      = errors.New("nxcube: invalid mode")
	ErrInvalidAxis      = errors.New("nxcube: invalid axis")
	ErrInvalidLayer     = errors.New("nxcube: invalid layer")
	ErrInvalidDirection = errors.New("nxcube: invalid direction")

	// State errors
	ErrAnimating   = errors.New("nxcube: rotation in progress")
	ErrNoSelection = errors.New("nxcube: no cubie selected")
	ErrUnknownID   = errors.New("nxcube: unknown cubie id")
)
