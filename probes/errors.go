package probes

import "errors"

// ErrUnknownType indicates a check type with no probe implementation.
var ErrUnknownType = errors.New("probes: unknown check type")

// ErrInvalidConstraint indicates a command version constraint that does not parse.
var ErrInvalidConstraint = errors.New("probes: invalid version constraint")
