package domain

import "errors"

// Every failure the service reports maps onto one of these sentinels so that
// handlers (and callers of the roster service) can match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)
