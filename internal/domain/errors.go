package domain

import "errors"

// Domain errors.
var (
	ErrMalformedState = errors.New("malformed persisted state")
	ErrInvalidFilter  = errors.New("invalid status filter")
	ErrEmptyText      = errors.New("task text cannot be empty")
	ErrUnknownIntent  = errors.New("unknown intent")
	ErrTaskNotFound   = errors.New("task not found")
	ErrAmbiguousID    = errors.New("ambiguous task id prefix")
	ErrKeyNotFound    = errors.New("key not found")
	ErrCorruptStore   = errors.New("store file is corrupt")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrConfigExists   = errors.New("config file already exists")
	ErrUnknownBackend = errors.New("unknown store backend")
)
