package barter_errors

import "errors"

// Core error taxonomy. Handlers translate these to transport responses;
// services never wrap them in anything the caller can't errors.Is against.
var (
	ErrSelfInterest      = errors.New("cannot express interest in own offer")
	ErrDuplicateInterest = errors.New("interest already expressed for this offer")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrBadStatus         = errors.New("invalid status transition")
	ErrAlreadyRealized   = errors.New("interest already realized")
	ErrAlreadyCompleted  = errors.New("exchange already completed")
)

// Ambient errors used by the API layer.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)
