package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrAlreadyExists       = errors.New("already exists")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrMalformedResponse   = errors.New("malformed provider response")
	ErrInsufficientCredits = errors.New("insufficient credits")
)
