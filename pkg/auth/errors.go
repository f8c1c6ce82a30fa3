package auth

import "errors"

var (
	// ErrMissingToken indicates no bearer token was supplied.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the supplied token failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
)
