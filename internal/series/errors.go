package series

import (
	"errors"
	"net/http"
)

// Domain errors for serie operations.
var (
	ErrNotFound    = errors.New("serie not found")
	ErrDuplicate   = errors.New("serie already exists")
	ErrInvalidData = errors.New("invalid serie data")
	ErrNoImage     = errors.New("serie has no stored image")
	ErrImageTooBig = errors.New("image exceeds maximum upload size")
)

// MapHTTPStatus maps serie domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoImage) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidData) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrImageTooBig) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
