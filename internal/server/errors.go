// Package server provides the HTTP API for the role generator.
package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrServiceUnavailable indicates a required backing service is not configured
type ErrServiceUnavailable struct {
	Message string
}

func (e *ErrServiceUnavailable) Error() string {
	return e.Message
}

// ErrUpstream indicates a backing service call (generation or storage) failed
type ErrUpstream struct {
	Err error
}

func (e *ErrUpstream) Error() string {
	return e.Err.Error()
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrNotFound indicates the requested resource does not exist
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrAccessDenied indicates the authenticated identity is outside the
// allowed domain
type ErrAccessDenied struct {
	Email string
}

func (e *ErrAccessDenied) Error() string {
	return fmt.Sprintf("access denied for %s", e.Email)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrAccessDenied:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
