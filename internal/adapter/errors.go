package adapter

import "errors"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrNotAFile      = errors.New("not a file")
	ErrConflict      = errors.New("conflict")
	ErrUnprocessable = errors.New("unprocessable entity")
	ErrServerError   = errors.New("upstream server error")

	ErrTransport = errors.New("transport error")
	ErrTimeout   = errors.New("request timed out")

	ErrInvalidPath = errors.New("invalid object path")
)
