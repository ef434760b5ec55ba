package domain

import "errors"

var (
	// ErrInvalidArgument signals a caller contract violation (e.g. an empty document ID).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexNotFound signals a missing index.
	ErrIndexNotFound = errors.New("index not found")
	// ErrUnsupportedBackend signals a search backend that is not available.
	ErrUnsupportedBackend = errors.New("unsupported backend")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
