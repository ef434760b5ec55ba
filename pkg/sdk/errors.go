package localsearch

import (
	"github.com/kailas-cloud/localsearch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArgument    = domain.ErrInvalidArgument
	ErrIndexNotFound      = domain.ErrIndexNotFound
	ErrUnsupportedBackend = domain.ErrUnsupportedBackend
	// ErrNotImplemented marks a reserved backend; such errors also match ErrUnsupportedBackend.
	ErrNotImplemented = domain.ErrNotImplemented
)
