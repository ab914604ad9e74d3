package auth

import "errors"

// The error taxonomy of the identity core. Login and token failures are
// deliberately undifferentiated to callers to avoid account enumeration.
var (
	ErrInvalidCredential   = errors.New("invalid credentials")
	ErrDuplicateIdentity   = errors.New("username or email already registered")
	ErrIdentityRejected    = errors.New("identity assertion carries no usable email")
	ErrUnsupportedProvider = errors.New("unsupported auth provider")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("not authorized to access this resource")
)
