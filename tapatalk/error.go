package tapatalk

import (
	"errors"
)

var (
	ErrInvalidParameter        = errors.New("invalid parameter")
	ErrNilParameter            = errors.New("nil parameter")
	ErrInvalidAppID            = errors.New("invalid app id")
	ErrInvalidCACert           = errors.New("invalid CA certificate")
	ErrStateGenerationFailed   = errors.New("state generation failed")
	ErrNoTokenURL              = errors.New("no token URL configured")
	ErrStateMissingFromRequest = errors.New("state is missing from the request")
	ErrStateMissingFromSession = errors.New("state is missing from the session")
	ErrStateMismatch           = errors.New("request and session states do not match")
	ErrExchangeFailed          = errors.New("code exchange failed")
)
