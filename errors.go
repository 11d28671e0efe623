package frigocheck

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidAuthData   = "INVALID_AUTH_DATA"
	textCodeNotAuthenticated  = "NOT_AUTHENTICATED"
	textCodeMalformedResponse = "MALFORMED_RESPONSE"
)

// ErrInvalidAuthData is returned when a login or register call comes
// back 2xx but the body is missing the token or a user with an id.
// Defensive contract against a malformed backend.
var ErrInvalidAuthData = goerrors.New("invalid authentication data in response", goerrors.CategoryBadInput).
	WithTextCode(textCodeInvalidAuthData).
	WithCode(goerrors.CodeBadRequest)

// ErrNotAuthenticated is returned by operations that require an
// existing authenticated session.
var ErrNotAuthenticated = goerrors.New("no authenticated session", goerrors.CategoryAuth).
	WithTextCode(textCodeNotAuthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrMalformedResponse is returned when the backend answers 2xx with a
// body that does not match the documented contract.
var ErrMalformedResponse = goerrors.New("malformed backend response", goerrors.CategoryBadInput).
	WithTextCode(textCodeMalformedResponse).
	WithCode(goerrors.CodeBadRequest)

// IsUnauthorizedError checks for 401-mapped errors from the transport.
func IsUnauthorizedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuth
	}
	return false
}

// IsNotFoundError checks for 404-mapped errors from the transport.
func IsNotFoundError(err error) bool {
	return goerrors.IsNotFound(err)
}
