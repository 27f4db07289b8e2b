package domain

import (
	"errors"
)

// Sentinel errors for credential store failures.
// Use with errors.Is() for checking and fmt.Errorf("%w", ...) for wrapping with context

var (
	// ErrGenerationExhausted indicates no unique token could be drawn within the retry budget
	ErrGenerationExhausted = errors.New("token generation exhausted")

	// ErrResolutionFailed indicates the executable path, MAC label or groups of a process could not be read
	ErrResolutionFailed = errors.New("identity resolution failed")

	// ErrUnknownCriterion indicates a lookup or removal was called with a criterion outside the known set
	ErrUnknownCriterion = errors.New("unknown match criterion")

	// ErrCredentialNotFound indicates no stored credential matches the requested cookie
	ErrCredentialNotFound = errors.New("credential not found")
)

// Validation errors for specific values

var (
	// ErrCredentialInvalid indicates credential construction failed validation
	ErrCredentialInvalid = errors.New("credential validation failed")

	// ErrInvalidToken indicates a token could not be decoded
	ErrInvalidToken = errors.New("invalid token")
)
