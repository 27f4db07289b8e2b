package cookieapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sufield/credjar/internal/domain"
)

// CredentialResponse is the wire form of a credential
type CredentialResponse struct {
	Cookie string `json:"cookie"`
	PID    int    `json:"pid"`
	Path   string `json:"path"`
	Label  string `json:"label"`
	Groups []int  `json:"groups"`
}

// IdentityResponse is a credential without its cookie, returned by lookups
type IdentityResponse struct {
	PID    int    `json:"pid"`
	Path   string `json:"path"`
	Label  string `json:"label"`
	Groups []int  `json:"groups"`
}

// RemoveResponse reports how many credentials a DELETE dropped
type RemoveResponse struct {
	Removed int `json:"removed"`
}

// CheckGroupRequest asks whether a credential's groups include GID
type CheckGroupRequest struct {
	GID int `json:"gid"`
}

// CheckGroupResponse answers a CheckGroupRequest
type CheckGroupResponse struct {
	Allowed bool `json:"allowed"`
}

// ErrorResponse carries the message of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func newCredentialResponse(c domain.Credential) CredentialResponse {
	return CredentialResponse{
		Cookie: c.Token().String(),
		PID:    c.PID(),
		Path:   c.Path(),
		Label:  c.Label(),
		Groups: c.Groups(),
	}
}

func newIdentityResponse(c domain.Credential) IdentityResponse {
	return IdentityResponse{
		PID:    c.PID(),
		Path:   c.Path(),
		Label:  c.Label(),
		Groups: c.Groups(),
	}
}

// statusFor maps store errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCredentialNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUnknownCriterion):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrResolutionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGenerationExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
