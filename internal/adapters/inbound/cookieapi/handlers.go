package cookieapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sufield/credjar/internal/domain"
)

func (s *Server) handleIssue(w http.ResponseWriter, r *http.Request) {
	peer, err := peerFromContext(r.Context())
	if err != nil {
		s.logger.Error("caller identity unavailable", "remote_addr", r.RemoteAddr, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	cred, err := s.store.Issue(r.Context(), peer.PID)
	if err != nil {
		s.logger.Warn("issue failed",
			"error", err,
			slog.Group("caller",
				slog.Int("pid", peer.PID),
				slog.Int("uid", peer.UID)))
		writeError(w, statusFor(err), err)
		return
	}

	s.logger.Info("issued cookie",
		"cookie", cred.String(),
		slog.Group("caller",
			slog.Int("pid", peer.PID),
			slog.Int("uid", peer.UID),
			slog.String("path", cred.Path())))
	writeJSON(w, http.StatusOK, newCredentialResponse(cred))
}

func (s *Server) handleRemoveOwn(w http.ResponseWriter, r *http.Request) {
	peer, err := peerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	n, err := s.store.RemoveAll(domain.ByPID, domain.Pattern{PID: peer.PID})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.logger.Debug("removed caller cookies", "pid", peer.PID, "count", n)
	writeJSON(w, http.StatusOK, RemoveResponse{Removed: n})
}

// credentialForCookie resolves the {cookie} URL parameter; it has already
// written the error response when ok is false
func (s *Server) credentialForCookie(w http.ResponseWriter, r *http.Request) (domain.Credential, bool) {
	tok, err := domain.ParseToken(chi.URLParam(r, "cookie"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return domain.Credential{}, false
	}
	cred, ok, err := s.store.Find(domain.ByToken, domain.Pattern{Token: tok})
	if err != nil {
		writeError(w, statusFor(err), err)
		return domain.Credential{}, false
	}
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrCredentialNotFound)
		return domain.Credential{}, false
	}
	return cred, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	cred, ok := s.credentialForCookie(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCredentialResponse(cred))
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	cred, ok := s.credentialForCookie(w, r)
	if !ok {
		return
	}

	field := chi.URLParam(r, "field")
	var value any
	switch field {
	case "pid":
		value = cred.PID()
	case "label":
		value = cred.Label()
	case "groups":
		value = cred.Groups()
	case "path":
		value = cred.Path()
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown field %q", field))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{field: value})
}

func (s *Server) handleCheckGroup(w http.ResponseWriter, r *http.Request) {
	var req CheckGroupRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	cred, ok := s.credentialForCookie(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CheckGroupResponse{
		Allowed: domain.GroupsOverlap([]int{req.GID}, cred.Groups()),
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criterion, err := domain.ParseCriterion(q.Get("by"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pattern, err := parsePattern(criterion, q.Get("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cred, ok, err := s.store.Find(criterion, pattern)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrCredentialNotFound)
		return
	}
	// The cookie is a bearer capability; lookups never hand it out
	writeJSON(w, http.StatusOK, newIdentityResponse(cred))
}

// parsePattern builds the pattern field criterion reads from its text form.
// Groups are a comma separated list of ids.
func parsePattern(criterion domain.Criterion, value string) (domain.Pattern, error) {
	switch criterion {
	case domain.ByToken:
		tok, err := domain.ParseToken(value)
		if err != nil {
			return domain.Pattern{}, err
		}
		return domain.Pattern{Token: tok}, nil
	case domain.ByPID:
		pid, err := strconv.Atoi(value)
		if err != nil {
			return domain.Pattern{}, fmt.Errorf("invalid pid %q: %w", value, err)
		}
		return domain.Pattern{PID: pid}, nil
	case domain.ByPath:
		return domain.Pattern{Path: value}, nil
	case domain.ByLabel:
		return domain.Pattern{Label: value}, nil
	case domain.ByGroupOverlap:
		var groups []int
		for _, f := range strings.Split(value, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			gid, err := strconv.Atoi(f)
			if err != nil {
				return domain.Pattern{}, fmt.Errorf("invalid group id %q: %w", f, err)
			}
			groups = append(groups, gid)
		}
		return domain.Pattern{Groups: groups}, nil
	default:
		return domain.Pattern{}, fmt.Errorf("%w: %s", domain.ErrUnknownCriterion, criterion)
	}
}
