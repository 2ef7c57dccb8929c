package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/transport/http/middleware"
)

// UserGetter is the read surface the session handler needs.
type UserGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// SessionHandler resolves the session a verified token is bound to. A token
// whose session was pruned or never existed is refused even when the
// signature still verifies.
type SessionHandler struct {
	users UserGetter
}

func NewSessionHandler(users UserGetter) *SessionHandler {
	return &SessionHandler{users: users}
}

// SessionEnvelope wraps current-session responses.
type SessionEnvelope struct {
	Session *domain.Session `json:"session,omitempty"`
	User    *SafeUser       `json:"user,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	now := time.Now()
	for i := range u.Sessions {
		s := u.Sessions[i]
		if s.SessionID == claims.SessionID && !s.Expired(now) {
			writeJSON(w, http.StatusOK, SessionEnvelope{Session: &s, User: toSafeUser(u)})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "session expired or revoked")
}
