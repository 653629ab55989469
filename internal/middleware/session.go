package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/oklog/ulid/v2"

	"go.uber.org/zap"

	"github.com/creotizant/HCM-Landing/internal/observability"
)

const (
	sessionCookieName = "creotizant_session"
	sessionMaxAge     = 30 * 24 * 60 * 60

	keyID        = "id"
	keyCSRF      = "csrf"
	keyCreatedAt = "created"
)

// SessionData is the per-visitor state kept in the signed cookie.
type SessionData struct {
	ID        string
	CSRFToken string
	CreatedAt time.Time
}

// NewCookieStore returns a signed cookie store for the session cookie.
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session loads or initializes a session and stores it in request context.
// Unreadable cookies (rotated key, tampering) start a fresh session.
func Session(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.Get(r, sessionCookieName)
			if err != nil {
				observability.FromContext(r.Context()).Debug("discarding unreadable session cookie", zap.Error(err))
			}
			sd := &SessionData{}
			sd.ID, _ = s.Values[keyID].(string)
			sd.CSRFToken, _ = s.Values[keyCSRF].(string)
			if created, ok := s.Values[keyCreatedAt].(int64); ok {
				sd.CreatedAt = time.Unix(created, 0).UTC()
			}
			if sd.ID == "" || sd.CSRFToken == "" {
				if sd.ID == "" {
					sd.ID = ulid.Make().String()
					sd.CreatedAt = time.Now().UTC()
				}
				if sd.CSRFToken == "" {
					sd.CSRFToken = newCSRFToken()
				}
				s.Values[keyID] = sd.ID
				s.Values[keyCSRF] = sd.CSRFToken
				s.Values[keyCreatedAt] = sd.CreatedAt.Unix()
				if err := s.Save(r, w); err != nil {
					observability.FromContext(r.Context()).Warn("session save failed", zap.Error(err))
				}
			}
			ctx := context.WithValue(r.Context(), ctxKeySession, sd)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
