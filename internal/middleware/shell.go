package middleware

import (
	"net/http"

	"github.com/creotizant/HCM-Landing/internal/nav"
)

// Shells attaches the navigation shell of the request's session. Session
// must run first.
func Shells(store *nav.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sd := GetSession(r)
			if sd.ID == "" {
				WriteError(w, r, http.StatusInternalServerError, "session unavailable")
				return
			}
			ctx := WithShell(r.Context(), store.Shell(sd.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
