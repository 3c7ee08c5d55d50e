package middleware

import (
	"go-blog-app/internal/auth"
	"go-blog-app/internal/data"
	"go-blog-app/internal/session"
	"net/http"

	"github.com/casbin/casbin/v2"
)

// Authorizer creates a new middleware for authorization. It rebuilds the
// principal from the session and enforces route-level Casbin policies.
//
// Anonymous visitors denied access are redirected to the login page;
// signed-in users denied access get an explicit forbidden response.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := "anonymous"

			if userID := sm.GetInt64(r.Context(), session.KeyUserID); userID != 0 {
				principal := &auth.Principal{
					UserID:      userID,
					DisplayName: sm.GetString(r.Context(), session.KeyUserName),
					Role:        data.Role(sm.GetString(r.Context(), session.KeyUserRole)),
				}
				subject = string(principal.Role)
				r = r.WithContext(SetPrincipal(r.Context(), principal))
			}

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				if subject == "anonymous" {
					http.Redirect(w, r, "/giris", http.StatusFound)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
