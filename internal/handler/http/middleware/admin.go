package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/fasihgds-afk/hik-attendance-system/internal/handler/http/response"
)

// HRAdminOnly gates the mutating endpoints: overrides, leave grant/revoke,
// rules activation, ledger reconciliation.
func HRAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		admin, ok := claims["hr_admin"].(bool)
		if !admin || !ok {
			response.Forbidden(w, "HR admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
