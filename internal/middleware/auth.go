package middleware

import (
	"net/http"

	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
)

// RequireUser gates protected routes: requests with no resolved user are
// rejected before the handler runs, regardless of input validity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			writeError(w, apperrors.Unauthorized())
			return
		}
		next.ServeHTTP(w, r)
	})
}
