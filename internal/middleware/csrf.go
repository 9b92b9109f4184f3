package middleware

import (
	"net/http"

	"github.com/atendeai/dashboard-server-go/internal/audit"
	"github.com/atendeai/dashboard-server-go/internal/config"
	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFMiddleware implements the double-submit cookie pattern. The token
// cookie is deliberately not HttpOnly: the dashboard client reads it and
// echoes it back in the X-CSRF-Token header on every mutating request.
type CSRFMiddleware struct {
	secureCookie bool
}

func NewCSRFMiddleware(isProduction bool) *CSRFMiddleware {
	return &CSRFMiddleware{secureCookie: isProduction}
}

func (m *CSRFMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.ensureToken(w, r)
		if err != nil {
			writeError(w, err)
			return
		}

		// GET/HEAD/OPTIONS never mutate; only writes need the header echo.
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		echoed := r.Header.Get(CSRFHeaderName)
		if echoed == "" || !util.ConstantTimeEqual(token, echoed) {
			m.auditFailure(r)
			writeError(w, apperrors.Forbidden("CSRF token missing or invalid"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ensureToken returns the caller's CSRF token, minting and setting one on
// first contact.
func (m *CSRFMiddleware) ensureToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", apperrors.Internal("failed to generate security token").WithCause(err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: false,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

func (m *CSRFMiddleware) auditFailure(r *http.Request) {
	openID := ""
	if user := GetUser(r.Context()); user != nil {
		openID = user.OpenID
	}
	audit.Log(r.Context(), audit.FromRequest(r, audit.EventCSRFFailure, openID))
}
