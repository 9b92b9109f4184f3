package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/config"
	"github.com/atendeai/dashboard-server-go/internal/model"
	"github.com/atendeai/dashboard-server-go/internal/repository"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the resolved caller, or nil for anonymous requests.
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserContextKey).(*model.User); ok {
		return user
	}
	return nil
}

// SessionMiddleware resolves the caller from the session cookie on every
// request. A missing, unsigned, or stale cookie leaves the caller
// anonymous; it is never an error at this layer.
type SessionMiddleware struct {
	userRepo repository.UserRepository
	secret   string
}

func NewSessionMiddleware(userRepo repository.UserRepository, secret string) *SessionMiddleware {
	return &SessionMiddleware{userRepo: userRepo, secret: secret}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(config.SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		openID, ok := VerifySessionValue(cookie.Value, m.secret)
		if !ok {
			log.Warn().Msg("session cookie signature mismatch")
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userRepo.FindByOpenID(r.Context(), openID)
		if err != nil {
			log.Error().Err(err).Msg("session middleware: user lookup failed")
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SignSessionValue binds the canonical identity to an HMAC signature so a
// forged cookie cannot impersonate another operator.
func SignSessionValue(openID, secret string) string {
	return openID + "." + util.HmacSHA256(secret, openID)
}

// VerifySessionValue splits and checks a signed cookie value, returning
// the embedded open id.
func VerifySessionValue(value, secret string) (string, bool) {
	idx := strings.LastIndex(value, ".")
	if idx <= 0 {
		return "", false
	}
	openID, sig := value[:idx], value[idx+1:]
	if !util.ConstantTimeEqual(sig, util.HmacSHA256(secret, openID)) {
		return "", false
	}
	return openID, true
}

// IsRequestSecure reports whether the request arrived over HTTPS, directly
// or behind a proxy that set X-Forwarded-Proto.
func IsRequestSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// SetSessionCookie issues the 30-day session cookie with the attributes
// the dashboard client expects.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   IsRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie with matching attributes;
// calling it with no active session is safe.
func ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}
