package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/audit"
	"github.com/atendeai/dashboard-server-go/internal/middleware"
	"github.com/atendeai/dashboard-server-go/internal/service"
)

type AuthHandler struct {
	authService   *service.AuthService
	sessionSecret string
	appBaseURL    string
}

func NewAuthHandler(authService *service.AuthService, sessionSecret, appBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: sessionSecret,
		appBaseURL:    strings.TrimRight(appBaseURL, "/"),
	}
}

func (h *AuthHandler) AuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)
	r.Post("/logout", h.Logout)

	return r
}

func (h *AuthHandler) OAuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.OAuthLogin)
	r.Get("/callback", h.OAuthCallback)

	return r
}

// GET /api/auth/me
// Public identity check: anonymous callers get a null user, not an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user": middleware.GetUser(r.Context()),
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		audit.Log(r.Context(), audit.FromRequest(r, audit.EventLogout, user.OpenID))
	}

	middleware.ClearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/oauth/login
func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	redirectURI := h.callbackURL(r)

	authURL, err := h.authService.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin login")
		writeError(w, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// GET /api/oauth/callback?code=...&state=...
// On success the caller lands on the application root with a fresh session
// cookie; any failure redirects to the not-found route with nothing set.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" {
		http.Redirect(w, r, "/404", http.StatusTemporaryRedirect)
		return
	}

	user, err := h.authService.ExchangeCode(r.Context(), code, state)
	if err != nil {
		log.Warn().Err(err).Msg("oauth code exchange failed")
		audit.Log(r.Context(), audit.FromRequest(r, audit.EventLoginFailure, ""))
		http.Redirect(w, r, "/404", http.StatusTemporaryRedirect)
		return
	}

	value := middleware.SignSessionValue(user.OpenID, h.sessionSecret)
	middleware.SetSessionCookie(w, r, value)

	audit.Log(r.Context(), audit.FromRequest(r, audit.EventLoginSuccess, user.OpenID))
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// callbackURL prefers the configured public base URL; without one it is
// derived from the incoming request.
func (h *AuthHandler) callbackURL(r *http.Request) string {
	if h.appBaseURL != "" {
		return h.appBaseURL + "/api/oauth/callback"
	}
	scheme := "http"
	if middleware.IsRequestSecure(r) {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/api/oauth/callback"
}
