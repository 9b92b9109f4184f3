package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendeai/dashboard-server-go/internal/config"
	"github.com/atendeai/dashboard-server-go/internal/middleware"
	"github.com/atendeai/dashboard-server-go/internal/model"
)

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(nil, "secret", "")

	t.Run("anonymous caller gets a null user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		h.AuthRoutes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user":null}`, rec.Body.String())
	})

	t.Run("resolved caller gets their record", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		ctx := context.WithValue(req.Context(), middleware.UserContextKey, &model.User{
			ID:     1,
			OpenID: "github|42",
			Role:   model.RoleAdmin,
		})
		h.AuthRoutes().ServeHTTP(rec, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"openId":"github|42"`)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(nil, "secret", "")

	t.Run("clears the session cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		h.AuthRoutes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, config.SessionCookieName, cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("is idempotent without an active session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		h.AuthRoutes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthHandler_OAuthCallback(t *testing.T) {
	h := NewAuthHandler(nil, "secret", "")

	t.Run("missing code redirects away without a cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=abc", nil)
		h.OAuthRoutes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/404", rec.Header().Get("Location"))
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestCallbackURL(t *testing.T) {
	t.Run("plain http", func(t *testing.T) {
		h := NewAuthHandler(nil, "secret", "")
		req := httptest.NewRequest(http.MethodGet, "http://dash.example.com/api/oauth/login", nil)
		assert.Equal(t, "http://dash.example.com/api/oauth/callback", h.callbackURL(req))
	})

	t.Run("behind an https proxy", func(t *testing.T) {
		h := NewAuthHandler(nil, "secret", "")
		req := httptest.NewRequest(http.MethodGet, "http://dash.example.com/api/oauth/login", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		assert.Equal(t, "https://dash.example.com/api/oauth/callback", h.callbackURL(req))
	})

	t.Run("configured base url wins", func(t *testing.T) {
		h := NewAuthHandler(nil, "secret", "https://dashboard.atende.ai/")
		req := httptest.NewRequest(http.MethodGet, "http://internal-lb/api/oauth/login", nil)
		assert.Equal(t, "https://dashboard.atende.ai/api/oauth/callback", h.callbackURL(req))
	})
}
