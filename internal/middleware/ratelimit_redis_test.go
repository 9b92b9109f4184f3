package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendeai/dashboard-server-go/internal/model"
)

// scripterFake satisfies redis.Scripter with a canned result or error and
// records the keys each evaluation was given.
type scripterFake struct {
	result []interface{}
	err    error
	keys   []string
}

func (f *scripterFake) eval(keys []string) *redis.Cmd {
	f.keys = append(f.keys, keys...)
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	return redis.NewCmdResult(f.result, nil)
}

func (f *scripterFake) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.eval(keys)
}

func (f *scripterFake) EvalSha(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	return f.eval(keys)
}

func (f *scripterFake) EvalRO(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.eval(keys)
}

func (f *scripterFake) EvalShaRO(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	return f.eval(keys)
}

func (f *scripterFake) ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *scripterFake) ScriptLoad(ctx context.Context, script string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func allowResult(remaining, resetAt int64) []interface{} {
	return []interface{}{int64(1), remaining, resetAt}
}

func denyResult(resetAt int64) []interface{} {
	return []interface{}{int64(0), int64(0), resetAt}
}

func TestRedisRateLimiter_Check(t *testing.T) {
	t.Run("allows within the limit", func(t *testing.T) {
		limiter := NewRedisRateLimiter(&scripterFake{result: allowResult(9, 1700000000)})

		allowed, remaining, resetAt := limiter.Check(context.Background(), "github|42", 10)

		assert.True(t, allowed)
		assert.Equal(t, 9, remaining)
		assert.Equal(t, int64(1700000000), resetAt)
	})

	t.Run("denies past the limit", func(t *testing.T) {
		limiter := NewRedisRateLimiter(&scripterFake{result: denyResult(1700000060)})

		allowed, remaining, _ := limiter.Check(context.Background(), "github|42", 10)

		assert.False(t, allowed)
		assert.Zero(t, remaining)
	})

	t.Run("fails open when redis errors", func(t *testing.T) {
		limiter := NewRedisRateLimiter(&scripterFake{err: errors.New("connection refused")})

		allowed, _, _ := limiter.Check(context.Background(), "github|42", 10)

		assert.True(t, allowed, "a cache outage must never block requests")
	})

	t.Run("fails open on a malformed script result", func(t *testing.T) {
		limiter := NewRedisRateLimiter(&scripterFake{result: []interface{}{int64(1)}})

		allowed, _, _ := limiter.Check(context.Background(), "github|42", 10)

		assert.True(t, allowed)
	})
}

func TestRedisRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("authenticated callers are bucketed by identity", func(t *testing.T) {
		fake := &scripterFake{result: allowResult(119, 1700000000)}
		handler := NewRedisRateLimitMiddleware(fake).Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
		ctx := context.WithValue(req.Context(), UserContextKey, &model.User{OpenID: "github|42"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, fake.keys, 1)
		assert.Equal(t, "ratelimit:github|42", fake.keys[0])
	})

	t.Run("anonymous callers are bucketed by address", func(t *testing.T) {
		fake := &scripterFake{result: allowResult(119, 1700000000)}
		handler := NewRedisRateLimitMiddleware(fake).Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, fake.keys, 1)
		assert.Equal(t, "ratelimit:"+req.RemoteAddr, fake.keys[0])
	})

	t.Run("over the limit returns 429 with limit headers", func(t *testing.T) {
		fake := &scripterFake{result: denyResult(1700000060)}
		handler := NewRedisRateLimitMiddleware(fake).Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "1700000060", rec.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("headers are set on allowed responses too", func(t *testing.T) {
		fake := &scripterFake{result: allowResult(119, 1700000000)}
		handler := NewRedisRateLimitMiddleware(fake).Handler(next)

		req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "119", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "120", rec.Header().Get("X-RateLimit-Limit"))
	})
}
