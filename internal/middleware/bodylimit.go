package middleware

import (
	"net/http"

	apperrors "github.com/atendeai/dashboard-server-go/internal/errors"
)

// maxRequestBody caps JSON request bodies. The largest legitimate payload
// is an organization create with its credential fields, well under 1 MiB.
const maxRequestBody int64 = 1 << 20

// BodyLimit rejects oversized requests up front when Content-Length is
// declared, and wraps the body in a MaxBytesReader so chunked uploads
// cannot sidestep the cap either.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = maxRequestBody
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, apperrors.PayloadTooLarge(maxBytes))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
