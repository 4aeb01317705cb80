package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nontawatz/mini-commerce-api/internal/config"
)

func TestRateLimitByCallerClass(t *testing.T) {
	cfg := config.RateLimit{
		Window:      time.Minute,
		AuthLimit:   5,
		PublicLimit: 2,
	}

	handler := RateLimitByCallerClass(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(withAuth bool) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		if withAuth {
			req.Header.Set("Authorization", "Bearer whatever")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Public class allows two requests per window.
	require.Equal(t, http.StatusOK, do(false))
	require.Equal(t, http.StatusOK, do(false))
	assert.Equal(t, http.StatusTooManyRequests, do(false))

	// Authenticated class counts separately and has a larger cap.
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, do(true))
	}
	assert.Equal(t, http.StatusTooManyRequests, do(true))
}
