package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/igetback/shuttle-api/internal/platform/auth/jwtverifier"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret, email string, ttl time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func echoEmailHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(email))
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(jwtverifier.New(testSecret))
	h := mw(echoEmailHandler())

	cases := []struct {
		name       string
		authz      string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + mintToken(t, testSecret, "Alice@College.EDU", time.Hour), http.StatusOK, "alice@college.edu"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"empty token", "Bearer   ", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + mintToken(t, "other-secret", "alice@college.edu", time.Hour), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + mintToken(t, testSecret, "alice@college.edu", -time.Hour), http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.authz != "" {
				req.Header.Set("Authorization", tc.authz)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				require.Equal(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_HealthzBypass(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(jwtverifier.New(testSecret))
	called := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.True(t, called)
}

func TestDevAuthMiddleware(t *testing.T) {
	t.Parallel()

	h := NewDevAuthMiddleware("fallback@college.edu")(echoEmailHandler())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Debug-Email", "header@college.edu")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "header@college.edu", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "fallback@college.edu", rec.Body.String())

	h = NewDevAuthMiddleware("")(echoEmailHandler())
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
