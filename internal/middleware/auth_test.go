package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "driver-1",
		Issuer:    "giropro",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

// echoUserHandler writes the user id found in the request context.
var echoUserHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserID(r.Context())
	_, _ = w.Write([]byte(id))
})

func serveWithToken(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator_ValidToken(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret, "giropro").Handler(echoUserHandler)
	tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	rec := serveWithToken(h, "/trips", tok)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "driver-1", rec.Body.String())
}

func TestAuthenticator_Rejections(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil
	noSubject := validClaims()
	noSubject.Subject = ""
	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{"expired", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"no expiry", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry)},
		{"no subject", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject)},
		{"wrong issuer", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer)},
		{"wrong algorithm", signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())},
	}
	h := middleware.NewAuthenticator(testSecret, "giropro").Handler(echoUserHandler)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveWithToken(h, "/trips", tc.token)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"unauthenticated"`)
		})
	}
}

func TestAuthenticator_EmptyIssuerAcceptsAny(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret, "").Handler(echoUserHandler)
	claims := validClaims()
	claims.Issuer = "anything"

	rec := serveWithToken(h, "/trips", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticator_PublicPath(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret, "", "/healthz").Handler(echoUserHandler)

	rec := serveWithToken(h, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUserID_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.UserID(req.Context())

	assert.False(t, ok)
}
