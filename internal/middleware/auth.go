package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator verifies HS256 bearer tokens and stores the token subject as
// the request's user id. It is the only place a token is ever decoded.
type Authenticator struct {
	secret []byte
	public map[string]struct{}
	parser *jwt.Parser
}

// NewAuthenticator builds an Authenticator. issuer may be empty to accept any
// issuer. Requests to publicPaths pass through unauthenticated.
func NewAuthenticator(secret, issuer string, publicPaths ...string) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}
	return &Authenticator{
		secret: []byte(secret),
		public: public,
		parser: jwt.NewParser(opts...),
	}
}

// Verify validates tokenStr and returns its subject.
func (a *Authenticator) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := a.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("token subject is required")
	}
	return claims.Subject, nil
}

// Handler rejects requests without a valid bearer token with 401.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.public[r.URL.Path]; ok || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		scheme, tokenStr, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			return
		}

		userID, err := a.Verify(strings.TrimSpace(tokenStr))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
