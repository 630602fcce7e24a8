// Package auth issues and validates the bearer tokens that gate the
// import endpoint, grounded on the teacher's server/token.go JWT
// handling and server/tunas bcrypt credential checks.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// issuer is the fixed JWT issuer claim, mirroring the teacher's "tqs".
const issuer = "fshi"

type ctxKey int

const clientIDKey ctxKey = iota

// CredentialStore looks up the bcrypt hash registered for a client ID.
// Implementations need not be safe for writes during a request, only
// for concurrent reads.
type CredentialStore interface {
	KeyHash(clientID string) (hash string, ok bool)
}

// MapStore is an in-memory CredentialStore, suitable for a single
// fshiserver process's lifetime.
type MapStore map[string]string

func (m MapStore) KeyHash(clientID string) (string, bool) {
	h, ok := m[clientID]
	return h, ok
}

// HashAPIKey bcrypt-hashes key for storage in a CredentialStore.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), 12)
	if err != nil {
		return "", fmt.Errorf("hash API key: %w", err)
	}
	return string(hash), nil
}

// VerifyAPIKey checks key against a bcrypt hash previously produced by
// HashAPIKey.
func VerifyAPIKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// IssueToken signs a short-lived bearer token identifying clientID,
// using secret as the HMAC signing key.
func IssueToken(secret []byte, clientID string) (string, error) {
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": clientID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

// RequireBearer returns middleware that validates the request's
// "Authorization: Bearer <token>" header against secret and, on
// success, stores the token's client ID in the request context
// (retrievable with ClientID). Requests without a valid token receive
// an HTTP 401 and never reach next.
func RequireBearer(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			tokStr, err := bearerToken(req)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			clientID, err := validate(tokStr, secret)
			if err != nil {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(req.Context(), clientIDKey, clientID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// ClientID retrieves the client ID RequireBearer attached to ctx, if
// any.
func ClientID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok
}

func bearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("no authorization header present")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func validate(tokStr string, secret []byte) (string, error) {
	tok, err := jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))
	if err != nil {
		return "", err
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	return sub, nil
}
