package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned for admin requests without a valid token.
var ErrUnauthorized = errors.New("unauthorized")

// AdminAuth guards the endpoints that mirror the admin-only script
// localization. With no hash configured every request is allowed.
type AdminAuth struct {
	hash []byte
}

// NewAdminAuth creates a guard from a bcrypt hash; "" disables it.
func NewAdminAuth(hash string) *AdminAuth {
	if hash == "" {
		return &AdminAuth{}
	}
	return &AdminAuth{hash: []byte(hash)}
}

// Enabled reports whether a token is required.
func (a *AdminAuth) Enabled() bool {
	return len(a.hash) > 0
}

// Check validates the token carried as "Authorization: Bearer <token>" or in
// the token query parameter.
func (a *AdminAuth) Check(r *http.Request) error {
	if !a.Enabled() {
		return nil
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(token)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// HashToken generates a bcrypt hash for admin_token_hash in config.json.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
