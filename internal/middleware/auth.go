package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/taskboard/taskboard-go/internal/crypto"
	"github.com/taskboard/taskboard-go/internal/model"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrAuthInvalid  = errors.New("invalid or expired token")
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*crypto.Claims, error)
}

// Authenticate returns a request step that resolves the caller from a Bearer
// token in the Authorization header. The identity is taken from the token
// claims; the user row is not re-read.
func Authenticate(verifier TokenVerifier) func(http.ResponseWriter, *http.Request) (*http.Request, error) {
	return func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || token == "" {
			return nil, ErrAuthRequired
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return nil, ErrAuthInvalid
		}

		id := model.Identity{ID: claims.UserID, Email: claims.Email}
		return r.WithContext(WithIdentity(r.Context(), id)), nil
	}
}

// WithIdentity returns a copy of ctx carrying the authenticated caller.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
