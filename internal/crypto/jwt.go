package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard/taskboard-go/internal/clock"
)

const (
	tokenIssuer   = "taskboard"
	tokenAudience = "taskboard-api"

	// DefaultTokenExpiry is how long an issued token stays valid.
	DefaultTokenExpiry = 7 * 24 * time.Hour
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents the JWT claims for Taskboard authentication.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// TokenIssuer signs and verifies bearer tokens with a process-wide secret.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

// NewTokenIssuer creates a TokenIssuer. A non-positive expiry falls back to
// DefaultTokenExpiry and a nil clock to the real clock.
func NewTokenIssuer(secret string, expiry time.Duration, clk clock.Clock) *TokenIssuer {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &TokenIssuer{secret: []byte(secret), expiry: expiry, clock: clk}
}

// Issue creates a signed token carrying the user's id and email.
func (ti *TokenIssuer) Issue(userID int64, email string) (string, error) {
	now := ti.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify parses and validates a token string, returning its claims.
// Expired tokens return ErrTokenExpired; every other failure ErrTokenInvalid.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return ti.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
