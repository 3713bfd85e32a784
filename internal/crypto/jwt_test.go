package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard/taskboard-go/internal/clock"
)

func TestIssueToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, nil)

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty string")
	}
}

func TestVerifyTokenValid(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, nil)

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Verify() UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("Verify() Email = %q, want %q", claims.Email, "a@b.com")
	}
}

func TestDefaultExpiryIsSevenDays(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("test-secret", 0, clock.Fake(now))

	token, err := issuer.Issue(1, "a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}

	if got, want := claims.ExpiresAt.Time, now.Add(7*24*time.Hour); !got.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", got, want)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	fake := clock.Fake(time.Now())
	issuer := NewTokenIssuer("test-secret", time.Hour, fake)

	token, err := issuer.Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	fake.Advance(2 * time.Hour)

	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestVerifyTokenInvalid(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, nil)

	_, err := issuer.Verify("not-a-valid-token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("correct-secret", time.Hour, nil).Issue(42, "a@b.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = NewTokenIssuer("wrong-secret", time.Hour, nil).Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
	}
}

func TestVerifyTokenRejectsForeignClaims(t *testing.T) {
	secret := "test-secret"
	issuer := NewTokenIssuer(secret, time.Hour, nil)
	now := time.Now()

	tests := []struct {
		name   string
		claims Claims
	}{
		{
			name: "wrong issuer",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Issuer:    "wrong-issuer",
					Audience:  jwt.ClaimStrings{tokenAudience},
					ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				},
				UserID: 42,
			},
		},
		{
			name: "wrong audience",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Issuer:    tokenIssuer,
					Audience:  jwt.ClaimStrings{"wrong-audience"},
					ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				},
				UserID: 42,
			},
		},
		{
			name: "missing expiry",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Issuer:   tokenIssuer,
					Audience: jwt.ClaimStrings{tokenAudience},
				},
				UserID: 42,
			},
		},
		{
			name: "missing user id",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Issuer:    tokenIssuer,
					Audience:  jwt.ClaimStrings{tokenAudience},
					ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte(secret))
			if err != nil {
				t.Fatalf("SignedString() unexpected error: %v", err)
			}

			_, err = issuer.Verify(tokenString)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Verify() error = %v, want %v", err, ErrTokenInvalid)
			}
		})
	}
}
