package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/housekeep/core/internal/infrastructure/clock"
	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/logger"
)

func TestAuthService_RoundTrip(t *testing.T) {
	clk := clock.NewFixed(time.Now())
	svc := NewAuthService(config.JWTConfig{Secret: "s3cret", Issuer: "housekeep", ExpiresIn: time.Hour}, clk, logger.NewNop())

	token, err := svc.IssueToken(testUser, 0)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	got, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if got != testUser {
		t.Errorf("subject = %s, want %s", got, testUser)
	}

	clk.Advance(2 * time.Hour)
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	svc := NewAuthService(config.JWTConfig{Secret: "s3cret", Issuer: "housekeep", ExpiresIn: time.Hour}, clock.NewFixed(now), logger.NewNop())

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	valid := jwt.RegisteredClaims{
		Subject:   testUser.String(),
		Issuer:    "housekeep",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"
	badSubject := valid
	badSubject.Subject = "not-a-uuid"

	tests := []struct {
		name  string
		token string
	}{
		{"Given a different secret When validating Then rejected", sign(jwt.SigningMethodHS256, []byte("other"), valid)},
		{"Given a different algorithm When validating Then rejected", sign(jwt.SigningMethodHS512, []byte("s3cret"), valid)},
		{"Given a foreign issuer When validating Then rejected", sign(jwt.SigningMethodHS256, []byte("s3cret"), wrongIssuer)},
		{"Given a non uuid subject When validating Then rejected", sign(jwt.SigningMethodHS256, []byte("s3cret"), badSubject)},
		{"Given garbage When validating Then rejected", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
