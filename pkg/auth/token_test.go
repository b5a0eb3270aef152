package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/eight22lax/stringshop-backend/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret: "secret",
		Issuer: "stringshop",
	}
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		Subject:       "user_1",
		Email:         "owner@stringshop.test",
		EmailVerified: true,
		Role:          RoleAdmin,
	}

	token, err := MintAccessToken(cfg, now, 30*time.Minute, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.Email != payload.Email {
		t.Fatalf("expected email %s, got %s", payload.Email, claims.Email)
	}
	if !claims.EmailVerified {
		t.Fatal("email_verified not preserved")
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(30 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "stringshop"}

	token, err := MintAccessToken(cfg, time.Now(), 10*time.Minute, AccessTokenPayload{Email: "owner@stringshop.test"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "stringshop"}

	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), 15*time.Minute, AccessTokenPayload{Email: "owner@stringshop.test"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseAccessTokenWrongAudience(t *testing.T) {
	minter := config.JWTConfig{Secret: "secret", Issuer: "stringshop", Audience: "admin-console"}
	token, err := MintAccessToken(minter, time.Now(), 10*time.Minute, AccessTokenPayload{Email: "owner@stringshop.test"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	parser := config.JWTConfig{Secret: "secret", Issuer: "stringshop", Audience: "other"}
	if _, err := ParseAccessToken(parser, token); err == nil {
		t.Fatal("expected audience mismatch error")
	}
}

func TestIsAdminFor(t *testing.T) {
	cases := []struct {
		name    string
		claims  *AccessTokenClaims
		allowed string
		want    bool
	}{
		{"admin role", &AccessTokenClaims{Email: "a@b.c", EmailVerified: true, Role: RoleAdmin}, "", true},
		{"allow-listed email", &AccessTokenClaims{Email: "Owner@Shop.Test", EmailVerified: true}, "owner@shop.test", true},
		{"unverified email", &AccessTokenClaims{Email: "a@b.c", EmailVerified: false, Role: RoleAdmin}, "", false},
		{"plain customer", &AccessTokenClaims{Email: "a@b.c", EmailVerified: true}, "owner@shop.test", false},
		{"missing email", &AccessTokenClaims{EmailVerified: true, Role: RoleAdmin}, "", false},
		{"nil claims", nil, "owner@shop.test", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.claims.IsAdminFor(tc.allowed); got != tc.want {
				t.Fatalf("IsAdminFor = %v, want %v", got, tc.want)
			}
		})
	}
}
