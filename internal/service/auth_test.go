package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"iptv-storefront/internal/config"

	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, username, password string) AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	return NewAuthService(&config.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Secret:       "test-signing-secret",
	})
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newAuthService(t, "admin", "hunter2")

	token, err := svc.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Username != "admin" {
		t.Fatalf("unexpected username claim: %s", claims.Username)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role claim: %s", claims.Role)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || remaining > TokenTTL {
		t.Fatalf("expected expiry within %s, got %s remaining", TokenTTL, remaining)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(t, "admin", "hunter2")

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownUsername(t *testing.T) {
	svc := newAuthService(t, "admin", "hunter2")

	if _, err := svc.Login("root", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginFailsWithoutConfiguredCredentials(t *testing.T) {
	svc := NewAuthService(&config.Admin{Secret: "s"})

	if _, err := svc.Login("admin", "anything"); err == nil {
		t.Fatal("expected error when admin credentials are not configured")
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc := newAuthService(t, "admin", "hunter2")

	token, err := svc.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.VerifyToken(tampered); err == nil {
		t.Fatal("expected tampered token to fail verification")
	}
}

func TestVerifyTokenRejectsOtherSecret(t *testing.T) {
	issuer := newAuthService(t, "admin", "hunter2")
	verifier := NewAuthService(&config.Admin{
		Username:     "admin",
		PasswordHash: "unused",
		Secret:       "a-different-secret",
	})

	token, err := issuer.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatal("expected token signed with another secret to fail")
	}
}
