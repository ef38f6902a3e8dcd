package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wedding-message-vault/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(&config.AuthConfig{
		JWTSecret:         "test-secret",
		VaultPassword:     "vault-pass",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		AdminTokenTTL:     6 * time.Hour,
		VaultTokenTTL:     12 * time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(&config.AuthConfig{})
	if err == nil {
		t.Error("Expected error for empty JWT secret")
	}
}

func TestVaultLogin(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", "vault-pass", nil},
		{"wrong password", "nope", ErrInvalidCredentials},
		{"empty password", "", ErrMissingCredentials},
		{"whitespace password", "   ", ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.VaultLogin(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("VaultLogin() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && token == "" {
				t.Error("Expected a signed token")
			}
		})
	}
}

func TestAdminLogin(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "admin", "admin-pass", nil},
		{"wrong password", "admin", "nope", ErrInvalidCredentials},
		{"unknown user", "root", "admin-pass", ErrInvalidCredentials},
		{"missing username", "", "admin-pass", ErrMissingCredentials},
		{"missing password", "admin", "", ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AdminLogin(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AdminLogin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdminLoginDisabledWithoutHash(t *testing.T) {
	m, err := NewManager(&config.AuthConfig{
		JWTSecret:     "test-secret",
		VaultPassword: "vault-pass",
		AdminUsername: "admin",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.AdminLogin("admin", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected invalid credentials when no hash configured, got %v", err)
	}
}

func TestVerifyRoles(t *testing.T) {
	m := newTestManager(t)

	vaultToken, err := m.VaultLogin("vault-pass")
	if err != nil {
		t.Fatal(err)
	}
	adminToken, err := m.AdminLogin("admin", "admin-pass")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.Verify(vaultToken)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.Role != RoleVault {
		t.Errorf("Expected role %q, got %q", RoleVault, claims.Role)
	}

	claims, err = m.Verify(adminToken)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.Role != RoleAdmin || claims.Username != "admin" {
		t.Errorf("Expected admin claims, got %+v", claims)
	}
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	m := newTestManager(t)

	other, err := NewManager(&config.AuthConfig{
		JWTSecret:     "different-secret",
		VaultPassword: "vault-pass",
		VaultTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	token, err := other.VaultLogin("vault-pass")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", false},
		{"case insensitive scheme", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc123", "", true},
		{"no scheme", "abc123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
