// Package auth issues and verifies the bearer tokens that gate the
// vault and admin views.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/wedding-message-vault/internal/config"
)

// Roles carried in the token claims
const (
	RoleAdmin = "admin"
	RoleVault = "vault"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims are the JWT claims for vault and admin tokens
type Claims struct {
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens and checks login credentials.
// All secrets come from configuration resolved at process start.
type Manager struct {
	secret            []byte
	vaultPassword     string
	adminUsername     string
	adminPasswordHash string
	adminTTL          time.Duration
	vaultTTL          time.Duration
}

// NewManager creates a Manager from the auth configuration
func NewManager(cfg *config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &Manager{
		secret:            []byte(cfg.JWTSecret),
		vaultPassword:     cfg.VaultPassword,
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		adminTTL:          cfg.AdminTokenTTL,
		vaultTTL:          cfg.VaultTokenTTL,
	}, nil
}

// AdminLogin verifies the admin credentials against the configured
// bcrypt hash and returns a signed admin token.
func (m *Manager) AdminLogin(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}
	if m.adminPasswordHash == "" || username != m.adminUsername {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.adminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return m.issue(RoleAdmin, username, m.adminTTL)
}

// VaultLogin checks the fixed shared vault password and returns a
// signed vault token.
func (m *Manager) VaultLogin(password string) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", ErrMissingCredentials
	}
	if password != m.vaultPassword {
		return "", ErrInvalidCredentials
	}
	return m.issue(RoleVault, "", m.vaultTTL)
}

func (m *Manager) issue(role, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "wedding-message-vault",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token and returns its claims
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractToken extracts the JWT token from an Authorization header value.
// Supports "Bearer <token>" format.
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("empty authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty token")
	}

	return token, nil
}
