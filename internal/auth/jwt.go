// Package auth issues and validates the bearer tokens the HTTP service
// adapter requires on its /v1 routes when auth is enabled. There is no user/login
// system here — the matching core has no notion of accounts — only a
// shared-secret client credential, trimmed from the trading system's
// general-purpose JWTService.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the calling client. Role exists so a future Non-goal
// (per-client rate tiers, read-only keys) has somewhere to land without a
// token format change.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id"`
	Role     string `json:"role"`
}

// Config configures the JWT issuer/validator.
type Config struct {
	SigningKey string
	Issuer     string
	TokenTTL   time.Duration
}

// Service issues and validates client bearer tokens.
type Service struct {
	cfg Config
}

// NewService constructs a Service. An empty SigningKey disables issuance
// (ValidateToken still works against tokens signed elsewhere with the same
// key distributed out of band).
func NewService(cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &Service{cfg: cfg}
}

// IssueToken mints a signed bearer token for clientID. It fails when the
// Service has no SigningKey.
func (s *Service) IssueToken(clientID, role string) (string, error) {
	if s.cfg.SigningKey == "" {
		return "", errors.New("token issuance disabled: empty signing key")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		ClientID: clientID,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SigningKey))
}

// ValidateToken parses and verifies tokenString, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
