// Package auth provides HMAC-signed JWT issuance and verification for the API boundary.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims the service issues and verifies.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens issues and verifies bearer tokens for a single signing key.
type Tokens struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// New creates a Tokens instance from the given configuration.
func New(cfg *Config) *Tokens {
	return &Tokens{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTLDuration(),
	}
}

// Issue signs a token for the given subject with the configured issuer,
// audience, and TTL.
func (t *Tokens) Issue(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning its claims.
// Rejects tokens with the wrong signing method, issuer, audience, or
// an elapsed expiry.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}
