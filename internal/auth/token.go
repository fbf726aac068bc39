package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// DefaultTTL is the credential lifetime fixed at issuance.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidToken covers malformed, forged, and structurally incomplete credentials.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is distinguished for observability only; callers treat it as invalid.
	ErrTokenExpired = errors.New("token expired")
)

// SessionClaims are the claims carried by a signed credential.
type SessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session credentials with a symmetric key.
// The key and TTL are fixed at construction and never mutated.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. An empty secret is a configuration error and
// must abort startup; running unauthenticated is never acceptable.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL exposes the configured credential lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs the identity claims together with issued-at and expiry stamps.
func (c *Codec) Issue(identity shared.Identity) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		Image:  identity.Image,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign credential: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential string. It never panics; every
// failure collapses to ErrInvalidToken or ErrTokenExpired. A token without
// a role claim is invalid, not lowest-privilege.
func (c *Codec) Verify(credential string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
