package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrSigningFailed       = errors.New("failed to sign token")
	ErrInvalidSecretLength = errors.New("signing secret must be at least 32 characters")
)

// Claims are the identity facts embedded in a bearer token. They are
// derived at issuance and reconstructed at verification, never persisted.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Username returns the token subject.
func (c *Claims) Username() string {
	return c.Subject
}

// Codec issues and verifies self-contained signed bearer tokens. It is
// stateless and safe for concurrent use; the signing secret is loaded
// once and immutable afterwards.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

func NewCodec(secret string, lifetime time.Duration) (*Codec, error) {
	if len(secret) < 32 {
		return nil, ErrInvalidSecretLength
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), lifetime: lifetime}, nil
}

// Issue builds claims for the subject and returns the serialized signed
// token. Pure function of inputs, current time, and the secret.
func (c *Codec) Issue(subject, email string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Email: email,
		Roles: roles,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", ErrSigningFailed
	}
	return signed, nil
}

// Verify parses and signature-checks a token. Malformed structure, a bad
// signature, and an elapsed expiry are all rejected.
func (c *Codec) Verify(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Lifetime returns the configured token lifetime.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}
