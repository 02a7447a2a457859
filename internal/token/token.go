// Package token issues and verifies the signed bearer credential.
// The credential is a stateless HMAC-signed JWT carrying only a user
// id and expiry; expiry is the sole invalidation mechanism — there is
// no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the credential lifetime when none is configured.
const DefaultTTL = 100 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, or passed expiry. Verification is all-or-nothing.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload. The user id is nested under "user"
// to match the wire shape consumed by existing clients.
type Claims struct {
	jwt.RegisteredClaims
	User UserClaim `json:"user"`
}

// UserClaim carries the authenticated user's id.
type UserClaim struct {
	ID string `json:"id"`
}

// Codec signs and verifies credentials with a process-wide secret.
// The secret is injected once at construction and never changes.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec. A zero ttl falls back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a credential for userID with the configured expiry.
func (c *Codec) Issue(userID string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		User: UserClaim{ID: userID},
	})

	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Every failure mode collapses to ErrInvalidToken; there are no
// partial-validity states.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.User.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.User.ID, nil
}
