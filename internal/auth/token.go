package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued admin session stays valid.
const TokenTTL = 8 * time.Hour

// CookieName carries the session token on the client.
const CookieName = "oc_admin_token"

// Claims are the payload of an admin session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed, time-bounded admin tokens. Tokens
// are stateless; there is no server-side session to revoke.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a fresh admin token expiring ttl from now.
func (c *Codec) Issue() (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify reports whether token carries a valid HS256 signature and has
// not expired. Every failure mode (malformed token, wrong algorithm,
// bad signature, expiry, missing secret) collapses to false so callers
// cannot branch on why verification failed.
func (c *Codec) Verify(token string) bool {
	if len(c.secret) == 0 {
		return false
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{},
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	return err == nil && parsed.Valid
}
