package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string sent back to the client; Exp
// mirrors the exp claim.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// Claims is the payload of a front-desk access token.  The subject is the
// username and the ID claim (jti) carries the server-side session id, so
// that signing out revokes the token even before it expires.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for tokens that fail signature, algorithm or
// expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a session.
func NewAccessToken(secret, username, role, sessionID string, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw and returns its claims.  Only HMAC signed
// tokens are accepted.
func ParseAccessToken(secret, raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// HashToken returns the SHA-256 hex digest of a session id.  Session stores
// key entries by this digest so a leaked store does not leak live ids.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
