// Package token issues and verifies the HS256 bearer tokens used by both the
// HTTP middleware and the websocket handshake.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

// Claims is the principal encoded in a verified token.
type Claims struct {
	UserID string
	Role   string
}

// Issue signs a token carrying the user identifier and role, valid for ttl.
func Issue(secret, userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify parses and validates a token. Any failure (malformed, forged,
// expired, wrong algorithm) yields domain.ErrInvalidToken; validity is
// determined solely by signature and expiry.
func Verify(secret, tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &Claims{UserID: userID, Role: role}, nil
}
