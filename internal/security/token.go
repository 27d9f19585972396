package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures, distinguished so callers can surface
// a more specific message for expired credentials.
var (
	// ErrTokenInvalid marks malformed tokens and signature mismatches.
	ErrTokenInvalid = errors.New("security: invalid token")
	// ErrTokenExpired marks structurally valid tokens past their expiry.
	ErrTokenExpired = errors.New("security: token expired")
)

// TokenClaims is the payload carried by session tokens.
type TokenClaims struct {
	SubjectID string `json:"id"` // Principal id the token was issued for.
	jwt.RegisteredClaims
}

// IssueToken signs a session token for the subject id with a fixed lifetime.
func IssueToken(secret string, expiry time.Duration, subjectID string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("security: empty signing secret")
	}
	now := time.Now().UTC()
	claims := TokenClaims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the embedded subject id.
func ParseToken(secret, token string) (string, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !parsed.Valid || claims.SubjectID == "" {
		return "", ErrTokenInvalid
	}
	return claims.SubjectID, nil
}
