package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/voxedgemedia/media-api/internal/models"
	"github.com/voxedgemedia/media-api/internal/security"
	"gorm.io/gorm"
)

// TokenCookieName is the session cookie carrying the token for browser clients.
const TokenCookieName = "token"

// Resolution failures, each mapped to its own user-facing 401 message.
var (
	// ErrNoToken means neither the bearer header nor the cookie carried a token.
	ErrNoToken = errors.New("auth: no token provided")
	// ErrInvalidToken means the token was malformed or its signature did not verify.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrTokenExpired means the token was valid but past its expiry.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrPrincipalNotFound means no user or admin record matches the subject id.
	ErrPrincipalNotFound = errors.New("auth: user not found")
	// ErrAccountBlocked means the resolved user account was deactivated.
	ErrAccountBlocked = errors.New("auth: account blocked")
)

// ExtractToken pulls the candidate session token from the request. The bearer
// header takes precedence; the cookie is a fallback for browser clients.
func ExtractToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// Resolve verifies the raw token and loads the principal it names. The user
// table is consulted first, then the admin table. Deactivated users are
// rejected on every request, not just at login; admin records carry no
// active flag and are always treated as active. The password hash is
// cleared from the returned record.
func Resolve(ctx context.Context, conn *gorm.DB, secret, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrNoToken
	}

	subjectID, errParse := security.ParseToken(secret, token)
	if errParse != nil {
		if errors.Is(errParse, security.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, ErrInvalidToken
	}

	var user models.User
	errUser := conn.WithContext(ctx).First(&user, "id = ?", subjectID).Error
	if errUser == nil {
		if !user.IsActive {
			return Principal{}, ErrAccountBlocked
		}
		user.Password = ""
		return Principal{Kind: KindUser, User: &user}, nil
	}
	if !errors.Is(errUser, gorm.ErrRecordNotFound) {
		return Principal{}, errUser
	}

	var admin models.Admin
	errAdmin := conn.WithContext(ctx).First(&admin, "id = ?", subjectID).Error
	if errAdmin == nil {
		admin.Password = ""
		return Principal{Kind: KindAdmin, Admin: &admin}, nil
	}
	if !errors.Is(errAdmin, gorm.ErrRecordNotFound) {
		return Principal{}, errAdmin
	}

	return Principal{}, ErrPrincipalNotFound
}

// ResolveRequest extracts the token from the request and resolves it.
func ResolveRequest(r *http.Request, conn *gorm.DB, secret string) (Principal, error) {
	return Resolve(r.Context(), conn, secret, ExtractToken(r))
}
