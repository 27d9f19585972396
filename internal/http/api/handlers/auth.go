package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/auth"
	"github.com/voxedgemedia/media-api/internal/config"
	"github.com/voxedgemedia/media-api/internal/mail"
	"github.com/voxedgemedia/media-api/internal/models"
	"github.com/voxedgemedia/media-api/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// otpValidity is the window within which an issued code verifies.
const otpValidity = 5 * time.Minute

// invalidCredentialsMessage is shared by the unknown-account and
// wrong-password branches so login failures do not reveal which
// accounts exist.
const invalidCredentialsMessage = "Invalid credentials"

// emailTakenMessage is returned by the signup-only OTP flows.
const emailTakenMessage = "This email already exists. Use another email to sign up."

// AuthHandler serves registration, login, OTP verification, and
// session endpoints.
type AuthHandler struct {
	db         *gorm.DB
	jwt        config.JWTConfig
	sender     mail.Sender
	mailCfg    config.MailConfig
	production bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig, sender mail.Sender, mailCfg config.MailConfig, production bool) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwtCfg, sender: sender, mailCfg: mailCfg, production: production}
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// setSessionCookie stores the token in an http-only, same-site-strict cookie.
// The cookie lifetime matches the token lifetime.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.TokenCookieName, token, int(h.jwt.Expiry.Seconds()), "/", "", h.production, true)
}

// clearSessionCookie expires the session cookie immediately.
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.TokenCookieName, "", -1, "/", "", h.production, true)
}

// userJSON shapes a user record for API responses. The password hash is
// never serialized.
func userJSON(user *models.User) gin.H {
	out := gin.H{
		"id":            user.ID,
		"displayName":   user.DisplayName,
		"photoURL":      user.PhotoURL,
		"provider":      user.Provider,
		"emailVerified": user.EmailVerified,
		"phoneVerified": user.PhoneVerified,
		"role":          user.Role,
	}
	if user.Email != nil {
		out["email"] = *user.Email
	}
	if user.PhoneNumber != nil {
		out["phoneNumber"] = *user.PhoneNumber
	}
	return out
}

// placeholderAvatarURL builds an initials avatar seeded from the display
// name or email.
func placeholderAvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/initials/svg?seed=" + url.QueryEscape(seed)
}

// displayNameOrDefault derives a display name from explicit input, the email
// local part, or a fixed fallback.
func displayNameOrDefault(displayName, email string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "User"
}

// registerRequest defines the request body for password registration.
type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Register creates a new account with a password and email or phone number.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if strings.TrimSpace(body.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is required"})
		return
	}
	email := normalizeEmail(body.Email)
	phone := strings.TrimSpace(body.PhoneNumber)
	if email == "" && phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or phone number is required"})
		return
	}

	ctx := c.Request.Context()
	if email != "" {
		var count int64
		if errCount := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; errCount != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists with this email"})
			return
		}
	}

	hash, errHash := security.HashPassword(body.Password)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}

	provider := models.ProviderEmail
	if email == "" {
		provider = models.ProviderPhone
	}
	user := models.User{
		Password:    hash,
		DisplayName: displayNameOrDefault(body.DisplayName, email),
		Provider:    provider,
		Role:        models.RoleUser,
		IsActive:    true,
	}
	if email != "" {
		user.Email = &email
	}
	if phone != "" {
		user.PhoneNumber = &phone
	}

	if errCreate := h.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
		// A concurrent registration for the same email loses the race at the
		// unique index and must surface as a duplicate, not a server error.
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists with this email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}

	token, errToken := security.IssueToken(h.jwt.Secret, h.jwt.Expiry, user.ID)
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    userJSON(&user),
	})
}

// loginRequest defines the request body for password login.
type loginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// Login authenticates a user or admin with a password.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if strings.TrimSpace(body.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is required"})
		return
	}
	email := normalizeEmail(body.Email)
	phone := strings.TrimSpace(body.PhoneNumber)
	if email == "" && phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or phone number is required"})
		return
	}

	ctx := c.Request.Context()
	query := h.db.WithContext(ctx)
	if email != "" {
		query = query.Where("email = ?", email)
	} else {
		query = query.Where("phone_number = ?", phone)
	}

	var user models.User
	errFind := query.First(&user).Error
	if errFind != nil {
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
			return
		}
		if email != "" {
			h.adminLogin(c, email, body.Password)
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentialsMessage})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Your account is blocked. Please contact support."})
		return
	}
	if !security.CheckPassword(body.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentialsMessage})
		return
	}

	now := time.Now().UTC()
	if errUpdate := h.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
		return
	}
	user.LastLogin = &now

	token, errToken := security.IssueToken(h.jwt.Secret, h.jwt.Expiry, user.ID)
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userJSON(&user),
	})
}

// adminLogin handles the admin-table fallback of the login flow. Failures
// use the same message as unknown user accounts.
func (h *AuthHandler) adminLogin(c *gin.Context, email, password string) {
	var admin models.Admin
	errFind := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&admin).Error
	if errFind != nil {
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentialsMessage})
		return
	}
	if !security.CheckPassword(password, admin.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentialsMessage})
		return
	}

	token, errToken := security.IssueToken(h.jwt.Secret, h.jwt.Expiry, admin.ID)
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during login"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Admin login successful",
		"token":   token,
		"user": gin.H{
			"id":          admin.ID,
			"email":       admin.Email,
			"role":        models.RoleAdmin,
			"displayName": admin.DisplayName,
		},
	})
}

// emailRequest defines request bodies carrying only an email address.
type emailRequest struct {
	Email string `json:"email"`
}

// CheckEmail reports whether an email address is available for registration.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var body emailRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	email := normalizeEmail(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error checking email availability"})
		return
	}

	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "available": false, "message": "This email is already registered"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "available": true, "message": "Email is available"})
}

// SendEmailOTP issues a signup verification code to an email address. The
// latest code always supersedes earlier ones for the same address.
func (h *AuthHandler) SendEmailOTP(c *gin.Context) {
	var body emailRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	email := normalizeEmail(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	ctx := c.Request.Context()
	var count int64
	if errCount := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": emailTakenMessage})
		return
	}

	code, errCode := security.GenerateOTPCode()
	if errCode != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		return
	}

	record := models.OTP{Email: email, Code: code, CreatedAt: time.Now().UTC()}
	errUpsert := h.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "created_at"}),
	}).Create(&record).Error
	if errUpsert != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		return
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #333;">Verification Code</h2>
	<p>Your OTP for Vox Edge Media is:</p>
	<h1 style="color: #4a90e2; letter-spacing: 5px;">%s</h1>
	<p>This code will expire in 5 minutes.</p>
	<p>If you didn't request this code, please ignore this email.</p>
</div>`, code)

	if errSend := h.sender.Send(ctx, email, "Verification Code - Vox Edge Media", html); errSend != nil {
		log.WithError(errSend).Warnf("otp email delivery failed for %s", email)
		if h.mailCfg.DevFallback {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Development Mode: Email failed to send (OTP included in response)",
				"devOTP":  code,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully to email", "email": email})
}

// verifyOTPRequest defines the request body for OTP verification.
type verifyOTPRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// VerifyEmailOTP consumes a pending verification code and completes signup.
// Codes are single-use: the record is deleted before the account is created.
func (h *AuthHandler) VerifyEmailOTP(c *gin.Context) {
	var body verifyOTPRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	email := normalizeEmail(body.Email)
	if email == "" || strings.TrimSpace(body.OTP) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and OTP are required"})
		return
	}

	ctx := c.Request.Context()
	var record models.OTP
	errFind := h.db.WithContext(ctx).First(&record, "email = ?", email).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired or not found. Please request a new one."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP verification failed"})
		return
	}

	if time.Since(record.CreatedAt) > otpValidity {
		h.db.WithContext(ctx).Delete(&models.OTP{}, "email = ?", email)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired or not found. Please request a new one."})
		return
	}
	if record.Code != strings.TrimSpace(body.OTP) {
		// Record is retained so the user can retry with the right code.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP"})
		return
	}

	if errDelete := h.db.WithContext(ctx).Delete(&models.OTP{}, "email = ?", email).Error; errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP verification failed"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP verification failed"})
		return
	}
	if count > 0 {
		// Verification is a signup flow only; it never doubles as login.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": emailTakenMessage})
		return
	}

	displayName := displayNameOrDefault(body.DisplayName, email)
	seed := strings.TrimSpace(body.DisplayName)
	if seed == "" {
		seed = email
	}
	user := models.User{
		Email:         &email,
		DisplayName:   displayName,
		PhotoURL:      placeholderAvatarURL(seed),
		Provider:      models.ProviderEmail,
		Role:          models.RoleUser,
		EmailVerified: true,
		IsActive:      true,
	}
	if phone := strings.TrimSpace(body.PhoneNumber); phone != "" {
		user.PhoneNumber = &phone
		user.PhoneVerified = true
	}
	if body.Password != "" {
		hash, errHash := security.HashPassword(body.Password)
		if errHash != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP verification failed"})
			return
		}
		user.Password = hash
	}

	if errCreate := h.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": emailTakenMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP verification failed"})
		return
	}

	token, errToken := security.IssueToken(h.jwt.Secret, h.jwt.Expiry, user.ID)
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "OTP verification failed"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account created successfully! Please login with your credentials.",
		"token":   token,
		"user":    userJSON(&user),
	})
}

// googleAuthRequest defines the request body for Google sign-in.
type googleAuthRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	GoogleID    string `json:"googleId"`
}

// GoogleAuth signs a user in through Google, creating the account on first
// login. No password is involved in this flow.
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var body googleAuthRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	email := normalizeEmail(body.Email)
	if email == "" || strings.TrimSpace(body.GoogleID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and Google ID are required"})
		return
	}

	ctx := c.Request.Context()
	var user models.User
	errFind := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(errFind, gorm.ErrRecordNotFound):
		user = models.User{
			Email:         &email,
			DisplayName:   displayNameOrDefault(body.DisplayName, email),
			PhotoURL:      strings.TrimSpace(body.PhotoURL),
			Provider:      models.ProviderGoogle,
			Role:          models.RoleUser,
			EmailVerified: true,
			IsActive:      true,
		}
		if errCreate := h.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
			if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": emailTakenMessage})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Google authentication failed"})
			return
		}
	case errFind != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Google authentication failed"})
		return
	default:
		now := time.Now().UTC()
		updates := map[string]any{
			"email_verified": true,
			"last_login":     now,
			"updated_at":     now,
		}
		if name := strings.TrimSpace(body.DisplayName); name != "" {
			updates["display_name"] = name
		}
		if photo := strings.TrimSpace(body.PhotoURL); photo != "" {
			updates["photo_url"] = photo
		}
		if errUpdate := h.db.WithContext(ctx).Model(&user).Updates(updates).Error; errUpdate != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Google authentication failed"})
			return
		}
		if errReload := h.db.WithContext(ctx).First(&user, "id = ?", user.ID).Error; errReload != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Google authentication failed"})
			return
		}
	}

	token, errToken := security.IssueToken(h.jwt.Secret, h.jwt.Expiry, user.ID)
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Google authentication failed"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Google authentication successful",
		"token":   token,
		"user":    userJSON(&user),
	})
}

// CurrentUser returns the authenticated principal.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided. Please login."})
		return
	}

	if principal.Kind == auth.KindAdmin {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user": gin.H{
				"id":          principal.Admin.ID,
				"email":       principal.Admin.Email,
				"displayName": principal.Admin.DisplayName,
				"role":        models.RoleAdmin,
				"createdAt":   principal.Admin.CreatedAt,
			},
		})
		return
	}

	user := principal.User
	out := userJSON(user)
	out["createdAt"] = user.CreatedAt
	out["lastLogin"] = user.LastLogin
	c.JSON(http.StatusOK, gin.H{"success": true, "user": out})
}

// updateProfileRequest defines the request body for profile updates.
type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// UpdateProfile updates the authenticated user's display attributes.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok || principal.Kind != auth.KindUser {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot update this account type"})
		return
	}

	var body updateProfileRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if name := strings.TrimSpace(body.DisplayName); name != "" {
		updates["display_name"] = name
	}
	if photo := strings.TrimSpace(body.PhotoURL); photo != "" {
		updates["photo_url"] = photo
	}

	ctx := c.Request.Context()
	if errUpdate := h.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", principal.User.ID).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	var user models.User
	if errReload := h.db.WithContext(ctx).First(&user, "id = ?", principal.User.ID).Error; errReload != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    userJSON(&user),
	})
}

// changePasswordRequest defines the request body for password changes.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password and stores a new one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok || principal.Kind != auth.KindUser {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot change password for this account type"})
		return
	}

	var body changePasswordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password and new password are required"})
		return
	}
	if len(body.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "New password must be at least 6 characters long"})
		return
	}

	// The resolver strips the hash; load it only now that a comparison
	// is imminent.
	ctx := c.Request.Context()
	var user models.User
	if errFind := h.db.WithContext(ctx).First(&user, "id = ?", principal.User.ID).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to change password"})
		return
	}
	if user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot change password for this account type"})
		return
	}
	if !security.CheckPassword(body.CurrentPassword, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Current password is incorrect"})
		return
	}

	hash, errHash := security.HashPassword(body.NewPassword)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to change password"})
		return
	}
	if errUpdate := h.db.WithContext(ctx).Model(&user).Updates(map[string]any{"password": hash, "updated_at": time.Now().UTC()}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// Logout clears the session cookie. The stateless token itself simply
// expires; clients drop their stored copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}
