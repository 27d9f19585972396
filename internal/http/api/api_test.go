package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/config"
	"github.com/voxedgemedia/media-api/internal/db"
	"github.com/voxedgemedia/media-api/internal/models"
	"github.com/voxedgemedia/media-api/internal/security"
	"gorm.io/gorm"
)

const testSecret = "api-test-secret"

// captureSender records outbound mail instead of delivering it.
type captureSender struct {
	to      string
	subject string
	html    string
	err     error
}

func (s *captureSender) Send(_ context.Context, to, subject, html string) error {
	if s.err != nil {
		return s.err
	}
	s.to = to
	s.subject = subject
	s.html = html
	return nil
}

type testServer struct {
	engine *gin.Engine
	conn   *gorm.DB
	sender *captureSender
}

func newTestServer(t *testing.T, mailCfg config.MailConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open("file:" + filepath.Join(t.TempDir(), "api-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	sender := &captureSender{}
	engine := gin.New()
	RegisterRoutes(engine, conn, Deps{
		JWT:    config.JWTConfig{Secret: testSecret, Expiry: time.Hour},
		Mail:   mailCfg,
		Sender: sender,
	})
	return &testServer{engine: engine, conn: conn, sender: sender}
}

// do issues a JSON request against the test server and decodes the reply.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		data, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			t.Fatalf("marshal body: %v", errMarshal)
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if errDecode := json.Unmarshal(rec.Body.Bytes(), &decoded); errDecode != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), errDecode)
		}
	}
	return rec.Code, decoded
}

func (s *testServer) createUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	user := &models.User{
		Email:       &email,
		Password:    hash,
		DisplayName: "Test User",
		Provider:    models.ProviderEmail,
		Role:        models.RoleUser,
		IsActive:    true,
	}
	if errCreate := s.conn.Create(user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	return user
}

func (s *testServer) createAdmin(t *testing.T, email, password string) *models.Admin {
	t.Helper()
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	admin := &models.Admin{Email: email, Password: hash, DisplayName: "Admin"}
	if errCreate := s.conn.Create(admin).Error; errCreate != nil {
		t.Fatalf("create admin: %v", errCreate)
	}
	return admin
}

func (s *testServer) tokenFor(t *testing.T, subjectID string) string {
	t.Helper()
	token, err := security.IssueToken(testSecret, time.Hour, subjectID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func message(body map[string]any) string {
	msg, _ := body["message"].(string)
	return msg
}

func TestRegisterLoginAndMe(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})

	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       "new@example.com",
		"password":    "secret123",
		"displayName": "New User",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, body = %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("register returned no token")
	}
	user, _ := body["user"].(map[string]any)
	if user["email"] != "new@example.com" {
		t.Fatalf("unexpected user payload: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("register response leaked password field")
	}

	status, body = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me status = %d, body = %v", status, body)
	}
	me, _ := body["user"].(map[string]any)
	if me["email"] != "new@example.com" || me["role"] != models.RoleUser {
		t.Fatalf("unexpected me payload: %v", me)
	}

	status, body = srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "New@Example.com",
		"password": "secret123",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", status, body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	srv.createUser(t, "taken@example.com", "secret123")

	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "taken@example.com",
		"password": "secret123",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if message(body) != "User already exists with this email" {
		t.Fatalf("unexpected message %q", message(body))
	}
}

func TestLoginFailuresDoNotRevealAccounts(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	srv.createUser(t, "known@example.com", "secret123")

	status, wrongPass := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "known@example.com",
		"password": "not-the-password",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", status)
	}

	status, unknown := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("unknown account status = %d", status)
	}

	if message(wrongPass) != message(unknown) {
		t.Fatalf("failure messages differ: %q vs %q", message(wrongPass), message(unknown))
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "blocked@example.com", "secret123")
	if err := srv.conn.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("block user: %v", err)
	}

	status, body := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "blocked@example.com",
		"password": "secret123",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if message(body) != "Your account is blocked. Please contact support." {
		t.Fatalf("unexpected message %q", message(body))
	}
}

func TestBlockedAccountRejectedMidSession(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "revoked@example.com", "secret123")
	token := srv.tokenFor(t, user.ID)

	status, _ := srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("pre-block status = %d", status)
	}

	if err := srv.conn.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("block user: %v", err)
	}
	status, body := srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("post-block status = %d, body = %v", status, body)
	}
	if message(body) != "Account is inactive. Please contact support." {
		t.Fatalf("unexpected message %q", message(body))
	}
}

func TestAdminLoginFallback(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	srv.createAdmin(t, "admin@example.com", "adminpass")

	status, body := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "adminpass",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["role"] != models.RoleAdmin {
		t.Fatalf("expected admin role, got %v", user["role"])
	}
}

func TestAdminGate(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "user@example.com", "secret123")
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	status, body := srv.do(t, http.MethodGet, "/api/admin/dashboard", srv.tokenFor(t, user.ID), nil)
	if status != http.StatusForbidden {
		t.Fatalf("user status = %d, body = %v", status, body)
	}
	if message(body) != "Access denied. Admin privileges required." {
		t.Fatalf("unexpected message %q", message(body))
	}

	status, body = srv.do(t, http.MethodGet, "/api/admin/dashboard", srv.tokenFor(t, admin.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("admin status = %d, body = %v", status, body)
	}
}

func TestPromotedUserPassesAdminGate(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "promoted@example.com", "secret123")
	if err := srv.conn.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote user: %v", err)
	}

	status, body := srv.do(t, http.MethodGet, "/api/admin/dashboard", srv.tokenFor(t, user.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}
}

func TestMissingAndInvalidTokens(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})

	status, body := srv.do(t, http.MethodGet, "/api/bookings", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("no token status = %d", status)
	}
	if message(body) != "No token provided. Please login." {
		t.Fatalf("unexpected message %q", message(body))
	}

	status, body = srv.do(t, http.MethodGet, "/api/bookings", "not-a-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d", status)
	}
	if message(body) != "Invalid token. Please login again." {
		t.Fatalf("unexpected message %q", message(body))
	}

	expired, err := security.IssueToken(testSecret, -time.Minute, "some-id")
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	status, body = srv.do(t, http.MethodGet, "/api/bookings", expired, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d", status)
	}
	if message(body) != "Token expired. Please login again." {
		t.Fatalf("unexpected message %q", message(body))
	}
}

func TestOTPSignupFlow(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})

	status, body := srv.do(t, http.MethodPost, "/api/auth/email/send-otp", "", gin.H{
		"email": "fresh@example.com",
	})
	if status != http.StatusOK {
		t.Fatalf("send-otp status = %d, body = %v", status, body)
	}
	if srv.sender.to != "fresh@example.com" {
		t.Fatalf("mail sent to %q", srv.sender.to)
	}

	var record models.OTP
	if err := srv.conn.First(&record, "email = ?", "fresh@example.com").Error; err != nil {
		t.Fatalf("load otp: %v", err)
	}
	if len(record.Code) != 6 {
		t.Fatalf("code length = %d", len(record.Code))
	}

	status, body = srv.do(t, http.MethodPost, "/api/auth/email/verify-otp", "", gin.H{
		"email":       "fresh@example.com",
		"otp":         record.Code,
		"displayName": "Fresh User",
		"password":    "secret123",
	})
	if status != http.StatusOK {
		t.Fatalf("verify-otp status = %d, body = %v", status, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["emailVerified"] != true {
		t.Fatalf("expected verified email, got %v", user)
	}

	// Codes are single-use.
	status, _ = srv.do(t, http.MethodPost, "/api/auth/email/verify-otp", "", gin.H{
		"email": "fresh@example.com",
		"otp":   record.Code,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("replayed code status = %d", status)
	}

	status, body = srv.do(t, http.MethodPost, "/api/auth/email/send-otp", "", gin.H{
		"email": "fresh@example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("send-otp for existing account status = %d", status)
	}
	if message(body) != "This email already exists. Use another email to sign up." {
		t.Fatalf("unexpected message %q", message(body))
	}
}

func TestOTPExpiry(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	stale := models.OTP{Email: "slow@example.com", Code: "123456", CreatedAt: time.Now().UTC().Add(-10 * time.Minute)}
	if err := srv.conn.Create(&stale).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	status, body := srv.do(t, http.MethodPost, "/api/auth/email/verify-otp", "", gin.H{
		"email": "slow@example.com",
		"otp":   "123456",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if message(body) != "OTP expired or not found. Please request a new one." {
		t.Fatalf("unexpected message %q", message(body))
	}

	var count int64
	srv.conn.Model(&models.OTP{}).Where("email = ?", "slow@example.com").Count(&count)
	if count != 0 {
		t.Fatal("expired code was not purged")
	}
}

func TestOTPWrongCodeKeepsRecord(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	record := models.OTP{Email: "retry@example.com", Code: "654321", CreatedAt: time.Now().UTC()}
	if err := srv.conn.Create(&record).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	status, body := srv.do(t, http.MethodPost, "/api/auth/email/verify-otp", "", gin.H{
		"email": "retry@example.com",
		"otp":   "000000",
	})
	if status != http.StatusBadRequest || message(body) != "Invalid OTP" {
		t.Fatalf("status = %d, message = %q", status, message(body))
	}

	status, _ = srv.do(t, http.MethodPost, "/api/auth/email/verify-otp", "", gin.H{
		"email": "retry@example.com",
		"otp":   "654321",
	})
	if status != http.StatusOK {
		t.Fatalf("retry with right code status = %d", status)
	}
}

func TestOTPDeliveryFailure(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{DevFallback: true})
	srv.sender.err = context.DeadlineExceeded

	status, body := srv.do(t, http.MethodPost, "/api/auth/email/send-otp", "", gin.H{
		"email": "offline@example.com",
	})
	if status != http.StatusOK {
		t.Fatalf("dev fallback status = %d, body = %v", status, body)
	}
	if code, _ := body["devOTP"].(string); len(code) != 6 {
		t.Fatalf("expected devOTP in fallback response, got %v", body)
	}

	strict := newTestServer(t, config.MailConfig{})
	strict.sender.err = context.DeadlineExceeded
	status, body = strict.do(t, http.MethodPost, "/api/auth/email/send-otp", "", gin.H{
		"email": "offline@example.com",
	})
	if status != http.StatusInternalServerError {
		t.Fatalf("strict mode status = %d, body = %v", status, body)
	}
	if _, leaked := body["devOTP"]; leaked {
		t.Fatal("strict mode leaked the code")
	}
}

func TestBookingOwnership(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	owner := srv.createUser(t, "owner@example.com", "secret123")
	other := srv.createUser(t, "other@example.com", "secret123")
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	status, body := srv.do(t, http.MethodPost, "/api/bookings", srv.tokenFor(t, owner.ID), gin.H{
		"service":    "podcast-video",
		"date":       time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"startTime":  "14:00",
		"duration":   2,
		"totalPrice": 4000,
	})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, body = %v", status, body)
	}
	booking, _ := body["booking"].(map[string]any)
	id := booking["id"]

	path := "/api/bookings/" + jsonNumberString(id)
	status, _ = srv.do(t, http.MethodGet, path, srv.tokenFor(t, owner.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("owner get status = %d", status)
	}

	status, body = srv.do(t, http.MethodGet, path, srv.tokenFor(t, other.ID), nil)
	if status != http.StatusForbidden {
		t.Fatalf("other get status = %d, body = %v", status, body)
	}

	status, _ = srv.do(t, http.MethodGet, path, srv.tokenFor(t, admin.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("admin get status = %d", status)
	}
}

func TestBookingRejectsUnknownService(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "user@example.com", "secret123")

	status, body := srv.do(t, http.MethodPost, "/api/bookings", srv.tokenFor(t, user.ID), gin.H{
		"service":   "time-travel",
		"date":      time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"startTime": "10:00",
		"duration":  1,
	})
	if status != http.StatusBadRequest || message(body) != "Unknown service" {
		t.Fatalf("status = %d, message = %q", status, message(body))
	}
}

func TestAdminBookingStatusUpdate(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "user@example.com", "secret123")
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	booking := models.Booking{
		UserID:        user.ID,
		Service:       "editing",
		Date:          time.Now().Add(24 * time.Hour).UTC(),
		StartTime:     "09:00",
		Duration:      3,
		Status:        models.BookingStatusPending,
		TotalPrice:    1500,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := srv.conn.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	path := "/api/admin/bookings/" + jsonNumberString(float64(booking.ID)) + "/status"
	status, body := srv.do(t, http.MethodPut, path, srv.tokenFor(t, admin.ID), gin.H{
		"status":        models.BookingStatusConfirmed,
		"paymentStatus": models.PaymentStatusPaid,
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}

	var updated models.Booking
	if err := srv.conn.First(&updated, booking.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed || updated.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("booking not updated: %+v", updated)
	}

	status, body = srv.do(t, http.MethodPut, path, srv.tokenFor(t, admin.ID), gin.H{
		"status": "teleported",
	})
	if status != http.StatusBadRequest || message(body) != "Invalid status" {
		t.Fatalf("invalid status rejected with %d %q", status, message(body))
	}
}

func TestContactFlow(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	status, body := srv.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Studio hire",
		"message": "Do you have availability next week?",
	})
	if status != http.StatusCreated {
		t.Fatalf("submit status = %d, body = %v", status, body)
	}

	status, _ = srv.do(t, http.MethodGet, "/api/contact", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous list status = %d", status)
	}

	status, body = srv.do(t, http.MethodGet, "/api/contact", srv.tokenFor(t, admin.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("admin list status = %d, body = %v", status, body)
	}
}

func TestServicesPublicListHidesInactive(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	active := models.Service{Title: "Podcast Video", Slug: "podcast-video", Description: "Video podcast recording", IsActive: true}
	hidden := models.Service{Title: "Retired", Slug: "retired", Description: "No longer offered", IsActive: false}
	if err := srv.conn.Create(&active).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if err := srv.conn.Create(&hidden).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	status, body := srv.do(t, http.MethodGet, "/api/services", "", nil)
	if status != http.StatusOK {
		t.Fatalf("public list status = %d", status)
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Fatalf("public count = %v", body["count"])
	}

	status, body = srv.do(t, http.MethodGet, "/api/services/admin/all", srv.tokenFor(t, admin.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("admin list status = %d", status)
	}
	if count, _ := body["count"].(float64); count != 2 {
		t.Fatalf("admin count = %v", body["count"])
	}

	status, _ = srv.do(t, http.MethodGet, "/api/services/retired", "", nil)
	if status != http.StatusOK {
		t.Fatalf("slug lookup status = %d", status)
	}
	status, _ = srv.do(t, http.MethodGet, "/api/services/missing", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("missing slug status = %d", status)
	}
}

func TestServiceCreateDerivesSlug(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	status, body := srv.do(t, http.MethodPost, "/api/services", srv.tokenFor(t, admin.ID), gin.H{
		"title":       "Shorts & Reels Production",
		"description": "Short-form vertical video",
		"features":    []string{"Scripting", "Edit pass"},
	})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["slug"] != "shorts-reels-production" {
		t.Fatalf("derived slug = %v", data["slug"])
	}
}

func TestContentUpsertByKey(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")
	token := srv.tokenFor(t, admin.ID)

	status, body := srv.do(t, http.MethodPost, "/api/content", token, gin.H{
		"key":   "About",
		"title": "About Us",
		"body":  "We are a media studio.",
	})
	if status != http.StatusOK {
		t.Fatalf("first upsert status = %d, body = %v", status, body)
	}

	status, body = srv.do(t, http.MethodPost, "/api/content", token, gin.H{
		"key":   "about",
		"title": "About The Studio",
	})
	if status != http.StatusOK {
		t.Fatalf("second upsert status = %d, body = %v", status, body)
	}

	status, body = srv.do(t, http.MethodGet, "/api/content/about", "", nil)
	if status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	data, _ := body["data"].(map[string]any)
	if data["title"] != "About The Studio" {
		t.Fatalf("title = %v", data["title"])
	}

	var count int64
	srv.conn.Model(&models.Content{}).Count(&count)
	if count != 1 {
		t.Fatalf("content rows = %d, want 1", count)
	}
}

func TestDashboardStats(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "user@example.com", "secret123")
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")

	bookings := []models.Booking{
		{UserID: user.ID, Service: "editing", Date: time.Now().UTC(), StartTime: "10:00", Duration: 1, Status: models.BookingStatusCompleted, TotalPrice: 1000, PaymentStatus: models.PaymentStatusPaid},
		{UserID: user.ID, Service: "editing", Date: time.Now().UTC(), StartTime: "12:00", Duration: 1, Status: models.BookingStatusPending, TotalPrice: 500, PaymentStatus: models.PaymentStatusPending},
	}
	for i := range bookings {
		if err := srv.conn.Create(&bookings[i]).Error; err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	status, body := srv.do(t, http.MethodGet, "/api/admin/dashboard", srv.tokenFor(t, admin.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["totalBookings"].(float64) != 2 {
		t.Fatalf("totalBookings = %v", data["totalBookings"])
	}
	if data["pendingBookings"].(float64) != 1 {
		t.Fatalf("pendingBookings = %v", data["pendingBookings"])
	}
	if data["totalRevenue"].(float64) != 1000 {
		t.Fatalf("totalRevenue = %v", data["totalRevenue"])
	}
}

func TestAdminUserManagement(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "member@example.com", "secret123")
	admin := srv.createAdmin(t, "admin@example.com", "adminpass")
	token := srv.tokenFor(t, admin.ID)

	status, body := srv.do(t, http.MethodGet, "/api/admin/users?search=member", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d, body = %v", status, body)
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Fatalf("search count = %v", body["count"])
	}

	status, body = srv.do(t, http.MethodPut, "/api/admin/users/"+user.ID, token, gin.H{
		"isActive": false,
	})
	if status != http.StatusOK {
		t.Fatalf("update status = %d, body = %v", status, body)
	}
	var reloaded models.User
	if err := srv.conn.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.IsActive {
		t.Fatal("user still active after deactivation")
	}

	status, body = srv.do(t, http.MethodPut, "/api/admin/users/"+user.ID, token, gin.H{
		"role": "superuser",
	})
	if status != http.StatusBadRequest || message(body) != "Invalid role" {
		t.Fatalf("invalid role rejected with %d %q", status, message(body))
	}
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	user := srv.createUser(t, "user@example.com", "oldsecret")
	token := srv.tokenFor(t, user.ID)

	status, body := srv.do(t, http.MethodPut, "/api/auth/change-password", token, gin.H{
		"currentPassword": "wrong",
		"newPassword":     "newsecret",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong current password status = %d, body = %v", status, body)
	}

	status, body = srv.do(t, http.MethodPut, "/api/auth/change-password", token, gin.H{
		"currentPassword": "oldsecret",
		"newPassword":     "newsecret",
	})
	if status != http.StatusOK {
		t.Fatalf("change status = %d, body = %v", status, body)
	}

	status, _ = srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "newsecret",
	})
	if status != http.StatusOK {
		t.Fatalf("login with new password status = %d", status)
	}
}

func TestGoogleAuthCreatesAndReuses(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})

	status, body := srv.do(t, http.MethodPost, "/api/auth/google", "", gin.H{
		"email":       "g@example.com",
		"googleId":    "google-oauth-id",
		"displayName": "G User",
		"photoURL":    "https://example.com/g.png",
	})
	if status != http.StatusOK {
		t.Fatalf("first google auth status = %d, body = %v", status, body)
	}

	status, _ = srv.do(t, http.MethodPost, "/api/auth/google", "", gin.H{
		"email":    "g@example.com",
		"googleId": "google-oauth-id",
	})
	if status != http.StatusOK {
		t.Fatalf("second google auth status = %d", status)
	}

	var count int64
	srv.conn.Model(&models.User{}).Where("email = ?", "g@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("google users = %d, want 1", count)
	}

	var user models.User
	if err := srv.conn.First(&user, "email = ?", "g@example.com").Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	token := srv.tokenFor(t, user.ID)
	status, body = srv.do(t, http.MethodPut, "/api/auth/change-password", token, gin.H{
		"currentPassword": "anything",
		"newPassword":     "newsecret",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("oauth password change status = %d, body = %v", status, body)
	}
	if message(body) != "Cannot change password for this account type" {
		t.Fatalf("unexpected message %q", message(body))
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	status, body := srv.do(t, http.MethodGet, "/api/does-not-exist", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d", status)
	}
	if ok, _ := body["success"].(bool); ok {
		t.Fatal("expected success=false envelope")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, config.MailConfig{})
	status, body := srv.do(t, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if body["database"] != "up" {
		t.Fatalf("database = %v", body["database"])
	}
}

// jsonNumberString formats a decoded JSON number as a path segment.
func jsonNumberString(v any) string {
	f, _ := v.(float64)
	return strconv.FormatInt(int64(f), 10)
}
