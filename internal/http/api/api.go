// Package api wires HTTP routes to their handlers and carries the
// authentication middleware applied to protected endpoints.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/auth"
	"github.com/voxedgemedia/media-api/internal/config"
	"github.com/voxedgemedia/media-api/internal/http/api/handlers"
	"github.com/voxedgemedia/media-api/internal/mail"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps bundles the process-wide collaborators handed to route registration.
type Deps struct {
	JWT        config.JWTConfig
	Mail       config.MailConfig
	Sender     mail.Sender
	Production bool
}

// RegisterRoutes registers all API routes, middleware, and handlers.
func RegisterRoutes(r *gin.Engine, conn *gorm.DB, deps Deps) {
	if r == nil || conn == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(conn)
	r.GET("/health", healthHandler.Health)

	authed := authMiddleware(conn, deps.JWT)
	adminOnly := adminMiddleware()

	authHandler := handlers.NewAuthHandler(conn, deps.JWT, deps.Sender, deps.Mail, deps.Production)
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/check-email", authHandler.CheckEmail)
	authGroup.POST("/email/send-otp", authHandler.SendEmailOTP)
	authGroup.POST("/email/verify-otp", authHandler.VerifyEmailOTP)
	authGroup.POST("/google", authHandler.GoogleAuth)
	authGroup.GET("/me", authed, authHandler.CurrentUser)
	authGroup.PUT("/me", authed, authHandler.UpdateProfile)
	authGroup.PUT("/change-password", authed, authHandler.ChangePassword)
	authGroup.POST("/logout", authed, authHandler.Logout)

	bookingHandler := handlers.NewBookingHandler(conn)
	bookingGroup := r.Group("/api/bookings", authed)
	bookingGroup.POST("", bookingHandler.Create)
	bookingGroup.GET("", bookingHandler.ListMine)
	bookingGroup.GET("/:id", bookingHandler.Get)
	bookingGroup.PUT("/:id", bookingHandler.Update)
	bookingGroup.DELETE("/:id", bookingHandler.Delete)

	contactHandler := handlers.NewContactHandler(conn)
	r.POST("/api/contact", contactHandler.Submit)
	r.GET("/api/contact", authed, adminOnly, contactHandler.List)

	serviceHandler := handlers.NewServiceHandler(conn)
	r.GET("/api/services", serviceHandler.List)
	r.GET("/api/services/admin/all", authed, adminOnly, serviceHandler.ListAll)
	r.GET("/api/services/:slug", serviceHandler.Get)
	r.POST("/api/services", authed, adminOnly, serviceHandler.Create)
	r.PUT("/api/services/:id", authed, adminOnly, serviceHandler.Update)
	r.DELETE("/api/services/:id", authed, adminOnly, serviceHandler.Delete)

	planHandler := handlers.NewPlanHandler(conn)
	r.GET("/api/plans", planHandler.List)
	r.GET("/api/plans/admin/all", authed, adminOnly, planHandler.ListAll)
	r.POST("/api/plans", authed, adminOnly, planHandler.Create)
	r.PUT("/api/plans/:id", authed, adminOnly, planHandler.Update)
	r.DELETE("/api/plans/:id", authed, adminOnly, planHandler.Delete)

	contentHandler := handlers.NewContentHandler(conn)
	r.GET("/api/content", authed, adminOnly, contentHandler.ListAll)
	r.POST("/api/content", authed, adminOnly, contentHandler.Upsert)
	r.GET("/api/content/:key", contentHandler.Get)
	r.DELETE("/api/content/:key", authed, adminOnly, contentHandler.Delete)

	adminHandler := handlers.NewAdminHandler(conn)
	adminGroup := r.Group("/api/admin", authed, adminOnly)
	adminGroup.GET("/dashboard", adminHandler.DashboardStats)
	adminGroup.GET("/bookings", adminHandler.ListBookings)
	adminGroup.PUT("/bookings/:id/status", adminHandler.UpdateBookingStatus)
	adminGroup.GET("/messages", adminHandler.ListMessages)
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.PUT("/users/:id", adminHandler.UpdateUser)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found: " + c.Request.URL.Path})
	})
}

// authMiddleware resolves the request's session token to a principal and
// attaches it to the context. Resolution happens on every protected request;
// verified principals are never cached across requests.
func authMiddleware(conn *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, errResolve := auth.ResolveRequest(c.Request, conn, jwtCfg.Secret)
		if errResolve != nil {
			status, message := classifyAuthError(errResolve)
			c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
			return
		}
		handlers.SetPrincipal(c, principal)
		c.Next()
	}
}

// classifyAuthError maps resolver failures to a status and user-facing message.
func classifyAuthError(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrNoToken):
		return http.StatusUnauthorized, "No token provided. Please login."
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token. Please login again."
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired. Please login again."
	case errors.Is(err, auth.ErrPrincipalNotFound):
		return http.StatusUnauthorized, "User not found. Please login again."
	case errors.Is(err, auth.ErrAccountBlocked):
		return http.StatusUnauthorized, "Account is inactive. Please contact support."
	default:
		log.WithError(err).Error("identity resolution failed")
		return http.StatusInternalServerError, "Server error"
	}
}

// adminMiddleware enforces the admin role after identity resolution. A missing
// principal is an authentication failure handled upstream, never a 403.
func adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := handlers.CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided. Please login."})
			return
		}
		if !principal.IsAdmin() {
			log.Warnf("admin access denied for %s (role %s)", principal.Email(), principal.Role())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin privileges required."})
			return
		}
		c.Next()
	}
}
