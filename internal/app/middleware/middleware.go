package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/domain/auth"
	"github.com/nouhaa3/invisithreat/internal/app/models"
	"github.com/nouhaa3/invisithreat/internal/app/observability/metrics"
	"github.com/nouhaa3/invisithreat/internal/app/session"
	"github.com/nouhaa3/invisithreat/internal/pkg/config"
)

// Define typed context keys
type contextKey string

const UserContextKey contextKey = "user"

const RequestIDHeader = "X-Request-ID"

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Content Security Policy for HTMX and external resources
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' https://unpkg.com https://cdn.jsdelivr.net; " +
			"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
			"font-src 'self' https://fonts.gstatic.com; " +
			"img-src 'self' data: https:; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// RequestIDMiddleware tags every request with an ID for log correlation.
// An incoming X-Request-ID is trusted and passed through.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(string(RequestIDHeader), id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// Guard carries the dependencies of the session-aware route guards.
type Guard struct {
	auth   auth.AuthService
	cfg    config.AuthConfig
	logger *zap.Logger
}

func NewGuard(authService auth.AuthService, cfg config.AuthConfig, logger *zap.Logger) *Guard {
	return &Guard{auth: authService, cfg: cfg, logger: logger}
}

// RequireUser gates authenticated pages. Requests without a full session are
// redirected to the login page. Sessions whose access token is close to
// expiry are renewed in place before the handler runs; renewal rejected by
// the backend tears the session down.
func (g *Guard) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAuthenticated(c) {
			handleAuthRedirect(c, "/login")
			return
		}

		if auth.ExpiresWithin(session.AccessToken(c), g.cfg.RefreshWindow) {
			if !g.renewSession(c) {
				return
			}
		}

		c.Set(string(UserContextKey), session.CurrentUser(c))
		c.Next()
	}
}

// renewSession swaps the stored token pair for a fresh one. Returns false
// when the session was torn down and the request aborted.
func (g *Guard) renewSession(c *gin.Context) bool {
	l := g.logger.With(zap.String("method", "renewSession"))

	pair, err := g.auth.Refresh(c.Request.Context(), session.RefreshToken(c))
	if err != nil {
		if HandleSessionExpiry(c, err) {
			l.Info("refresh rejected, session torn down")
			return false
		}
		// Transient backend trouble. The current token may still be valid,
		// so let the request proceed and retry renewal next time.
		l.Warn("token renewal failed", zap.Error(err))
		return true
	}

	if err := session.UpdateTokens(c, pair); err != nil {
		l.Error("failed to persist renewed tokens", zap.Error(err))
		return true
	}
	metrics.Get().SessionRenewalsTotal.Add(c.Request.Context(), 1)

	// Refresh the stored user alongside the tokens, best effort.
	if user, err := g.auth.Me(c.Request.Context(), pair.AccessToken); err == nil {
		if err := session.UpdateUser(c, user); err != nil {
			l.Warn("failed to persist refreshed user", zap.Error(err))
		}
	}
	return true
}

// RedirectIfAuthenticated keeps signed-in users away from the login and
// signup pages.
func (g *Guard) RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.IsAuthenticated(c) {
			handleAuthRedirect(c, "/dashboard")
			return
		}
		c.Next()
	}
}

// TeardownSession clears the stored credentials and user. Every
// expired-credential path funnels through here so teardown stays uniform.
func TeardownSession(c *gin.Context) {
	if err := session.Logout(c); err != nil {
		zap.L().Warn("session teardown failed", zap.Error(err))
	}
	metrics.Get().SessionTeardownsTotal.Add(c.Request.Context(), 1)
}

// HandleSessionExpiry checks a backend error for rejected credentials.
// When it matches, the session is torn down and the request redirected to
// the login page; the caller should stop processing.
func HandleSessionExpiry(c *gin.Context, err error) bool {
	if !errors.Is(err, models.ErrSessionExpired) && !errors.Is(err, models.ErrUnauthenticated) {
		return false
	}
	TeardownSession(c)
	handleAuthRedirect(c, "/login")
	return true
}

// handleAuthRedirect handles redirects for both regular and HTMX requests
func handleAuthRedirect(c *gin.Context, redirectURL string) {
	if c.GetHeader("HX-Request") == "true" {
		// For HTMX requests, use HX-Redirect header to trigger client-side redirect
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusUnauthorized)
	} else {
		c.Redirect(http.StatusFound, redirectURL)
		c.Abort()
	}
}

// GetUserFromContext extracts user information from Gin context
func GetUserFromContext(c *gin.Context) *models.User {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil
	}

	return userModel
}
