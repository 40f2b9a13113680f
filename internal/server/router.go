package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appmiddleware "github.com/nouhaa3/invisithreat/internal/app/middleware"
	"github.com/nouhaa3/invisithreat/internal/pkg/config"
	"github.com/nouhaa3/invisithreat/internal/routes"
)

// devSessionSecret is only used when SESSION_SECRET is unset. Cookies signed
// with it are forgeable, hence the loud warning at startup.
const devSessionSecret = "insecure-dev-session-secret-change-me"

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create Gin router
	r := gin.New()

	// Setup middleware
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(appmiddleware.OTELGinMiddleware("invisithreat-webui"))
	r.Use(appmiddleware.ObservabilityMiddleware())
	r.Use(appmiddleware.RequestIDMiddleware())
	r.Use(appmiddleware.CORSMiddleware())
	r.Use(appmiddleware.SecurityMiddleware())
	r.Use(sessions.Sessions(cfg.Session.CookieName, sessionStore(cfg, logger)))

	// Setup routes
	routes.Setup(r, cfg, logger)

	return r
}

func sessionStore(cfg *config.Config, logger *zap.Logger) sessions.Store {
	secret := cfg.Session.Secret
	if secret == "" {
		logger.Warn("SESSION_SECRET not set, using insecure development secret")
		secret = devSessionSecret
	}

	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get(appmiddleware.RequestIDHeader); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		// OTEL trace/span IDs (from context)
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		// Never log request bodies here: the auth forms carry passwords.
		return fields
	}
}
