package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/domain/auth"
	"github.com/nouhaa3/invisithreat/internal/app/domain/dashboard"
	"github.com/nouhaa3/invisithreat/internal/app/domain/pages"
	"github.com/nouhaa3/invisithreat/internal/app/middleware"
	"github.com/nouhaa3/invisithreat/internal/app/models"
	"github.com/nouhaa3/invisithreat/internal/app/renderer"
	"github.com/nouhaa3/invisithreat/internal/app/session"
	"github.com/nouhaa3/invisithreat/internal/pkg/api"
	"github.com/nouhaa3/invisithreat/internal/pkg/config"
)

type AppHandlers struct {
	Auth      *auth.AuthHandlers
	Dashboard *dashboard.DashboardHandlers
}

func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	// Setup custom templ renderer
	ginHTMLRenderer := r.HTMLRender
	r.HTMLRender = &renderer.HTMLTemplRenderer{FallbackHTMLRenderer: ginHTMLRenderer}

	handlers, guard := setupDependencies(cfg, log)
	setupRouter(r, handlers, guard, log)
}

func setupDependencies(cfg *config.Config, log *zap.Logger) (*AppHandlers, *middleware.Guard) {
	apiClient := api.NewClient(cfg.API, log)
	authService := auth.NewAuthService(apiClient, log)
	throttle := auth.NewLoginThrottle(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow)
	guard := middleware.NewGuard(authService, cfg.Auth, log)

	handlers := &AppHandlers{
		Auth:      auth.NewAuthHandlers(authService, throttle, log),
		Dashboard: dashboard.NewDashboardHandlers(log),
	}
	return handlers, guard
}

func setupRouter(r *gin.Engine, h *AppHandlers, guard *middleware.Guard, log *zap.Logger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Landing: pick a side based on the session
	r.GET("/", func(c *gin.Context) {
		if session.IsAuthenticated(c) {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})

	// Public pages, pushed away when already signed in
	public := r.Group("/")
	public.Use(guard.RedirectIfAuthenticated())
	{
		public.GET("/login", func(c *gin.Context) {
			c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
				Title:     "Sign In",
				Content:   auth.SignIn(),
				Nav:       models.OfflineNav,
				ActiveNav: "Sign In",
				User:      nil,
			}))
		})

		public.GET("/signup", func(c *gin.Context) {
			c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
				Title:     "Create Account",
				Content:   auth.SignUp(),
				Nav:       models.OfflineNav,
				ActiveNav: "Create Account",
				User:      nil,
			}))
		})
	}

	// Auth actions
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.LoginHandler)
		authGroup.POST("/signup", h.Auth.RegisterHandler)
		authGroup.POST("/logout", h.Auth.LogoutHandler)
		authGroup.POST("/password-strength", h.Auth.PasswordStrengthHandler)
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(guard.RequireUser())
	{
		protected.GET("/dashboard", h.Dashboard.ShowDashboard)
	}

	// Unknown paths land on the login page; signed-in users bounce straight
	// back to the dashboard from there.
	r.NoRoute(func(c *gin.Context) {
		log.Info("404 - Page not found",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("ip", c.ClientIP()),
		)
		c.Redirect(http.StatusFound, "/login")
	})
}
