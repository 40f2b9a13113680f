package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/models"
	"github.com/nouhaa3/invisithreat/internal/app/observability/metrics"
	"github.com/nouhaa3/invisithreat/internal/app/session"
	"github.com/nouhaa3/invisithreat/internal/pkg/api"
)

const (
	loginFallbackMessage  = "Invalid email or password. Please try again."
	signupFallbackMessage = "Registration failed. Please try again."
	throttledMessage      = "Too many failed attempts. Please wait a few minutes and try again."
)

type AuthHandlers struct {
	authService AuthService
	throttle    *LoginThrottle
	logger      *zap.Logger
}

func NewAuthHandlers(authService AuthService, throttle *LoginThrottle, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		throttle:    throttle,
		logger:      logger,
	}
}

// LoginHandler processes the login form. Failures re-render the form
// fragment in place; success persists the session and redirects.
func (h *AuthHandlers) LoginHandler(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if fieldErrs := ValidateLogin(email, password); fieldErrs.Any() {
		h.renderLoginForm(c, http.StatusBadRequest, SignInFormProps{Email: email, Errors: fieldErrs})
		return
	}

	ip := c.ClientIP()
	if !h.throttle.Allow(ip) {
		metrics.Get().LoginThrottleHitsTotal.Add(c.Request.Context(), 1)
		h.logger.Warn("login throttled", zap.String("ip", ip))
		h.renderLoginForm(c, http.StatusTooManyRequests, SignInFormProps{Email: email, Banner: throttledMessage})
		return
	}

	payload, err := h.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		h.throttle.Failure(ip)
		h.logger.Warn("login rejected", zap.String("email", email), zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, models.ErrUnauthenticated) {
			status = http.StatusUnauthorized
		} else if errors.Is(err, models.ErrBadRequest) {
			status = http.StatusBadRequest
		}
		h.renderLoginForm(c, status, SignInFormProps{Email: email, Banner: backendMessage(err, loginFallbackMessage)})
		return
	}

	h.throttle.Reset(ip)
	if err := session.SaveAuth(c, payload); err != nil {
		h.logger.Error("failed to persist session", zap.Error(err))
		h.renderLoginForm(c, http.StatusInternalServerError, SignInFormProps{Email: email, Banner: loginFallbackMessage})
		return
	}

	h.logger.Info("successful login",
		zap.String("user_id", payload.User.ID),
		zap.String("email", email),
	)
	c.Header("HX-Redirect", "/dashboard")
	c.Status(http.StatusOK)
}

// RegisterHandler processes the signup form. A created account is signed in
// immediately using the tokens the backend returns.
func (h *AuthHandlers) RegisterHandler(c *gin.Context) {
	nom := strings.TrimSpace(c.PostForm("nom"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	if fieldErrs := ValidateSignup(nom, email, password, confirmPassword); fieldErrs.Any() {
		h.renderSignupForm(c, http.StatusBadRequest, SignUpFormProps{Nom: nom, Email: email, Errors: fieldErrs})
		return
	}

	payload, err := h.authService.Register(c.Request.Context(), models.RegisterInput{
		Nom:      nom,
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.logger.Warn("registration rejected", zap.String("email", email), zap.Error(err))
		status := http.StatusBadGateway
		message := backendMessage(err, signupFallbackMessage)
		if errors.Is(err, models.ErrConflict) {
			status = http.StatusConflict
			message = backendMessage(err, "An account with this email already exists.")
		} else if errors.Is(err, models.ErrBadRequest) {
			status = http.StatusBadRequest
		}
		h.renderSignupForm(c, status, SignUpFormProps{Nom: nom, Email: email, Banner: message})
		return
	}

	if err := session.SaveAuth(c, payload); err != nil {
		h.logger.Error("failed to persist session", zap.Error(err))
		h.renderSignupForm(c, http.StatusInternalServerError, SignUpFormProps{Nom: nom, Email: email, Banner: signupFallbackMessage})
		return
	}

	h.logger.Info("successful registration",
		zap.String("user_id", payload.User.ID),
		zap.String("email", email),
	)
	c.Header("HX-Redirect", "/dashboard")
	c.Status(http.StatusOK)
}

// LogoutHandler clears the session and sends the user back to the login page.
func (h *AuthHandlers) LogoutHandler(c *gin.Context) {
	if err := session.Logout(c); err != nil {
		h.logger.Warn("logout failed to clear session", zap.Error(err))
	}
	h.logger.Info("user logout")

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/login")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// PasswordStrengthHandler returns the live strength meter fragment for the
// signup form.
func (h *AuthHandlers) PasswordStrengthHandler(c *gin.Context) {
	password := c.PostForm("password")
	score := Score(password)
	weak := ContainsWeakSequence(password)

	c.Status(http.StatusOK)
	if err := StrengthMeter(score, weak).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("failed to render strength meter", zap.Error(err))
	}
}

func (h *AuthHandlers) renderLoginForm(c *gin.Context, status int, props SignInFormProps) {
	c.Header("HX-Retarget", "#login-form")
	c.Header("HX-Reswap", "outerHTML")
	c.Status(status)
	if err := SignInForm(props).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("failed to render login form", zap.Error(err))
	}
}

func (h *AuthHandlers) renderSignupForm(c *gin.Context, status int, props SignUpFormProps) {
	c.Header("HX-Retarget", "#signup-form")
	c.Header("HX-Reswap", "outerHTML")
	c.Status(status)
	if err := SignUpForm(props).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("failed to render signup form", zap.Error(err))
	}
}

// backendMessage surfaces the backend's detail string when it is fit to
// show, falling back to a generic message otherwise.
func backendMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}
