package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/models"
	"github.com/nouhaa3/invisithreat/internal/app/observability/metrics"
	"github.com/nouhaa3/invisithreat/internal/app/session"
	"github.com/nouhaa3/invisithreat/internal/pkg/config"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

// MockAuthService is a mock implementation of auth.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthPayload), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, input models.RegisterInput) (*models.AuthPayload, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthPayload), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, accessToken string) (*models.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func tokenExpiringIn(t *testing.T, d time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(d).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func guardConfig() config.AuthConfig {
	return config.AuthConfig{
		RefreshWindow:      5 * time.Minute,
		LoginMaxAttempts:   10,
		LoginAttemptWindow: 5 * time.Minute,
	}
}

// newGuardRouter wires a guarded /dashboard, a public /login guarded the
// other way, and a /seed route to plant session state.
func newGuardRouter(svc *MockAuthService, payload *models.AuthPayload) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	guard := NewGuard(svc, guardConfig(), zap.NewNop())

	r.POST("/seed", func(c *gin.Context) {
		if err := session.SaveAuth(c, payload); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	r.GET("/login", guard.RedirectIfAuthenticated(), func(c *gin.Context) {
		c.String(http.StatusOK, "login page")
	})

	r.GET("/dashboard", guard.RequireUser(), func(c *gin.Context) {
		user := GetUserFromContext(c)
		if user == nil {
			c.String(http.StatusInternalServerError, "no user in context")
			return
		}
		c.String(http.StatusOK, user.Nom)
	})

	return r
}

func seededCookies(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/seed", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func get(r *gin.Engine, path string, cookies []*http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func payloadWithToken(token string) *models.AuthPayload {
	return &models.AuthPayload{
		AccessToken:  token,
		RefreshToken: "refresh-1",
		TokenType:    "bearer",
		User: &models.User{
			ID:       "user-1",
			Email:    "ada@example.com",
			Nom:      "Ada",
			IsActive: true,
			RoleName: "Viewer",
		},
	}
}

func TestRequireUser(t *testing.T) {
	t.Run("it redirects anonymous browsers to the login page", func(t *testing.T) {
		svc := new(MockAuthService)
		r := newGuardRouter(svc, nil)

		w := get(r, "/dashboard", nil, false)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("it answers htmx requests with HX-Redirect", func(t *testing.T) {
		svc := new(MockAuthService)
		r := newGuardRouter(svc, nil)

		w := get(r, "/dashboard", nil, true)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
	})

	t.Run("it lets a fresh session straight through", func(t *testing.T) {
		svc := new(MockAuthService)
		r := newGuardRouter(svc, payloadWithToken(tokenExpiringIn(t, time.Hour)))
		cookies := seededCookies(t, r)

		w := get(r, "/dashboard", cookies, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ada", w.Body.String())
		svc.AssertNotCalled(t, "Refresh")
	})

	t.Run("it renews a near-expiry token before the handler runs", func(t *testing.T) {
		svc := new(MockAuthService)
		freshToken := tokenExpiringIn(t, time.Hour)
		svc.On("Refresh", mock.Anything, "refresh-1").
			Return(&models.TokenPair{AccessToken: freshToken, RefreshToken: "refresh-2"}, nil)
		svc.On("Me", mock.Anything, freshToken).
			Return(&models.User{ID: "user-1", Email: "ada@example.com", Nom: "Ada Updated", RoleName: "Viewer"}, nil)

		r := newGuardRouter(svc, payloadWithToken(tokenExpiringIn(t, time.Minute)))
		cookies := seededCookies(t, r)

		w := get(r, "/dashboard", cookies, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ada Updated", w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("it tears the session down when renewal is rejected", func(t *testing.T) {
		rejections := map[string]error{
			"expired session":     models.ErrSessionExpired,
			"rejected credential": models.ErrUnauthenticated,
		}
		for name, rejection := range rejections {
			t.Run(name, func(t *testing.T) {
				svc := new(MockAuthService)
				svc.On("Refresh", mock.Anything, "refresh-1").Return(nil, rejection)

				r := newGuardRouter(svc, payloadWithToken(tokenExpiringIn(t, time.Minute)))
				cookies := seededCookies(t, r)

				w := get(r, "/dashboard", cookies, false)
				assert.Equal(t, http.StatusFound, w.Code)
				assert.Equal(t, "/login", w.Header().Get("Location"))

				// The rewritten cookie no longer authenticates.
				after := get(r, "/dashboard", w.Result().Cookies(), false)
				assert.Equal(t, http.StatusFound, after.Code)
			})
		}
	})

	t.Run("it keeps the session on transient renewal trouble", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Refresh", mock.Anything, "refresh-1").Return(nil, assertableTransientErr{})

		r := newGuardRouter(svc, payloadWithToken(tokenExpiringIn(t, time.Minute)))
		cookies := seededCookies(t, r)

		w := get(r, "/dashboard", cookies, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ada", w.Body.String())
	})
}

type assertableTransientErr struct{}

func (assertableTransientErr) Error() string { return "backend unreachable" }

func TestRedirectIfAuthenticated(t *testing.T) {
	t.Run("it shows the page to anonymous browsers", func(t *testing.T) {
		svc := new(MockAuthService)
		r := newGuardRouter(svc, nil)

		w := get(r, "/login", nil, false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "login page", w.Body.String())
	})

	t.Run("it bounces signed-in users to the dashboard", func(t *testing.T) {
		svc := new(MockAuthService)
		r := newGuardRouter(svc, payloadWithToken(tokenExpiringIn(t, time.Hour)))
		cookies := seededCookies(t, r)

		w := get(r, "/login", cookies, false)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})
}
